package db

import (
	"testing"

	"github.com/staynest/staynest-backend/internal/config"
)

func TestBuildDSN(t *testing.T) {
	base := config.Config{DBUser: "u", DBPassword: "pw", DBName: "staynest", DBPort: "3306"}

	cases := []struct {
		name string
		mod  func(*config.Config)
		want string
	}{
		{
			name: "plain host gets tcp wrapper",
			mod:  func(c *config.Config) { c.DBHost = "db.internal" },
			want: "u:pw@tcp(db.internal:3306)/staynest?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "socket path gets unix wrapper",
			mod:  func(c *config.Config) { c.DBHost = "/var/run/mysqld.sock" },
			want: "u:pw@unix(/var/run/mysqld.sock)/staynest?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "pre-wrapped host passes through",
			mod:  func(c *config.Config) { c.DBHost = "tcp(10.0.0.5:3307)" },
			want: "u:pw@tcp(10.0.0.5:3307)/staynest?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "instance connection name wins over host",
			mod: func(c *config.Config) {
				c.DBHost = "ignored"
				c.InstanceConnectionName = "proj:region:staynest"
			},
			want: "u:pw@unix(/cloudsql/proj:region:staynest)/staynest?charset=utf8mb4&parseTime=True&loc=Local",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mod(&cfg)
			if got := BuildDSN(&cfg); got != tc.want {
				t.Errorf("BuildDSN = %q, want %q", got, tc.want)
			}
		})
	}
}
