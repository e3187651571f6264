package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/staynest/staynest-backend/internal/config"
	"github.com/staynest/staynest-backend/internal/db"
	"github.com/staynest/staynest-backend/internal/jobs"
	"github.com/staynest/staynest-backend/internal/model"
	"github.com/staynest/staynest-backend/internal/server"
)

// Set via -ldflags at build time.
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("db connect failed")
	}

	if err := conn.AutoMigrate(
		&model.Profile{},
		&model.Property{},
		&model.Booking{},
		&model.Conversation{},
		&model.Message{},
		&model.Review{},
		&model.Notification{},
	); err != nil {
		logrus.WithError(err).Fatal("auto migrate failed")
	}

	ctx := context.Background()
	srv, err := server.New(ctx, cfg, conn, gitSHA, buildTime)
	if err != nil {
		logrus.WithError(err).Fatal("server init failed")
	}

	sched := jobs.NewScheduler(srv.Bookings)
	if err := sched.Start(); err != nil {
		logrus.WithError(err).Fatal("scheduler start failed")
	}

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("starting server")
		errCh <- srv.Start(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logrus.WithError(err).Fatal("server stopped")
	case sig := <-stop:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	sched.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown error")
	}
}
