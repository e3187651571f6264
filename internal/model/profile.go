package model

import "time"

// Profile mirrors one authenticated identity; UID is the Firebase uid.
type Profile struct {
	UID       string    `gorm:"column:uid;primaryKey;size:128" json:"uid"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	FirstName string    `gorm:"column:first_name;size:120" json:"firstName"`
	LastName  string    `gorm:"column:last_name;size:120" json:"lastName"`
	Phone     string    `gorm:"size:32" json:"phone"`
	AvatarURL *string   `gorm:"column:avatar_url;size:512" json:"avatarUrl,omitempty"`
	IsHost    bool      `gorm:"column:is_host;not null;default:false" json:"isHost"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Profile) TableName() string {
	return "profiles"
}
