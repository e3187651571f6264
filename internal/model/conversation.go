package model

import "time"

type Conversation struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID    uint64    `gorm:"column:property_id;index:idx_property_guest,unique" json:"propertyId"`
	HostUID       string    `gorm:"column:host_uid;size:128;index" json:"hostUid"`
	GuestUID      string    `gorm:"column:guest_uid;size:128;index:idx_property_guest,unique" json:"guestUid"`
	LastMessageAt time.Time `gorm:"column:last_message_at;index" json:"lastMessageAt"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}
