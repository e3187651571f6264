package model

import "time"

type Message struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"column:conversation_id;index;not null" json:"conversationId"`
	SenderUID      string    `gorm:"column:sender_uid;size:128;index;not null" json:"senderUid"`
	RecipientUID   string    `gorm:"column:recipient_uid;size:128;index;not null" json:"recipientUid"`
	PropertyID     *uint64   `gorm:"column:property_id;index" json:"propertyId,omitempty"`
	BookingID      *uint64   `gorm:"column:booking_id;index" json:"bookingId,omitempty"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         bool      `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
