package model

import "time"

type Review struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID  uint64    `gorm:"column:booking_id;uniqueIndex;not null" json:"bookingId"`
	PropertyID uint64    `gorm:"column:property_id;index;not null" json:"propertyId"`
	GuestUID   string    `gorm:"column:guest_uid;size:128;index;not null" json:"guestUid"`
	HostUID    string    `gorm:"column:host_uid;size:128;index;not null" json:"hostUid"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Review) TableName() string {
	return "reviews"
}
