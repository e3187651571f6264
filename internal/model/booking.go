package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID         uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID uint64        `gorm:"column:property_id;index;not null" json:"propertyId"`
	GuestUID   string        `gorm:"column:guest_uid;size:128;index;not null" json:"guestUid"`
	HostUID    string        `gorm:"column:host_uid;size:128;index;not null" json:"hostUid"`
	CheckIn    time.Time     `gorm:"column:check_in;not null" json:"checkIn"`
	CheckOut   time.Time     `gorm:"column:check_out;not null" json:"checkOut"`
	Guests     int           `gorm:"not null;default:1" json:"guests"`
	TotalPrice float64       `gorm:"column:total_price;not null" json:"totalPrice"`
	Status     BookingStatus `gorm:"column:status;size:32;not null;index" json:"status"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
