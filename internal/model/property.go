package model

import "time"

type Property struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	HostUID       string    `gorm:"column:host_uid;size:128;index;not null" json:"hostUid"`
	Title         string    `gorm:"size:120;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	PropertyType  string    `gorm:"column:property_type;size:64" json:"propertyType"`
	Address       string    `gorm:"size:255;not null" json:"address"`
	City          string    `gorm:"size:120;not null;index" json:"city"`
	State         string    `gorm:"size:120;not null" json:"state"`
	Country       string    `gorm:"size:120;not null" json:"country"`
	PostalCode    string    `gorm:"column:postal_code;size:32" json:"postalCode"`
	Latitude      *float64  `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude     *float64  `gorm:"column:longitude" json:"longitude,omitempty"`
	PricePerNight float64   `gorm:"column:price_per_night;not null" json:"pricePerNight"`
	Bedrooms      int       `gorm:"not null;default:1" json:"bedrooms"`
	Bathrooms     int       `gorm:"not null;default:1" json:"bathrooms"`
	MaxGuests     int       `gorm:"column:max_guests;not null;default:1" json:"maxGuests"`
	Amenities     []string  `gorm:"serializer:json" json:"amenities"`
	Images        []string  `gorm:"serializer:json" json:"images"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true;index" json:"isActive"`
	AverageRating float64   `gorm:"column:average_rating;not null;default:0" json:"averageRating"`
	TotalReviews  int       `gorm:"column:total_reviews;not null;default:0" json:"totalReviews"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Property) TableName() string {
	return "properties"
}
