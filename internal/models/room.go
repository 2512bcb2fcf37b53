package models

import "time"

// RoomType is a class of rooms sharing a nightly base price and description.
// Bookings reference it by ID; the price captured on a booking is never
// recomputed if the base price changes later.
type RoomType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	BasePrice   float64   `gorm:"not null" json:"base_price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Room is one physical, individually bookable unit. Its type never changes
// after creation.
type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomTypeID uint      `gorm:"not null;index" json:"room_type_id"`
	Number     string    `gorm:"size:20" json:"number"`
	CreatedAt  time.Time `json:"created_at"`

	RoomType *RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
