package models

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a guest's reservation of one unit of a room type for a half-open
// [check_in, check_out) date range. Cancellation is one-way; the row is kept.
type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	GuestID     uint          `gorm:"not null;index" json:"guest_id"`
	RoomTypeID  uint          `gorm:"not null" json:"room_type_id"`
	CheckIn     time.Time     `gorm:"type:date;not null" json:"check_in"`
	CheckOut    time.Time     `gorm:"type:date;not null" json:"check_out"`
	TotalAmount float64       `gorm:"not null" json:"total_amount"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Guest      *Guest          `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	RoomType   *RoomType       `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
	Assignment *RoomAssignment `gorm:"foreignKey:BookingID" json:"assignment,omitempty"`
}

// RoomAssignment binds a booking to the physical room it occupies. At most one
// per booking; it survives cancellation as a historical record but only counts
// against availability while the booking is confirmed.
type RoomAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"not null;uniqueIndex" json:"booking_id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	CreatedAt time.Time `json:"created_at"`
}
