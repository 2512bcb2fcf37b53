package models

import "time"

// Guest is identified by its contact key (email or phone depending on
// deployment). Booking with an existing contact updates the name instead of
// creating a second guest.
type Guest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Contact   string    `gorm:"size:255;not null;uniqueIndex" json:"contact"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
