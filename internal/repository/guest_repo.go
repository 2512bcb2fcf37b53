package repository

import (
	"context"

	"github.com/hoteldesk/reservation-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuestRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, guest *models.Guest) error
	FindByContact(ctx context.Context, contact string) (*models.Guest, error)
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

// Upsert inserts the guest or, if the contact key already exists, updates the
// display name. The guest's ID is populated either way.
func (r *guestRepository) Upsert(ctx context.Context, tx *gorm.DB, guest *models.Guest) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contact"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "updated_at"}),
	}).Create(guest).Error
}

func (r *guestRepository) FindByContact(ctx context.Context, contact string) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).Where("contact = ?", contact).First(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}
