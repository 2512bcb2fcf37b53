package repository

import (
	"context"

	"github.com/hoteldesk/reservation-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	CreateAssignment(ctx context.Context, tx *gorm.DB, assignment *models.RoomAssignment) error
	FindByIDAndContact(ctx context.Context, tx *gorm.DB, id uint, contact string) (*models.Booking, error)
	FindByIDAndContactForUpdate(ctx context.Context, tx *gorm.DB, id uint, contact string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) CreateAssignment(ctx context.Context, tx *gorm.DB, assignment *models.RoomAssignment) error {
	return tx.WithContext(ctx).Create(assignment).Error
}

// FindByIDAndContact scopes the lookup to the owning guest's contact key, so a
// wrong contact is indistinguishable from a missing booking.
func (r *bookingRepository) FindByIDAndContact(ctx context.Context, tx *gorm.DB, id uint, contact string) (*models.Booking, error) {
	return r.findByIDAndContact(ctx, tx, id, contact, false)
}

// FindByIDAndContactForUpdate additionally locks the booking row, serializing
// concurrent cancellations of the same booking.
func (r *bookingRepository) FindByIDAndContactForUpdate(ctx context.Context, tx *gorm.DB, id uint, contact string) (*models.Booking, error) {
	return r.findByIDAndContact(ctx, tx, id, contact, true)
}

func (r *bookingRepository) findByIDAndContact(ctx context.Context, tx *gorm.DB, id uint, contact string, lock bool) (*models.Booking, error) {
	if tx == nil {
		tx = r.db
	}
	q := tx.WithContext(ctx).
		Joins("JOIN guests ON guests.id = bookings.guest_id").
		Where("bookings.id = ? AND guests.contact = ?", id, contact)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "bookings"}})
	}

	var booking models.Booking
	if err := q.First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}
