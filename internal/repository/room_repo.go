package repository

import (
	"context"

	"github.com/hoteldesk/reservation-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomTypeRepository interface {
	ListAll(ctx context.Context) ([]models.RoomType, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.RoomType, error)
}

type RoomRepository interface {
	FindFreeRooms(ctx context.Context, tx *gorm.DB, roomTypeID uint, stay models.Stay) ([]models.Room, error)
	CountFreeRooms(ctx context.Context, tx *gorm.DB, roomTypeID uint, stay models.Stay) (int64, error)
}

type roomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) RoomTypeRepository {
	return &roomTypeRepository{db: db}
}

// ListAll returns every room type in ID order, so name matching has a stable
// tie-break.
func (r *roomTypeRepository) ListAll(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// FindByIDForUpdate acquires a row-level lock on the room type within the given
// transaction. All allocations for a type serialize on this lock, so two
// concurrent bookings can never both observe the same room as free.
func (r *roomTypeRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// freeRoomQuery matches rooms of the type with no confirmed assignment whose
// booking overlaps the stay. The WHERE clause is the half-open predicate from
// models.Overlaps spelled out as two date comparisons.
func (r *roomRepository) freeRoomQuery(ctx context.Context, tx *gorm.DB, roomTypeID uint, stay models.Stay) *gorm.DB {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.Room{}).
		Where("rooms.room_type_id = ?", roomTypeID).
		Where(`NOT EXISTS (
			SELECT 1 FROM room_assignments ra
			JOIN bookings b ON b.id = ra.booking_id
			WHERE ra.room_id = rooms.id
			  AND b.status = ?
			  AND b.check_in < ? AND ? < b.check_out
		)`, models.StatusConfirmed, stay.CheckOut, stay.CheckIn)
}

// FindFreeRooms returns free rooms in ascending ID order, so allocation is
// reproducible under no contention (lowest ID wins).
func (r *roomRepository) FindFreeRooms(ctx context.Context, tx *gorm.DB, roomTypeID uint, stay models.Stay) ([]models.Room, error) {
	var rooms []models.Room
	if err := r.freeRoomQuery(ctx, tx, roomTypeID, stay).
		Order("rooms.id ASC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) CountFreeRooms(ctx context.Context, tx *gorm.DB, roomTypeID uint, stay models.Stay) (int64, error) {
	var count int64
	err := r.freeRoomQuery(ctx, tx, roomTypeID, stay).Count(&count).Error
	return count, err
}
