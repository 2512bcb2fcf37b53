package database

import (
	"log"
	"strconv"

	"github.com/hoteldesk/reservation-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
		&models.RoomAssignment{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Supports the availability anti-join over confirmed bookings
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_status_dates
		ON bookings (status, check_in, check_out)
	`)

	return db
}

// SeedDemoInventory loads a small fixed catalog when the room_types table is
// empty. Intended for local runs and demos only.
func SeedDemoInventory(db *gorm.DB) {
	var count int64
	db.Model(&models.RoomType{}).Count(&count)
	if count > 0 {
		return
	}

	types := []models.RoomType{
		{Name: "Standard", BasePrice: 80, Description: "Queen bed, garden view"},
		{Name: "Deluxe", BasePrice: 100, Description: "King bed, balcony, sea view"},
		{Name: "Suite", BasePrice: 180, Description: "Separate living room, sea view"},
	}
	if err := db.Create(&types).Error; err != nil {
		log.Printf("[Database] failed to seed room types: %v", err)
		return
	}

	unitsPerType := map[string]int{"Standard": 4, "Deluxe": 2, "Suite": 1}
	number := 100
	for _, rt := range types {
		for i := 0; i < unitsPerType[rt.Name]; i++ {
			number++
			db.Create(&models.Room{RoomTypeID: rt.ID, Number: strconv.Itoa(number)})
		}
	}
	log.Println("[Database] seeded demo inventory")
}
