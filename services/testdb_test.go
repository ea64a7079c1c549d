package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marketplace-admin-server/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Document{},
		&models.Address{},
		&models.Booking{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, user models.User) models.User {
	t.Helper()
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createBooking(t *testing.T, db *gorm.DB, booking models.Booking) models.Booking {
	t.Helper()
	if booking.ServiceName == "" {
		booking.ServiceName = "General Service"
	}
	if booking.Date.IsZero() {
		booking.Date = time.Now()
	}
	if booking.Time == "" {
		booking.Time = "10:00 AM"
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

func strPtr(s string) *string { return &s }
