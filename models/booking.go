package models

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "Pending"
	BookingStatusConfirmed  BookingStatus = "Confirmed"
	BookingStatusInProgress BookingStatus = "In Progress"
	BookingStatusCompleted  BookingStatus = "Completed"
	BookingStatusCancelled  BookingStatus = "Cancelled"
)

type Booking struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	BookingID       string        `json:"booking_id" gorm:"size:20;uniqueIndex;not null"` // Human-readable code, e.g. BK-482913
	CustomerID      uint          `json:"customer_id" gorm:"index;not null"`
	ProviderID      *uint         `json:"provider_id"` // Unassigned until matched with a partner
	ServiceName     string        `json:"service_name" gorm:"size:255;not null"`
	ServiceCategory string        `json:"service_category" gorm:"size:100"`
	Date            time.Time     `json:"date" gorm:"not null"`
	Time            string        `json:"time" gorm:"size:20;not null"`
	Status          BookingStatus `json:"status" gorm:"type:varchar(20);default:'Pending';check:status IN ('Pending','Confirmed','In Progress','Completed','Cancelled')"`
	Amount          float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	Address         string        `json:"address" gorm:"size:500"`
	CreatedAt       time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Customer User  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Provider *User `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate generates the human-readable booking code when none was supplied
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingID == "" {
		b.BookingID = NewBookingCode()
	}
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	return nil
}

// NewBookingCode returns a six-digit BK- code
func NewBookingCode() string {
	return fmt.Sprintf("BK-%d", 100000+rand.Intn(900000))
}

// IsValidBookingStatus checks if a status value is one of the accepted states
func IsValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}
