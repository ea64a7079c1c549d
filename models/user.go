package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RolePartner  UserRole = "partner"
	RoleAdmin    UserRole = "admin"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"size:255"`
	Phone        string   `json:"phone" gorm:"size:20;uniqueIndex;not null"`
	Email        *string  `json:"email" gorm:"size:255;uniqueIndex"`
	PasswordHash string   `json:"-" gorm:"size:255"` // Admin console logins only
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'customer';check:role IN ('customer','partner','admin')"`
	Gender       string   `json:"gender" gorm:"size:10"`
	DOB          string   `json:"dob" gorm:"size:20"` // Stored as "DD/MM/YYYY" to match the app UI
	ProfileImage *string  `json:"profile_image" gorm:"size:500"`
	FCMToken     *string  `json:"-" gorm:"size:500"`
	IsActive     bool     `json:"is_active" gorm:"default:true"`

	// Partner-specific fields. VerificationStatus is nil for customers and admins.
	ServiceCategory    string              `json:"service_category,omitempty" gorm:"size:100"`
	ExperienceYears    int                 `json:"experience_years,omitempty"`
	Bio                string              `json:"bio,omitempty" gorm:"size:1000"`
	IsAvailable        bool                `json:"is_available" gorm:"default:false"` // Partners start offline
	VerificationStatus *VerificationStatus `json:"verification_status" gorm:"type:varchar(20);check:verification_status IN ('pending','verified','rejected')"`
	AdminNotes         string              `json:"admin_notes,omitempty" gorm:"size:1000"`
	VerifiedAt         *time.Time          `json:"verified_at"`
	VerifiedByID       *uint               `json:"verified_by_id"`
	VerifiedBy         *User               `json:"verified_by,omitempty" gorm:"foreignKey:VerifiedByID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:UserID"`
	Addresses []Address  `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate seeds role-dependent defaults: new partners enter the
// verification pipeline as pending, every other role carries no status.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	if u.Role == RolePartner && u.VerificationStatus == nil {
		status := VerificationPending
		u.VerificationStatus = &status
	}
	if u.Role != RolePartner {
		u.VerificationStatus = nil
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleCustomer, RolePartner, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsPartner checks if the user is a partner
func (u *User) IsPartner() bool {
	return u.Role == RolePartner
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer checks if the user is a customer
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
