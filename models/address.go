package models

import "time"

type Address struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Label       string    `json:"label" gorm:"size:50;default:'Home'"`
	FullAddress string    `json:"full_address" gorm:"size:500;not null"`
	City        string    `json:"city" gorm:"size:100"`
	Pincode     string    `json:"pincode" gorm:"size:20"`
	Lat         float64   `json:"lat" gorm:"type:decimal(10,8)"`
	Lng         float64   `json:"lng" gorm:"type:decimal(11,8)"`
	IsDefault   bool      `json:"is_default" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}

// AddressRequest represents the request structure for adding an address
type AddressRequest struct {
	Label       string  `json:"label"`
	FullAddress string  `json:"full_address" binding:"required"`
	City        string  `json:"city"`
	Pincode     string  `json:"pincode"`
	Lat         float64 `json:"lat" binding:"required"`
	Lng         float64 `json:"lng" binding:"required"`
}
