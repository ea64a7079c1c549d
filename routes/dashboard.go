package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marketplace-admin-server/database"
	"marketplace-admin-server/models"
	"marketplace-admin-server/services"
)

// GetDashboardStats returns the headline stats and the recent-activity feed
func GetDashboardStats(c *gin.Context) {
	svc := services.NewDashboardService(database.DB)

	stats, err := svc.Stats()
	if err != nil {
		log.Printf("❌ Failed to compute dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	activity, err := svc.RecentActivity(time.Now())
	if err != nil {
		log.Printf("❌ Failed to build recent activity: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"stats":          stats,
		"recentActivity": activity,
	})
}

// GetBookings lists bookings with an optional status filter, newest first
func GetBookings(c *gin.Context) {
	status := c.Query("status")

	query := database.DB.
		Preload("Customer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone", "profile_image")
		}).
		Preload("Provider", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone", "profile_image")
		})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		log.Printf("❌ Failed to fetch bookings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// CreateMockBooking creates a test booking (dev tooling for the dashboard)
func CreateMockBooking(c *gin.Context) {
	var req struct {
		CustomerID  uint    `json:"customer_id" binding:"required"`
		ServiceName string  `json:"service_name"`
		Amount      float64 `json:"amount"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "customer_id is required"})
		return
	}

	serviceName := req.ServiceName
	if serviceName == "" {
		serviceName = "General Service"
	}
	amount := req.Amount
	if amount == 0 {
		amount = 500
	}

	booking := models.Booking{
		CustomerID:  req.CustomerID,
		ServiceName: serviceName,
		Amount:      amount,
		Date:        time.Now(),
		Time:        "10:00 AM",
		Status:      models.BookingStatusPending,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		log.Printf("❌ Failed to create mock booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"booking": booking,
	})
}
