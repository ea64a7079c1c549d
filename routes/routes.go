package routes

import (
	"github.com/gin-gonic/gin"

	"marketplace-admin-server/middleware"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		auth.Use(middleware.RateLimitMiddleware())
		{
			auth.POST("/login", Login)
			auth.POST("/admin/login", AdminLogin)
		}

		users := apiV1.Group("/users")
		{
			users.GET("", GetUsers)
			users.GET("/profile", middleware.AuthMiddleware(), GetProfile)
			users.PUT("/profile", middleware.AuthMiddleware(), UpdateProfile)
			users.PUT("/availability", middleware.AuthMiddleware(), UpdateAvailability)
			users.POST("/documents", middleware.AuthMiddleware(), UploadDocument)
			users.POST("/addresses", middleware.AuthMiddleware(), AddAddress)
		}

		dashboard := apiV1.Group("/dashboard")
		dashboard.Use(middleware.AdminAuthMiddleware())
		{
			dashboard.GET("/stats", GetDashboardStats)
			dashboard.GET("/bookings", GetBookings)
			dashboard.POST("/mock-booking", CreateMockBooking)
		}

		admin := apiV1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/partners/pending", GetPendingPartners)
			admin.GET("/partners/:id", GetPartnerDetails)
			admin.PUT("/partners/:id/verify", VerifyPartner)
			admin.PUT("/partners/:id/documents/:documentId/verify", VerifyDocument)
		}
	}
}
