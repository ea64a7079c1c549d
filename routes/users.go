package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"marketplace-admin-server/config"
	"marketplace-admin-server/database"
	"marketplace-admin-server/models"
	"marketplace-admin-server/services"
)

// GetUsers lists users with booking rollups, optionally filtered by role
func GetUsers(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	if role != "" {
		if u := (models.User{Role: role}); !u.IsValidRole() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role filter"})
			return
		}
	}

	svc := services.NewUserService(database.DB)
	users, err := svc.ListWithRollups(role)
	if err != nil {
		log.Printf("❌ Failed to list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// GetProfile returns the authenticated user's own record
func GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	svc := services.NewUserService(database.DB)
	user, err := svc.GetProfile(userID)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to fetch profile %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile applies a partial update to the authenticated user's record
func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	svc := services.NewUserService(database.DB)
	user, err := svc.UpdateProfile(userID, req)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to update profile %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateAvailability flips the authenticated partner online or offline
func UpdateAvailability(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "is_available must be a boolean"})
		return
	}

	svc := services.NewUserService(database.DB)
	user, err := svc.SetAvailability(userID, *req.IsAvailable)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to update availability for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	status := "Offline"
	if user.IsAvailable {
		status = "Online"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"is_available": user.IsAvailable,
		"message":      fmt.Sprintf("Availability updated to %s", status),
	})
}

// UploadDocument stores a partner credential and appends it as a pending
// document sub-record
func UploadDocument(c *gin.Context) {
	userID := c.GetUint("user_id")

	docType := models.DocumentType(c.PostForm("type"))
	if !models.IsValidDocumentType(docType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid document type"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}

	cloudCfg := config.AppConfig.Cloudinary
	if cloudCfg.CloudName == "" || cloudCfg.APIKey == "" || cloudCfg.APISecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Document storage not configured"})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cloudCfg.APIKey, cloudCfg.APISecret, cloudCfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Document storage not configured"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	overwrite := true
	uniqueFilename := true
	folder := "partners/documents/" + strconv.Itoa(int(userID))
	uploaded, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &uniqueFilename,
	})
	if err != nil {
		log.Printf("❌ Document upload failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Document upload failed"})
		return
	}

	svc := services.NewUserService(database.DB)
	document, err := svc.AddDocument(userID, docType, fileHeader.Filename, uploaded.SecureURL)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to record document for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	log.Printf("✅ User %d uploaded %s document %d", userID, docType, document.ID)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Document uploaded successfully",
		"document": document,
	})
}

// AddAddress appends an address to the authenticated user's address book
func AddAddress(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Address and coordinates are required"})
		return
	}

	svc := services.NewUserService(database.DB)
	addresses, err := svc.AddAddress(userID, req)
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to add address for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Address added successfully",
		"addresses": addresses,
	})
}
