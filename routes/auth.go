package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-admin-server/database"
	"marketplace-admin-server/models"
	"marketplace-admin-server/services"
	"marketplace-admin-server/utils"
)

// Login exchanges an identity-provider token for an app session token. An
// unknown phone number is auto-provisioned as a customer account.
func Login(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identity token is required"})
		return
	}

	phone, err := utils.PhoneFromIdentityToken(req.IDToken)
	if err != nil {
		log.Printf("❌ Identity token rejected: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid identity token"})
		return
	}

	userService := services.NewUserService(database.DB)
	user, isNewUser, err := userService.FindOrCreateByPhone(phone)
	if err != nil {
		log.Printf("❌ Login failed for phone %s: %v", phone, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	if !user.IsActive {
		log.Printf("❌ Login attempt by inactive user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is inactive"})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Printf("❌ Failed to generate token for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	log.Printf("✅ User %d logged in (new=%v)", user.ID, isNewUser)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"token":       token,
		"user":        user,
		"is_new_user": isNewUser,
	})
}

// AdminLogin handles password logins for the admin console
func AdminLogin(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	var user models.User
	if err := database.DB.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
		log.Printf("❌ Admin login failed for phone %s: %v", req.Phone, err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if user.Role != models.RoleAdmin {
		log.Printf("❌ Login attempt by non-admin user %d with role %s", user.ID, user.Role)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Admin access required"})
		return
	}

	if !user.IsActive {
		log.Printf("❌ Login attempt by inactive admin user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is inactive"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Printf("❌ Invalid password for admin user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Printf("❌ Failed to generate token for admin user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	log.Printf("✅ Admin user %d logged in successfully", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
