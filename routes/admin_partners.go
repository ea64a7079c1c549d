package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-admin-server/database"
	"marketplace-admin-server/models"
	"marketplace-admin-server/services"
)

// GetPendingPartners returns the partner review queue
func GetPendingPartners(c *gin.Context) {
	svc := services.NewVerificationService(database.DB)

	partners, err := svc.ListPendingPartners()
	if err != nil {
		log.Printf("❌ Failed to list pending partners: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"partners": partners,
		"total":    len(partners),
	})
}

// GetPartnerDetails returns one partner with documents and verifier identity
func GetPartnerDetails(c *gin.Context) {
	partnerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid partner id"})
		return
	}

	svc := services.NewVerificationService(database.DB)
	partner, err := svc.GetPartnerDetail(partnerID)
	if errors.Is(err, services.ErrPartnerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Partner not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to fetch partner %d: %v", partnerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"partner": partner,
	})
}

// VerifyPartner moves a partner to verified or rejected
func VerifyPartner(c *gin.Context) {
	partnerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid partner id"})
		return
	}
	adminID := c.GetUint("user_id")

	var req struct {
		Status     models.VerificationStatus `json:"status" binding:"required"`
		AdminNotes string                    `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	svc := services.NewVerificationService(database.DB)
	partner, err := svc.SetPartnerVerification(partnerID, req.Status, req.AdminNotes, adminID)
	if errors.Is(err, services.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}
	if errors.Is(err, services.ErrPartnerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Partner not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to update partner %d verification: %v", partnerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	log.Printf("✅ Partner %d %s by admin %d", partnerID, req.Status, adminID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Partner %s successfully", req.Status),
		"partner": partner,
	})
}

// VerifyDocument moves one partner document to verified or rejected
func VerifyDocument(c *gin.Context) {
	partnerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid partner id"})
		return
	}
	documentID, err := parseID(c.Param("documentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid document id"})
		return
	}

	var req struct {
		Status          models.DocumentStatus `json:"status" binding:"required"`
		RejectionReason string                `json:"rejection_reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	svc := services.NewVerificationService(database.DB)
	document, err := svc.SetDocumentVerification(partnerID, documentID, req.Status, req.RejectionReason)
	if errors.Is(err, services.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}
	if errors.Is(err, services.ErrPartnerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Partner not found"})
		return
	}
	if errors.Is(err, services.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Document not found"})
		return
	}
	if err != nil {
		log.Printf("❌ Failed to update document %d for partner %d: %v", documentID, partnerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	log.Printf("✅ Document %d of partner %d set to %s", documentID, partnerID, req.Status)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Document %s successfully", req.Status),
		"document": document,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
