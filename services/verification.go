package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"marketplace-admin-server/models"
)

// VerificationService drives the partner and document verification workflow.
// A partner moves pending -> verified | rejected; each uploaded document has
// its own independent status with the same outcomes. A partner's overall
// status is never derived from its documents.
type VerificationService struct {
	db *gorm.DB
}

// NewVerificationService creates a new verification service
func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{db: db}
}

// DocumentSummary is the document projection returned in partner listings.
// No storage locator is included.
type DocumentSummary struct {
	ID         uint                  `json:"id"`
	Type       models.DocumentType   `json:"type"`
	Status     models.DocumentStatus `json:"status"`
	UploadedAt time.Time             `json:"uploaded_at"`
}

// PendingPartner is the safe field subset listed in the admin review queue.
type PendingPartner struct {
	ID              uint              `json:"id"`
	Name            string            `json:"name"`
	Email           *string           `json:"email"`
	Phone           string            `json:"phone"`
	ServiceCategory string            `json:"service_category"`
	ExperienceYears int               `json:"experience_years"`
	CreatedAt       time.Time         `json:"created_at"`
	Documents       []DocumentSummary `json:"documents"`
}

// ListPendingPartners returns every partner awaiting review
func (s *VerificationService) ListPendingPartners() ([]PendingPartner, error) {
	var partners []models.User
	err := s.db.
		Where("role = ? AND verification_status = ?", models.RolePartner, models.VerificationPending).
		Preload("Documents").
		Order("created_at DESC").
		Find(&partners).Error
	if err != nil {
		return nil, err
	}

	result := make([]PendingPartner, 0, len(partners))
	for _, p := range partners {
		docs := make([]DocumentSummary, 0, len(p.Documents))
		for _, d := range p.Documents {
			docs = append(docs, DocumentSummary{
				ID:         d.ID,
				Type:       d.Type,
				Status:     d.Status,
				UploadedAt: d.UploadedAt,
			})
		}
		result = append(result, PendingPartner{
			ID:              p.ID,
			Name:            p.Name,
			Email:           p.Email,
			Phone:           p.Phone,
			ServiceCategory: p.ServiceCategory,
			ExperienceYears: p.ExperienceYears,
			CreatedAt:       p.CreatedAt,
			Documents:       docs,
		})
	}
	return result, nil
}

// GetPartnerDetail returns the full partner record with documents, addresses
// and the admin who last verified it resolved to a display-safe subset.
func (s *VerificationService) GetPartnerDetail(id uint) (*models.User, error) {
	var partner models.User
	err := s.db.
		Where("id = ? AND role = ?", id, models.RolePartner).
		Preload("Documents").
		Preload("Addresses").
		Preload("VerifiedBy", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone", "role")
		}).
		First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// SetPartnerVerification moves a partner to verified or rejected. The change
// is a single UPDATE so concurrent readers never observe a half-written
// record. AdminNotes always overwrites the previous value; the verified stamp
// records when and by whom.
func (s *VerificationService) SetPartnerVerification(id uint, status models.VerificationStatus, notes string, adminID uint) (*models.User, error) {
	if status != models.VerificationVerified && status != models.VerificationRejected {
		return nil, ErrInvalidStatus
	}

	updates := map[string]interface{}{
		"verification_status": status,
		"admin_notes":         notes,
	}
	if status == models.VerificationVerified {
		updates["verified_at"] = time.Now()
		updates["verified_by_id"] = adminID
	}

	res := s.db.Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RolePartner).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrPartnerNotFound
	}

	return s.GetPartnerDetail(id)
}

// SetDocumentVerification moves a single document to verified or rejected and
// returns the updated document only. Rejection stores the supplied reason;
// verifying clears any reason left from an earlier rejection.
func (s *VerificationService) SetDocumentVerification(partnerID, documentID uint, status models.DocumentStatus, rejectionReason string) (*models.Document, error) {
	if status != models.DocumentVerified && status != models.DocumentRejected {
		return nil, ErrInvalidStatus
	}

	var partner models.User
	err := s.db.Select("id").
		Where("id = ? AND role = ?", partnerID, models.RolePartner).
		First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.DocumentRejected && rejectionReason != "" {
		updates["rejection_reason"] = rejectionReason
	}
	if status == models.DocumentVerified {
		updates["rejection_reason"] = nil
	}

	res := s.db.Model(&models.Document{}).
		Where("id = ? AND user_id = ?", documentID, partnerID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrDocumentNotFound
	}

	var document models.Document
	if err := s.db.First(&document, documentID).Error; err != nil {
		return nil, err
	}
	return &document, nil
}
