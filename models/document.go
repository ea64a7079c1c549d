package models

import "time"

// DocumentType classifies the credential a partner uploads for verification.
type DocumentType string

const (
	DocumentIDProof      DocumentType = "id_proof"
	DocumentAddressProof DocumentType = "address_proof"
	DocumentCertificate  DocumentType = "certificate"
	DocumentOther        DocumentType = "other"
)

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentVerified DocumentStatus = "verified"
	DocumentRejected DocumentStatus = "rejected"
)

// Document is a partner credential tracked through its own verification
// lifecycle, independent of the owning partner's overall status. Each row
// is addressable by its generated ID.
type Document struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	Type            DocumentType   `json:"type" gorm:"type:varchar(20);not null;check:type IN ('id_proof','address_proof','certificate','other')"`
	FileName        string         `json:"file_name" gorm:"size:255"`
	URL             string         `json:"url" gorm:"size:500"`
	UploadedAt      time.Time      `json:"uploaded_at"`
	Status          DocumentStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','verified','rejected')"`
	RejectionReason *string        `json:"rejection_reason,omitempty" gorm:"size:500"`
}

// TableName specifies the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// IsValidDocumentType checks if the document type is one of the accepted kinds
func IsValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentIDProof, DocumentAddressProof, DocumentCertificate, DocumentOther:
		return true
	default:
		return false
	}
}
