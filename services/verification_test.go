package services

import (
	"errors"
	"testing"
	"time"

	"marketplace-admin-server/models"
)

func TestPartnerDefaultsToPendingOnCreate(t *testing.T) {
	db := newTestDB(t)

	partner := createUser(t, db, models.User{Name: "Ravi", Phone: "+911000000001", Role: models.RolePartner})
	if partner.VerificationStatus == nil || *partner.VerificationStatus != models.VerificationPending {
		t.Fatalf("new partner should be pending, got %v", partner.VerificationStatus)
	}

	customer := createUser(t, db, models.User{Name: "Asha", Phone: "+911000000002"})
	if customer.Role != models.RoleCustomer {
		t.Fatalf("expected default role customer, got %s", customer.Role)
	}
	if customer.VerificationStatus != nil {
		t.Fatalf("customers must not carry a verification status, got %v", *customer.VerificationStatus)
	}
}

func TestListPendingPartners(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	pending := createUser(t, db, models.User{Name: "Pending P", Phone: "+911000000010", Role: models.RolePartner})

	verified := models.VerificationVerified
	createUser(t, db, models.User{Name: "Verified P", Phone: "+911000000011", Role: models.RolePartner, VerificationStatus: &verified})

	createUser(t, db, models.User{Name: "Customer", Phone: "+911000000012"})

	if err := db.Create(&models.Document{UserID: pending.ID, Type: models.DocumentIDProof, URL: "/uploads/doc.png", UploadedAt: time.Now()}).Error; err != nil {
		t.Fatalf("create document: %v", err)
	}

	partners, err := svc.ListPendingPartners()
	if err != nil {
		t.Fatalf("ListPendingPartners: %v", err)
	}
	if len(partners) != 1 {
		t.Fatalf("expected 1 pending partner, got %d", len(partners))
	}
	got := partners[0]
	if got.ID != pending.ID || got.Name != "Pending P" {
		t.Fatalf("unexpected partner in queue: %+v", got)
	}
	if len(got.Documents) != 1 {
		t.Fatalf("expected 1 document summary, got %d", len(got.Documents))
	}
	if got.Documents[0].Status != models.DocumentPending {
		t.Fatalf("expected pending document, got %s", got.Documents[0].Status)
	}
}

func TestSetPartnerVerificationVerified(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	admin := createUser(t, db, models.User{Name: "Admin", Phone: "+911000000020", Role: models.RoleAdmin})
	partner := createUser(t, db, models.User{Name: "Partner", Phone: "+911000000021", Role: models.RolePartner})

	before := time.Now().Add(-time.Second)
	updated, err := svc.SetPartnerVerification(partner.ID, models.VerificationVerified, "docs check out", admin.ID)
	if err != nil {
		t.Fatalf("SetPartnerVerification: %v", err)
	}

	if updated.VerificationStatus == nil || *updated.VerificationStatus != models.VerificationVerified {
		t.Fatalf("expected verified status, got %v", updated.VerificationStatus)
	}
	if updated.AdminNotes != "docs check out" {
		t.Fatalf("expected admin notes overwrite, got %q", updated.AdminNotes)
	}
	if updated.VerifiedByID == nil || *updated.VerifiedByID != admin.ID {
		t.Fatalf("expected verifiedBy %d, got %v", admin.ID, updated.VerifiedByID)
	}
	if updated.VerifiedAt == nil || updated.VerifiedAt.Before(before) {
		t.Fatalf("expected verifiedAt stamped at call time, got %v", updated.VerifiedAt)
	}
	if updated.VerifiedBy == nil || updated.VerifiedBy.Name != "Admin" {
		t.Fatalf("expected resolved verifier identity, got %+v", updated.VerifiedBy)
	}
}

func TestSetPartnerVerificationRejectedOverwritesNotes(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	admin := createUser(t, db, models.User{Name: "Admin", Phone: "+911000000030", Role: models.RoleAdmin})
	partner := createUser(t, db, models.User{Name: "Partner", Phone: "+911000000031", Role: models.RolePartner, AdminNotes: "old notes"})

	updated, err := svc.SetPartnerVerification(partner.ID, models.VerificationRejected, "blurry id proof", admin.ID)
	if err != nil {
		t.Fatalf("SetPartnerVerification: %v", err)
	}
	if updated.VerificationStatus == nil || *updated.VerificationStatus != models.VerificationRejected {
		t.Fatalf("expected rejected status, got %v", updated.VerificationStatus)
	}
	if updated.AdminNotes != "blurry id proof" {
		t.Fatalf("notes must overwrite, got %q", updated.AdminNotes)
	}
	if updated.VerifiedAt != nil || updated.VerifiedByID != nil {
		t.Fatalf("rejection must not stamp the verified fields: %v %v", updated.VerifiedAt, updated.VerifiedByID)
	}

	// Rejection is re-enterable: a later verify succeeds.
	updated, err = svc.SetPartnerVerification(partner.ID, models.VerificationVerified, "resubmitted", admin.ID)
	if err != nil {
		t.Fatalf("re-verify after rejection: %v", err)
	}
	if *updated.VerificationStatus != models.VerificationVerified {
		t.Fatalf("expected verified after re-review, got %s", *updated.VerificationStatus)
	}
}

func TestSetPartnerVerificationInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	admin := createUser(t, db, models.User{Name: "Admin", Phone: "+911000000040", Role: models.RoleAdmin})
	partner := createUser(t, db, models.User{Name: "Partner", Phone: "+911000000041", Role: models.RolePartner, AdminNotes: "untouched"})

	_, err := svc.SetPartnerVerification(partner.ID, models.VerificationStatus("bogus"), "notes", admin.ID)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	// Pending is not a settable target either.
	_, err = svc.SetPartnerVerification(partner.ID, models.VerificationPending, "notes", admin.ID)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for pending, got %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, partner.ID).Error; err != nil {
		t.Fatalf("reload partner: %v", err)
	}
	if reloaded.VerificationStatus == nil || *reloaded.VerificationStatus != models.VerificationPending {
		t.Fatalf("record must be unchanged, got %v", reloaded.VerificationStatus)
	}
	if reloaded.AdminNotes != "untouched" {
		t.Fatalf("notes must be unchanged, got %q", reloaded.AdminNotes)
	}
}

func TestSetPartnerVerificationNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	admin := createUser(t, db, models.User{Name: "Admin", Phone: "+911000000050", Role: models.RoleAdmin})

	_, err := svc.SetPartnerVerification(9999, models.VerificationVerified, "", admin.ID)
	if !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}

	// A customer id is not a partner id.
	customer := createUser(t, db, models.User{Name: "Customer", Phone: "+911000000051"})
	_, err = svc.SetPartnerVerification(customer.ID, models.VerificationVerified, "", admin.ID)
	if !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound for non-partner, got %v", err)
	}
}

func TestGetPartnerDetail(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	admin := createUser(t, db, models.User{Name: "Admin", Phone: "+911000000060", Role: models.RoleAdmin})
	partner := createUser(t, db, models.User{Name: "Partner", Phone: "+911000000061", Role: models.RolePartner})

	if _, err := svc.SetPartnerVerification(partner.ID, models.VerificationVerified, "ok", admin.ID); err != nil {
		t.Fatalf("verify partner: %v", err)
	}

	detail, err := svc.GetPartnerDetail(partner.ID)
	if err != nil {
		t.Fatalf("GetPartnerDetail: %v", err)
	}
	if detail.VerifiedBy == nil || detail.VerifiedBy.ID != admin.ID {
		t.Fatalf("expected verifiedBy resolved to admin, got %+v", detail.VerifiedBy)
	}

	if _, err := svc.GetPartnerDetail(12345); !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestSetDocumentVerification(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	partner := createUser(t, db, models.User{Name: "Partner", Phone: "+911000000070", Role: models.RolePartner})
	doc := models.Document{UserID: partner.ID, Type: models.DocumentIDProof, URL: "/uploads/id.png", UploadedAt: time.Now()}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("create document: %v", err)
	}

	rejected, err := svc.SetDocumentVerification(partner.ID, doc.ID, models.DocumentRejected, "unreadable scan")
	if err != nil {
		t.Fatalf("reject document: %v", err)
	}
	if rejected.Status != models.DocumentRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if rejected.RejectionReason == nil || *rejected.RejectionReason != "unreadable scan" {
		t.Fatalf("expected rejection reason stored, got %v", rejected.RejectionReason)
	}

	// Verifying afterwards clears the stale reason.
	verified, err := svc.SetDocumentVerification(partner.ID, doc.ID, models.DocumentVerified, "")
	if err != nil {
		t.Fatalf("verify document: %v", err)
	}
	if verified.Status != models.DocumentVerified {
		t.Fatalf("expected verified, got %s", verified.Status)
	}
	if verified.RejectionReason != nil {
		t.Fatalf("expected rejection reason cleared, got %v", *verified.RejectionReason)
	}

	// Partner overall status is independent of document outcomes.
	var reloaded models.User
	if err := db.First(&reloaded, partner.ID).Error; err != nil {
		t.Fatalf("reload partner: %v", err)
	}
	if reloaded.VerificationStatus == nil || *reloaded.VerificationStatus != models.VerificationPending {
		t.Fatalf("partner status must not change with document status, got %v", reloaded.VerificationStatus)
	}
}

func TestSetDocumentVerificationIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	partner := createUser(t, db, models.User{Name: "Partner", Phone: "+911000000080", Role: models.RolePartner})
	doc := models.Document{UserID: partner.ID, Type: models.DocumentCertificate, UploadedAt: time.Now()}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("create document: %v", err)
	}

	first, err := svc.SetDocumentVerification(partner.ID, doc.ID, models.DocumentVerified, "")
	if err != nil {
		t.Fatalf("first verify: %v", err)
	}
	second, err := svc.SetDocumentVerification(partner.ID, doc.ID, models.DocumentVerified, "")
	if err != nil {
		t.Fatalf("second verify: %v", err)
	}
	if first.Status != second.Status || first.ID != second.ID {
		t.Fatalf("repeated verification must settle on the same state: %+v vs %+v", first, second)
	}
}

func TestSetDocumentVerificationNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewVerificationService(db)

	partner := createUser(t, db, models.User{Name: "Partner", Phone: "+911000000090", Role: models.RolePartner})
	other := createUser(t, db, models.User{Name: "Other", Phone: "+911000000091", Role: models.RolePartner})
	doc := models.Document{UserID: other.ID, Type: models.DocumentOther, UploadedAt: time.Now()}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("create document: %v", err)
	}

	if _, err := svc.SetDocumentVerification(4242, doc.ID, models.DocumentVerified, ""); !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
	// Document belongs to a different partner.
	if _, err := svc.SetDocumentVerification(partner.ID, doc.ID, models.DocumentVerified, ""); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if _, err := svc.SetDocumentVerification(partner.ID, doc.ID, models.DocumentStatus("bogus"), ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
