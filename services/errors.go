package services

import "errors"

// Sentinel errors returned by the service layer. Route handlers map these to
// HTTP status codes; anything else is treated as an internal store failure.
var (
	ErrInvalidStatus    = errors.New("invalid status")
	ErrPartnerNotFound  = errors.New("partner not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrUserNotFound     = errors.New("user not found")
)
