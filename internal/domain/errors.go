package domain

import "errors"

// Sentinel errors for expected outcomes. Services return these wrapped
// with %w; the HTTP adapter maps them to status codes.
var (
	// ErrNotFound covers unknown subdomains, unknown or unlisted menu
	// slugs, and unknown menu/QR ids. Callers must not be able to tell
	// these cases apart.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied covers cross-tenant id access and widget
	// toggles on non-enterprise tiers.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation covers malformed input (bad subdomain, missing
	// menu fields, bad time windows).
	ErrValidation = errors.New("validation failed")

	// ErrConflict covers duplicate subdomains and lost-update
	// detection on concurrent menu mutations.
	ErrConflict = errors.New("conflict")
)
