package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrVendorNotFound is returned when a vendor is not found
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrProjectNotFound is returned when a project is not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrContactNotFound is returned when a vendor contact is not found
	ErrContactNotFound = errors.New("contact not found")

	// ErrContactVendorMismatch is returned when a contact belongs to a different vendor
	ErrContactVendorMismatch = errors.New("contact does not belong to this vendor")

	// ErrRelationshipNotFound is returned when a project-vendor relationship is not found
	ErrRelationshipNotFound = errors.New("project vendor relationship not found")

	// ErrPhaseNotFound is returned when a phase row is not found
	ErrPhaseNotFound = errors.New("phase not found")

	// ErrFileTooLarge is returned when an upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)
