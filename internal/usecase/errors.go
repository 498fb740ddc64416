package usecase

import "errors"

var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategory     = errors.New("invalid category name")
	ErrInvalidField        = errors.New("invalid field")
	ErrSlideNotFound       = errors.New("slide not found")
	ErrPersistence         = errors.New("failed to persist changes")
	ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")
	ErrNoDraft             = errors.New("no draft in progress")
	ErrCommitInProgress    = errors.New("draft commit already in progress")
	ErrNotAdmin            = errors.New("user is not admin")
	ErrEmptyImport         = errors.New("no vehicles found in import file")
	ErrConciergeDisabled   = errors.New("concierge is not configured")
)
