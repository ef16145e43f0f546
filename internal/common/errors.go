package common

// Sentinel errors shared by the storage, crypto and service layers.
// Match them with errors.Is.

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrBackendDisabled    = errors.New("backend disabled")
	ErrQuotaExceeded      = errors.New("storage quota exceeded")

	// Service-level errors.
	ErrValidation    = errors.New("validation error")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNoSession     = errors.New("no active session")
)
