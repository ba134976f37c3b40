package models

import "errors"

// Domain errors shared by the ledger, the services and the storage adapters.
var (
	// ErrNotFound indicates a referenced product or movement does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock indicates an exit, or the reversal of an entry, would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrValidation indicates a missing required field or an out-of-range value.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable indicates the backing store failed the request.
	ErrStoreUnavailable = errors.New("store unavailable")
)
