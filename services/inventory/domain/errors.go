package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested inventory row does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemRejected indicates new-item input failed intake validation.
	// The wrapping RejectionError carries the field and reason.
	ErrItemRejected = errors.New("item rejected")

	// ErrStoreUnavailable indicates the backing store could not be reached
	// or a statement failed at the driver level.
	ErrStoreUnavailable = errors.New("inventory store unavailable")
)
