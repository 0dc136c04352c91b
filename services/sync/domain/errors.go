package domain

import "errors"

// Sentinel errors for the sync domain. Use errors.Is() to check these.
var (
	// ErrBatchTooLarge indicates a push batch exceeds the per-request cap.
	ErrBatchTooLarge = errors.New("push batch exceeds maximum size")

	// ErrUnknownMember indicates the pushing member is not in the household.
	ErrUnknownMember = errors.New("member does not belong to household")

	// ErrSyncUnavailable indicates a transient backend failure; the batch was
	// parked on the retry queue and will be flushed later.
	ErrSyncUnavailable = errors.New("sync backend temporarily unavailable")
)
