package domain

import "errors"

// Sentinel errors for the swipe ledger. Use errors.Is() to check these.
var (
	// ErrInvalidReference indicates the swipe names an unknown household,
	// member or name. Never retried; the ledger is not mutated.
	ErrInvalidReference = errors.New("swipe references unknown household, member or name")

	// ErrTokenConflict indicates an idempotency token was resubmitted with a
	// payload that differs from the originally recorded one.
	ErrTokenConflict = errors.New("idempotency token reused with a different payload")

	// ErrUnknownDecision indicates a decision value outside like/dismiss.
	ErrUnknownDecision = errors.New("unknown swipe decision")
)
