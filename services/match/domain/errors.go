package domain

import "errors"

// Sentinel errors for the match domain. Use errors.Is() to check these.
var (
	// ErrInvalidReference indicates a transition names an unknown household
	// or name; reconciler state is not mutated.
	ErrInvalidReference = errors.New("match transition references unknown household or name")
)
