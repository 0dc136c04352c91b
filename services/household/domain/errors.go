package domain

import "errors"

// Sentinel errors for the household domain. Use errors.Is() to check these.
var (
	// ErrHouseholdNotFound indicates the requested household does not exist.
	ErrHouseholdNotFound = errors.New("household not found")

	// ErrMemberNotFound indicates the member does not exist in the household.
	ErrMemberNotFound = errors.New("member not found")

	// ErrInviteCodeNotFound indicates no household carries the invite code.
	ErrInviteCodeNotFound = errors.New("invite code not found")

	// ErrAlreadyMember indicates the member already belongs to the household.
	ErrAlreadyMember = errors.New("already a household member")
)
