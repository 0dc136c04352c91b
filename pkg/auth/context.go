package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const (
	memberIDKey    contextKey = "member_id"
	householdIDKey contextKey = "household_id"
)

// ErrNotAuthenticated is returned when no member identity exists in the
// request context. Handlers should return 401 when this error occurs.
var ErrNotAuthenticated = errors.New("no member identity in context")

// Identity is the authenticated caller: a member acting within a household.
type Identity struct {
	MemberID    uuid.UUID
	HouseholdID uuid.UUID
}

// IdentityFromCtx extracts the authenticated member identity from the request
// context. Returns ErrNotAuthenticated if none is set.
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	memberID, ok := ctx.Value(memberIDKey).(uuid.UUID)
	if !ok || memberID == uuid.Nil {
		return Identity{}, ErrNotAuthenticated
	}
	householdID, ok := ctx.Value(householdIDKey).(uuid.UUID)
	if !ok || householdID == uuid.Nil {
		return Identity{}, ErrNotAuthenticated
	}
	return Identity{MemberID: memberID, HouseholdID: householdID}, nil
}

// WithIdentity returns a new context carrying the member identity.
// Used by the session middleware after validating the cookie, and by tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, memberIDKey, id.MemberID)
	return context.WithValue(ctx, householdIDKey, id.HouseholdID)
}
