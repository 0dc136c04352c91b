package models

import (
	"time"

	"github.com/google/uuid"
)

// Member is one identity within a household. Identity is immutable once
// created; only the display name may change.
type Member struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	DisplayName string
	JoinedAt    time.Time
}

// NewMember constructs a Member joining the given household.
func NewMember(householdID uuid.UUID, displayName string) *Member {
	return &Member{
		ID:          uuid.New(),
		HouseholdID: householdID,
		DisplayName: displayName,
		JoinedAt:    time.Now().UTC(),
	}
}

// DisplayLabel returns the display name, or a short id-derived fallback when
// the member never set one.
func (m *Member) DisplayLabel() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return "Member " + m.ID.String()[:8]
}
