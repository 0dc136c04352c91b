package models

import (
	"time"

	"github.com/google/uuid"
)

// Name is a candidate pet name. Immutable; global names are shared across
// households, custom names are scoped to the household that submitted them.
type Name struct {
	ID      uuid.UUID
	Text    string
	Species string // species tag, e.g. "dog", "cat"; "any" fits every pet
	Gender  string // "male", "female" or "neutral"

	SetID    uuid.UUID
	SetSlug  string
	SetTitle string

	// HouseholdID is uuid.Nil for global catalog names and set for
	// household-scoped custom names.
	HouseholdID uuid.UUID

	// Position is the name's rank within its set; catalog order is
	// (set position, name position) and is the only ordering the queue
	// builder guarantees.
	Position int
}

// Length returns the name length in runes, the unit the length filter uses.
func (n Name) Length() int {
	return len([]rune(n.Text))
}

// NameSet groups names by language and style, mirroring the bundled catalog
// structure.
type NameSet struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Description string
	Language    string
	Style       string
	Position    int
	CreatedAt   time.Time
}
