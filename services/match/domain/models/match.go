package models

import (
	"time"

	"github.com/google/uuid"
)

// Match is a derived fact: a name every required household member currently
// likes. It is recomputable from the effective swipe set at any time and is
// never stored as an independent source of truth.
type Match struct {
	NameID     uuid.UUID
	Name       string
	Gender     string
	LikesCount int
	Likers     []string // display labels of members with an effective like
}

// EventKind discriminates match transitions.
type EventKind string

const (
	// MatchFormed fires when the required-likes threshold is first reached.
	MatchFormed EventKind = "formed"

	// MatchBroken fires when a formerly matched name drops below the
	// threshold because a like was superseded.
	MatchBroken EventKind = "broken"
)

// MatchEvent is a transition on the household's match set, emitted in
// ledger-ingestion order.
type MatchEvent struct {
	Kind        EventKind
	HouseholdID uuid.UUID
	NameID      uuid.UUID
	LikesCount  int
	At          time.Time
}
