package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for match transitions. Delivery to observers is
// best-effort and never blocks swipe ingestion.
const (
	TopicMatchFormed = "match.formed"
	TopicMatchBroken = "match.broken"
)

// MatchFormedEvent is published when a name reaches the household's
// required-likes threshold.
type MatchFormedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	HouseholdID uuid.UUID `json:"household_id"`
	NameID      uuid.UUID `json:"name_id"`
	LikesCount  int       `json:"likes_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// MatchBrokenEvent is published when a formerly matched name drops below the
// threshold. Consumers that treat matches as permanent may ignore it; the
// match set itself is always re-derivable from the ledger.
type MatchBrokenEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	HouseholdID uuid.UUID `json:"household_id"`
	NameID      uuid.UUID `json:"name_id"`
	LikesCount  int       `json:"likes_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
