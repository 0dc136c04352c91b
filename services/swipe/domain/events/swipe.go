package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicSwipeRecorded is the Watermill topic published when a swipe becomes
// the effective decision for its triple. Superseded appends (late arrivals
// that lost last-writer-wins) do not publish; they change nothing downstream.
const TopicSwipeRecorded = "swipe.recorded"

// SwipeRecordedEvent is published transactionally with the ledger append.
// The match reconciler consumes it to ingest the decision transition. The
// previous decision is carried so transitions, not just bare likes, are
// visible downstream.
type SwipeRecordedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	HouseholdID uuid.UUID `json:"household_id"`
	MemberID    uuid.UUID `json:"member_id"`
	NameID      uuid.UUID `json:"name_id"`
	Previous    string    `json:"previous"` // "" when the triple had no effective decision
	Decision    string    `json:"decision"`
	Seq         int64     `json:"seq"`
	SwipedAt    time.Time `json:"swiped_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}
