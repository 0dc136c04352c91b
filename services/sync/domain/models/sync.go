// Package models defines the sync contract between offline clients and the
// swipe ledger: push batches of buffered swipes in, pull ledger deltas out.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PushEntry is one buffered client swipe. Token and SwipedAt come from the
// client so replays stay idempotent and last-writer-wins keeps its order
// regardless of upload timing.
type PushEntry struct {
	Token    uuid.UUID
	MemberID uuid.UUID
	NameID   uuid.UUID
	Decision string
	SwipedAt time.Time
}

// EntryStatus classifies the outcome of one push entry.
type EntryStatus string

const (
	// EntryAccepted means the swipe was appended for the first time.
	EntryAccepted EntryStatus = "accepted"

	// EntryDuplicate means the token was seen before with the same payload;
	// the ledger did not change.
	EntryDuplicate EntryStatus = "duplicate"

	// EntryConflict means the token was seen before with a different
	// payload. The original swipe stands; the client must mint a new token.
	EntryConflict EntryStatus = "conflict"

	// EntryQueued means a transient backend failure parked the entry on the
	// retry queue. It will land with the same token; resubmitting is safe.
	EntryQueued EntryStatus = "queued"

	// EntryRejected means the entry references an unknown member or name,
	// or carries an unknown decision.
	EntryRejected EntryStatus = "rejected"
)

// EntryResult reports the per-entry outcome of a push. Effective tells the
// client whether its swipe is the current winner for the triple.
type EntryResult struct {
	Token     uuid.UUID
	Status    EntryStatus
	Effective bool
	Seq       int64
	Reason    string
}

// PushResult summarizes a processed batch. Entries preserve input order.
type PushResult struct {
	Entries   []EntryResult
	Accepted  int
	Duplicate int
	Conflict  int
	Queued    int
	Rejected  int
	Watermark int64
}

// PullEntry is one ledger row handed to a catching-up client. Effective rows
// are the current winners; superseded rows let the client retire stale local
// state it never saw lose.
type PullEntry struct {
	Seq       int64
	Token     uuid.UUID
	MemberID  uuid.UUID
	NameID    uuid.UUID
	Decision  string
	SwipedAt  time.Time
	Effective bool
}

// PullResult is a page of ledger rows past the client's watermark. The
// client persists Watermark and passes it back on the next pull; More
// signals that another page is waiting.
type PullResult struct {
	Entries   []PullEntry
	Watermark int64
	More      bool
}
