package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Decision is a member's verdict on a candidate name.
type Decision string

const (
	// DecisionNone marks the absence of an effective decision. It never
	// appears on a ledger row; it only shows up as the "previous" side of a
	// transition.
	DecisionNone Decision = ""

	DecisionLike    Decision = "like"
	DecisionDismiss Decision = "dismiss"
)

// ParseDecision validates a wire-level decision string.
func ParseDecision(s string) (Decision, error) {
	switch Decision(strings.ToLower(s)) {
	case DecisionLike:
		return DecisionLike, nil
	case DecisionDismiss:
		return DecisionDismiss, nil
	default:
		return DecisionNone, fmt.Errorf("unknown decision %q", s)
	}
}

// String returns the wire value.
func (d Decision) String() string {
	return string(d)
}

// Swipe is one member's decision on one name within one household. The ledger
// is append-only: a swipe is never deleted, only superseded by a later swipe
// for the same (household, member, name) triple.
type Swipe struct {
	// Token is the client-generated idempotency token. Resubmitting the same
	// token with an identical payload is a no-op; resubmitting it with a
	// different payload is a conflict.
	Token       uuid.UUID
	HouseholdID uuid.UUID
	MemberID    uuid.UUID
	NameID      uuid.UUID
	Decision    Decision
	SwipedAt    time.Time

	// Seq is the ledger-assigned monotonic sequence number, zero until the
	// swipe is recorded. It is the pull watermark unit.
	Seq int64

	// Effective reports whether this row is the current winner for its
	// triple. Populated on ledger reads; Record reports it through
	// Effectiveness instead.
	Effective bool
}

// NewSwipe constructs a recordable Swipe with a fresh idempotency token.
// swipedAt is truncated to UTC; a zero time means "now".
func NewSwipe(householdID, memberID, nameID uuid.UUID, decision Decision, swipedAt time.Time) (*Swipe, error) {
	if householdID == uuid.Nil || memberID == uuid.Nil || nameID == uuid.Nil {
		return nil, fmt.Errorf("household, member and name ids must be set")
	}
	if decision != DecisionLike && decision != DecisionDismiss {
		return nil, fmt.Errorf("unknown decision %q", decision)
	}
	if swipedAt.IsZero() {
		swipedAt = time.Now()
	}
	return &Swipe{
		Token:       uuid.New(),
		HouseholdID: householdID,
		MemberID:    memberID,
		NameID:      nameID,
		Decision:    decision,
		SwipedAt:    swipedAt.UTC(),
	}, nil
}

// Supersedes reports whether s wins over other under the ledger's total
// order: later SwipedAt wins; an exact timestamp tie is broken by comparing
// idempotency tokens lexicographically. The order is deterministic across
// replicas even when device clocks collide.
func (s *Swipe) Supersedes(other *Swipe) bool {
	if other == nil {
		return true
	}
	if !s.SwipedAt.Equal(other.SwipedAt) {
		return s.SwipedAt.After(other.SwipedAt)
	}
	return s.Token.String() > other.Token.String()
}

// SamePayload reports whether two swipes carry an identical payload, which is
// the condition for treating a token resubmission as an idempotent no-op.
func (s *Swipe) SamePayload(other *Swipe) bool {
	return s.HouseholdID == other.HouseholdID &&
		s.MemberID == other.MemberID &&
		s.NameID == other.NameID &&
		s.Decision == other.Decision &&
		s.SwipedAt.Equal(other.SwipedAt)
}

// Effectiveness is the ledger's answer to Record: whether the appended swipe
// became the new effective decision for its triple, and what it displaced.
type Effectiveness struct {
	// BecameEffective is true when the recorded swipe is now the effective
	// decision for its (household, member, name) triple.
	BecameEffective bool

	// AlreadyRecorded is true when the idempotency token had been seen
	// before with an identical payload; nothing was appended.
	AlreadyRecorded bool

	// Previous is the effective decision the swipe displaced, DecisionNone
	// if the triple had none. Only meaningful when BecameEffective is true;
	// the reconciler needs it to detect transitions rather than bare likes.
	Previous Decision

	// Seq is the ledger sequence number of the recorded row (or of the
	// original row when AlreadyRecorded).
	Seq int64
}
