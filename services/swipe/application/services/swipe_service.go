package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/telemetry"
	swipedomain "github.com/pawmatch/pawmatch/services/swipe/domain"
	"github.com/pawmatch/pawmatch/services/swipe/domain/models"
	"github.com/pawmatch/pawmatch/services/swipe/domain/repositories"
)

// ReferenceGuard answers whether the entities a swipe points at exist.
// Household and catalog contexts provide the implementations; the ledger
// never guesses at foreign rosters or catalogs.
type ReferenceGuard interface {
	MemberInHousehold(ctx context.Context, householdID, memberID uuid.UUID) (bool, error)
	NameExists(ctx context.Context, householdID, nameID uuid.UUID) (bool, error)
}

// SwipeService orchestrates swipe recording against the append-only ledger.
// Match detection is not triggered here: the ledger publishes SwipeRecorded
// transactionally and the reconciler consumes it asynchronously.
type SwipeService struct {
	ledger  repositories.SwipeLedger
	guard   ReferenceGuard
	metrics *telemetry.Metrics
}

// NewSwipeService returns a SwipeService wired with the given ledger and guard.
func NewSwipeService(ledger repositories.SwipeLedger, guard ReferenceGuard, metrics *telemetry.Metrics) *SwipeService {
	return &SwipeService{ledger: ledger, guard: guard, metrics: metrics}
}

// RecordInput is a candidate swipe. Token and SwipedAt are optional: a zero
// token gets a fresh one (single-shot online swipes), a zero time means now.
// Offline clients replaying a buffer must supply both so retries stay
// idempotent and ordering survives.
type RecordInput struct {
	HouseholdID uuid.UUID
	MemberID    uuid.UUID
	NameID      uuid.UUID
	Decision    models.Decision
	Token       uuid.UUID
	SwipedAt    time.Time
}

// Record validates references, appends the swipe and returns its
// effectiveness. Unknown household/member/name yields ErrInvalidReference
// without touching the ledger.
func (s *SwipeService) Record(ctx context.Context, in RecordInput) (models.Effectiveness, error) {
	ok, err := s.guard.MemberInHousehold(ctx, in.HouseholdID, in.MemberID)
	if err != nil {
		return models.Effectiveness{}, fmt.Errorf("check member: %w", err)
	}
	if !ok {
		return models.Effectiveness{}, swipedomain.ErrInvalidReference
	}
	ok, err = s.guard.NameExists(ctx, in.HouseholdID, in.NameID)
	if err != nil {
		return models.Effectiveness{}, fmt.Errorf("check name: %w", err)
	}
	if !ok {
		return models.Effectiveness{}, swipedomain.ErrInvalidReference
	}

	swipe, err := models.NewSwipe(in.HouseholdID, in.MemberID, in.NameID, in.Decision, in.SwipedAt)
	if err != nil {
		return models.Effectiveness{}, fmt.Errorf("%w: %w", swipedomain.ErrUnknownDecision, err)
	}
	if in.Token != uuid.Nil {
		swipe.Token = in.Token
	}

	eff, err := s.ledger.Record(ctx, swipe)
	if err != nil {
		return models.Effectiveness{}, fmt.Errorf("record swipe: %w", err)
	}

	if eff.BecameEffective && !eff.AlreadyRecorded {
		s.metrics.CountSwipe(ctx, swipe.Decision.String())
	}
	return eff, nil
}

// Undo supersedes the member's effective decision on a name with a dismissal.
// The ledger is append-only, so undo is a new swipe rather than a deletion.
func (s *SwipeService) Undo(ctx context.Context, householdID, memberID, nameID uuid.UUID) (models.Effectiveness, error) {
	return s.Record(ctx, RecordInput{
		HouseholdID: householdID,
		MemberID:    memberID,
		NameID:      nameID,
		Decision:    models.DecisionDismiss,
	})
}

// Likes returns the member's effective likes with name details.
func (s *SwipeService) Likes(ctx context.Context, householdID, memberID uuid.UUID) ([]repositories.LikedName, error) {
	likes, err := s.ledger.Likes(ctx, householdID, memberID)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	return likes, nil
}

// Counts returns the member's effective like/dismiss counts.
func (s *SwipeService) Counts(ctx context.Context, householdID, memberID uuid.UUID) (repositories.Counts, error) {
	counts, err := s.ledger.CountByMember(ctx, householdID, memberID)
	if err != nil {
		return repositories.Counts{}, fmt.Errorf("count swipes: %w", err)
	}
	return counts, nil
}
