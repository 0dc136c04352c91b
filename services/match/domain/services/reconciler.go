// Package services contains the match reconciliation engine for the match
// bounded context.
package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	matchdomain "github.com/pawmatch/pawmatch/services/match/domain"
	"github.com/pawmatch/pawmatch/services/match/domain/models"
	swipemodels "github.com/pawmatch/pawmatch/services/swipe/domain/models"
)

// RosterSource answers roster questions at evaluation time. Member counts are
// never cached across transitions: a member who joins mid-stream immediately
// raises the threshold.
type RosterSource interface {
	HouseholdExists(ctx context.Context, householdID uuid.UUID) (bool, error)
	MemberCount(ctx context.Context, householdID uuid.UUID) (int, error)
}

// NameSource answers whether a name is visible to a household.
type NameSource interface {
	NameExists(ctx context.Context, householdID, nameID uuid.UUID) (bool, error)
}

// CountSeeder loads a household's per-name effective like counts as of a
// ledger position: only rows with seq strictly below beforeSeq participate,
// with last-writer-wins resolved inside that prefix. The ledger commits a
// swipe before its event is delivered, so seeding at delivery time must stop
// short of the triggering row or the transition would be counted twice.
type CountSeeder interface {
	EffectiveLikeCounts(ctx context.Context, householdID uuid.UUID, beforeSeq int64) (map[uuid.UUID]int, error)
}

// Reconciler maintains per-(household, name) effective like counts and turns
// decision transitions into MatchFormed/MatchBroken events.
//
// Concurrency: each household owns one lock that is held across the whole
// transition — count mutation, threshold evaluation and event emission — so
// events for a household are emitted in ledger-ingestion order. Distinct
// households proceed in parallel; there is no process-wide serialization.
type Reconciler struct {
	policy models.Policy
	roster RosterSource
	names  NameSource
	seeder CountSeeder

	mu     sync.Mutex
	states map[uuid.UUID]*householdState
}

type householdState struct {
	mu      sync.Mutex
	seeded  bool
	lastSeq int64 // highest ledger seq already reflected in likes
	likes   map[uuid.UUID]int
	matched map[uuid.UUID]bool
}

// NewReconciler returns a Reconciler with empty state; household counters are
// seeded lazily from the ledger on first touch.
func NewReconciler(policy models.Policy, roster RosterSource, names NameSource, seeder CountSeeder) *Reconciler {
	return &Reconciler{
		policy: policy,
		roster: roster,
		names:  names,
		seeder: seeder,
		states: make(map[uuid.UUID]*householdState),
	}
}

// OnSwipeRecorded ingests one effective-decision transition, identified by
// its ledger seq, and returns the match event it produced, if any:
//
//	none/dismiss → like : count++ ; reaching the threshold emits MatchFormed
//	like → dismiss      : count-- ; a matched name dropping below emits MatchBroken
//
// Delivery is at-least-once, so transitions at or below the household's
// last-applied seq are skipped: a redelivered event can neither inflate a
// count nor re-announce a match. Unknown household or name ids yield
// ErrInvalidReference without mutating state. previous is DecisionNone when
// the triple had no effective decision.
func (r *Reconciler) OnSwipeRecorded(ctx context.Context, householdID, nameID uuid.UUID, seq int64, previous, next swipemodels.Decision) (*models.MatchEvent, error) {
	ok, err := r.roster.HouseholdExists(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("check household: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: household %s", matchdomain.ErrInvalidReference, householdID)
	}
	ok, err = r.names.NameExists(ctx, householdID, nameID)
	if err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: name %s", matchdomain.ErrInvalidReference, nameID)
	}

	state := r.household(householdID)

	// Serialization point: one transition at a time per household.
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := r.seedLocked(ctx, state, householdID, seq); err != nil {
		return nil, err
	}

	if seq <= state.lastSeq {
		// Redelivery, or a row the seed already absorbed.
		return nil, nil
	}
	state.lastSeq = seq

	wasLike := previous == swipemodels.DecisionLike
	isLike := next == swipemodels.DecisionLike
	if wasLike == isLike {
		// like→like or dismiss→dismiss: the effective decision changed hands
		// but the like count is untouched.
		return nil, nil
	}

	required, err := r.requiredLikes(ctx, householdID)
	if err != nil {
		return nil, err
	}

	if isLike {
		state.likes[nameID]++
		if state.likes[nameID] >= required && !state.matched[nameID] {
			state.matched[nameID] = true
			return &models.MatchEvent{
				Kind:        models.MatchFormed,
				HouseholdID: householdID,
				NameID:      nameID,
				LikesCount:  state.likes[nameID],
				At:          time.Now().UTC(),
			}, nil
		}
		return nil, nil
	}

	if state.likes[nameID] > 0 {
		state.likes[nameID]--
	}
	if state.likes[nameID] < required && state.matched[nameID] {
		state.matched[nameID] = false
		return &models.MatchEvent{
			Kind:        models.MatchBroken,
			HouseholdID: householdID,
			NameID:      nameID,
			LikesCount:  state.likes[nameID],
			At:          time.Now().UTC(),
		}, nil
	}
	return nil, nil
}

// LikeCount reports the effective like count for a name, mainly for tests
// and diagnostics. An unseeded household reads through to the ledger without
// warming state: warming needs a ledger position, which only a transition
// carries.
func (r *Reconciler) LikeCount(ctx context.Context, householdID, nameID uuid.UUID) (int, error) {
	state := r.household(householdID)
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.seeded {
		return state.likes[nameID], nil
	}
	counts, err := r.seeder.EffectiveLikeCounts(ctx, householdID, math.MaxInt64)
	if err != nil {
		return 0, fmt.Errorf("read like counts: %w", err)
	}
	return counts[nameID], nil
}

// household returns the household's counter state, creating it unseeded on
// first touch.
func (r *Reconciler) household(householdID uuid.UUID) *householdState {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[householdID]
	if !ok {
		state = &householdState{
			likes:   make(map[uuid.UUID]int),
			matched: make(map[uuid.UUID]bool),
		}
		r.states[householdID] = state
	}
	return state
}

// seedLocked warms the household's counters from the ledger prefix strictly
// below beforeSeq, so the transition that triggered the seed is excluded and
// gets applied exactly once. Caller must hold state.mu. A failed seed leaves
// the state unseeded so the next transition retries; names already at the
// threshold are marked matched so a warm-up replay cannot re-announce old
// matches.
func (r *Reconciler) seedLocked(ctx context.Context, state *householdState, householdID uuid.UUID, beforeSeq int64) error {
	if state.seeded {
		return nil
	}
	counts, err := r.seeder.EffectiveLikeCounts(ctx, householdID, beforeSeq)
	if err != nil {
		return fmt.Errorf("seed like counts: %w", err)
	}
	required, err := r.requiredLikes(ctx, householdID)
	if err != nil {
		return err
	}
	for nameID, n := range counts {
		state.likes[nameID] = n
		if n >= required {
			state.matched[nameID] = true
		}
	}
	state.lastSeq = beforeSeq - 1
	state.seeded = true
	return nil
}

func (r *Reconciler) requiredLikes(ctx context.Context, householdID uuid.UUID) (int, error) {
	count, err := r.roster.MemberCount(ctx, householdID)
	if err != nil {
		return 0, fmt.Errorf("member count: %w", err)
	}
	return r.policy.RequiredLikes(count), nil
}
