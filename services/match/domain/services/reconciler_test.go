package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	matchdomain "github.com/pawmatch/pawmatch/services/match/domain"
	"github.com/pawmatch/pawmatch/services/match/domain/models"
	swipemodels "github.com/pawmatch/pawmatch/services/swipe/domain/models"
)

// ledgerRow is one effective like in the scripted ledger. The fake seeder
// counts only rows below the requested position, the way the real query does.
type ledgerRow struct {
	seq    int64
	nameID uuid.UUID
}

// fakeSources implements RosterSource, NameSource and CountSeeder backed by
// plain maps so tests can script roster size and ledger contents.
type fakeSources struct {
	households map[uuid.UUID]int // householdID -> member count
	names      map[uuid.UUID]bool
	rows       map[uuid.UUID][]ledgerRow
	seedErr    error
	seedCalls  int
}

func newFakeSources() *fakeSources {
	return &fakeSources{
		households: make(map[uuid.UUID]int),
		names:      make(map[uuid.UUID]bool),
		rows:       make(map[uuid.UUID][]ledgerRow),
	}
}

func (f *fakeSources) HouseholdExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.households[id]
	return ok, nil
}

func (f *fakeSources) MemberCount(_ context.Context, id uuid.UUID) (int, error) {
	return f.households[id], nil
}

func (f *fakeSources) NameExists(_ context.Context, _, nameID uuid.UUID) (bool, error) {
	return f.names[nameID], nil
}

func (f *fakeSources) EffectiveLikeCounts(_ context.Context, id uuid.UUID, beforeSeq int64) (map[uuid.UUID]int, error) {
	f.seedCalls++
	if f.seedErr != nil {
		return nil, f.seedErr
	}
	out := make(map[uuid.UUID]int)
	for _, row := range f.rows[id] {
		if row.seq < beforeSeq {
			out[row.nameID]++
		}
	}
	return out, nil
}

func setup(t *testing.T, members int) (*Reconciler, *fakeSources, uuid.UUID, uuid.UUID) {
	t.Helper()
	src := newFakeSources()
	householdID := uuid.New()
	nameID := uuid.New()
	src.households[householdID] = members
	src.names[nameID] = true
	return NewReconciler(models.AllMembers{}, src, src, src), src, householdID, nameID
}

func TestReconcilerMatchFormed(t *testing.T) {
	ctx := context.Background()

	t.Run("second like in a couple forms a match", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Fatalf("expected no event after first like, got %+v", evt)
		}

		evt, err = r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchFormed {
			t.Fatalf("expected MatchFormed, got %+v", evt)
		}
		if evt.LikesCount != 2 {
			t.Errorf("expected likes count 2, got %d", evt.LikesCount)
		}
		if evt.HouseholdID != householdID || evt.NameID != nameID {
			t.Errorf("event ids do not match input: %+v", evt)
		}
	})

	t.Run("no duplicate MatchFormed for an already matched name", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		for seq := int64(1); seq <= 2; seq++ {
			if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, seq, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		// A third member's like while the name is already matched must not
		// re-announce the match.
		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 3, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Errorf("expected no event, got %+v", evt)
		}
	})

	t.Run("like-to-like transition does not bump the count", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionLike, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Errorf("expected no event for like->like, got %+v", evt)
		}
		if n, _ := r.LikeCount(ctx, householdID, nameID); n != 1 {
			t.Errorf("expected like count 1, got %d", n)
		}
	})

	t.Run("roster growth raises the threshold", func(t *testing.T) {
		r, src, householdID, nameID := setup(t, 2)

		if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Third member joins before the second like lands.
		src.households[householdID] = 3

		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Errorf("expected no match at 2/3 likes, got %+v", evt)
		}

		evt, err = r.OnSwipeRecorded(ctx, householdID, nameID, 3, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchFormed {
			t.Fatalf("expected MatchFormed at 3/3 likes, got %+v", evt)
		}
	})
}

func TestReconcilerMatchBroken(t *testing.T) {
	ctx := context.Background()

	t.Run("superseded like breaks the match", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		for seq := int64(1); seq <= 2; seq++ {
			if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, seq, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 3, swipemodels.DecisionLike, swipemodels.DecisionDismiss)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchBroken {
			t.Fatalf("expected MatchBroken, got %+v", evt)
		}
		if evt.LikesCount != 1 {
			t.Errorf("expected likes count 1 after break, got %d", evt.LikesCount)
		}
	})

	t.Run("dismissal of an unmatched name emits nothing", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionLike, swipemodels.DecisionDismiss)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Errorf("expected no event, got %+v", evt)
		}
	})

	t.Run("count never goes negative", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionLike, swipemodels.DecisionDismiss); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n, _ := r.LikeCount(ctx, householdID, nameID); n != 0 {
			t.Errorf("expected like count 0, got %d", n)
		}
	})

	t.Run("re-like after break forms again", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		for seq := int64(1); seq <= 2; seq++ {
			if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, seq, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, 3, swipemodels.DecisionLike, swipemodels.DecisionDismiss); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 4, swipemodels.DecisionDismiss, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchFormed {
			t.Fatalf("expected MatchFormed after re-like, got %+v", evt)
		}
	})
}

func TestReconcilerRedelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("redelivered transition does not inflate the count", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 3)

		for seq := int64(1); seq <= 2; seq++ {
			if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, seq, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		// At-least-once delivery replays the second like. Two members liked;
		// a phantom third like would match the name early.
		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Fatalf("expected redelivery to be skipped, got %+v", evt)
		}
		if n, _ := r.LikeCount(ctx, householdID, nameID); n != 2 {
			t.Errorf("expected like count 2 after redelivery, got %d", n)
		}

		evt, err = r.OnSwipeRecorded(ctx, householdID, nameID, 3, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchFormed {
			t.Fatalf("expected MatchFormed on the real third like, got %+v", evt)
		}
	})

	t.Run("redelivered transition does not re-announce a match", func(t *testing.T) {
		r, _, householdID, nameID := setup(t, 2)

		for seq := int64(1); seq <= 2; seq++ {
			if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, seq, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Errorf("expected no event on redelivery, got %+v", evt)
		}
	})
}

func TestReconcilerInvalidReferences(t *testing.T) {
	ctx := context.Background()
	r, _, householdID, nameID := setup(t, 2)

	t.Run("unknown household", func(t *testing.T) {
		_, err := r.OnSwipeRecorded(ctx, uuid.New(), nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if !errors.Is(err, matchdomain.ErrInvalidReference) {
			t.Errorf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.OnSwipeRecorded(ctx, householdID, uuid.New(), 1, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if !errors.Is(err, matchdomain.ErrInvalidReference) {
			t.Errorf("expected ErrInvalidReference, got %v", err)
		}
	})

	t.Run("state untouched after rejection", func(t *testing.T) {
		if n, _ := r.LikeCount(ctx, householdID, nameID); n != 0 {
			t.Errorf("expected like count 0, got %d", n)
		}
	})
}

func TestReconcilerSeeding(t *testing.T) {
	ctx := context.Background()

	// The ledger commits a swipe before its event is delivered, so at seed
	// time the triggering row is already in the ledger. These tests script
	// the ledger as it looks at delivery time.

	t.Run("seed excludes the swipe that triggered it", func(t *testing.T) {
		r, src, householdID, nameID := setup(t, 2)
		src.rows[householdID] = []ledgerRow{{seq: 1, nameID: nameID}}

		// A lone like in a couple must not form a match: the seed stops
		// short of seq 1 and the transition supplies the only count.
		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Fatalf("expected no event for a single like, got %+v", evt)
		}
		if n, _ := r.LikeCount(ctx, householdID, nameID); n != 1 {
			t.Errorf("expected like count 1, got %d", n)
		}

		src.rows[householdID] = append(src.rows[householdID], ledgerRow{seq: 2, nameID: nameID})
		evt, err = r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchFormed {
			t.Fatalf("expected MatchFormed on the second like, got %+v", evt)
		}
	})

	t.Run("warm-up at the match-forming like still announces it", func(t *testing.T) {
		r, src, householdID, nameID := setup(t, 2)
		src.rows[householdID] = []ledgerRow{
			{seq: 1, nameID: nameID},
			{seq: 2, nameID: nameID},
		}

		// Worker starts between the two likes' delivery: the seed absorbs
		// the first, the transition applies the second, and the match must
		// be announced rather than silently absorbed into the seed.
		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 2, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchFormed {
			t.Fatalf("expected MatchFormed, got %+v", evt)
		}
		if evt.LikesCount != 2 {
			t.Errorf("expected likes count 2, got %d", evt.LikesCount)
		}
	})

	t.Run("names already at threshold are not re-announced", func(t *testing.T) {
		r, src, householdID, nameID := setup(t, 2)
		src.rows[householdID] = []ledgerRow{
			{seq: 1, nameID: nameID},
			{seq: 2, nameID: nameID},
		}

		// Both likes predate the worker; the seed marks the name matched.
		evt, err := r.OnSwipeRecorded(ctx, householdID, nameID, 3, swipemodels.DecisionNone, swipemodels.DecisionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Errorf("expected no event for a pre-matched name, got %+v", evt)
		}

		// Count is now 3; dropping back to 2 still meets the threshold.
		evt, err = r.OnSwipeRecorded(ctx, householdID, nameID, 4, swipemodels.DecisionLike, swipemodels.DecisionDismiss)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt != nil {
			t.Errorf("expected no break at threshold, got %+v", evt)
		}

		// One more lost like drops below the seeded threshold and breaks.
		evt, err = r.OnSwipeRecorded(ctx, householdID, nameID, 5, swipemodels.DecisionLike, swipemodels.DecisionDismiss)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if evt == nil || evt.Kind != models.MatchBroken {
			t.Fatalf("expected MatchBroken below threshold, got %+v", evt)
		}
	})

	t.Run("failed seed is retried on the next delivery", func(t *testing.T) {
		r, src, householdID, nameID := setup(t, 2)
		src.seedErr = errors.New("ledger unreachable")

		if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike); err == nil {
			t.Fatal("expected seed failure to surface")
		}

		// The errored delivery is retried with the same seq.
		src.seedErr = nil
		if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, 1, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if n, _ := r.LikeCount(ctx, householdID, nameID); n != 1 {
			t.Errorf("expected like count 1 after retry, got %d", n)
		}
		if src.seedCalls != 2 {
			t.Errorf("expected 2 seed attempts, got %d", src.seedCalls)
		}
	})

	t.Run("seed runs once per household", func(t *testing.T) {
		r, src, householdID, nameID := setup(t, 2)

		for seq := int64(1); seq <= 3; seq++ {
			if _, err := r.OnSwipeRecorded(ctx, householdID, nameID, seq, swipemodels.DecisionNone, swipemodels.DecisionLike); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if src.seedCalls != 1 {
			t.Errorf("expected 1 seed call, got %d", src.seedCalls)
		}
	})
}
