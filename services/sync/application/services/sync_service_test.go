package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/config"
	"github.com/pawmatch/pawmatch/pkg/logger"
	swipesvcs "github.com/pawmatch/pawmatch/services/swipe/application/services"
	swipedomain "github.com/pawmatch/pawmatch/services/swipe/domain"
	swipemodels "github.com/pawmatch/pawmatch/services/swipe/domain/models"
	syncdomain "github.com/pawmatch/pawmatch/services/sync/domain"
	"github.com/pawmatch/pawmatch/services/sync/domain/models"
)

// fakeRecorder mimics the ledger's token idempotency: a repeated token with
// the same payload reports AlreadyRecorded, a different payload conflicts.
type fakeRecorder struct {
	seen    map[uuid.UUID]swipesvcs.RecordInput
	seqs    map[uuid.UUID]int64
	nextSeq int64
	failOn  map[uuid.UUID]error // token -> error to return
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		seen:   make(map[uuid.UUID]swipesvcs.RecordInput),
		seqs:   make(map[uuid.UUID]int64),
		failOn: make(map[uuid.UUID]error),
	}
}

func (f *fakeRecorder) Record(_ context.Context, in swipesvcs.RecordInput) (swipemodels.Effectiveness, error) {
	if err, ok := f.failOn[in.Token]; ok {
		return swipemodels.Effectiveness{}, err
	}
	if prior, ok := f.seen[in.Token]; ok {
		if prior.NameID != in.NameID || prior.Decision != in.Decision || !prior.SwipedAt.Equal(in.SwipedAt) {
			return swipemodels.Effectiveness{}, swipedomain.ErrTokenConflict
		}
		return swipemodels.Effectiveness{BecameEffective: true, AlreadyRecorded: true, Seq: f.seqs[in.Token]}, nil
	}
	f.nextSeq++
	f.seen[in.Token] = in
	f.seqs[in.Token] = f.nextSeq
	return swipemodels.Effectiveness{BecameEffective: true, Seq: f.nextSeq}, nil
}

type fakeDeltas struct {
	rows []*swipemodels.Swipe
}

func (f *fakeDeltas) Since(_ context.Context, _ uuid.UUID, watermark int64, limit int) ([]*swipemodels.Swipe, error) {
	var out []*swipemodels.Swipe
	for _, r := range f.rows {
		if r.Seq > watermark {
			out = append(out, r)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type fakeGuard struct {
	members map[uuid.UUID]bool
}

func (f *fakeGuard) MemberInHousehold(_ context.Context, _, memberID uuid.UUID) (bool, error) {
	return f.members[memberID], nil
}

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func entry(memberID uuid.UUID, decision string, at time.Time) models.PushEntry {
	return models.PushEntry{
		Token:    uuid.New(),
		MemberID: memberID,
		NameID:   uuid.New(),
		Decision: decision,
		SwipedAt: at,
	}
}

func TestSyncServicePush(t *testing.T) {
	ctx := context.Background()
	householdID := uuid.New()
	memberID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newService := func(rec Recorder, guard RosterGuard) *SyncService {
		return NewSyncService(rec, &fakeDeltas{}, guard, nil, nil, nil, testLogger())
	}

	t.Run("buffered batch lands exactly once", func(t *testing.T) {
		rec := newFakeRecorder()
		svc := newService(rec, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})

		batch := []models.PushEntry{
			entry(memberID, "like", base),
			entry(memberID, "dismiss", base.Add(time.Second)),
			entry(memberID, "like", base.Add(2*time.Second)),
		}

		first, err := svc.Push(ctx, householdID, batch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Accepted != 3 || first.Duplicate != 0 {
			t.Fatalf("expected 3 accepted, got %+v", first)
		}
		if first.Watermark == 0 {
			t.Error("expected non-zero watermark")
		}

		// The response was lost; the client replays the whole batch.
		second, err := svc.Push(ctx, householdID, batch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.Accepted != 0 || second.Duplicate != 3 {
			t.Errorf("expected 3 duplicates on replay, got %+v", second)
		}
		if len(rec.seen) != 3 {
			t.Errorf("expected 3 recorded swipes, got %d", len(rec.seen))
		}
	})

	t.Run("entries preserve input order", func(t *testing.T) {
		svc := newService(newFakeRecorder(), &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})
		batch := []models.PushEntry{
			entry(memberID, "like", base),
			entry(memberID, "like", base),
		}
		result, err := svc.Push(ctx, householdID, batch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, res := range result.Entries {
			if res.Token != batch[i].Token {
				t.Errorf("entry %d: expected token %v, got %v", i, batch[i].Token, res.Token)
			}
		}
	})

	t.Run("token conflict stands alone", func(t *testing.T) {
		rec := newFakeRecorder()
		svc := newService(rec, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})

		original := entry(memberID, "like", base)
		if _, err := svc.Push(ctx, householdID, []models.PushEntry{original}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mutated := original
		mutated.Decision = "dismiss"
		fresh := entry(memberID, "like", base.Add(time.Second))

		result, err := svc.Push(ctx, householdID, []models.PushEntry{mutated, fresh})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Conflict != 1 || result.Accepted != 1 {
			t.Errorf("expected 1 conflict + 1 accepted, got %+v", result)
		}
		if result.Entries[0].Status != models.EntryConflict {
			t.Errorf("expected conflict status, got %s", result.Entries[0].Status)
		}
		if result.Entries[1].Status != models.EntryAccepted {
			t.Errorf("expected accepted status, got %s", result.Entries[1].Status)
		}
	})

	t.Run("unknown member entries rejected, others land", func(t *testing.T) {
		stranger := uuid.New()
		svc := newService(newFakeRecorder(), &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})

		result, err := svc.Push(ctx, householdID, []models.PushEntry{
			entry(stranger, "like", base),
			entry(memberID, "like", base),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Rejected != 1 || result.Accepted != 1 {
			t.Errorf("expected 1 rejected + 1 accepted, got %+v", result)
		}
	})

	t.Run("malformed decision rejected without recording", func(t *testing.T) {
		rec := newFakeRecorder()
		svc := newService(rec, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})

		result, err := svc.Push(ctx, householdID, []models.PushEntry{
			entry(memberID, "superlike", base),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Rejected != 1 {
			t.Errorf("expected rejection, got %+v", result)
		}
		if len(rec.seen) != 0 {
			t.Errorf("expected nothing recorded, got %d", len(rec.seen))
		}
	})

	t.Run("oversized batch refused outright", func(t *testing.T) {
		svc := newService(newFakeRecorder(), &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})
		batch := make([]models.PushEntry, MaxPushBatch+1)
		for i := range batch {
			batch[i] = entry(memberID, "like", base)
		}
		_, err := svc.Push(ctx, householdID, batch)
		if !errors.Is(err, syncdomain.ErrBatchTooLarge) {
			t.Errorf("expected ErrBatchTooLarge, got %v", err)
		}
	})

	t.Run("transient failure without a retry queue rejects the entry", func(t *testing.T) {
		rec := newFakeRecorder()
		bad := entry(memberID, "like", base)
		rec.failOn[bad.Token] = errors.New("connection refused")
		svc := newService(rec, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})

		result, err := svc.Push(ctx, householdID, []models.PushEntry{bad})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Rejected != 1 || result.Queued != 0 {
			t.Errorf("expected rejection without pending queue, got %+v", result)
		}
	})

	t.Run("watermark is the highest accepted seq", func(t *testing.T) {
		svc := newService(newFakeRecorder(), &fakeGuard{members: map[uuid.UUID]bool{memberID: true}})
		result, err := svc.Push(ctx, householdID, []models.PushEntry{
			entry(memberID, "like", base),
			entry(memberID, "like", base.Add(time.Second)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Watermark != 2 {
			t.Errorf("expected watermark 2, got %d", result.Watermark)
		}
	})
}

func TestSyncServicePull(t *testing.T) {
	ctx := context.Background()
	householdID := uuid.New()
	memberID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	row := func(seq int64, effective bool) *swipemodels.Swipe {
		return &swipemodels.Swipe{
			Token:       uuid.New(),
			HouseholdID: householdID,
			MemberID:    memberID,
			NameID:      uuid.New(),
			Decision:    swipemodels.DecisionLike,
			SwipedAt:    base.Add(time.Duration(seq) * time.Second),
			Seq:         seq,
			Effective:   effective,
		}
	}

	t.Run("returns rows past the watermark", func(t *testing.T) {
		deltas := &fakeDeltas{rows: []*swipemodels.Swipe{row(1, false), row(2, true), row(3, true)}}
		svc := NewSyncService(newFakeRecorder(), deltas, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}}, nil, nil, nil, testLogger())

		result, err := svc.Pull(ctx, householdID, memberID, 1, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(result.Entries))
		}
		if result.Entries[0].Seq != 2 || result.Entries[1].Seq != 3 {
			t.Errorf("expected seqs [2 3], got %+v", result.Entries)
		}
		if result.Watermark != 3 {
			t.Errorf("expected watermark 3, got %d", result.Watermark)
		}
		if result.More {
			t.Error("expected no further pages")
		}
	})

	t.Run("signals more pages past the limit", func(t *testing.T) {
		deltas := &fakeDeltas{rows: []*swipemodels.Swipe{row(1, true), row(2, true), row(3, true)}}
		svc := NewSyncService(newFakeRecorder(), deltas, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}}, nil, nil, nil, testLogger())

		result, err := svc.Pull(ctx, householdID, memberID, 0, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Entries) != 2 {
			t.Fatalf("expected page of 2, got %d", len(result.Entries))
		}
		if !result.More {
			t.Error("expected More=true")
		}
		if result.Watermark != 2 {
			t.Errorf("expected watermark 2, got %d", result.Watermark)
		}

		// Next page resumes from the returned watermark.
		next, err := svc.Pull(ctx, householdID, memberID, result.Watermark, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(next.Entries) != 1 || next.Entries[0].Seq != 3 {
			t.Errorf("expected final row 3, got %+v", next.Entries)
		}
		if next.More {
			t.Error("expected no further pages")
		}
	})

	t.Run("superseded rows are included", func(t *testing.T) {
		deltas := &fakeDeltas{rows: []*swipemodels.Swipe{row(1, false), row(2, true)}}
		svc := NewSyncService(newFakeRecorder(), deltas, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}}, nil, nil, nil, testLogger())

		result, err := svc.Pull(ctx, householdID, memberID, 0, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Entries) != 2 {
			t.Fatalf("expected superseded row in the delta, got %d entries", len(result.Entries))
		}
		if result.Entries[0].Effective {
			t.Error("expected first row to be marked superseded")
		}
	})

	t.Run("empty delta keeps the client watermark", func(t *testing.T) {
		svc := NewSyncService(newFakeRecorder(), &fakeDeltas{}, &fakeGuard{members: map[uuid.UUID]bool{memberID: true}}, nil, nil, nil, testLogger())

		result, err := svc.Pull(ctx, householdID, memberID, 42, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Entries) != 0 || result.Watermark != 42 {
			t.Errorf("expected empty page at watermark 42, got %+v", result)
		}
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := NewSyncService(newFakeRecorder(), &fakeDeltas{}, &fakeGuard{members: map[uuid.UUID]bool{}}, nil, nil, nil, testLogger())

		_, err := svc.Pull(ctx, householdID, memberID, 0, 10)
		if !errors.Is(err, syncdomain.ErrUnknownMember) {
			t.Errorf("expected ErrUnknownMember, got %v", err)
		}
	})
}
