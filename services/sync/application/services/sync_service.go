package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/cache"
	"github.com/pawmatch/pawmatch/pkg/logger"
	"github.com/pawmatch/pawmatch/pkg/telemetry"
	swipesvcs "github.com/pawmatch/pawmatch/services/swipe/application/services"
	swipedomain "github.com/pawmatch/pawmatch/services/swipe/domain"
	swipemodels "github.com/pawmatch/pawmatch/services/swipe/domain/models"
	syncdomain "github.com/pawmatch/pawmatch/services/sync/domain"
	"github.com/pawmatch/pawmatch/services/sync/domain/models"
)

const (
	// MaxPushBatch caps one push request. Clients with deeper buffers page.
	MaxPushBatch = 500

	// DefaultPullLimit pages pull responses when the client does not ask for
	// a specific size.
	DefaultPullLimit = 200

	// MaxPullLimit caps a single pull page.
	MaxPullLimit = 500

	// flushBatch bounds one retry-queue drain so a huge backlog cannot
	// monopolize the worker tick.
	flushBatch = 256
)

// Recorder appends one swipe to the ledger. The swipe application service is
// the production implementation.
type Recorder interface {
	Record(ctx context.Context, in swipesvcs.RecordInput) (swipemodels.Effectiveness, error)
}

// DeltaSource pages ledger rows past a watermark in sequence order.
type DeltaSource interface {
	Since(ctx context.Context, householdID uuid.UUID, watermark int64, limit int) ([]*swipemodels.Swipe, error)
}

// RosterGuard answers whether the syncing member belongs to the household.
type RosterGuard interface {
	MemberInHousehold(ctx context.Context, householdID, memberID uuid.UUID) (bool, error)
}

// SyncService is the coordinator between offline client buffers and the
// swipe ledger. Push replays buffered swipes through the same idempotent
// Record path online swipes use; Pull hands out ledger deltas by watermark.
type SyncService struct {
	recorder Recorder
	deltas   DeltaSource
	guard    RosterGuard
	replica  *cache.SwipeReplica
	pending  *cache.PendingQueue
	metrics  *telemetry.Metrics
	log      logger.Logger
}

// NewSyncService wires the coordinator. replica and pending may be nil in
// tests; replica refresh and transient-failure parking are then skipped.
func NewSyncService(
	recorder Recorder,
	deltas DeltaSource,
	guard RosterGuard,
	replica *cache.SwipeReplica,
	pending *cache.PendingQueue,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *SyncService {
	return &SyncService{
		recorder: recorder,
		deltas:   deltas,
		guard:    guard,
		replica:  replica,
		pending:  pending,
		metrics:  metrics,
		log:      log,
	}
}

// Push replays a batch of buffered swipes against the ledger, in batch order.
// Each entry is classified independently: one bad entry never poisons the
// rest. Replaying the whole batch after a dropped response is safe because
// every entry carries its original idempotency token.
func (s *SyncService) Push(ctx context.Context, householdID uuid.UUID, entries []models.PushEntry) (*models.PushResult, error) {
	if len(entries) > MaxPushBatch {
		return nil, fmt.Errorf("%w: %d entries, max %d", syncdomain.ErrBatchTooLarge, len(entries), MaxPushBatch)
	}

	result := &models.PushResult{Entries: make([]models.EntryResult, 0, len(entries))}
	memberOK := make(map[uuid.UUID]bool)

	for _, entry := range entries {
		result.Entries = append(result.Entries, s.pushOne(ctx, householdID, entry, memberOK, result))
	}

	s.metrics.CountSyncPush(ctx)
	return result, nil
}

func (s *SyncService) pushOne(
	ctx context.Context,
	householdID uuid.UUID,
	entry models.PushEntry,
	memberOK map[uuid.UUID]bool,
	result *models.PushResult,
) models.EntryResult {
	res := models.EntryResult{Token: entry.Token}

	decision, err := swipemodels.ParseDecision(entry.Decision)
	if err != nil {
		res.Status = models.EntryRejected
		res.Reason = err.Error()
		result.Rejected++
		return res
	}

	ok, known := memberOK[entry.MemberID]
	if !known {
		ok, err = s.guard.MemberInHousehold(ctx, householdID, entry.MemberID)
		if err != nil {
			return s.park(ctx, householdID, entry, result, err)
		}
		memberOK[entry.MemberID] = ok
	}
	if !ok {
		res.Status = models.EntryRejected
		res.Reason = syncdomain.ErrUnknownMember.Error()
		result.Rejected++
		return res
	}

	eff, err := s.recorder.Record(ctx, swipesvcs.RecordInput{
		HouseholdID: householdID,
		MemberID:    entry.MemberID,
		NameID:      entry.NameID,
		Decision:    decision,
		Token:       entry.Token,
		SwipedAt:    entry.SwipedAt,
	})
	switch {
	case err == nil:
	case errors.Is(err, swipedomain.ErrTokenConflict):
		res.Status = models.EntryConflict
		res.Reason = swipedomain.ErrTokenConflict.Error()
		result.Conflict++
		return res
	case errors.Is(err, swipedomain.ErrInvalidReference), errors.Is(err, swipedomain.ErrUnknownDecision):
		res.Status = models.EntryRejected
		res.Reason = err.Error()
		result.Rejected++
		return res
	default:
		return s.park(ctx, householdID, entry, result, err)
	}

	res.Effective = eff.BecameEffective
	res.Seq = eff.Seq
	if eff.Seq > result.Watermark {
		result.Watermark = eff.Seq
	}
	if eff.AlreadyRecorded {
		res.Status = models.EntryDuplicate
		result.Duplicate++
	} else {
		res.Status = models.EntryAccepted
		result.Accepted++
	}

	if eff.BecameEffective {
		s.refreshReplica(ctx, householdID, entry.MemberID, entry.NameID, decision.String())
	}
	return res
}

// park stores an entry on the retry queue after a transient backend failure.
// The client sees "queued": its swipe is durable and will land with the same
// token, so resubmitting is harmless.
func (s *SyncService) park(
	ctx context.Context,
	householdID uuid.UUID,
	entry models.PushEntry,
	result *models.PushResult,
	cause error,
) models.EntryResult {
	res := models.EntryResult{Token: entry.Token}

	if s.pending == nil {
		res.Status = models.EntryRejected
		res.Reason = cause.Error()
		result.Rejected++
		return res
	}

	err := s.pending.Enqueue(ctx, cache.PendingSwipe{
		Token:       entry.Token.String(),
		HouseholdID: householdID.String(),
		MemberID:    entry.MemberID.String(),
		NameID:      entry.NameID.String(),
		Decision:    entry.Decision,
		SwipedAt:    entry.SwipedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		// Both Postgres and Redis are down; the client keeps its buffer.
		s.log.ErrorContext(ctx, "failed to park swipe for retry",
			"token", entry.Token, "cause", cause, "error", err)
		res.Status = models.EntryRejected
		res.Reason = syncdomain.ErrSyncUnavailable.Error()
		result.Rejected++
		return res
	}

	s.log.WarnContext(ctx, "parked swipe on retry queue",
		"token", entry.Token, "error", cause)
	res.Status = models.EntryQueued
	res.Reason = syncdomain.ErrSyncUnavailable.Error()
	result.Queued++
	return res
}

// Pull returns ledger rows past the client's watermark, in sequence order.
// Superseded rows are included so the client can retire local state that
// lost last-writer-wins while it was offline.
func (s *SyncService) Pull(ctx context.Context, householdID, memberID uuid.UUID, watermark int64, limit int) (*models.PullResult, error) {
	ok, err := s.guard.MemberInHousehold(ctx, householdID, memberID)
	if err != nil {
		return nil, fmt.Errorf("check member: %w", err)
	}
	if !ok {
		return nil, syncdomain.ErrUnknownMember
	}

	if limit <= 0 {
		limit = DefaultPullLimit
	}
	if limit > MaxPullLimit {
		limit = MaxPullLimit
	}

	// Fetch one extra row to learn whether another page is waiting.
	swipes, err := s.deltas.Since(ctx, householdID, watermark, limit+1)
	if err != nil {
		return nil, fmt.Errorf("read ledger delta: %w", err)
	}

	result := &models.PullResult{Watermark: watermark}
	if len(swipes) > limit {
		swipes = swipes[:limit]
		result.More = true
	}
	for _, sw := range swipes {
		result.Entries = append(result.Entries, models.PullEntry{
			Seq:       sw.Seq,
			Token:     sw.Token,
			MemberID:  sw.MemberID,
			NameID:    sw.NameID,
			Decision:  sw.Decision.String(),
			SwipedAt:  sw.SwipedAt,
			Effective: sw.Effective,
		})
		if sw.Seq > result.Watermark {
			result.Watermark = sw.Seq
		}
		if sw.Effective {
			s.refreshReplica(ctx, householdID, sw.MemberID, sw.NameID, sw.Decision.String())
		}
	}

	if s.replica != nil {
		if err := s.replica.SetWatermark(ctx, householdID, memberID, result.Watermark); err != nil {
			s.log.WarnContext(ctx, "failed to store pull watermark",
				"household_id", householdID, "member_id", memberID, "error", err)
		}
	}

	s.metrics.CountSyncPull(ctx)
	return result, nil
}

// FlushPending drains up to flushBatch parked swipes back into the ledger.
// The retry worker calls this on a schedule. A transient failure requeues the
// entry at the head and stops the drain; permanent failures are dropped with
// a log line since retrying cannot fix them.
func (s *SyncService) FlushPending(ctx context.Context) (int, error) {
	if s.pending == nil {
		return 0, nil
	}

	flushed := 0
	for i := 0; i < flushBatch; i++ {
		entry, err := s.pending.Dequeue(ctx)
		if err != nil {
			return flushed, fmt.Errorf("dequeue pending: %w", err)
		}
		if entry == nil {
			return flushed, nil
		}

		in, err := s.pendingInput(entry)
		if err != nil {
			s.log.ErrorContext(ctx, "dropping undecodable pending swipe",
				"token", entry.Token, "error", err)
			continue
		}

		if _, err := s.recorder.Record(ctx, in); err != nil {
			if errors.Is(err, swipedomain.ErrTokenConflict) ||
				errors.Is(err, swipedomain.ErrInvalidReference) ||
				errors.Is(err, swipedomain.ErrUnknownDecision) {
				s.log.WarnContext(ctx, "dropping unrecoverable pending swipe",
					"token", entry.Token, "error", err)
				continue
			}
			if reqErr := s.pending.Requeue(ctx, *entry); reqErr != nil {
				s.log.ErrorContext(ctx, "failed to requeue pending swipe",
					"token", entry.Token, "error", reqErr)
			}
			return flushed, fmt.Errorf("replay pending swipe: %w", err)
		}
		flushed++
	}
	return flushed, nil
}

func (s *SyncService) pendingInput(e *cache.PendingSwipe) (swipesvcs.RecordInput, error) {
	token, err := uuid.Parse(e.Token)
	if err != nil {
		return swipesvcs.RecordInput{}, fmt.Errorf("parse token: %w", err)
	}
	householdID, err := uuid.Parse(e.HouseholdID)
	if err != nil {
		return swipesvcs.RecordInput{}, fmt.Errorf("parse household id: %w", err)
	}
	memberID, err := uuid.Parse(e.MemberID)
	if err != nil {
		return swipesvcs.RecordInput{}, fmt.Errorf("parse member id: %w", err)
	}
	nameID, err := uuid.Parse(e.NameID)
	if err != nil {
		return swipesvcs.RecordInput{}, fmt.Errorf("parse name id: %w", err)
	}
	decision, err := swipemodels.ParseDecision(e.Decision)
	if err != nil {
		return swipesvcs.RecordInput{}, err
	}
	swipedAt, err := time.Parse(time.RFC3339Nano, e.SwipedAt)
	if err != nil {
		return swipesvcs.RecordInput{}, fmt.Errorf("parse swiped_at: %w", err)
	}
	return swipesvcs.RecordInput{
		HouseholdID: householdID,
		MemberID:    memberID,
		NameID:      nameID,
		Decision:    decision,
		Token:       token,
		SwipedAt:    swipedAt,
	}, nil
}

func (s *SyncService) refreshReplica(ctx context.Context, householdID, memberID, nameID uuid.UUID, decision string) {
	if s.replica == nil {
		return
	}
	if err := s.replica.SetDecision(ctx, householdID, memberID, nameID, decision); err != nil {
		s.log.WarnContext(ctx, "failed to refresh swipe replica",
			"household_id", householdID, "member_id", memberID, "error", err)
	}
}
