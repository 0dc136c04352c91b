package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pawmatch/pawmatch/pkg/database"
	"github.com/pawmatch/pawmatch/pkg/events"
	swipedomain "github.com/pawmatch/pawmatch/services/swipe/domain"
	domainevents "github.com/pawmatch/pawmatch/services/swipe/domain/events"
	"github.com/pawmatch/pawmatch/services/swipe/domain/models"
	"github.com/pawmatch/pawmatch/services/swipe/domain/repositories"
)

// LedgerRepository implements repositories.SwipeLedger against PostgreSQL.
//
// The swipes table is append-only. Each row carries an `effective` flag that
// marks the current winner of last-writer-wins per (household, member, name)
// triple; superseded rows keep their data for audit but flip to effective=false.
type LedgerRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewLedgerRepository returns a LedgerRepository backed by the given pool and
// event bus. The bus publishes SwipeRecordedEvents transactionally with the
// ledger append (outbox), so the reconciler never sees a phantom swipe.
func NewLedgerRepository(db *database.Database, bus *events.EventBus) *LedgerRepository {
	return &LedgerRepository{db: db, bus: bus}
}

// Record appends the swipe and resolves supersession for its triple.
//
// Concurrency: a transaction-scoped advisory lock on the triple serializes
// concurrent writers for the same (household, member, name) while leaving
// unrelated triples fully parallel.
func (r *LedgerRepository) Record(ctx context.Context, swipe *models.Swipe) (models.Effectiveness, error) {
	var eff models.Effectiveness

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
			swipe.HouseholdID.String()+":"+swipe.MemberID.String()+":"+swipe.NameID.String(),
		); err != nil {
			return fmt.Errorf("lock triple: %w", err)
		}

		// Idempotency: a token seen before with an identical payload is a
		// no-op; a differing payload is a conflict, never an overwrite.
		existing, err := r.findByToken(ctx, tx, swipe.Token)
		if err != nil {
			return err
		}
		if existing != nil {
			if !existing.SamePayload(swipe) {
				return swipedomain.ErrTokenConflict
			}
			effective, err := r.isEffective(ctx, tx, existing.Seq)
			if err != nil {
				return err
			}
			eff = models.Effectiveness{
				BecameEffective: effective,
				AlreadyRecorded: true,
				Seq:             existing.Seq,
			}
			return nil
		}

		current, err := r.currentEffective(ctx, tx, swipe.HouseholdID, swipe.MemberID, swipe.NameID)
		if err != nil {
			return err
		}

		var seq int64
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO swipes (token, household_id, member_id, name_id, decision, swiped_at, effective)
			 VALUES ($1, $2, $3, $4, $5, $6, FALSE)
			 RETURNING seq`,
			swipe.Token, swipe.HouseholdID, swipe.MemberID, swipe.NameID,
			swipe.Decision.String(), swipe.SwipedAt,
		).Scan(&seq); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return swipedomain.ErrInvalidReference
			}
			return fmt.Errorf("insert swipe: %w", err)
		}
		swipe.Seq = seq

		if !swipe.Supersedes(current) {
			// Late arrival lost last-writer-wins; keep the row for audit,
			// leave the current winner in place.
			eff = models.Effectiveness{BecameEffective: false, Seq: seq}
			return nil
		}

		previous := models.DecisionNone
		if current != nil {
			previous = current.Decision
			if _, err := tx.ExecContext(ctx,
				`UPDATE swipes SET effective = FALSE WHERE seq = $1`, current.Seq,
			); err != nil {
				return fmt.Errorf("retire superseded swipe: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE swipes SET effective = TRUE WHERE seq = $1`, seq,
		); err != nil {
			return fmt.Errorf("mark swipe effective: %w", err)
		}

		eff = models.Effectiveness{BecameEffective: true, Previous: previous, Seq: seq}

		if r.bus != nil {
			if err := r.publishRecorded(tx, swipe, previous); err != nil {
				return fmt.Errorf("publish swipe recorded: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Effectiveness{}, err
	}
	return eff, nil
}

// EffectiveDecisions returns the member's current effective decision per name.
func (r *LedgerRepository) EffectiveDecisions(ctx context.Context, householdID, memberID uuid.UUID) (map[uuid.UUID]models.Decision, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT name_id, decision FROM swipes
		 WHERE household_id = $1 AND member_id = $2 AND effective`,
		householdID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("query effective decisions: %w", err)
	}
	defer rows.Close()

	decisions := make(map[uuid.UUID]models.Decision)
	for rows.Next() {
		var nameID uuid.UUID
		var decision string
		if err := rows.Scan(&nameID, &decision); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		decisions[nameID] = models.Decision(decision)
	}
	return decisions, rows.Err()
}

// Since returns ledger rows past the watermark in sequence order.
func (r *LedgerRepository) Since(ctx context.Context, householdID uuid.UUID, watermark int64, limit int) ([]*models.Swipe, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT seq, token, household_id, member_id, name_id, decision, swiped_at, effective
		 FROM swipes
		 WHERE household_id = $1 AND seq > $2
		 ORDER BY seq
		 LIMIT $3`,
		householdID, watermark, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query swipes since %d: %w", watermark, err)
	}
	defer rows.Close()

	var swipes []*models.Swipe
	for rows.Next() {
		var s models.Swipe
		var decision string
		if err := rows.Scan(&s.Seq, &s.Token, &s.HouseholdID, &s.MemberID, &s.NameID, &decision, &s.SwipedAt, &s.Effective); err != nil {
			return nil, fmt.Errorf("scan swipe: %w", err)
		}
		s.Decision = models.Decision(decision)
		swipes = append(swipes, &s)
	}
	return swipes, rows.Err()
}

// Likes returns the member's effective likes joined with name details.
func (r *LedgerRepository) Likes(ctx context.Context, householdID, memberID uuid.UUID) ([]repositories.LikedName, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT s.name_id, n.name, n.gender, ns.title
		 FROM swipes s
		 JOIN names n ON n.id = s.name_id
		 JOIN name_sets ns ON ns.id = n.set_id
		 WHERE s.household_id = $1 AND s.member_id = $2 AND s.effective AND s.decision = 'like'
		 ORDER BY s.seq DESC`,
		householdID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("query likes: %w", err)
	}
	defer rows.Close()

	var likes []repositories.LikedName
	for rows.Next() {
		var l repositories.LikedName
		if err := rows.Scan(&l.NameID, &l.Name, &l.Gender, &l.SetTitle); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

// CountByMember returns the member's effective like/dismiss counts.
func (r *LedgerRepository) CountByMember(ctx context.Context, householdID, memberID uuid.UUID) (repositories.Counts, error) {
	var c repositories.Counts
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE decision = 'like'),
		   COUNT(*) FILTER (WHERE decision = 'dismiss')
		 FROM swipes
		 WHERE household_id = $1 AND member_id = $2 AND effective`,
		householdID, memberID,
	).Scan(&c.Likes, &c.Dismisses)
	if err != nil {
		return repositories.Counts{}, fmt.Errorf("count swipes: %w", err)
	}
	return c, nil
}

func (r *LedgerRepository) findByToken(ctx context.Context, tx *sql.Tx, token uuid.UUID) (*models.Swipe, error) {
	var s models.Swipe
	var decision string
	err := tx.QueryRowContext(ctx,
		`SELECT seq, token, household_id, member_id, name_id, decision, swiped_at
		 FROM swipes WHERE token = $1`,
		token,
	).Scan(&s.Seq, &s.Token, &s.HouseholdID, &s.MemberID, &s.NameID, &decision, &s.SwipedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query swipe by token: %w", err)
	}
	s.Decision = models.Decision(decision)
	return &s, nil
}

func (r *LedgerRepository) currentEffective(ctx context.Context, tx *sql.Tx, householdID, memberID, nameID uuid.UUID) (*models.Swipe, error) {
	var s models.Swipe
	var decision string
	err := tx.QueryRowContext(ctx,
		`SELECT seq, token, household_id, member_id, name_id, decision, swiped_at
		 FROM swipes
		 WHERE household_id = $1 AND member_id = $2 AND name_id = $3 AND effective`,
		householdID, memberID, nameID,
	).Scan(&s.Seq, &s.Token, &s.HouseholdID, &s.MemberID, &s.NameID, &decision, &s.SwipedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query effective swipe: %w", err)
	}
	s.Decision = models.Decision(decision)
	return &s, nil
}

func (r *LedgerRepository) isEffective(ctx context.Context, tx *sql.Tx, seq int64) (bool, error) {
	var effective bool
	if err := tx.QueryRowContext(ctx,
		`SELECT effective FROM swipes WHERE seq = $1`, seq,
	).Scan(&effective); err != nil {
		return false, fmt.Errorf("query effective flag: %w", err)
	}
	return effective, nil
}

func (r *LedgerRepository) publishRecorded(tx *sql.Tx, swipe *models.Swipe, previous models.Decision) error {
	event := domainevents.SwipeRecordedEvent{
		EventID:     uuid.New(),
		Version:     1,
		HouseholdID: swipe.HouseholdID,
		MemberID:    swipe.MemberID,
		NameID:      swipe.NameID,
		Previous:    previous.String(),
		Decision:    swipe.Decision.String(),
		Seq:         swipe.Seq,
		SwipedAt:    swipe.SwipedAt,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicSwipeRecorded, msg)
}
