package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/services/swipe/domain/models"
)

// LikedName is a member's effective like joined with catalog details.
type LikedName struct {
	NameID   uuid.UUID
	Name     string
	Gender   string
	SetTitle string
}

// Counts summarizes a member's effective decisions.
type Counts struct {
	Likes     int
	Dismisses int
}

// SwipeLedger is the persistence interface for the append-only swipe ledger.
// The domain layer owns this interface; infrastructure implements it.
type SwipeLedger interface {
	// Record appends the swipe and resolves last-writer-wins supersession
	// for its (household, member, name) triple. Idempotent per token:
	// an identical resubmission reports AlreadyRecorded without appending.
	// Returns ErrTokenConflict when the token was seen with a different
	// payload.
	Record(ctx context.Context, swipe *models.Swipe) (models.Effectiveness, error)

	// EffectiveDecisions returns the member's current effective decision per
	// name. Superseded rows are invisible here.
	EffectiveDecisions(ctx context.Context, householdID, memberID uuid.UUID) (map[uuid.UUID]models.Decision, error)

	// Since returns ledger rows for the household with Seq strictly greater
	// than the watermark, in sequence order, capped at limit. It is the
	// incremental pull primitive.
	Since(ctx context.Context, householdID uuid.UUID, watermark int64, limit int) ([]*models.Swipe, error)

	// Likes returns the member's effective likes joined with name details.
	Likes(ctx context.Context, householdID, memberID uuid.UUID) ([]LikedName, error)

	// CountByMember returns the member's effective like/dismiss counts.
	CountByMember(ctx context.Context, householdID, memberID uuid.UUID) (Counts, error)
}
