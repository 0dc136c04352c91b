package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/services/match/domain/models"
)

// MatchReader derives the current match set from the effective swipe ledger.
// Matches are never stored; the reader recomputes them on demand so the set
// always agrees with the ledger, including after out-of-order sync pushes.
type MatchReader interface {
	// Matches returns names whose effective like count meets required,
	// ordered by like count descending, then name.
	Matches(ctx context.Context, householdID uuid.UUID, required int) ([]*models.Match, error)
}
