package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/database"
	"github.com/pawmatch/pawmatch/services/match/domain/models"
)

// likerSeparator joins member display names inside STRING_AGG. The unit
// separator never appears in user input that survives validation.
const likerSeparator = "\x1f"

// MatchRepository implements repositories.MatchReader plus the reconciler's
// RosterSource and NameSource against PostgreSQL.
type MatchRepository struct {
	db *database.Database
}

// NewMatchRepository returns a MatchRepository backed by the given pool.
func NewMatchRepository(db *database.Database) *MatchRepository {
	return &MatchRepository{db: db}
}

// Matches derives the household's current match set from effective likes.
func (r *MatchRepository) Matches(ctx context.Context, householdID uuid.UUID, required int) ([]*models.Match, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT s.name_id, n.name, n.gender, COUNT(*),
		        STRING_AGG(m.display_name, $3 ORDER BY m.joined_at)
		 FROM swipes s
		 JOIN names n ON n.id = s.name_id
		 JOIN members m ON m.id = s.member_id
		 WHERE s.household_id = $1 AND s.effective AND s.decision = 'like'
		 GROUP BY s.name_id, n.name, n.gender
		 HAVING COUNT(*) >= $2
		 ORDER BY COUNT(*) DESC, n.name`,
		householdID, required, likerSeparator,
	)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		var m models.Match
		var likers string
		if err := rows.Scan(&m.NameID, &m.Name, &m.Gender, &m.LikesCount, &likers); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.Likers = strings.Split(likers, likerSeparator)
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

// EffectiveLikeCounts seeds the reconciler: per-name effective like counts
// for the household as of the ledger position beforeSeq. Only rows with
// seq < beforeSeq participate; last-writer-wins is re-resolved inside that
// prefix because the stored effective flag reflects the full ledger, which
// may already include the row whose event triggered the seed.
func (r *MatchRepository) EffectiveLikeCounts(ctx context.Context, householdID uuid.UUID, beforeSeq int64) (map[uuid.UUID]int, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT name_id, COUNT(*) FROM (
		   SELECT DISTINCT ON (member_id, name_id) name_id, decision
		   FROM swipes
		   WHERE household_id = $1 AND seq < $2
		   ORDER BY member_id, name_id, swiped_at DESC, token DESC
		 ) winners
		 WHERE decision = 'like'
		 GROUP BY name_id`,
		householdID, beforeSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("query like counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var nameID uuid.UUID
		var n int
		if err := rows.Scan(&nameID, &n); err != nil {
			return nil, fmt.Errorf("scan like count: %w", err)
		}
		counts[nameID] = n
	}
	return counts, rows.Err()
}

// HouseholdExists reports whether the household is known.
func (r *MatchRepository) HouseholdExists(ctx context.Context, householdID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM households WHERE id = $1)`, householdID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check household: %w", err)
	}
	return exists, nil
}

// MemberCount returns the household's current roster size.
func (r *MatchRepository) MemberCount(ctx context.Context, householdID uuid.UUID) (int, error) {
	var n int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE household_id = $1`, householdID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}

// NameExists reports whether the name is visible to the household: global
// catalog names or the household's own custom names.
func (r *MatchRepository) NameExists(ctx context.Context, householdID, nameID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM names
		   WHERE id = $1 AND (household_id IS NULL OR household_id = $2)
		 )`,
		nameID, householdID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check name: %w", err)
	}
	return exists, nil
}
