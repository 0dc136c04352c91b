package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/database"
)

// ReferenceGuard implements services.ReferenceGuard with direct lookups
// against the household and catalog tables. The ledger FK constraints are the
// backstop; this guard exists to reject bad references before the ledger
// transaction starts.
type ReferenceGuard struct {
	db *database.Database
}

// NewReferenceGuard returns a ReferenceGuard backed by the given pool.
func NewReferenceGuard(db *database.Database) *ReferenceGuard {
	return &ReferenceGuard{db: db}
}

// MemberInHousehold reports whether the member belongs to the household.
func (g *ReferenceGuard) MemberInHousehold(ctx context.Context, householdID, memberID uuid.UUID) (bool, error) {
	var exists bool
	if err := g.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE household_id = $1 AND id = $2)`,
		householdID, memberID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check member: %w", err)
	}
	return exists, nil
}

// NameExists reports whether the name is visible to the household: global
// catalog names or the household's own custom names.
func (g *ReferenceGuard) NameExists(ctx context.Context, householdID, nameID uuid.UUID) (bool, error) {
	var exists bool
	if err := g.db.DB().QueryRowContext(ctx,
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
