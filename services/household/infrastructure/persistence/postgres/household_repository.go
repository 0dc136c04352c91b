package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pawmatch/pawmatch/pkg/database"
	householddomain "github.com/pawmatch/pawmatch/services/household/domain"
	"github.com/pawmatch/pawmatch/services/household/domain/models"
)

// HouseholdRepository implements repositories.HouseholdRepository against PostgreSQL.
type HouseholdRepository struct {
	db *database.Database
}

// NewHouseholdRepository returns a HouseholdRepository backed by the given pool.
func NewHouseholdRepository(db *database.Database) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

// Save persists a new household.
func (r *HouseholdRepository) Save(ctx context.Context, household *models.Household) error {
	if _, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO households (id, invite_code, created_at) VALUES ($1, $2, $3)`,
		household.ID, household.InviteCode, household.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert household: %w", err)
	}
	return nil
}

// GetByID retrieves a household. Returns ErrHouseholdNotFound if not found.
func (r *HouseholdRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	var h models.Household
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, invite_code, created_at FROM households WHERE id = $1`, id,
	).Scan(&h.ID, &h.InviteCode, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, householddomain.ErrHouseholdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query household: %w", err)
	}
	return &h, nil
}

// GetByInviteCode retrieves a household by its invite code.
// Returns ErrInviteCodeNotFound if no household carries the code.
func (r *HouseholdRepository) GetByInviteCode(ctx context.Context, code string) (*models.Household, error) {
	var h models.Household
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, invite_code, created_at FROM households WHERE invite_code = $1`, code,
	).Scan(&h.ID, &h.InviteCode, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, householddomain.ErrInviteCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query household by invite code: %w", err)
	}
	return &h, nil
}

// AddMember persists a member joining a household.
// Returns ErrAlreadyMember on duplicate membership.
func (r *HouseholdRepository) AddMember(ctx context.Context, member *models.Member) error {
	if _, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO members (id, household_id, display_name, joined_at) VALUES ($1, $2, $3, $4)`,
		member.ID, member.HouseholdID, member.DisplayName, member.JoinedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return householddomain.ErrAlreadyMember
			case "23503":
				return householddomain.ErrHouseholdNotFound
			}
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// Members returns the household roster in join order.
func (r *HouseholdRepository) Members(ctx context.Context, householdID uuid.UUID) ([]*models.Member, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, household_id, display_name, joined_at
		 FROM members WHERE household_id = $1 ORDER BY joined_at`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.HouseholdID, &m.DisplayName, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// MemberCount returns the current roster size.
func (r *HouseholdRepository) MemberCount(ctx context.Context, householdID uuid.UUID) (int, error) {
	var n int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members WHERE household_id = $1`, householdID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}

// MemberOf reports whether the member belongs to the household.
func (r *HouseholdRepository) MemberOf(ctx context.Context, householdID, memberID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE household_id = $1 AND id = $2)`,
		householdID, memberID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check member: %w", err)
	}
	return exists, nil
}

// UpdateDisplayName changes a member's display name.
func (r *HouseholdRepository) UpdateDisplayName(ctx context.Context, memberID uuid.UUID, displayName string) error {
	res, err := r.db.DB().ExecContext(ctx,
		`UPDATE members SET display_name = $2 WHERE id = $1`,
		memberID, displayName,
	)
	if err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return householddomain.ErrMemberNotFound
	}
	return nil
}
