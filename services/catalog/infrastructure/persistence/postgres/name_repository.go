package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pawmatch/pawmatch/pkg/database"
	catalogdomain "github.com/pawmatch/pawmatch/services/catalog/domain"
	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
)

// NameRepository implements the catalog CatalogSource and NameWriter against
// PostgreSQL. Filters are pushed into SQL so listing stays cheap for large
// catalogs; the semantics mirror the pure domain ApplyFilter.
type NameRepository struct {
	db *database.Database
}

// NewNameRepository returns a NameRepository backed by the given pool.
func NewNameRepository(db *database.Database) *NameRepository {
	return &NameRepository{db: db}
}

// List returns names visible to the household narrowed by the filter, in
// catalog order (set position, then name position). A contradictory filter
// yields an empty result without touching the database.
func (r *NameRepository) List(ctx context.Context, householdID uuid.UUID, filter models.Filter) ([]models.Name, error) {
	filter = filter.Normalized()
	if filter.Contradictory() {
		return nil, nil
	}

	query := strings.Builder{}
	query.WriteString(
		`SELECT n.id, n.name, n.species, n.gender, n.set_id, ns.slug, ns.title, COALESCE(n.household_id, '00000000-0000-0000-0000-000000000000'), n.position
		 FROM names n
		 JOIN name_sets ns ON ns.id = n.set_id
		 WHERE (n.household_id IS NULL OR n.household_id = $1)`)
	args := []any{householdID}

	if filter.Species != "" {
		args = append(args, filter.Species)
		fmt.Fprintf(&query, " AND (n.species = $%d OR n.species = 'any')", len(args))
	}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		fmt.Fprintf(&query, " AND (n.gender = $%d OR n.gender = 'neutral')", len(args))
	}
	if filter.StartsWith != "" {
		args = append(args, filter.StartsWith+"%")
		fmt.Fprintf(&query, " AND LOWER(n.name) LIKE $%d", len(args))
	}
	if filter.MinLength > 0 {
		args = append(args, filter.MinLength)
		fmt.Fprintf(&query, " AND LENGTH(n.name) >= $%d", len(args))
	}
	if filter.MaxLength > 0 {
		args = append(args, filter.MaxLength)
		fmt.Fprintf(&query, " AND LENGTH(n.name) <= $%d", len(args))
	}
	if len(filter.Sets) > 0 {
		placeholders := make([]string, len(filter.Sets))
		for i, slug := range filter.Sets {
			args = append(args, strings.ToLower(slug))
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		fmt.Fprintf(&query, " AND ns.slug IN (%s)", strings.Join(placeholders, ", "))
	}
	query.WriteString(" ORDER BY ns.position, n.position")

	rows, err := r.db.DB().QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query names: %w", err)
	}
	defer rows.Close()

	var names []models.Name
	for rows.Next() {
		var n models.Name
		if err := rows.Scan(&n.ID, &n.Text, &n.Species, &n.Gender, &n.SetID, &n.SetSlug, &n.SetTitle, &n.HouseholdID, &n.Position); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Sets returns all name sets in catalog order.
func (r *NameRepository) Sets(ctx context.Context) ([]models.NameSet, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, slug, title, COALESCE(description, ''), language, style, position, created_at
		 FROM name_sets ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("query name sets: %w", err)
	}
	defer rows.Close()

	var sets []models.NameSet
	for rows.Next() {
		var s models.NameSet
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.Language, &s.Style, &s.Position, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan name set: %w", err)
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// Exists reports whether the name is visible to the household.
func (r *NameRepository) Exists(ctx context.Context, householdID, nameID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM names
		   WHERE id = $2 AND (household_id IS NULL OR household_id = $1)
		 )`,
		householdID, nameID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check name exists: %w", err)
	}
	return exists, nil
}

// AddCustomName persists a household-scoped custom name at the end of its set.
// Returns ErrDuplicateName when the household already has the name.
func (r *NameRepository) AddCustomName(ctx context.Context, name *models.Name) error {
	if _, err := r.db.DB().ExecContext(ctx,
		`INSERT INTO names (id, name, species, gender, set_id, household_id, position)
		 VALUES ($1, $2, $3, $4, $5, $6,
		   (SELECT COALESCE(MAX(position), 0) + 1 FROM names WHERE set_id = $5))`,
		name.ID, name.Text, name.Species, name.Gender, name.SetID, name.HouseholdID,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return catalogdomain.ErrDuplicateName
			case "23503":
				return catalogdomain.ErrSetNotFound
			}
		}
		return fmt.Errorf("insert custom name: %w", err)
	}
	return nil
}
