package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
)

// CatalogSource supplies the ordered candidate name set. It is read-only for
// the core: a Postgres catalog, the bundled offline catalog and test fakes
// all satisfy it.
type CatalogSource interface {
	// List returns names visible to the household (global plus its custom
	// names) narrowed by the filter, in catalog order. A contradictory
	// filter yields an empty slice, not an error.
	List(ctx context.Context, householdID uuid.UUID, filter models.Filter) ([]models.Name, error)

	// Sets returns all name sets in catalog order.
	Sets(ctx context.Context) ([]models.NameSet, error)

	// Exists reports whether the name is visible to the household.
	Exists(ctx context.Context, householdID, nameID uuid.UUID) (bool, error)
}

// NameWriter adds household-scoped custom names. Only the Postgres catalog
// implements it; the bundled catalog is immutable.
type NameWriter interface {
	AddCustomName(ctx context.Context, name *models.Name) error
}

// FilterStore supplies and stores each member's current filter. Backed by
// Redis; a missing entry means the zero filter (match everything).
type FilterStore interface {
	Get(ctx context.Context, memberID uuid.UUID) (models.Filter, error)
	Put(ctx context.Context, memberID uuid.UUID, filter models.Filter) error
}
