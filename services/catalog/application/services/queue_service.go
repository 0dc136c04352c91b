package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/logger"
	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
	"github.com/pawmatch/pawmatch/services/catalog/domain/repositories"
)

// SwipedSource lists the names a member holds an effective decision on. The
// swipe ledger is the primary source; the Redis replica serves as fallback
// so queue building keeps working against a possibly-stale local view when
// the primary store is unreachable.
type SwipedSource interface {
	EffectiveNameIDs(ctx context.Context, householdID, memberID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

// QueueService builds a member's candidate queue: filtered catalog minus the
// member's effectively-swiped names, in catalog order. Every call is
// independently consistent as of call time — there is no hidden cursor, so a
// swipe recorded a moment ago is excluded on the very next call.
type QueueService struct {
	catalog  repositories.CatalogSource
	filters  repositories.FilterStore
	swiped   SwipedSource
	fallback SwipedSource
	log      logger.Logger
}

// NewQueueService returns a QueueService. fallback may be nil when no replica
// is available (tests, offline tooling).
func NewQueueService(
	catalog repositories.CatalogSource,
	filters repositories.FilterStore,
	swiped SwipedSource,
	fallback SwipedSource,
	log logger.Logger,
) *QueueService {
	return &QueueService{catalog: catalog, filters: filters, swiped: swiped, fallback: fallback, log: log}
}

// NextCandidates returns up to limit undecided names for the member. A nil
// filter means "use the member's stored filter"; contradictory filters yield
// an empty queue, never an error.
func (s *QueueService) NextCandidates(ctx context.Context, householdID, memberID uuid.UUID, filter *models.Filter, limit int) ([]models.Name, error) {
	if limit <= 0 {
		return nil, nil
	}

	var f models.Filter
	if filter != nil {
		f = *filter
	} else {
		stored, err := s.filters.Get(ctx, memberID)
		if err != nil {
			// A lost filter only widens the queue; log and continue.
			s.log.WarnContext(ctx, "filter store unavailable, using zero filter",
				"member_id", memberID, "error", err)
		} else {
			f = stored
		}
	}

	names, err := s.catalog.List(ctx, householdID, f)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	decided, err := s.decidedNames(ctx, householdID, memberID)
	if err != nil {
		return nil, err
	}

	queue := make([]models.Name, 0, limit)
	for _, name := range names {
		if _, ok := decided[name.ID]; ok {
			continue
		}
		queue = append(queue, name)
		if len(queue) == limit {
			break
		}
	}
	return queue, nil
}

// Filter returns the member's stored filter.
func (s *QueueService) Filter(ctx context.Context, memberID uuid.UUID) (models.Filter, error) {
	filter, err := s.filters.Get(ctx, memberID)
	if err != nil {
		return models.Filter{}, fmt.Errorf("get filter: %w", err)
	}
	return filter, nil
}

// SetFilter stores the member's filter. Contradictory bounds are stored
// as-is: they are legal, they just produce an empty queue.
func (s *QueueService) SetFilter(ctx context.Context, memberID uuid.UUID, filter models.Filter) error {
	if err := s.filters.Put(ctx, memberID, filter.Normalized()); err != nil {
		return fmt.Errorf("put filter: %w", err)
	}
	return nil
}

// Sets returns the catalog's name sets.
func (s *QueueService) Sets(ctx context.Context) ([]models.NameSet, error) {
	sets, err := s.catalog.Sets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}

func (s *QueueService) decidedNames(ctx context.Context, householdID, memberID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	decided, err := s.swiped.EffectiveNameIDs(ctx, householdID, memberID)
	if err == nil {
		return decided, nil
	}
	if s.fallback == nil {
		return nil, fmt.Errorf("load effective swipes: %w", err)
	}

	s.log.WarnContext(ctx, "swipe ledger unavailable, using replica for queue exclusion",
		"household_id", householdID, "member_id", memberID, "error", err)
	decided, ferr := s.fallback.EffectiveNameIDs(ctx, householdID, memberID)
	if ferr != nil {
		return nil, fmt.Errorf("load effective swipes (replica fallback also failed: %w): %w", ferr, err)
	}
	return decided, nil
}
