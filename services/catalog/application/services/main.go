package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/cache"
	"github.com/pawmatch/pawmatch/services/catalog/infrastructure/persistence/postgres"
	swipepg "github.com/pawmatch/pawmatch/services/swipe/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Queue *QueueService
	Names *NameService
}

// New wires all catalog application services with infrastructure from the
// Application container. The queue builder excludes swiped names from the
// ledger first and falls back to the Redis replica when the ledger is down.
func New(a *app.Application) *Services {
	repo := postgres.NewNameRepository(a.Db)
	filters := cache.NewFilterStore(a.Redis)
	ledger := &ledgerSwipedSource{ledger: swipepg.NewLedgerRepository(a.Db, nil)}
	replica := &replicaSwipedSource{replica: cache.NewSwipeReplica(a.Redis)}
	return &Services{
		Queue: NewQueueService(repo, filters, ledger, replica, a.Logger),
		Names: NewNameService(repo, repo),
	}
}

// ledgerSwipedSource adapts the swipe ledger to SwipedSource.
type ledgerSwipedSource struct {
	ledger *swipepg.LedgerRepository
}

func (s *ledgerSwipedSource) EffectiveNameIDs(ctx context.Context, householdID, memberID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	decisions, err := s.ledger.EffectiveDecisions(ctx, householdID, memberID)
	if err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]struct{}, len(decisions))
	for nameID := range decisions {
		ids[nameID] = struct{}{}
	}
	return ids, nil
}

// replicaSwipedSource adapts the Redis replica to SwipedSource.
type replicaSwipedSource struct {
	replica *cache.SwipeReplica
}

func (s *replicaSwipedSource) EffectiveNameIDs(ctx context.Context, householdID, memberID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	decisions, err := s.replica.Decisions(ctx, householdID, memberID)
	if err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]struct{}, len(decisions))
	for nameID := range decisions {
		ids[nameID] = struct{}{}
	}
	return ids, nil
}
