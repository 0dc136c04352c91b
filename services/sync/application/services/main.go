package services

import (
	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/cache"
	swipesvcs "github.com/pawmatch/pawmatch/services/swipe/application/services"
	swipepg "github.com/pawmatch/pawmatch/services/swipe/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Sync *SyncService
}

// New wires all sync application services with infrastructure from the
// Application container. Pushed swipes go through the same swipe service as
// online swipes, so reference checks, idempotency and outbox publication
// behave identically for both paths.
func New(a *app.Application) *Services {
	ledger := swipepg.NewLedgerRepository(a.Db, a.EventBus)
	guard := swipepg.NewReferenceGuard(a.Db)
	recorder := swipesvcs.NewSwipeService(ledger, guard, a.Metrics)
	return &Services{
		Sync: NewSyncService(
			recorder,
			ledger,
			guard,
			cache.NewSwipeReplica(a.Redis),
			cache.NewPendingQueue(a.Redis),
			a.Metrics,
			a.Logger,
		),
	}
}
