package services

import (
	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/services/swipe/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Swipe *SwipeService
}

// New wires all swipe application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	ledger := postgres.NewLedgerRepository(a.Db, a.EventBus)
	guard := postgres.NewReferenceGuard(a.Db)
	return &Services{
		Swipe: NewSwipeService(ledger, guard, a.Metrics),
	}
}
