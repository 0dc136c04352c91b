package services

import (
	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/services/household/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Household *HouseholdService
}

// New wires all household application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewHouseholdRepository(a.Db)
	return &Services{
		Household: NewHouseholdService(repo),
	}
}
