package services

import (
	"github.com/pawmatch/pawmatch/pkg/app"
	"github.com/pawmatch/pawmatch/pkg/config"
	"github.com/pawmatch/pawmatch/services/match/domain/models"
	domainsvcs "github.com/pawmatch/pawmatch/services/match/domain/services"
	"github.com/pawmatch/pawmatch/services/match/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Match *MatchService
}

// New wires all match application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewMatchRepository(a.Db)
	policy := PolicyFromConfig(a.Config)
	reconciler := domainsvcs.NewReconciler(policy, repo, repo, repo)
	return &Services{
		Match: NewMatchService(reconciler, repo, repo, policy, a.EventBus, a.Metrics, a.Logger),
	}
}

// PolicyFromConfig maps MATCH_POLICY/MATCH_QUORUM to a models.Policy.
// Unknown values fall back to requiring all members.
func PolicyFromConfig(cfg *config.Config) models.Policy {
	if cfg != nil && cfg.MatchPolicy == config.MatchPolicyQuorum {
		return models.Quorum{N: cfg.MatchQuorum}
	}
	return models.AllMembers{}
}
