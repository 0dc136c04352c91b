package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/services/household/domain/models"
)

// HouseholdRepository is the persistence interface for households and their
// member rosters. The domain layer owns this interface; infrastructure
// implements it.
type HouseholdRepository interface {
	Save(ctx context.Context, household *models.Household) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Household, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Household, error)

	AddMember(ctx context.Context, member *models.Member) error
	Members(ctx context.Context, householdID uuid.UUID) ([]*models.Member, error)

	// MemberCount returns the current roster size. The reconciler consults it
	// at evaluation time so roster growth never back-dates matches.
	MemberCount(ctx context.Context, householdID uuid.UUID) (int, error)

	// MemberOf reports whether the member belongs to the household.
	MemberOf(ctx context.Context, householdID, memberID uuid.UUID) (bool, error)

	UpdateDisplayName(ctx context.Context, memberID uuid.UUID, displayName string) error
}
