package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/services/household/domain/models"
	"github.com/pawmatch/pawmatch/services/household/domain/repositories"
)

// HouseholdService orchestrates household creation, joining and roster reads.
type HouseholdService struct {
	repo repositories.HouseholdRepository
}

// NewHouseholdService returns a HouseholdService wired with the given repository.
func NewHouseholdService(repo repositories.HouseholdRepository) *HouseholdService {
	return &HouseholdService{repo: repo}
}

// Create creates a household and its founding member. Returns both so the
// caller can hand the invite code to the other members.
func (s *HouseholdService) Create(ctx context.Context, displayName string) (*models.Household, *models.Member, error) {
	household := models.NewHousehold()
	if err := s.repo.Save(ctx, household); err != nil {
		return nil, nil, fmt.Errorf("save household: %w", err)
	}

	member := models.NewMember(household.ID, strings.TrimSpace(displayName))
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, nil, fmt.Errorf("add founding member: %w", err)
	}
	return household, member, nil
}

// Join adds a member to the household behind the invite code. Codes are
// case-insensitive on the wire.
func (s *HouseholdService) Join(ctx context.Context, inviteCode, displayName string) (*models.Household, *models.Member, error) {
	household, err := s.repo.GetByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(inviteCode)))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve invite code: %w", err)
	}

	member := models.NewMember(household.ID, strings.TrimSpace(displayName))
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, nil, fmt.Errorf("add member: %w", err)
	}
	return household, member, nil
}

// Get returns the household.
func (s *HouseholdService) Get(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	household, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	return household, nil
}

// Members returns the household roster.
func (s *HouseholdService) Members(ctx context.Context, householdID uuid.UUID) ([]*models.Member, error) {
	members, err := s.repo.Members(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Rename changes a member's display name.
func (s *HouseholdService) Rename(ctx context.Context, memberID uuid.UUID, displayName string) error {
	if err := s.repo.UpdateDisplayName(ctx, memberID, strings.TrimSpace(displayName)); err != nil {
		return fmt.Errorf("rename member: %w", err)
	}
	return nil
}
