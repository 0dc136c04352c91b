package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	catalogdomain "github.com/pawmatch/pawmatch/services/catalog/domain"
	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
	"github.com/pawmatch/pawmatch/services/catalog/domain/repositories"
)

// NameService adds household-scoped custom names to the catalog. Custom names
// live in a set like any other name, so filtering and queue building treat
// them uniformly.
type NameService struct {
	writer repositories.NameWriter
	source repositories.CatalogSource
}

// NewNameService returns a NameService wired with the given writer and source.
func NewNameService(writer repositories.NameWriter, source repositories.CatalogSource) *NameService {
	return &NameService{writer: writer, source: source}
}

// AddCustomName creates a custom name in the given set, visible only to the
// household. Gender defaults to neutral, species to any.
func (s *NameService) AddCustomName(ctx context.Context, householdID uuid.UUID, setSlug, text, species, gender string) (*models.Name, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty name", catalogdomain.ErrInvalidName)
	}
	if species == "" {
		species = "any"
	}
	if gender == "" {
		gender = "neutral"
	}

	set, err := s.findSet(ctx, setSlug)
	if err != nil {
		return nil, err
	}

	name := &models.Name{
		ID:          uuid.New(),
		Text:        text,
		Species:     strings.ToLower(species),
		Gender:      strings.ToLower(gender),
		SetID:       set.ID,
		SetSlug:     set.Slug,
		SetTitle:    set.Title,
		HouseholdID: householdID,
	}
	if err := s.writer.AddCustomName(ctx, name); err != nil {
		return nil, fmt.Errorf("add custom name: %w", err)
	}
	return name, nil
}

func (s *NameService) findSet(ctx context.Context, slug string) (*models.NameSet, error) {
	sets, err := s.source.Sets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	for i := range sets {
		if sets[i].Slug == slug {
			return &sets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", catalogdomain.ErrSetNotFound, slug)
}
