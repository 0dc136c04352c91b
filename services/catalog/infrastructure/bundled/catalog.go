// Package bundled ships an embedded, read-only name catalog so the candidate
// queue keeps working with no database and no network. It is the fallback
// CatalogSource; the Postgres catalog is authoritative when reachable.
package bundled

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
	domainsvcs "github.com/pawmatch/pawmatch/services/catalog/domain/services"
)

//go:embed names.json
var namesFS embed.FS

type bundledFile struct {
	Version  int          `json:"version"`
	NameSets []bundledSet `json:"name_sets"`
}

type bundledSet struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Language    string        `json:"language"`
	Style       string        `json:"style"`
	Names       []bundledName `json:"names"`
}

type bundledName struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Species string `json:"species,omitempty"` // defaults to "any"
}

// Catalog is an in-memory CatalogSource decoded from the embedded JSON.
// Name and set IDs are derived deterministically from their slugs so every
// process (and every offline device) agrees on them.
type Catalog struct {
	once  sync.Once
	err   error
	names []models.Name
	sets  []models.NameSet
}

// NewCatalog returns the bundled catalog. Decoding is lazy and happens once.
func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) load() error {
	c.once.Do(func() {
		raw, err := namesFS.ReadFile("names.json")
		if err != nil {
			c.err = fmt.Errorf("read bundled names: %w", err)
			return
		}
		var file bundledFile
		if err := json.Unmarshal(raw, &file); err != nil {
			c.err = fmt.Errorf("decode bundled names: %w", err)
			return
		}

		for si, set := range file.NameSets {
			setID := StableID("set:" + set.Slug)
			c.sets = append(c.sets, models.NameSet{
				ID:          setID,
				Slug:        set.Slug,
				Title:       set.Title,
				Description: set.Description,
				Language:    set.Language,
				Style:       set.Style,
				Position:    si,
			})
			for ni, n := range set.Names {
				species := n.Species
				if species == "" {
					species = models.FilterAny
				}
				c.names = append(c.names, models.Name{
					ID:       StableID("name:" + set.Slug + ":" + n.Name),
					Text:     n.Name,
					Species:  species,
					Gender:   n.Gender,
					SetID:    setID,
					SetSlug:  set.Slug,
					SetTitle: set.Title,
					Position: ni,
				})
			}
		}
	})
	return c.err
}

// List returns bundled names narrowed by the filter, in catalog order.
// Household-scoped custom names do not exist in the bundle, so householdID is
// only part of the CatalogSource contract here.
func (c *Catalog) List(_ context.Context, _ uuid.UUID, filter models.Filter) ([]models.Name, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	return domainsvcs.ApplyFilter(filter, c.names), nil
}

// Sets returns the bundled name sets in catalog order.
func (c *Catalog) Sets(_ context.Context) ([]models.NameSet, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	sets := make([]models.NameSet, len(c.sets))
	copy(sets, c.sets)
	sort.SliceStable(sets, func(i, j int) bool { return sets[i].Position < sets[j].Position })
	return sets, nil
}

// Exists reports whether the name is part of the bundle.
func (c *Catalog) Exists(_ context.Context, _ uuid.UUID, nameID uuid.UUID) (bool, error) {
	if err := c.load(); err != nil {
		return false, err
	}
	for _, n := range c.names {
		if n.ID == nameID {
			return true, nil
		}
	}
	return false, nil
}

// StableID derives a deterministic UUID from a catalog key. Exposed so the
// seed migration and tests can compute the same IDs the runtime uses.
func StableID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("pawmatch:"+key))
}
