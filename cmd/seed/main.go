// Command seed loads the bundled name catalog into Postgres. Idempotent:
// rows are upserted by their deterministic IDs, so re-running after a catalog
// update only adds or refreshes names.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/config"
	"github.com/pawmatch/pawmatch/pkg/database"
	"github.com/pawmatch/pawmatch/pkg/logger"
	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
	"github.com/pawmatch/pawmatch/services/catalog/infrastructure/bundled"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	catalog := bundled.NewCatalog()
	sets, err := catalog.Sets(ctx)
	if err != nil {
		log.Error("failed to load bundled sets", "error", err)
		os.Exit(1)
	}
	var names []models.Name
	if names, err = catalog.List(ctx, uuid.Nil, models.Filter{}); err != nil {
		log.Error("failed to load bundled names", "error", err)
		os.Exit(1)
	}

	for _, set := range sets {
		if _, err := pool.DB().ExecContext(ctx,
			`INSERT INTO name_sets (id, slug, title, description, language, style, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO UPDATE
			 SET title = EXCLUDED.title, description = EXCLUDED.description,
			     language = EXCLUDED.language, style = EXCLUDED.style,
			     position = EXCLUDED.position`,
			set.ID, set.Slug, set.Title, set.Description, set.Language, set.Style, set.Position,
		); err != nil {
			log.Error("failed to upsert name set", "slug", set.Slug, "error", err)
			os.Exit(1)
		}
	}

	for _, name := range names {
		if _, err := pool.DB().ExecContext(ctx,
			`INSERT INTO names (id, name, species, gender, set_id, household_id, position)
			 VALUES ($1, $2, $3, $4, $5, NULL, $6)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name, species = EXCLUDED.species,
			     gender = EXCLUDED.gender, position = EXCLUDED.position`,
			name.ID, name.Text, name.Species, name.Gender, name.SetID, name.Position,
		); err != nil {
			log.Error("failed to upsert name", "name", name.Text, "error", err)
			os.Exit(1)
		}
	}

	log.Info("catalog seeded", "sets", len(sets), "names", len(names))
}
