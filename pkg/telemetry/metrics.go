package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the OTel counters emitted by core operations. Recording is
// best-effort observability: failures to create instruments fail startup, but
// Add calls never block or error business logic.
type Metrics struct {
	SwipesRecorded metric.Int64Counter
	MatchesFormed  metric.Int64Counter
	MatchesBroken  metric.Int64Counter
	SyncPushes     metric.Int64Counter
	SyncPulls      metric.Int64Counter
}

// NewMetrics registers the project's counters on the global meter provider.
// Call after Setup so the Prometheus/OTLP readers are in place.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("pawmatch")

	swipes, err := meter.Int64Counter("pawmatch_swipes_recorded_total",
		metric.WithDescription("Swipes that became the effective decision for their triple"))
	if err != nil {
		return nil, fmt.Errorf("swipes counter: %w", err)
	}
	formed, err := meter.Int64Counter("pawmatch_matches_formed_total",
		metric.WithDescription("MatchFormed events emitted"))
	if err != nil {
		return nil, fmt.Errorf("matches formed counter: %w", err)
	}
	broken, err := meter.Int64Counter("pawmatch_matches_broken_total",
		metric.WithDescription("MatchBroken events emitted"))
	if err != nil {
		return nil, fmt.Errorf("matches broken counter: %w", err)
	}
	pushes, err := meter.Int64Counter("pawmatch_sync_pushes_total",
		metric.WithDescription("Sync push batches processed"))
	if err != nil {
		return nil, fmt.Errorf("sync pushes counter: %w", err)
	}
	pulls, err := meter.Int64Counter("pawmatch_sync_pulls_total",
		metric.WithDescription("Sync pull requests served"))
	if err != nil {
		return nil, fmt.Errorf("sync pulls counter: %w", err)
	}

	return &Metrics{
		SwipesRecorded: swipes,
		MatchesFormed:  formed,
		MatchesBroken:  broken,
		SyncPushes:     pushes,
		SyncPulls:      pulls,
	}, nil
}

// CountSwipe records one effective swipe with its decision as an attribute.
func (m *Metrics) CountSwipe(ctx context.Context, decision string) {
	if m == nil {
		return
	}
	m.SwipesRecorded.Add(ctx, 1, metric.WithAttributes(attribute.String("decision", decision)))
}

// CountMatchFormed records one MatchFormed emission.
func (m *Metrics) CountMatchFormed(ctx context.Context) {
	if m == nil {
		return
	}
	m.MatchesFormed.Add(ctx, 1)
}

// CountMatchBroken records one MatchBroken emission.
func (m *Metrics) CountMatchBroken(ctx context.Context) {
	if m == nil {
		return
	}
	m.MatchesBroken.Add(ctx, 1)
}

// CountSyncPush records one processed push batch.
func (m *Metrics) CountSyncPush(ctx context.Context) {
	if m == nil {
		return
	}
	m.SyncPushes.Add(ctx, 1)
}

// CountSyncPull records one served pull.
func (m *Metrics) CountSyncPull(ctx context.Context) {
	if m == nil {
		return
	}
	m.SyncPulls.Add(ctx, 1)
}
