// Package workflows contains the Temporal workflow that drains the pending
// push queue. When no Temporal server is configured, the worker falls back
// to a plain ticker calling the same FlushPending path.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/pawmatch/pawmatch/services/sync/application/services"
)

const (
	// PushRetryTaskQueue is the Temporal task queue for sync retry work.
	PushRetryTaskQueue = "pawmatch-sync-retry"

	// PushRetryWorkflowID keys the singleton cron workflow so restarts do
	// not stack duplicate schedules.
	PushRetryWorkflowID = "sync-push-retry"
)

// FlushActivities holds the activity implementations for the push-retry
// workflow. Registered on the worker alongside PushRetryWorkflow.
type FlushActivities struct {
	Sync *appsvcs.SyncService
}

// FlushPending drains parked swipes back into the ledger. Returns the number
// of swipes replayed so the workflow history shows progress.
func (a *FlushActivities) FlushPending(ctx context.Context) (int, error) {
	return a.Sync.FlushPending(ctx)
}

// PushRetryWorkflow runs one drain of the pending queue. It is scheduled as
// a cron workflow; Temporal handles the interval, overlap prevention and
// per-run retry.
func PushRetryWorkflow(ctx workflow.Context) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	})

	var activities *FlushActivities
	var flushed int
	if err := workflow.ExecuteActivity(ctx, activities.FlushPending).Get(ctx, &flushed); err != nil {
		return err
	}
	if flushed > 0 {
		workflow.GetLogger(ctx).Info("replayed parked swipes", "count", flushed)
	}
	return nil
}
