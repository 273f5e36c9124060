package workflow

import "context"

// Tracker is notified when a workflow is submitted and when it is observed
// in a terminal state, so that pending workflows can be restored later.
// Tracker failures are logged and never fail the operation.
type Tracker interface {
	Track(ctx context.Context, pending PendingWorkflow) error
	Forget(ctx context.Context, workflowID string) error
}
