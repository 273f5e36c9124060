package linkedapi

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/linkedapi/linkedapi-go/workflow"
)

const resumeConcurrency = 4

// Restore waits for a workflow submitted earlier, possibly by another
// process, using the mapper registered for name. For custom workflows the
// data is the raw workflow.Completion.
func (c *Client) Restore(ctx context.Context, workflowID string, name OperationName, opts ...workflow.PollOption) (workflow.MappedResponse[any], error) {
	op, err := c.restored(name)
	if err != nil {
		return workflow.MappedResponse[any]{Errors: []workflow.ActionError{}}, err
	}
	return op.Result(ctx, workflowID, opts...)
}

// RestoreStatus is the non-blocking variant of Restore.
func (c *Client) RestoreStatus(ctx context.Context, workflowID string, name OperationName) (workflow.MappedResponse[any], bool, error) {
	op, err := c.restored(name)
	if err != nil {
		return workflow.MappedResponse[any]{Errors: []workflow.ActionError{}}, false, err
	}
	return op.Status(ctx, workflowID)
}

func (c *Client) restored(name OperationName) (*workflow.Operation[any, any], error) {
	mapper, err := NewMapper(name)
	if err != nil {
		return nil, err
	}
	if mapper == nil {
		mapper = workflow.Erase[workflow.Definition, workflow.Completion](workflow.PassthroughMapper{})
	}
	return workflow.NewOperation[any, any](string(name), mapper, c.transport, c.operationOptions()...), nil
}

// Restored is the outcome of resuming one journaled workflow.
type Restored struct {
	Pending  workflow.PendingWorkflow
	Response workflow.MappedResponse[any]
	Err      error
}

// ResumePending waits for every workflow in the journal. Failures are
// reported per workflow; the returned error is only set when the journal
// itself cannot be read.
func (c *Client) ResumePending(ctx context.Context, opts ...workflow.PollOption) ([]Restored, error) {
	if c.journal == nil {
		return nil, fmt.Errorf("linkedapi: no journal configured")
	}

	pending, err := c.journal.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending workflows: %w", err)
	}

	results := make([]Restored, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resumeConcurrency)

	for i, p := range pending {
		i, p := i, p
		g.Go(func() error {
			res, err := c.Restore(gctx, p.WorkflowID, OperationName(p.OperationName), opts...)
			results[i] = Restored{Pending: p, Response: res, Err: err}
			if err != nil {
				c.l.WarnContext(gctx, "Failed to resume workflow",
					"workflow_id", p.WorkflowID,
					"operation", p.OperationName,
					"error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
