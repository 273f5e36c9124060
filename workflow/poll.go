package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// errPollBudget signals that the poll timeout elapsed while the workflow
// was still running.
var errPollBudget = errors.New("poll budget exhausted")

// pollUntilTerminal calls fetch at a fixed interval until it returns a
// terminal response. Transient transport errors are retried while the
// consecutive failure budget lasts; every other error ends the loop.
func pollUntilTerminal(ctx context.Context, l *slog.Logger, opts PollOptions, fetch func(context.Context) (*Response, error)) (*Response, error) {
	deadline := time.Now().Add(opts.Timeout)
	failures := 0

	for attempt := 1; ; attempt++ {
		resp, err := fetch(ctx)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var reqErr *RequestError
			if !errors.As(err, &reqErr) || !reqErr.Transient() {
				return nil, err
			}
			failures++
			if failures > opts.MaxTransportFailures {
				l.ErrorContext(ctx, "Giving up polling after transport failures",
					"attempt", attempt,
					"failures", failures,
					"error", err)
				return nil, err
			}
			l.WarnContext(ctx, "Transient error while polling workflow",
				"attempt", attempt,
				"failures", failures,
				"error", err)

		case resp.WorkflowStatus.Terminal():
			l.DebugContext(ctx, "Workflow reached terminal state",
				"attempt", attempt,
				"status", resp.WorkflowStatus)
			return resp, nil

		default:
			failures = 0
			l.DebugContext(ctx, "Workflow still running", "attempt", attempt)
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, errPollBudget
		}
		if err := sleepWithContext(ctx, min(opts.PollInterval, remaining)); err != nil {
			return nil, err
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
