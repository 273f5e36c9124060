package linkedapi

import (
	"context"
	"net/url"
	"time"

	"github.com/linkedapi/linkedapi-go/workflow"
)

const (
	usagePath = "/stats/actions"
	// MaxUsageWindow is the longest period the usage endpoint accepts.
	MaxUsageWindow = 30 * 24 * time.Hour
)

// UsageParams is the [Start, End] window of GetAPIUsage.
type UsageParams struct {
	Start time.Time
	End   time.Time
}

func (p UsageParams) validate() error {
	switch {
	case p.Start.IsZero() || p.End.IsZero():
		return workflow.NewRequestError(workflow.ErrorTypeInvalidRequestPayload, "start and end are required")
	case !p.End.After(p.Start):
		return workflow.NewRequestError(workflow.ErrorTypeInvalidRequestPayload, "end must be after start")
	case p.End.Sub(p.Start) > MaxUsageWindow:
		return workflow.NewRequestError(workflow.ErrorTypeInvalidRequestPayload, "usage window must not exceed 30 days")
	}
	return nil
}

// GetAPIUsage lists the actions executed by the account within the window.
// The window is checked before any request is made.
func (c *Client) GetAPIUsage(ctx context.Context, params UsageParams) ([]APIUsageAction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("start", params.Start.UTC().Format(time.RFC3339))
	query.Set("end", params.End.UTC().Format(time.RFC3339))

	env, err := c.transport.Get(ctx, usagePath+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var actions []APIUsageAction
	if err := workflow.Decode(env, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}
