package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/linkedapi/linkedapi-go/internal/config"
)

// Operation is a named, typed handle on one kind of workflow. It submits
// workflows, checks their status, waits for their results and cancels them.
type Operation[P, R any] struct {
	name      string
	mapper    Mapper[P, R]
	transport Transport

	l             *slog.Logger
	poll          PollOptions
	tracker       Tracker
	workflowsPath string
}

// Handle is the type-erased view of an Operation.
type Handle interface {
	Name() string
	ExecuteAny(ctx context.Context, params any) (string, error)
	StatusAny(ctx context.Context, workflowID string) (MappedResponse[any], bool, error)
	ResultAny(ctx context.Context, workflowID string, opts ...PollOption) (MappedResponse[any], error)
	Cancel(ctx context.Context, workflowID string) (bool, error)
}

func NewOperation[P, R any](name string, mapper Mapper[P, R], transport Transport, opts ...Option) *Operation[P, R] {
	s := settings{
		logger:        slog.Default(),
		poll:          DefaultPollOptions(),
		workflowsPath: defaultWorkflowsPath,
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Operation[P, R]{
		name:          name,
		mapper:        mapper,
		transport:     transport,
		l:             s.logger.With("operation", name),
		poll:          s.poll,
		tracker:       s.tracker,
		workflowsPath: s.workflowsPath,
	}
}

func (o *Operation[P, R]) Name() string { return o.name }

func (o *Operation[P, R]) Mapper() Mapper[P, R] { return o.mapper }

// Execute validates params, submits the workflow and returns its id
// without waiting for completion.
func (o *Operation[P, R]) Execute(ctx context.Context, params P) (string, error) {
	if err := config.Validate(params); err != nil {
		return "", invalidPayload(err)
	}

	def, err := o.mapper.MapRequest(params)
	if err != nil {
		return "", invalidPayload(err)
	}

	return o.submit(ctx, def)
}

func (o *Operation[P, R]) submit(ctx context.Context, def Definition) (string, error) {
	env, err := o.transport.Post(ctx, o.workflowsPath, def)
	if err != nil {
		return "", err
	}

	var result submitResult
	if err := Decode(env, &result); err != nil {
		o.l.WarnContext(ctx, "Workflow rejected", "action_type", def.ActionType(), "error", err)
		return "", err
	}
	if result.WorkflowID == "" {
		return "", NewRequestError(ErrorTypeUnknown, "response has no workflowId")
	}

	o.l.InfoContext(ctx, "Workflow submitted",
		"workflow_id", result.WorkflowID,
		"action_type", def.ActionType())

	if o.tracker != nil {
		pending := PendingWorkflow{
			WorkflowID:    result.WorkflowID,
			OperationName: o.name,
			SubmittedAt:   time.Now().UTC(),
		}
		if err := o.tracker.Track(ctx, pending); err != nil {
			o.l.WarnContext(ctx, "Failed to track workflow", "workflow_id", result.WorkflowID, "error", err)
		}
	}

	return result.WorkflowID, nil
}

// Status performs a single check. done is false while the workflow runs,
// in which case the response is empty.
func (o *Operation[P, R]) Status(ctx context.Context, workflowID string) (MappedResponse[R], bool, error) {
	resp, err := o.fetch(ctx, workflowID)
	if err != nil {
		return newResponse[R](), false, err
	}
	if !resp.WorkflowStatus.Terminal() {
		return newResponse[R](), false, nil
	}

	res, err := o.finish(ctx, resp)
	return res, true, err
}

// Result polls until the workflow is terminal and maps its completion. A
// *TimeoutError means the workflow is still running; calling Result again
// resumes waiting.
func (o *Operation[P, R]) Result(ctx context.Context, workflowID string, opts ...PollOption) (MappedResponse[R], error) {
	pollOpts := o.poll.with(opts...)

	resp, err := pollUntilTerminal(ctx, o.l.With("workflow_id", workflowID), pollOpts,
		func(ctx context.Context) (*Response, error) { return o.fetch(ctx, workflowID) })
	if errors.Is(err, errPollBudget) {
		return newResponse[R](), &TimeoutError{
			WorkflowID:    workflowID,
			OperationName: o.name,
			Timeout:       pollOpts.Timeout,
		}
	}
	if err != nil {
		return newResponse[R](), err
	}

	return o.finish(ctx, resp)
}

// Cancel asks the server to stop the workflow. It reports false for
// workflows that already finished.
func (o *Operation[P, R]) Cancel(ctx context.Context, workflowID string) (bool, error) {
	env, err := o.transport.Delete(ctx, o.workflowPath(workflowID))
	if err != nil {
		return false, err
	}

	var result cancelResult
	if err := Decode(env, &result); err != nil {
		return false, err
	}

	o.l.InfoContext(ctx, "Workflow cancel requested",
		"workflow_id", workflowID,
		"cancelled", result.Cancelled)

	if result.Cancelled {
		o.forget(ctx, workflowID)
	}
	return result.Cancelled, nil
}

func (o *Operation[P, R]) ExecuteAny(ctx context.Context, params any) (string, error) {
	if typed, ok := params.(P); ok {
		return o.Execute(ctx, typed)
	}

	def, err := Erase(o.mapper).MapRequest(params)
	if err != nil {
		return "", invalidPayload(err)
	}
	return o.submit(ctx, def)
}

func (o *Operation[P, R]) StatusAny(ctx context.Context, workflowID string) (MappedResponse[any], bool, error) {
	res, done, err := o.Status(ctx, workflowID)
	return eraseResponse(res), done, err
}

func (o *Operation[P, R]) ResultAny(ctx context.Context, workflowID string, opts ...PollOption) (MappedResponse[any], error) {
	res, err := o.Result(ctx, workflowID, opts...)
	return eraseResponse(res), err
}

func (o *Operation[P, R]) fetch(ctx context.Context, workflowID string) (*Response, error) {
	env, err := o.transport.Get(ctx, o.workflowPath(workflowID))
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := Decode(env, &resp); err != nil {
		return nil, err
	}
	if resp.WorkflowID == "" {
		resp.WorkflowID = workflowID
	}
	return &resp, nil
}

// finish maps a terminal response. Failed and empty workflows are forgotten
// since nothing can be recovered from them; an undecodable completion stays
// tracked so a fixed client can restore it.
func (o *Operation[P, R]) finish(ctx context.Context, resp *Response) (MappedResponse[R], error) {
	if resp.Failure != nil {
		o.forget(ctx, resp.WorkflowID)
		return newResponse[R](), &WorkflowError{
			WorkflowID: resp.WorkflowID,
			Reason:     resp.Failure.Reason,
			Message:    resp.Failure.Message,
		}
	}
	if resp.Completion == nil {
		o.forget(ctx, resp.WorkflowID)
		return newResponse[R](), NewRequestError(ErrorTypeUnknown,
			fmt.Sprintf("workflow %s finished without completion", resp.WorkflowID))
	}

	res, err := o.mapper.MapResponse(resp.Completion)
	if err != nil {
		return res, &RequestError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("undecodable completion for workflow %s", resp.WorkflowID),
			Details: map[string]any{"cause": err.Error()},
			Cause:   err,
		}
	}
	o.forget(ctx, resp.WorkflowID)

	if res.Errors == nil {
		res.Errors = []ActionError{}
	}
	return res, nil
}

func (o *Operation[P, R]) forget(ctx context.Context, workflowID string) {
	if o.tracker == nil {
		return
	}
	if err := o.tracker.Forget(ctx, workflowID); err != nil {
		o.l.WarnContext(ctx, "Failed to forget workflow", "workflow_id", workflowID, "error", err)
	}
}

func (o *Operation[P, R]) workflowPath(workflowID string) string {
	return o.workflowsPath + "/" + url.PathEscape(workflowID)
}

func invalidPayload(err error) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	out := NewRequestError(ErrorTypeInvalidRequestPayload, err.Error())
	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) {
		fields := make([]map[string]any, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, map[string]any{"field": f.Field, "rule": f.Rule, "param": f.Param})
		}
		out.Details = map[string]any{"fields": fields}
	}
	return out
}

func eraseResponse[R any](res MappedResponse[R]) MappedResponse[any] {
	out := MappedResponse[any]{Errors: res.Errors}
	if out.Errors == nil {
		out.Errors = []ActionError{}
	}
	if res.Data != nil {
		var data any = *res.Data
		out.Data = &data
	}
	return out
}
