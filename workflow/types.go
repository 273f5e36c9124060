package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Definition is the wire form of a workflow: a root action with its
// parameters and an optional list of chained child actions under "then".
type Definition map[string]any

// ActionType returns the root action type of the definition.
func (d Definition) ActionType() string {
	s, _ := d["actionType"].(string)
	return s
}

// Then returns the chained child actions, if any.
func (d Definition) Then() []Definition {
	switch then := d["then"].(type) {
	case []Definition:
		return then
	case []any:
		out := make([]Definition, 0, len(then))
		for _, item := range then {
			switch child := item.(type) {
			case Definition:
				out = append(out, child)
			case map[string]any:
				out = append(out, Definition(child))
			}
		}
		return out
	}
	return nil
}

// Status is the lifecycle state reported by the server for a workflow.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether polling should stop. Anything other than
// running is terminal.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

// ActionCompletion is the outcome of a single action.
type ActionCompletion struct {
	ActionType string          `json:"actionType"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      *ActionError    `json:"error,omitempty"`
	Success    *bool           `json:"success,omitempty"`
}

// HasData reports whether the action produced a non-null payload.
func (a ActionCompletion) HasData() bool {
	return !isNull(a.Data)
}

// ThenAction is one chained child action inside a completion's data.
type ThenAction struct {
	ActionType string          `json:"actionType"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      *ActionError    `json:"error,omitempty"`
	Success    bool            `json:"success"`
}

// Completion is the terminal payload of a workflow. Predefined operations
// complete with a single action; custom workflows with several root actions
// complete with a list.
type Completion struct {
	Actions []ActionCompletion
	// Multi is true when the server sent a list of actions.
	Multi bool
	raw   json.RawMessage
}

// NewCompletion builds a single-action completion.
func NewCompletion(action ActionCompletion) *Completion {
	return &Completion{Actions: []ActionCompletion{action}}
}

// Primary returns the first (for single completions, the only) action.
func (c *Completion) Primary() ActionCompletion {
	if c == nil || len(c.Actions) == 0 {
		return ActionCompletion{}
	}
	return c.Actions[0]
}

// Raw returns the payload exactly as received from the server.
func (c *Completion) Raw() json.RawMessage {
	if c == nil {
		return nil
	}
	if c.raw != nil {
		return c.raw
	}
	raw, err := c.MarshalJSON()
	if err != nil {
		return nil
	}
	return raw
}

func (c *Completion) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	c.raw = append(json.RawMessage(nil), trimmed...)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		c.Multi = true
		if err := json.Unmarshal(trimmed, &c.Actions); err != nil {
			return fmt.Errorf("decode completion list: %w", err)
		}
		return nil
	}

	var single ActionCompletion
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return fmt.Errorf("decode completion: %w", err)
	}
	c.Multi = false
	c.Actions = []ActionCompletion{single}
	return nil
}

func (c Completion) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	if c.Multi {
		return json.Marshal(c.Actions)
	}
	if len(c.Actions) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(c.Actions[0])
}

// Failure is reported instead of a completion when the workflow itself
// was aborted rather than one of its actions.
type Failure struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Response is the result of GET /workflows/{id}.
type Response struct {
	WorkflowID     string      `json:"workflowId"`
	WorkflowStatus Status      `json:"workflowStatus"`
	Completion     *Completion `json:"completion,omitempty"`
	Failure        *Failure    `json:"failure,omitempty"`
}

// Envelope wraps every Linked API HTTP response.
type Envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RequestError   `json:"error,omitempty"`
}

type submitResult struct {
	WorkflowID string `json:"workflowId"`
}

type cancelResult struct {
	Cancelled bool `json:"cancelled"`
}

// MappedResponse is the normalized result of an operation. Errors is never
// nil; Data is nil unless the primary action succeeded with a payload.
type MappedResponse[T any] struct {
	Data   *T            `json:"data,omitempty"`
	Errors []ActionError `json:"errors"`
}

// OK reports whether the primary action produced data and no action failed.
func (r MappedResponse[T]) OK() bool {
	return r.Data != nil && len(r.Errors) == 0
}

// NoParams is the parameter type of operations that take no input.
type NoParams struct{}

// Void is the result type of operations that return no data.
type Void struct{}

// PendingWorkflow identifies a submitted workflow that has not been
// observed in a terminal state yet.
type PendingWorkflow struct {
	WorkflowID    string    `json:"workflowId"`
	OperationName string    `json:"operationName"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
