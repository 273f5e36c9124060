package workflow

import (
	"context"
	"encoding/json"
	"fmt"
)

// Transport performs authenticated calls against the Linked API.
//
// HTTP and network failures are reported in Envelope.Error as a
// RequestError. The returned error is reserved for requests that were
// never sent or whose context ended.
type Transport interface {
	Get(ctx context.Context, path string) (*Envelope, error)
	Post(ctx context.Context, path string, body any) (*Envelope, error)
	Delete(ctx context.Context, path string) (*Envelope, error)
}

// Decode unwraps an envelope into out. A failed envelope is returned as
// its RequestError; a successful one without a result is an unknownError.
func Decode(env *Envelope, out any) error {
	if env == nil {
		return NewRequestError(ErrorTypeUnknown, "empty response")
	}
	if env.Error != nil {
		return env.Error
	}
	if !env.Success {
		return NewRequestError(ErrorTypeUnknown, "request was not successful")
	}
	if isNull(env.Result) {
		return NewRequestError(ErrorTypeUnknown, "response has no result")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return &RequestError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("malformed result: %v", err),
		}
	}
	return nil
}
