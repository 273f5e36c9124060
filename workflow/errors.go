package workflow

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType classifies request-level failures reported by Linked API or
// produced by the transport.
type ErrorType string

const (
	ErrorTypeLinkedAPITokenRequired      ErrorType = "linkedApiTokenRequired"
	ErrorTypeInvalidLinkedAPIToken       ErrorType = "invalidLinkedApiToken"
	ErrorTypeIdentificationTokenRequired ErrorType = "identificationTokenRequired"
	ErrorTypeInvalidIdentificationToken  ErrorType = "invalidIdentificationToken"
	ErrorTypeSubscriptionRequired        ErrorType = "subscriptionRequired"
	ErrorTypeInvalidRequestPayload       ErrorType = "invalidRequestPayload"
	ErrorTypeInvalidWorkflow             ErrorType = "invalidWorkflow"
	ErrorTypePlusPlanRequired            ErrorType = "plusPlanRequired"
	ErrorTypeLinkedInAccountSignedOut    ErrorType = "linkedinAccountSignedOut"
	ErrorTypeLanguageNotSupported        ErrorType = "languageNotSupported"
	ErrorTypeConversationsNotSynced      ErrorType = "conversationsNotSynced"

	// Produced client side.
	ErrorTypeHTTP    ErrorType = "httpError"
	ErrorTypeNetwork ErrorType = "networkError"
	ErrorTypeUnknown ErrorType = "unknownError"
)

// RequestError is a failure of the request itself: authentication,
// subscription, payload validation or transport.
type RequestError struct {
	Type    ErrorType      `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	// Cause is the client side error behind the failure, if any.
	Cause error `json:"-"`
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	if e.Cause != nil {
		return fmt.Sprintf("linkedapi: %s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("linkedapi: %s: %s", e.Type, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Cause }

// Transient reports whether retrying the same request may succeed.
func (e *RequestError) Transient() bool {
	return e.Type == ErrorTypeHTTP || e.Type == ErrorTypeNetwork
}

// NewRequestError builds a RequestError without details.
func NewRequestError(t ErrorType, message string) *RequestError {
	return &RequestError{Type: t, Message: message}
}

// IsRequestErrorType reports whether err wraps a RequestError of type t.
func IsRequestErrorType(err error, t ErrorType) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Type == t
}

// WorkflowError reports that the workflow as a whole was aborted.
type WorkflowError struct {
	WorkflowID string `json:"workflowId"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("linkedapi: workflow %s failed: %s: %s", e.WorkflowID, e.Reason, e.Message)
}

// ActionErrorType classifies per-action failures. Action errors are data,
// returned in MappedResponse.Errors, not Go errors.
type ActionErrorType string

const (
	ActionErrorPersonNotFound         ActionErrorType = "personNotFound"
	ActionErrorSelfProfileNotAllowed  ActionErrorType = "selfProfileNotAllowed"
	ActionErrorMessagingNotAllowed    ActionErrorType = "messagingNotAllowed"
	ActionErrorAlreadyPending         ActionErrorType = "alreadyPending"
	ActionErrorAlreadyConnected       ActionErrorType = "alreadyConnected"
	ActionErrorEmailRequired          ActionErrorType = "emailRequired"
	ActionErrorRequestNotAllowed      ActionErrorType = "requestNotAllowed"
	ActionErrorNotPending             ActionErrorType = "notPending"
	ActionErrorRetrievingNotAllowed   ActionErrorType = "retrievingNotAllowed"
	ActionErrorConnectionNotFound     ActionErrorType = "connectionNotFound"
	ActionErrorSearchingNotAllowed    ActionErrorType = "searchingNotAllowed"
	ActionErrorCompanyNotFound        ActionErrorType = "companyNotFound"
	ActionErrorPostNotFound           ActionErrorType = "postNotFound"
	ActionErrorCommentingNotAllowed   ActionErrorType = "commentingNotAllowed"
	ActionErrorNoSalesNavigator       ActionErrorType = "noSalesNavigator"
	ActionErrorConversationsNotSynced ActionErrorType = "conversationsNotSynced"
)

// ActionError is the failure of one action inside a completed workflow.
type ActionError struct {
	Type    ActionErrorType `json:"type"`
	Message string          `json:"message"`
}

func (e ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrWorkflowTimeout is matched by every TimeoutError.
var ErrWorkflowTimeout = errors.New("linkedapi: workflow timed out")

// TimeoutError is returned by Result when the workflow is still running
// after the poll budget is spent. The workflow keeps running server side.
type TimeoutError struct {
	WorkflowID    string
	OperationName string
	Timeout       time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Workflow %s timed out after %s. Call %s.Result() again to continue checking the workflow.",
		e.WorkflowID, e.Timeout, e.OperationName)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrWorkflowTimeout
}
