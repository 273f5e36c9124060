package linkedapi

import (
	"context"
	"fmt"

	"github.com/linkedapi/linkedapi-go/internal/config"
	"github.com/linkedapi/linkedapi-go/workflow"
)

const conversationsPollPath = "/conversations/poll"

// PollConversations returns the messages of several conversations in one
// call. Every conversation must have been synced once with SyncConversation
// or NvSyncConversation; otherwise the call fails with a RequestError of
// type conversationsNotSynced.
func (c *Client) PollConversations(ctx context.Context, requests []ConversationPollRequest) ([]ConversationPollResult, error) {
	if len(requests) == 0 {
		return nil, workflow.NewRequestError(workflow.ErrorTypeInvalidRequestPayload, "at least one conversation is required")
	}
	for i, req := range requests {
		if err := config.Validate(req); err != nil {
			return nil, &workflow.RequestError{
				Type:    workflow.ErrorTypeInvalidRequestPayload,
				Message: fmt.Sprintf("conversation %d: %v", i, err),
				Details: map[string]any{"index": i},
			}
		}
	}

	env, err := c.transport.Post(ctx, conversationsPollPath, requests)
	if err != nil {
		return nil, err
	}

	var results []ConversationPollResult
	if err := workflow.Decode(env, &results); err != nil {
		if workflow.IsRequestErrorType(err, workflow.ErrorTypeConversationsNotSynced) {
			c.l.WarnContext(ctx, "Conversations not synced", "count", len(requests))
		}
		return nil, err
	}
	return results, nil
}
