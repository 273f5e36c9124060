// Package linkedapi is the Linked API client: one ready-to-use workflow
// operation per supported LinkedIn action, restoration of workflows by
// (id, operation name), conversation polling and API usage statistics.
package linkedapi

import (
	"fmt"
	"log/slog"

	"github.com/linkedapi/linkedapi-go/internal/config"
	"github.com/linkedapi/linkedapi-go/journal"
	"github.com/linkedapi/linkedapi-go/transport"
	"github.com/linkedapi/linkedapi-go/workflow"
)

// Config is the client configuration. Transport credentials are required
// unless a transport is supplied with WithTransport.
type Config struct {
	Transport transport.Config     `yaml:"transport" json:"transport"`
	Poll      workflow.PollOptions `yaml:"poll" json:"poll"`
}

type Option func(*Client)

// WithTransport replaces the HTTP transport, typically with a fake in tests.
func WithTransport(t workflow.Transport) Option {
	return func(c *Client) { c.transport = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.l = l
		}
	}
}

// WithJournal records every submitted workflow until it reaches a terminal
// state, so ResumePending can pick them up after a restart.
func WithJournal(s journal.Store) Option {
	return func(c *Client) { c.journal = s }
}

// Client exposes every catalog operation as a typed field.
type Client struct {
	CustomWorkflow            *workflow.Operation[workflow.Definition, workflow.Completion]
	SendMessage               *workflow.Operation[SendMessageParams, workflow.Void]
	SyncConversation          *workflow.Operation[SyncConversationParams, workflow.Void]
	CheckConnectionStatus     *workflow.Operation[CheckConnectionStatusParams, CheckConnectionStatusResult]
	SendConnectionRequest     *workflow.Operation[SendConnectionRequestParams, workflow.Void]
	WithdrawConnectionRequest *workflow.Operation[WithdrawConnectionRequestParams, workflow.Void]
	RetrievePendingRequests   *workflow.Operation[workflow.NoParams, []PendingRequest]
	RetrieveConnections       *workflow.Operation[RetrieveConnectionsParams, []Connection]
	RemoveConnection          *workflow.Operation[RemoveConnectionParams, workflow.Void]
	SearchCompanies           *workflow.Operation[SearchCompaniesParams, []SearchCompanyResult]
	SearchPeople              *workflow.Operation[SearchPeopleParams, []SearchPeopleResult]
	FetchPerson               *workflow.Operation[FetchPersonParams, Person]
	FetchCompany              *workflow.Operation[FetchCompanyParams, Company]
	FetchPost                 *workflow.Operation[FetchPostParams, Post]
	ReactToPost               *workflow.Operation[ReactToPostParams, workflow.Void]
	CommentOnPost             *workflow.Operation[CommentOnPostParams, workflow.Void]
	CreatePost                *workflow.Operation[CreatePostParams, CreatePostResult]
	RetrieveSSI               *workflow.Operation[workflow.NoParams, SSI]
	RetrievePerformance       *workflow.Operation[workflow.NoParams, Performance]
	NvSendMessage             *workflow.Operation[NvSendMessageParams, workflow.Void]
	NvSyncConversation        *workflow.Operation[NvSyncConversationParams, workflow.Void]
	NvSearchCompanies         *workflow.Operation[NvSearchCompaniesParams, []NvSearchCompanyResult]
	NvSearchPeople            *workflow.Operation[NvSearchPeopleParams, []NvSearchPeopleResult]
	NvFetchCompany            *workflow.Operation[NvFetchCompanyParams, NvCompany]
	NvFetchPerson             *workflow.Operation[NvFetchPersonParams, NvPerson]

	transport workflow.Transport
	journal   journal.Store
	poll      workflow.PollOptions
	l         *slog.Logger
	ops       map[OperationName]workflow.Handle
}

// New creates a client. All operations share one transport, logger, poll
// configuration and journal.
func New(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		l:   slog.Default(),
		ops: make(map[OperationName]workflow.Handle, len(OperationNames)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := config.Prepare(&cfg.Poll); err != nil {
		return nil, fmt.Errorf("poll config: %w", err)
	}
	c.poll = cfg.Poll

	if c.transport == nil {
		t, err := transport.New(cfg.Transport, transport.WithLogger(c.l))
		if err != nil {
			return nil, err
		}
		c.transport = t
	}

	c.CustomWorkflow = operation[workflow.Definition, workflow.Completion](c, OpCustomWorkflow, workflow.PassthroughMapper{})
	c.SendMessage = operation[SendMessageParams, workflow.Void](c, OpSendMessage, sendMessageMapper())
	c.SyncConversation = operation[SyncConversationParams, workflow.Void](c, OpSyncConversation, syncConversationMapper())
	c.CheckConnectionStatus = operation[CheckConnectionStatusParams, CheckConnectionStatusResult](c, OpCheckConnectionStatus, checkConnectionStatusMapper())
	c.SendConnectionRequest = operation[SendConnectionRequestParams, workflow.Void](c, OpSendConnectionRequest, sendConnectionRequestMapper())
	c.WithdrawConnectionRequest = operation[WithdrawConnectionRequestParams, workflow.Void](c, OpWithdrawConnectionRequest, withdrawConnectionRequestMapper())
	c.RetrievePendingRequests = operation[workflow.NoParams, []PendingRequest](c, OpRetrievePendingRequests, retrievePendingRequestsMapper())
	c.RetrieveConnections = operation[RetrieveConnectionsParams, []Connection](c, OpRetrieveConnections, retrieveConnectionsMapper())
	c.RemoveConnection = operation[RemoveConnectionParams, workflow.Void](c, OpRemoveConnection, removeConnectionMapper())
	c.SearchCompanies = operation[SearchCompaniesParams, []SearchCompanyResult](c, OpSearchCompanies, searchCompaniesMapper())
	c.SearchPeople = operation[SearchPeopleParams, []SearchPeopleResult](c, OpSearchPeople, searchPeopleMapper())
	c.FetchPerson = operation[FetchPersonParams, Person](c, OpFetchPerson, fetchPersonMapper())
	c.FetchCompany = operation[FetchCompanyParams, Company](c, OpFetchCompany, fetchCompanyMapper())
	c.FetchPost = operation[FetchPostParams, Post](c, OpFetchPost, fetchPostMapper())
	c.ReactToPost = operation[ReactToPostParams, workflow.Void](c, OpReactToPost, reactToPostMapper())
	c.CommentOnPost = operation[CommentOnPostParams, workflow.Void](c, OpCommentOnPost, commentOnPostMapper())
	c.CreatePost = operation[CreatePostParams, CreatePostResult](c, OpCreatePost, createPostMapper())
	c.RetrieveSSI = operation[workflow.NoParams, SSI](c, OpRetrieveSSI, retrieveSSIMapper())
	c.RetrievePerformance = operation[workflow.NoParams, Performance](c, OpRetrievePerformance, retrievePerformanceMapper())
	c.NvSendMessage = operation[NvSendMessageParams, workflow.Void](c, OpNvSendMessage, nvSendMessageMapper())
	c.NvSyncConversation = operation[NvSyncConversationParams, workflow.Void](c, OpNvSyncConversation, nvSyncConversationMapper())
	c.NvSearchCompanies = operation[NvSearchCompaniesParams, []NvSearchCompanyResult](c, OpNvSearchCompanies, nvSearchCompaniesMapper())
	c.NvSearchPeople = operation[NvSearchPeopleParams, []NvSearchPeopleResult](c, OpNvSearchPeople, nvSearchPeopleMapper())
	c.NvFetchCompany = operation[NvFetchCompanyParams, NvCompany](c, OpNvFetchCompany, nvFetchCompanyMapper())
	c.NvFetchPerson = operation[NvFetchPersonParams, NvPerson](c, OpNvFetchPerson, nvFetchPersonMapper())

	return c, nil
}

func operation[P, R any](c *Client, name OperationName, m workflow.Mapper[P, R]) *workflow.Operation[P, R] {
	op := workflow.NewOperation(string(name), m, c.transport, c.operationOptions()...)
	c.ops[name] = op
	return op
}

func (c *Client) operationOptions() []workflow.Option {
	opts := []workflow.Option{
		workflow.WithLogger(c.l),
		workflow.WithPollOptions(c.poll),
	}
	if c.journal != nil {
		opts = append(opts, workflow.WithTracker(c.journal))
	}
	return opts
}

// Operations returns the catalog keyed by operation name.
func (c *Client) Operations() map[OperationName]workflow.Handle {
	out := make(map[OperationName]workflow.Handle, len(c.ops))
	for name, op := range c.ops {
		out[name] = op
	}
	return out
}

// Operation looks up a catalog operation by name.
func (c *Client) Operation(name OperationName) (workflow.Handle, error) {
	op, ok := c.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, name)
	}
	return op, nil
}

// Journal returns the configured journal, or nil.
func (c *Client) Journal() journal.Store {
	return c.journal
}
