package linkedapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/linkedapi/linkedapi-go/journal"
	"github.com/linkedapi/linkedapi-go/linkedapitest"
	"github.com/linkedapi/linkedapi-go/workflow"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastPoll() workflow.PollOptions {
	return workflow.PollOptions{
		PollInterval:         2 * time.Millisecond,
		Timeout:              5 * time.Second,
		MaxTransportFailures: 3,
	}
}

func newTestClient(t *testing.T, srv *linkedapitest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	c, err := New(Config{Transport: srv.TransportConfig(), Poll: fastPoll()}, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{})
	if err == nil {
		t.Fatal("Expected an error without tokens")
	}
}

func TestCatalog_NamesMatchRegistry(t *testing.T) {
	srv := linkedapitest.New(t)
	c := newTestClient(t, srv)

	ops := c.Operations()
	if len(ops) != len(OperationNames) {
		t.Fatalf("Expected %d operations, got %d", len(OperationNames), len(ops))
	}

	for _, name := range OperationNames {
		op, ok := ops[name]
		if !ok {
			t.Errorf("Expected operation %s in the catalog", name)
			continue
		}
		if op.Name() != string(name) {
			t.Errorf("Expected operation name %s, got %s", name, op.Name())
		}
		if !name.Valid() {
			t.Errorf("Expected %s to be valid", name)
		}

		mapper, err := NewMapper(name)
		if err != nil {
			t.Errorf("NewMapper(%s) failed: %v", name, err)
		}
		if name == OpCustomWorkflow {
			if mapper != nil {
				t.Errorf("Expected no registered mapper for customWorkflow, got %T", mapper)
			}
		} else if mapper == nil {
			t.Errorf("Expected a registered mapper for %s", name)
		}
	}

	seen := map[OperationName]bool{}
	for _, name := range OperationNames {
		if seen[name] {
			t.Errorf("Duplicate operation name %s", name)
		}
		seen[name] = true
	}
}

func TestNewMapper_Unknown(t *testing.T) {
	mapper, err := NewMapper("fetchEverything")
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Expected ErrUnsupportedOperation, got %v", err)
	}
	if mapper != nil {
		t.Errorf("Expected nil mapper, got %T", mapper)
	}
	if OperationName("fetchEverything").Valid() {
		t.Error("Expected unknown name to be invalid")
	}

	srv := linkedapitest.New(t)
	c := newTestClient(t, srv)
	if _, err := c.Operation("fetchEverything"); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Expected ErrUnsupportedOperation from Operation, got %v", err)
	}
}

func TestNewMapper_ActionTypes(t *testing.T) {
	tests := map[OperationName]string{
		OpSendMessage:               "st.sendMessage",
		OpSyncConversation:          "st.syncConversation",
		OpCheckConnectionStatus:     "st.checkConnectionStatus",
		OpSendConnectionRequest:     "st.sendConnectionRequest",
		OpWithdrawConnectionRequest: "st.withdrawConnectionRequest",
		OpRetrievePendingRequests:   "st.retrievePendingRequests",
		OpRetrieveConnections:       "st.retrieveConnections",
		OpRemoveConnection:          "st.removeConnection",
		OpSearchCompanies:           "st.searchCompanies",
		OpSearchPeople:              "st.searchPeople",
		OpFetchPerson:               "st.openPersonPage",
		OpFetchCompany:              "st.openCompanyPage",
		OpFetchPost:                 "st.openPost",
		OpReactToPost:               "st.reactToPost",
		OpCommentOnPost:             "st.commentOnPost",
		OpCreatePost:                "st.createPost",
		OpRetrieveSSI:               "st.retrieveSSI",
		OpRetrievePerformance:       "st.retrievePerformance",
		OpNvSendMessage:             "nv.sendMessage",
		OpNvSyncConversation:        "nv.syncConversation",
		OpNvSearchCompanies:         "nv.searchCompanies",
		OpNvSearchPeople:            "nv.searchPeople",
		OpNvFetchCompany:            "nv.openCompanyPage",
		OpNvFetchPerson:             "nv.openPersonPage",
	}

	if len(tests) != len(OperationNames)-1 {
		t.Fatalf("Expected an action type for every non-custom operation, have %d", len(tests))
	}

	for name, expected := range tests {
		t.Run(string(name), func(t *testing.T) {
			mapper, err := NewMapper(name)
			if err != nil {
				t.Fatalf("NewMapper failed: %v", err)
			}
			unwrapper, ok := mapper.(interface{ Unwrap() any })
			if !ok {
				t.Fatalf("Expected an unwrappable mapper, got %T", mapper)
			}
			typed, ok := unwrapper.Unwrap().(interface{ ActionType() string })
			if !ok {
				t.Fatalf("Expected a mapper with an action type, got %T", unwrapper.Unwrap())
			}
			if typed.ActionType() != expected {
				t.Errorf("Expected action type %s, got %s", expected, typed.ActionType())
			}
		})
	}
}

func TestNewMapper_Chains(t *testing.T) {
	targets := func(chain []workflow.ChainedAction) []string {
		out := make([]string, 0, len(chain))
		for _, c := range chain {
			out = append(out, c.Target)
		}
		sort.Strings(out)
		return out
	}

	tests := []struct {
		name     string
		chain    []workflow.ChainedAction
		expected []string
	}{
		{"fetchPerson", fetchPersonMapper().Chain(), []string{"comments", "education", "experiences", "languages", "posts", "reactions", "skills"}},
		{"fetchCompany", fetchCompanyMapper().Chain(), []string{"dms", "employees", "posts"}},
		{"nvFetchCompany", nvFetchCompanyMapper().Chain(), []string{"dms", "employees"}},
		{"nvFetchPerson", nvFetchPersonMapper().Chain(), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := targets(tt.chain); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected targets %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestClient_FetchPerson(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.RunningPolls(2)
	srv.Respond("st.openPersonPage", map[string]any{
		"actionType": "st.openPersonPage",
		"success":    true,
		"data": map[string]any{
			"name":      "Ada Lovelace",
			"publicUrl": "https://www.linkedin.com/in/ada",
			"headline":  "Analyst",
			"then": []any{
				map[string]any{
					"actionType": "st.retrievePersonExperience",
					"success":    true,
					"data": []any{
						map[string]any{"position": "Engineer", "companyName": "Analytical Engines", "endTime": nil},
					},
				},
				map[string]any{
					"actionType": "st.retrievePersonPosts",
					"success":    false,
					"error":      map[string]any{"type": "retrievingNotAllowed", "message": "Posts are hidden"},
				},
			},
		},
	})

	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.FetchPerson.Execute(ctx, FetchPersonParams{
		PersonURL:            "https://www.linkedin.com/in/ada",
		RetrieveExperience:   true,
		RetrievePosts:        true,
		PostsRetrievalConfig: &LimitSince{Limit: 5},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	res, err := c.FetchPerson.Result(ctx, id)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}

	if res.Data == nil {
		t.Fatal("Expected person data")
	}
	if res.Data.Name != "Ada Lovelace" {
		t.Errorf("Expected name Ada Lovelace, got %s", res.Data.Name)
	}
	if len(res.Data.Experiences) != 1 || res.Data.Experiences[0].CompanyName != "Analytical Engines" {
		t.Errorf("Expected one experience at Analytical Engines, got %+v", res.Data.Experiences)
	}
	if res.Data.Experiences[0].EndTime != nil {
		t.Errorf("Expected a current position, got end time %v", *res.Data.Experiences[0].EndTime)
	}
	if res.Data.Posts != nil {
		t.Errorf("Expected no posts, got %+v", res.Data.Posts)
	}
	if len(res.Errors) != 1 || res.Errors[0].Type != workflow.ActionErrorRetrievingNotAllowed {
		t.Errorf("Expected one retrievingNotAllowed error, got %+v", res.Errors)
	}

	submitted := srv.Submitted()
	if len(submitted) != 1 {
		t.Fatalf("Expected one submitted workflow, got %d", len(submitted))
	}
	def := submitted[0]
	if def["actionType"] != "st.openPersonPage" || def["basicInfo"] != true {
		t.Errorf("Expected st.openPersonPage with basicInfo, got %v", def)
	}
	then, ok := def["then"].([]any)
	if !ok || len(then) != 2 {
		t.Fatalf("Expected two chained actions, got %v", def["then"])
	}
	posts := then[1].(map[string]any)
	if posts["actionType"] != "st.retrievePersonPosts" || posts["limit"] != float64(5) {
		t.Errorf("Expected posts action with limit 5, got %v", posts)
	}
	for _, key := range []string{"retrieveExperience", "retrievePosts", "postsRetrievalConfig"} {
		if _, present := def[key]; present {
			t.Errorf("Expected %s to be moved into the chain", key)
		}
	}

	if srv.Requests("GET /workflows/:id") != 3 {
		t.Errorf("Expected 3 status requests, got %d", srv.Requests("GET /workflows/:id"))
	}
}

func TestClient_SearchPeople(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Respond("st.searchPeople", map[string]any{
		"actionType": "st.searchPeople",
		"success":    true,
		"data": []any{
			map[string]any{"name": "Grace Hopper", "publicUrl": "https://www.linkedin.com/in/grace"},
			map[string]any{"name": "Alan Turing", "publicUrl": "https://www.linkedin.com/in/alan"},
		},
	})

	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.SearchPeople.Execute(ctx, SearchPeopleParams{
		Term:   "computing",
		Limit:  10,
		Filter: &SearchPeopleFilter{Locations: []string{"London"}},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	res, err := c.SearchPeople.Result(ctx, id)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if res.Data == nil || len(*res.Data) != 2 {
		t.Fatalf("Expected two results, got %+v", res.Data)
	}
	if (*res.Data)[1].Name != "Alan Turing" {
		t.Errorf("Expected Alan Turing second, got %s", (*res.Data)[1].Name)
	}

	def := srv.Submitted()[0]
	filter, ok := def["filter"].(map[string]any)
	if !ok || !reflect.DeepEqual(filter["locations"], []any{"London"}) {
		t.Errorf("Expected filter with locations, got %v", def["filter"])
	}
}

func TestClient_SendMessageVoid(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Respond("st.sendMessage", map[string]any{"actionType": "st.sendMessage", "success": true})

	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.SendMessage.Execute(ctx, SendMessageParams{PersonURL: "https://www.linkedin.com/in/ada", Text: "Hello"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	res, err := c.SendMessage.Result(ctx, id)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if res.Data != nil {
		t.Errorf("Expected no data, got %+v", res.Data)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Expected no errors, got %+v", res.Errors)
	}
}

func TestClient_ValidationHappensBeforeSubmit(t *testing.T) {
	tests := []struct {
		name    string
		execute func(ctx context.Context, c *Client) (string, error)
	}{
		{
			name: "typed",
			execute: func(ctx context.Context, c *Client) (string, error) {
				return c.SendMessage.Execute(ctx, SendMessageParams{PersonURL: "not a url", Text: ""})
			},
		},
		{
			name: "erased value",
			execute: func(ctx context.Context, c *Client) (string, error) {
				return c.FetchPerson.ExecuteAny(ctx, FetchPersonParams{})
			},
		},
		{
			name: "erased pointer",
			execute: func(ctx context.Context, c *Client) (string, error) {
				return c.FetchPerson.ExecuteAny(ctx, &FetchPersonParams{})
			},
		},
		{
			name: "erased nil pointer",
			execute: func(ctx context.Context, c *Client) (string, error) {
				return c.FetchPerson.ExecuteAny(ctx, (*FetchPersonParams)(nil))
			},
		},
		{
			name: "erased map",
			execute: func(ctx context.Context, c *Client) (string, error) {
				return c.FetchPerson.ExecuteAny(ctx, map[string]any{"retrieveExperience": true})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := linkedapitest.New(t)
			c := newTestClient(t, srv)

			_, err := tt.execute(context.Background(), c)
			if !workflow.IsRequestErrorType(err, workflow.ErrorTypeInvalidRequestPayload) {
				t.Fatalf("Expected invalidRequestPayload, got %v", err)
			}
			if srv.Requests("POST /workflows") != 0 {
				t.Errorf("Expected no submission, got %d", srv.Requests("POST /workflows"))
			}
		})
	}
}

func TestClient_InvalidToken(t *testing.T) {
	srv := linkedapitest.New(t)
	cfg := srv.TransportConfig()
	cfg.APIToken = "wrong"

	c, err := New(Config{Transport: cfg, Poll: fastPoll()}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.RetrieveSSI.Execute(context.Background(), workflow.NoParams{})
	if !workflow.IsRequestErrorType(err, workflow.ErrorTypeInvalidLinkedAPIToken) {
		t.Errorf("Expected invalidLinkedApiToken, got %v", err)
	}
}

func TestClient_TransientFailuresWhilePolling(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Respond("st.retrieveSSI", map[string]any{
		"actionType": "st.retrieveSSI",
		"success":    true,
		"data":       map[string]any{"ssi": 61.5, "industryTop": 12, "networkTop": 4},
	})

	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.RetrieveSSI.Execute(ctx, workflow.NoParams{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	srv.FailNextGets(2)
	res, err := c.RetrieveSSI.Result(ctx, id)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if res.Data == nil || res.Data.SSI != 61.5 {
		t.Errorf("Expected ssi 61.5, got %+v", res.Data)
	}

	srv.FailNextGets(10)
	_, err = c.RetrieveSSI.Result(ctx, id)
	if !workflow.IsRequestErrorType(err, workflow.ErrorTypeHTTP) {
		t.Errorf("Expected httpError after too many failures, got %v", err)
	}
}

func TestClient_WorkflowFailure(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Fail("st.openPost", "linkedinAccountSignedOut", "Account signed out")

	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.FetchPost.Execute(ctx, FetchPostParams{PostURL: "https://www.linkedin.com/posts/1"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	_, err = c.FetchPost.Result(ctx, id)
	var wfErr *workflow.WorkflowError
	if !errors.As(err, &wfErr) {
		t.Fatalf("Expected WorkflowError, got %v", err)
	}
	if wfErr.WorkflowID != id || wfErr.Reason != "linkedinAccountSignedOut" {
		t.Errorf("Expected failure of %s with reason linkedinAccountSignedOut, got %+v", id, wfErr)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := linkedapitest.New(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.RetrievePerformance.Execute(ctx, workflow.NoParams{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	_, err = c.RetrievePerformance.Result(ctx, id, workflow.WithTimeout(20*time.Millisecond))
	var timeoutErr *workflow.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("Expected TimeoutError, got %v", err)
	}
	if timeoutErr.WorkflowID != id || timeoutErr.OperationName != string(OpRetrievePerformance) {
		t.Errorf("Expected timeout for %s/%s, got %+v", id, OpRetrievePerformance, timeoutErr)
	}
	if !errors.Is(err, workflow.ErrWorkflowTimeout) {
		t.Error("Expected errors.Is ErrWorkflowTimeout")
	}
}

func TestClient_Cancel(t *testing.T) {
	srv := linkedapitest.New(t)
	store := journal.NewMemory()
	c := newTestClient(t, srv, WithJournal(store))
	ctx := context.Background()

	id, err := c.RetrieveSSI.Execute(ctx, workflow.NoParams{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	cancelled, err := c.RetrieveSSI.Cancel(ctx, id)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if !cancelled || !srv.Cancelled(id) {
		t.Error("Expected the workflow to be cancelled")
	}

	pending, _ := store.List(ctx)
	if len(pending) != 0 {
		t.Errorf("Expected the journal to forget the cancelled workflow, got %+v", pending)
	}

	cancelled, err = c.RetrieveSSI.Cancel(ctx, id)
	if err != nil {
		t.Fatalf("second Cancel failed: %v", err)
	}
	if cancelled {
		t.Error("Expected a second cancel to report false")
	}
}

func TestClient_CustomWorkflow(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Respond("st.openCompanyPage", []any{
		map[string]any{"actionType": "st.openCompanyPage", "success": true, "data": map[string]any{"name": "Acme"}},
		map[string]any{"actionType": "st.openCompanyPage", "success": false, "error": map[string]any{"type": "companyNotFound", "message": "No such company"}},
	})

	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := c.CustomWorkflow.Execute(ctx, workflow.Definition{
		"actionType": "st.openCompanyPage",
		"companyUrl": "https://www.linkedin.com/company/acme",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	res, err := c.CustomWorkflow.Result(ctx, id)
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if res.Data == nil || !res.Data.Multi || len(res.Data.Actions) != 2 {
		t.Fatalf("Expected a two action completion, got %+v", res.Data)
	}
	if len(res.Errors) != 1 || res.Errors[0].Type != workflow.ActionErrorCompanyNotFound {
		t.Errorf("Expected one companyNotFound error, got %+v", res.Errors)
	}

	if _, err := c.CustomWorkflow.Execute(ctx, workflow.Definition{"companyUrl": "x"}); !workflow.IsRequestErrorType(err, workflow.ErrorTypeInvalidRequestPayload) {
		t.Errorf("Expected invalidRequestPayload without actionType, got %v", err)
	}
}

func TestClient_ExecuteAnyWithMap(t *testing.T) {
	srv := linkedapitest.New(t)
	c := newTestClient(t, srv)

	op, err := c.Operation(OpFetchPerson)
	if err != nil {
		t.Fatalf("Operation failed: %v", err)
	}

	_, err = op.ExecuteAny(context.Background(), map[string]any{
		"personUrl":          "https://www.linkedin.com/in/ada",
		"retrieveSkills":     false,
		"retrieveExperience": nil,
	})
	if err != nil {
		t.Fatalf("ExecuteAny failed: %v", err)
	}

	def := srv.Submitted()[0]
	then, ok := def["then"].([]any)
	if !ok || len(then) != 1 {
		t.Fatalf("Expected one chained action for an explicit false flag, got %v", def["then"])
	}
	if then[0].(map[string]any)["actionType"] != "st.retrievePersonSkills" {
		t.Errorf("Expected skills to be chained, got %v", then[0])
	}
}
