// Package linkedapitest provides an in-process fake of the Linked API for
// tests. Workflows are completed from scripted completions keyed by the
// root action type.
package linkedapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linkedapi/linkedapi-go/transport"
	"github.com/linkedapi/linkedapi-go/workflow"
)

const (
	APIToken            = "test-linked-api-token"
	IdentificationToken = "test-identification-token"
)

// Server is a fake Linked API. The zero value is not usable; call New.
type Server struct {
	URL string

	srv *httptest.Server

	mu           sync.Mutex
	workflows    map[string]*fakeWorkflow
	order        []string
	outcomes     map[string]outcome
	runningPolls int
	rejection    *workflow.RequestError
	failGets     int
	conversation any
	usage        any
	usageQuery   map[string]string
	counts       map[string]int
}

type outcome struct {
	completion json.RawMessage
	failure    *workflow.Failure
}

type fakeWorkflow struct {
	id         string
	definition workflow.Definition
	polls      int
	cancelled  bool
}

// New starts a server and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		workflows: make(map[string]*fakeWorkflow),
		outcomes:  make(map[string]outcome),
		counts:    make(map[string]int),
	}

	g := gin.New()
	g.Use(s.authenticate)
	g.POST("/workflows", s.submit)
	g.GET("/workflows/:id", s.status)
	g.DELETE("/workflows/:id", s.cancel)
	g.POST("/conversations/poll", s.pollConversations)
	g.GET("/stats/actions", s.stats)

	s.srv = httptest.NewServer(g)
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

// TransportConfig returns a transport configuration pointing at the server.
func (s *Server) TransportConfig() transport.Config {
	return transport.Config{
		BaseURL:             s.URL,
		APIToken:            APIToken,
		IdentificationToken: IdentificationToken,
		Timeout:             5 * time.Second,
	}
}

// Respond completes every workflow whose root action is actionType with
// the given completion. completion is encoded as JSON unless it is
// already a json.RawMessage.
func (s *Server) Respond(actionType string, completion any) {
	raw, ok := completion.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(completion); err != nil {
			panic(err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[actionType] = outcome{completion: raw}
}

// Fail makes workflows of actionType end as failed.
func (s *Server) Fail(actionType, reason, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[actionType] = outcome{failure: &workflow.Failure{Reason: reason, Message: message}}
}

// RunningPolls sets how many status requests report "running" before a
// workflow reaches its scripted outcome.
func (s *Server) RunningPolls(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runningPolls = n
}

// RejectSubmissions makes POST /workflows fail with a typed error.
// A nil error restores normal behaviour.
func (s *Server) RejectSubmissions(err *workflow.RequestError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejection = err
}

// FailNextGets answers the next n status requests with a plain-text 502.
func (s *Server) FailNextGets(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGets = n
}

// SetConversations sets the result of POST /conversations/poll. A
// *workflow.RequestError is returned as an error response.
func (s *Server) SetConversations(result any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = result
}

// SetUsage sets the result of GET /stats/actions.
func (s *Server) SetUsage(result any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = result
}

// UsageQuery returns the query of the last usage request.
func (s *Server) UsageQuery() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usageQuery
}

// Submitted returns the definitions received, in order.
func (s *Server) Submitted() []workflow.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]workflow.Definition, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.workflows[id].definition)
	}
	return out
}

// Cancelled reports whether the workflow was cancelled.
func (s *Server) Cancelled(workflowID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, ok := s.workflows[workflowID]
	return ok && wf.cancelled
}

// Requests returns how many requests were received for "METHOD /route".
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[route]
}

func (s *Server) authenticate(c *gin.Context) {
	s.mu.Lock()
	s.counts[c.Request.Method+" "+c.FullPath()]++
	s.mu.Unlock()

	if c.GetHeader("linked-api-token") != APIToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, failure(workflow.ErrorTypeInvalidLinkedAPIToken, "Invalid linked-api-token"))
		return
	}
	if c.GetHeader("identification-token") != IdentificationToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, failure(workflow.ErrorTypeInvalidIdentificationToken, "Invalid identification-token"))
		return
	}
	c.Next()
}

func (s *Server) submit(c *gin.Context) {
	var def workflow.Definition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, failure(workflow.ErrorTypeInvalidWorkflow, "Wrong request body format"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rejection != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": s.rejection})
		return
	}
	if def.ActionType() == "" {
		c.JSON(http.StatusOK, failure(workflow.ErrorTypeInvalidWorkflow, "actionType is required"))
		return
	}

	id := uuid.NewString()
	s.workflows[id] = &fakeWorkflow{id: id, definition: def}
	s.order = append(s.order, id)
	c.JSON(http.StatusOK, success(gin.H{"workflowId": id}))
}

func (s *Server) status(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failGets > 0 {
		s.failGets--
		c.String(http.StatusBadGateway, "bad gateway")
		return
	}

	wf, ok := s.workflows[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, failure(workflow.ErrorTypeInvalidWorkflow, "Workflow not found"))
		return
	}

	res := workflow.Response{WorkflowID: wf.id, WorkflowStatus: workflow.StatusRunning}
	wf.polls++

	out, scripted := s.outcomes[wf.definition.ActionType()]
	switch {
	case wf.cancelled:
		res.WorkflowStatus = workflow.StatusFailed
		res.Failure = &workflow.Failure{Reason: "cancelled", Message: "Workflow was cancelled"}
	case !scripted || wf.polls <= s.runningPolls:
	case out.failure != nil:
		res.WorkflowStatus = workflow.StatusFailed
		res.Failure = out.failure
	default:
		res.WorkflowStatus = workflow.StatusCompleted
		c.JSON(http.StatusOK, success(gin.H{
			"workflowId":     res.WorkflowID,
			"workflowStatus": res.WorkflowStatus,
			"completion":     out.completion,
		}))
		return
	}

	c.JSON(http.StatusOK, success(res))
}

func (s *Server) cancel(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wf, ok := s.workflows[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, failure(workflow.ErrorTypeInvalidWorkflow, "Workflow not found"))
		return
	}
	cancelled := !wf.cancelled
	wf.cancelled = true
	c.JSON(http.StatusOK, success(gin.H{"cancelled": cancelled}))
}

func (s *Server) pollConversations(c *gin.Context) {
	var requests []map[string]any
	if err := c.ShouldBindJSON(&requests); err != nil {
		c.JSON(http.StatusBadRequest, failure(workflow.ErrorTypeInvalidRequestPayload, "Wrong request body format"))
		return
	}

	s.mu.Lock()
	result := s.conversation
	s.mu.Unlock()

	if reqErr, ok := result.(*workflow.RequestError); ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": reqErr})
		return
	}
	if result == nil {
		result = []any{}
	}
	c.JSON(http.StatusOK, success(result))
}

func (s *Server) stats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usageQuery = map[string]string{"start": c.Query("start"), "end": c.Query("end")}
	result := s.usage
	if result == nil {
		result = []any{}
	}
	c.JSON(http.StatusOK, success(result))
}

func success(result any) gin.H {
	return gin.H{"success": true, "result": result}
}

func failure(errType workflow.ErrorType, message string) gin.H {
	return gin.H{"success": false, "error": gin.H{"type": errType, "message": message}}
}
