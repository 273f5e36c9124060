package linkedapi

import (
	"context"
	"errors"
	"testing"

	"github.com/linkedapi/linkedapi-go/journal"
	"github.com/linkedapi/linkedapi-go/linkedapitest"
	"github.com/linkedapi/linkedapi-go/workflow"
)

func TestRestore_UsesRegisteredMapper(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Respond("st.openCompanyPage", map[string]any{
		"actionType": "st.openCompanyPage",
		"success":    true,
		"data": map[string]any{
			"name": "Acme",
			"then": []any{
				map[string]any{
					"actionType": "st.retrieveCompanyEmployees",
					"success":    true,
					"data":       []any{map[string]any{"name": "Wile E."}},
				},
			},
		},
	})
	ctx := context.Background()

	submitter := newTestClient(t, srv)
	id, err := submitter.FetchCompany.Execute(ctx, FetchCompanyParams{
		CompanyURL:        "https://www.linkedin.com/company/acme",
		RetrieveEmployees: true,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// A second client stands in for a restarted process.
	restorer := newTestClient(t, srv)
	res, err := restorer.Restore(ctx, id, OpFetchCompany)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if res.Data == nil {
		t.Fatal("Expected restored data")
	}
	company, ok := (*res.Data).(Company)
	if !ok {
		t.Fatalf("Expected Company, got %T", *res.Data)
	}
	if company.Name != "Acme" || len(company.Employees) != 1 {
		t.Errorf("Expected Acme with one employee, got %+v", company)
	}
}

func TestRestore_CustomWorkflow(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Respond("st.retrieveSSI", map[string]any{
		"actionType": "st.retrieveSSI",
		"success":    true,
		"data":       map[string]any{"ssi": 40},
	})
	ctx := context.Background()
	c := newTestClient(t, srv)

	id, err := c.CustomWorkflow.Execute(ctx, workflow.Definition{"actionType": "st.retrieveSSI"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	res, err := c.Restore(ctx, id, OpCustomWorkflow)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	completion, ok := (*res.Data).(workflow.Completion)
	if !ok {
		t.Fatalf("Expected workflow.Completion, got %T", *res.Data)
	}
	if completion.Primary().ActionType != "st.retrieveSSI" {
		t.Errorf("Expected st.retrieveSSI, got %s", completion.Primary().ActionType)
	}
}

func TestRestore_UnknownOperation(t *testing.T) {
	srv := linkedapitest.New(t)
	c := newTestClient(t, srv)

	res, err := c.Restore(context.Background(), "wf-1", "fetchEverything")
	if !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Expected ErrUnsupportedOperation, got %v", err)
	}
	if res.Data != nil || res.Errors == nil {
		t.Errorf("Expected empty response with non-nil errors, got %+v", res)
	}
	if srv.Requests("GET /workflows/:id") != 0 {
		t.Error("Expected no status request for an unknown operation")
	}
}

func TestRestoreStatus(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.RunningPolls(1)
	srv.Respond("st.checkConnectionStatus", map[string]any{
		"actionType": "st.checkConnectionStatus",
		"success":    true,
		"data":       map[string]any{"connectionStatus": "connected"},
	})
	ctx := context.Background()
	c := newTestClient(t, srv)

	id, err := c.CheckConnectionStatus.Execute(ctx, CheckConnectionStatusParams{PersonURL: "https://www.linkedin.com/in/ada"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	_, done, err := c.RestoreStatus(ctx, id, OpCheckConnectionStatus)
	if err != nil {
		t.Fatalf("RestoreStatus failed: %v", err)
	}
	if done {
		t.Fatal("Expected the first check to report running")
	}

	res, done, err := c.RestoreStatus(ctx, id, OpCheckConnectionStatus)
	if err != nil {
		t.Fatalf("RestoreStatus failed: %v", err)
	}
	if !done {
		t.Fatal("Expected the second check to report completion")
	}
	status, ok := (*res.Data).(CheckConnectionStatusResult)
	if !ok || status.ConnectionStatus != ConnectionConnected {
		t.Errorf("Expected connected status, got %+v", *res.Data)
	}
}

func TestResumePending(t *testing.T) {
	srv := linkedapitest.New(t)
	srv.Respond("st.retrieveSSI", map[string]any{"actionType": "st.retrieveSSI", "success": true, "data": map[string]any{"ssi": 55}})
	srv.Fail("st.retrievePerformance", "linkedinAccountSignedOut", "Signed out")
	ctx := context.Background()

	store := journal.NewMemory()
	c := newTestClient(t, srv, WithJournal(store))

	ssiID, err := c.RetrieveSSI.Execute(ctx, workflow.NoParams{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	perfID, err := c.RetrievePerformance.Execute(ctx, workflow.NoParams{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	pending, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("Expected 2 journaled workflows, got %d", len(pending))
	}

	restored, err := c.ResumePending(ctx)
	if err != nil {
		t.Fatalf("ResumePending failed: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("Expected 2 restored workflows, got %d", len(restored))
	}

	byID := map[string]Restored{}
	for _, r := range restored {
		byID[r.Pending.WorkflowID] = r
	}

	ssi := byID[ssiID]
	if ssi.Err != nil {
		t.Errorf("Expected SSI to resume, got %v", ssi.Err)
	} else if (*ssi.Response.Data).(SSI).SSI != 55 {
		t.Errorf("Expected ssi 55, got %+v", *ssi.Response.Data)
	}

	var wfErr *workflow.WorkflowError
	if !errors.As(byID[perfID].Err, &wfErr) {
		t.Errorf("Expected a WorkflowError for performance, got %v", byID[perfID].Err)
	}

	left, _ := store.List(ctx)
	if len(left) != 0 {
		t.Errorf("Expected an empty journal after resuming, got %+v", left)
	}
}

func TestResumePending_NoJournal(t *testing.T) {
	srv := linkedapitest.New(t)
	c := newTestClient(t, srv)

	if _, err := c.ResumePending(context.Background()); err == nil {
		t.Error("Expected an error without a journal")
	}
}
