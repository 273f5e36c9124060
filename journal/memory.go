package journal

import (
	"context"
	"sync"

	"github.com/linkedapi/linkedapi-go/workflow"
)

// Memory keeps pending workflows in process. It does not survive a restart
// and is meant for tests and short-lived CLIs.
type Memory struct {
	mu      sync.Mutex
	pending map[string]workflow.PendingWorkflow
}

func NewMemory() *Memory {
	return &Memory{pending: make(map[string]workflow.PendingWorkflow)}
}

func (m *Memory) Track(_ context.Context, p workflow.PendingWorkflow) error {
	if err := checkPending(p); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[p.WorkflowID] = p
	return nil
}

func (m *Memory) Forget(_ context.Context, workflowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, workflowID)
	return nil
}

func (m *Memory) List(_ context.Context) ([]workflow.PendingWorkflow, error) {
	m.mu.Lock()
	out := make([]workflow.PendingWorkflow, 0, len(m.pending))
	for _, p := range m.pending {
		out = append(out, p)
	}
	m.mu.Unlock()

	sortPending(out)
	return out, nil
}

func (m *Memory) Close() error { return nil }
