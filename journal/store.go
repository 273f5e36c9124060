// Package journal records submitted workflows until they reach a terminal
// state, so a restarted process can restore them by (id, operation name).
package journal

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/linkedapi/linkedapi-go/internal/config"
	"github.com/linkedapi/linkedapi-go/workflow"
)

// Store is a workflow.Tracker that can also list what it tracks.
type Store interface {
	workflow.Tracker
	// List returns pending workflows ordered by submission time.
	List(ctx context.Context) ([]workflow.PendingWorkflow, error)
	Close() error
}

var ErrUnknownDriver = errors.New("unknown journal driver")

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config selects and configures a journal driver.
type Config struct {
	Driver   string          `yaml:"driver" json:"driver" default:"memory" validate:"oneof=memory redis postgres"`
	Redis    *RedisConfig    `yaml:"redis,omitempty" json:"redis,omitempty"`
	Postgres *PostgresConfig `yaml:"postgres,omitempty" json:"postgres,omitempty"`
}

// Open creates the store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if err := config.Prepare(&cfg); err != nil {
		return nil, fmt.Errorf("journal config: %w", err)
	}

	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverRedis:
		if cfg.Redis == nil {
			cfg.Redis = &RedisConfig{}
		}
		return NewRedis(ctx, *cfg.Redis)
	case DriverPostgres:
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("journal config: postgres section is required")
		}
		return NewPostgres(ctx, *cfg.Postgres)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

func sortPending(pending []workflow.PendingWorkflow) {
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].SubmittedAt.Equal(pending[j].SubmittedAt) {
			return pending[i].WorkflowID < pending[j].WorkflowID
		}
		return pending[i].SubmittedAt.Before(pending[j].SubmittedAt)
	})
}

func checkPending(p workflow.PendingWorkflow) error {
	if p.WorkflowID == "" {
		return fmt.Errorf("pending workflow requires an id")
	}
	return nil
}
