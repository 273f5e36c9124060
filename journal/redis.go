package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/linkedapi/linkedapi-go/internal/config"
	"github.com/linkedapi/linkedapi-go/workflow"
)

// RedisClient is the subset of go-redis used by Redis.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Close() error
}

type RedisConfig struct {
	Address  string `yaml:"address" json:"address" default:"localhost:6379" validate:"required,hostname_port"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db" validate:"gte=0"`
	// Prefix namespaces the hash holding pending workflows.
	Prefix string `yaml:"prefix" json:"prefix" default:"linkedapi:"`
}

func (c RedisConfig) key() string {
	return c.Prefix + "pending_workflows"
}

// Redis stores pending workflows as JSON values of a single hash keyed by
// workflow id.
type Redis struct {
	cfg    RedisConfig
	client RedisClient
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if err := config.Prepare(&cfg); err != nil {
		return nil, fmt.Errorf("redis journal config: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis journal: ping %s: %w", cfg.Address, err)
	}
	return &Redis{cfg: cfg, client: client}, nil
}

// NewRedisWithClient creates a journal on an existing client.
func NewRedisWithClient(cfg RedisConfig, client RedisClient) (*Redis, error) {
	if err := config.ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &Redis{cfg: cfg, client: client}, nil
}

func (r *Redis) Track(ctx context.Context, p workflow.PendingWorkflow) error {
	if err := checkPending(p); err != nil {
		return err
	}
	entry, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pending workflow: %w", err)
	}
	if err := r.client.HSet(ctx, r.cfg.key(), p.WorkflowID, entry).Err(); err != nil {
		return fmt.Errorf("redis journal: track %s: %w", p.WorkflowID, err)
	}
	return nil
}

func (r *Redis) Forget(ctx context.Context, workflowID string) error {
	if err := r.client.HDel(ctx, r.cfg.key(), workflowID).Err(); err != nil {
		return fmt.Errorf("redis journal: forget %s: %w", workflowID, err)
	}
	return nil
}

func (r *Redis) List(ctx context.Context) ([]workflow.PendingWorkflow, error) {
	entries, err := r.client.HGetAll(ctx, r.cfg.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis journal: list: %w", err)
	}

	out := make([]workflow.PendingWorkflow, 0, len(entries))
	for id, raw := range entries {
		var p workflow.PendingWorkflow
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("redis journal: decode %s: %w", id, err)
		}
		out = append(out, p)
	}
	sortPending(out)
	return out, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
