package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	_ "github.com/lib/pq"

	"github.com/linkedapi/linkedapi-go/internal/config"
	"github.com/linkedapi/linkedapi-go/workflow"
)

// PostgresConfig configures the postgres journal.
type PostgresConfig struct {
	ConnectionString  string `yaml:"connection_string" json:"connection_string" validate:"required"`
	Table             string `yaml:"table" json:"table" default:"linkedapi_pending_workflows" validate:"required"`
	MaxOpenConns      int    `yaml:"max_open_conns" json:"max_open_conns" default:"4" validate:"gte=1"`
	MaxIdleConns      int    `yaml:"max_idle_conns" json:"max_idle_conns" default:"2" validate:"gte=0"`
	ConnMaxLifetimeMs int    `yaml:"conn_max_lifetime_ms" json:"conn_max_lifetime_ms" default:"300000" validate:"gte=0"`
}

var tableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Postgres keeps pending workflows in a table, one row per workflow id.
type Postgres struct {
	db    *sql.DB
	table string
}

// NewPostgres opens the connection pool, pings the server and creates the
// table if needed.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	if err := config.Prepare(&cfg); err != nil {
		return nil, fmt.Errorf("postgres journal config: %w", err)
	}
	if !tableName.MatchString(cfg.Table) {
		return nil, fmt.Errorf("postgres journal config: invalid table name %q", cfg.Table)
	}

	db, err := sql.Open("postgres", cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMs) * time.Millisecond)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{db: db, table: cfg.Table}
	if err := p.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Postgres journal connected",
		"connection", maskConnectionString(cfg.ConnectionString),
		"table", cfg.Table)
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	workflow_id    TEXT PRIMARY KEY,
	operation_name TEXT NOT NULL,
	submitted_at   TIMESTAMPTZ NOT NULL
)`, p.table)
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create journal table: %w", err)
	}
	return nil
}

func (p *Postgres) Track(ctx context.Context, pending workflow.PendingWorkflow) error {
	if err := checkPending(pending); err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (workflow_id, operation_name, submitted_at)
VALUES ($1, $2, $3)
ON CONFLICT (workflow_id) DO UPDATE
SET operation_name = EXCLUDED.operation_name, submitted_at = EXCLUDED.submitted_at`, p.table)

	if _, err := p.db.ExecContext(ctx, query, pending.WorkflowID, pending.OperationName, pending.SubmittedAt.UTC()); err != nil {
		return fmt.Errorf("postgres journal: track %s: %w", pending.WorkflowID, err)
	}
	return nil
}

func (p *Postgres) Forget(ctx context.Context, workflowID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE workflow_id = $1`, p.table)
	if _, err := p.db.ExecContext(ctx, query, workflowID); err != nil {
		return fmt.Errorf("postgres journal: forget %s: %w", workflowID, err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]workflow.PendingWorkflow, error) {
	query := fmt.Sprintf(`SELECT workflow_id, operation_name, submitted_at FROM %s
ORDER BY submitted_at, workflow_id`, p.table)

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres journal: list: %w", err)
	}
	defer rows.Close()

	out := []workflow.PendingWorkflow{}
	for rows.Next() {
		var pending workflow.PendingWorkflow
		if err := rows.Scan(&pending.WorkflowID, &pending.OperationName, &pending.SubmittedAt); err != nil {
			return nil, fmt.Errorf("postgres journal: scan: %w", err)
		}
		out = append(out, pending)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres journal: list: %w", err)
	}
	return out, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// maskConnectionString hides the password of a postgres URL for logging.
// Key/value connection strings are masked entirely.
func maskConnectionString(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.Scheme == "" {
		return "xxxxx"
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
