package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/linkedapi/linkedapi-go/cli/internal/config"
	"github.com/linkedapi/linkedapi-go/journal"
	"github.com/linkedapi/linkedapi-go/linkedapi"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the linkedapi command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "linkedapi",
		Short: "Linked API workflow client",
		Long: `linkedapi runs LinkedIn automation workflows through the Linked API.

Workflows are submitted, then polled until they complete. Workflow ids can
be restored later with the operation name that submitted them.

Example:
  linkedapi run fetchPerson --params person.yaml --wait
  linkedapi result searchPeople 3f1c... --where 'location contains "London"'
  linkedapi usage --days 7
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(opts),
		newResultCmd(opts),
		newStatusCmd(opts),
		newCancelCmd(opts),
		newConversationsCmd(opts),
		newUsageCmd(opts),
		newPendingCmd(opts),
		newResumeCmd(opts),
		newOperationsCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// session is what every subcommand needs: a client and its journal.
type session struct {
	client  *linkedapi.Client
	journal journal.Store
	l       *slog.Logger
}

func (s *session) Close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			s.l.Warn("Failed to close journal", "error", err)
		}
	}
}

func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	l, err := newLogger(cmd.ErrOrStderr(), o.logLevel)
	if err != nil {
		return nil, err
	}

	// Without an explicit --config, credentials may come from the environment.
	allowMissing := !cmd.Flags().Changed("config")
	cfg, err := config.Load(o.configPath, allowMissing)
	if err != nil {
		return nil, err
	}

	store, err := journal.Open(cmd.Context(), cfg.Journal)
	if err != nil {
		return nil, err
	}

	client, err := linkedapi.New(cfg.Client(), linkedapi.WithLogger(l), linkedapi.WithJournal(store))
	if err != nil {
		store.Close()
		return nil, err
	}
	return &session{client: client, journal: store, l: l}, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func operationName(arg string) (linkedapi.OperationName, error) {
	name := linkedapi.OperationName(arg)
	if !name.Valid() {
		return "", fmt.Errorf("%w: %q (see 'linkedapi operations')", linkedapi.ErrUnsupportedOperation, arg)
	}
	return name, nil
}
