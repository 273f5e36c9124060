package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/linkedapi/linkedapi-go/cli/internal/config"
	"github.com/linkedapi/linkedapi-go/cli/internal/filter"
	"github.com/linkedapi/linkedapi-go/linkedapi"
	"github.com/linkedapi/linkedapi-go/workflow"
)

const resultConcurrency = 8

type workflowOutput struct {
	WorkflowID string                 `json:"workflowId"`
	Operation  string                 `json:"operation"`
	Done       *bool                  `json:"done,omitempty"`
	Data       any                    `json:"data"`
	Errors     []workflow.ActionError `json:"errors"`
	Error      string                 `json:"error,omitempty"`
}

func newWorkflowOutput(id string, name linkedapi.OperationName, res workflow.MappedResponse[any], err error) workflowOutput {
	out := workflowOutput{WorkflowID: id, Operation: string(name), Errors: res.Errors}
	if out.Errors == nil {
		out.Errors = []workflow.ActionError{}
	}
	if res.Data != nil {
		out.Data = *res.Data
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

type pollFlags struct {
	interval time.Duration
	timeout  time.Duration
}

func (f *pollFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.interval, "poll-interval", 0, "Override the configured poll interval")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Override the configured poll timeout")
}

func (f *pollFlags) options() []workflow.PollOption {
	var opts []workflow.PollOption
	if f.interval > 0 {
		opts = append(opts, workflow.WithPollInterval(f.interval))
	}
	if f.timeout > 0 {
		opts = append(opts, workflow.WithTimeout(f.timeout))
	}
	return opts
}

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		paramsPath string
		wait       bool
		poll       pollFlags
	)

	cmd := &cobra.Command{
		Use:   "run <operation>",
		Short: "Submit a workflow for a catalog operation",
		Long: `Run submits a workflow and prints its id. Params are read from a YAML or
JSON file ("-" for stdin); customWorkflow takes the workflow definition.

Example:
  linkedapi run fetchPerson --params person.yaml
  echo '{"term": "golang"}' | linkedapi run searchPeople --params - --wait
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := operationName(args[0])
			if err != nil {
				return err
			}

			params := map[string]any{}
			if paramsPath != "" {
				if params, err = config.ReadParams(paramsPath, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			op, err := s.client.Operation(name)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			id, err := op.ExecuteAny(ctx, params)
			if err != nil {
				return err
			}

			if !wait {
				return printJSON(cmd.OutOrStdout(), map[string]string{"workflowId": id, "operation": string(name)})
			}

			res, err := op.ResultAny(ctx, id, poll.options()...)
			if err := printJSON(cmd.OutOrStdout(), newWorkflowOutput(id, name, res, err)); err != nil {
				return err
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&paramsPath, "params", "p", "", "YAML or JSON params file")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait for the workflow result")
	poll.register(cmd)
	return cmd
}

func newResultCmd(root *rootOptions) *cobra.Command {
	var (
		where string
		poll  pollFlags
	)

	cmd := &cobra.Command{
		Use:   "result <operation> <workflow-id>...",
		Short: "Wait for the results of submitted workflows",
		Long: `Result restores workflows by id and operation name and waits for them.
Several ids are waited on concurrently. --where keeps only the items of list
results for which the expression is true.

Example:
  linkedapi result searchPeople 3f1c... 9a7e... --where 'location contains "Berlin"'
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := operationName(args[0])
			if err != nil {
				return err
			}

			var f *filter.Filter
			if where != "" {
				if f, err = filter.Compile(where); err != nil {
					return err
				}
			}

			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ids := args[1:]
			outputs := make([]workflowOutput, len(ids))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(resultConcurrency)

			for i, id := range ids {
				i, id := i, id
				g.Go(func() error {
					res, err := s.client.Restore(ctx, id, name, poll.options()...)
					out := newWorkflowOutput(id, name, res, err)
					if f != nil && out.Data != nil {
						filtered, ferr := f.Apply(out.Data)
						if ferr != nil {
							return ferr
						}
						out.Data = filtered
					}
					outputs[i] = out
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if err := printJSON(cmd.OutOrStdout(), outputs); err != nil {
				return err
			}
			for _, out := range outputs {
				if out.Error != "" {
					return fmt.Errorf("workflow %s: %s", out.WorkflowID, out.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "expr filter applied to list results")
	poll.register(cmd)
	return cmd
}

func newStatusCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <operation> <workflow-id>",
		Short: "Check a workflow once without waiting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := operationName(args[0])
			if err != nil {
				return err
			}

			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			res, done, err := s.client.RestoreStatus(cmd.Context(), args[1], name)
			out := newWorkflowOutput(args[1], name, res, err)
			out.Done = &done
			if perr := printJSON(cmd.OutOrStdout(), out); perr != nil {
				return perr
			}
			return err
		},
	}
}

func newCancelCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <workflow-id>",
		Short: "Cancel a running workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			cancelled, err := s.client.CustomWorkflow.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"workflowId": args[0], "cancelled": cancelled})
		},
	}
}

func newOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the supported operation names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range linkedapi.OperationNames {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
