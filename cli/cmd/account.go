package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkedapi/linkedapi-go/linkedapi"
)

func newConversationsCmd(root *rootOptions) *cobra.Command {
	var (
		people []string
		kind   string
		since  string
	)

	cmd := &cobra.Command{
		Use:   "conversations",
		Short: "Poll messages of synced conversations",
		Long: `Conversations returns the messages of one or more conversations. Each
conversation must have been synced once with syncConversation or
nvSyncConversation.

Example:
  linkedapi conversations --person https://www.linkedin.com/in/ada --since 2026-01-01T00:00:00Z
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests := make([]linkedapi.ConversationPollRequest, 0, len(people))
			for _, person := range people {
				requests = append(requests, linkedapi.ConversationPollRequest{
					PersonURL: person,
					Type:      linkedapi.ConversationType(kind),
					Since:     since,
				})
			}

			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			results, err := s.client.PollConversations(cmd.Context(), requests)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringArrayVar(&people, "person", nil, "Person URL (repeatable)")
	cmd.Flags().StringVar(&kind, "type", string(linkedapi.ConversationStandard), "Conversation type: st or nv")
	cmd.Flags().StringVar(&since, "since", "", "Only messages after this RFC 3339 time")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func newUsageCmd(root *rootOptions) *cobra.Command {
	var (
		start string
		end   string
		days  int
	)

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "List the actions executed by the account",
		Long: `Usage lists executed actions within a window of at most 30 days, given
either as --start/--end or as the last --days.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := usageWindow(start, end, days, time.Now())
			if err != nil {
				return err
			}

			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			actions, err := s.client.GetAPIUsage(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), actions)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Window start (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (RFC 3339)")
	cmd.Flags().IntVar(&days, "days", 7, "Window length in days ending now, when --start is not set")
	return cmd
}

func usageWindow(start, end string, days int, now time.Time) (linkedapi.UsageParams, error) {
	if start == "" {
		if end != "" {
			return linkedapi.UsageParams{}, fmt.Errorf("--end requires --start")
		}
		return linkedapi.UsageParams{Start: now.AddDate(0, 0, -days), End: now}, nil
	}

	from, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return linkedapi.UsageParams{}, fmt.Errorf("invalid --start: %w", err)
	}
	to := now
	if end != "" {
		if to, err = time.Parse(time.RFC3339, end); err != nil {
			return linkedapi.UsageParams{}, fmt.Errorf("invalid --end: %w", err)
		}
	}
	return linkedapi.UsageParams{Start: from, End: to}, nil
}

func newPendingCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List journaled workflows that have not finished",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			pending, err := s.journal.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), pending)
		},
	}
}

func newResumeCmd(root *rootOptions) *cobra.Command {
	var poll pollFlags

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Wait for every journaled workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			restored, err := s.client.ResumePending(cmd.Context(), poll.options()...)
			if err != nil {
				return err
			}

			outputs := make([]workflowOutput, 0, len(restored))
			failed := 0
			for _, r := range restored {
				outputs = append(outputs, newWorkflowOutput(r.Pending.WorkflowID, linkedapi.OperationName(r.Pending.OperationName), r.Response, r.Err))
				if r.Err != nil {
					failed++
				}
			}
			if err := printJSON(cmd.OutOrStdout(), outputs); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d workflows failed", failed, len(restored))
			}
			return nil
		},
	}

	poll.register(cmd)
	return cmd
}
