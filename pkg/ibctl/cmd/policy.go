package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/collabsec/ibctl/pkg/ibctl/barrier"
	"github.com/collabsec/ibctl/pkg/ibctl/csvlog"
	"github.com/collabsec/ibctl/pkg/ibctl/output"
)

func NewPolicyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Manage information barrier policies",
	}

	cmd.AddCommand(
		newPolicyListCommand(),
		newPolicySyncCommand(),
		newPolicyApplyCommand(),
	)

	return cmd
}

func newPolicyListCommand() *cobra.Command {
	var wide bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List barrier policies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(context.Background(), rt)
			if err != nil {
				return err
			}
			policies, err := apiClient.Policies().List(context.Background())
			if err != nil {
				return err
			}
			format := output.Format(rt.OutputFormat())
			if format == output.FormatTable {
				if wide {
					output.WritePolicyTableWide(rt.Writer(), policies)
				} else {
					output.WritePolicyTable(rt.Writer(), policies)
				}
				return nil
			}
			return output.WriteObject(rt.Writer(), format, policies)
		},
	}
	cmd.Flags().BoolVar(&wide, "wide", false, "Show full blocked segment lists")
	return cmd
}

func newPolicySyncCommand() *cobra.Command {
	var (
		exclude     string
		connect     bool
		disconnect  bool
		logDir      string
		dryRun      bool
		failOnError bool
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile pairwise block policies for all segments",
		Long: `Sync fetches all segments and barrier policies, drops segments matching
the exclusion pattern, and creates or updates one Active block policy per
remaining segment so that every prefix group is blocked from every other
group. It then triggers the tenant-side bulk application of the pending
changes and appends one CSV row per attempted operation.

Per-segment failures do not abort the run; they are logged and the loop
continues. By default the command still exits zero in that case, matching
the behavior automation has come to depend on; use --fail-on-error to get
a nonzero exit instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(context.Background(), rt)
			if err != nil {
				return err
			}
			if logDir == "" {
				logDir = rt.LogDir()
			}

			log := newRunLogger(rt.verbose)
			defer func() {
				_ = log.Sync()
			}()
			runner := &barrier.Runner{Client: apiClient, Log: log}
			opts := barrier.RunOptions{Exclude: exclude, Connect: connect, Disconnect: disconnect}

			if dryRun {
				actions, err := runner.Plan(context.Background(), opts)
				if err != nil {
					return err
				}
				format := output.Format(rt.OutputFormat())
				if format == output.FormatTable {
					output.WritePlanTable(rt.Writer(), actions)
					return nil
				}
				return output.WriteObject(rt.Writer(), format, planSummary(actions))
			}

			outcomes, err := runner.Run(context.Background(), opts)
			if err != nil {
				return err
			}

			sink := csvlog.New(logDir)
			failed := 0
			for _, o := range outcomes {
				if !o.Succeeded() {
					failed++
				}
				if err := sink.Append(csvlog.Entry{
					Policy: o.Policy,
					Error:  o.Result(),
					Step:   string(o.Step),
					Time:   o.Time,
				}); err != nil {
					return fmt.Errorf("failed to write outcome log: %w", err)
				}
			}

			format := output.Format(rt.OutputFormat())
			if format == output.FormatTable {
				output.WriteOutcomeTable(rt.Writer(), outcomes)
			} else {
				if err := output.WriteObject(rt.Writer(), format, outcomes); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(rt.Writer(), "%d operations, %d failed; log: %s\n", len(outcomes), failed, sink.Path())

			if failOnError && failed > 0 {
				return fmt.Errorf("%d of %d policy operations failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exclude, "exclude", barrier.DefaultExclusion, "Exclusion pattern for segment names")
	cmd.Flags().BoolVar(&connect, "connect", true, "Open a management session before syncing")
	cmd.Flags().BoolVar(&disconnect, "disconnect", true, "Close the management session afterwards")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "Directory for the outcome CSV (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without changing anything")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Exit nonzero when any operation failed")
	return cmd
}

type plannedAction struct {
	Segment string   `json:"segment" yaml:"segment"`
	Action  string   `json:"action" yaml:"action"`
	Policy  string   `json:"policy" yaml:"policy"`
	Blocked []string `json:"blocked" yaml:"blocked"`
}

func planSummary(actions []barrier.Action) []plannedAction {
	out := make([]plannedAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, plannedAction{
			Segment: a.Segment.Name,
			Action:  string(a.Step()),
			Policy:  a.PolicyName(),
			Blocked: a.Blocked,
		})
	}
	return out
}

func newPolicyApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Trigger tenant-side application of pending policy changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(context.Background(), rt)
			if err != nil {
				return err
			}
			status, err := apiClient.Policies().StartApplication(context.Background())
			if err != nil {
				return err
			}
			if status.Status == "" {
				_, _ = fmt.Fprintln(rt.Writer(), "Bulk apply triggered")
				return nil
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Bulk apply triggered: %s\n", status.Status)
			return nil
		},
	}
}
