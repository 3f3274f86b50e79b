package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/collabsec/ibctl/pkg/ibctl/barrier"
	"github.com/collabsec/ibctl/pkg/ibctl/output"
)

func NewSegmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Inspect tenant segments",
	}
	cmd.AddCommand(newSegmentListCommand())
	return cmd
}

func newSegmentListCommand() *cobra.Command {
	var exclude string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List segments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			apiClient, err := buildClient(context.Background(), rt)
			if err != nil {
				return err
			}
			segments, err := apiClient.Segments().List(context.Background())
			if err != nil {
				return err
			}
			if exclude != "" {
				excl, err := barrier.CompileExclusion(exclude)
				if err != nil {
					return err
				}
				segments = barrier.FilterSegments(segments, excl)
			}
			format := output.Format(rt.OutputFormat())
			if format == output.FormatTable {
				output.WriteSegmentTable(rt.Writer(), segments)
				return nil
			}
			return output.WriteObject(rt.Writer(), format, segments)
		},
	}
	cmd.Flags().StringVar(&exclude, "exclude", "", "Drop segments matching this pattern")
	return cmd
}
