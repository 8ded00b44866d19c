package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"hrmsconsole/internal/domain/dashboard"
)

func newDashboardCmd(rt *runtime) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show headcount, attendance and payroll totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			refresher := dashboard.NewRefresher(rt.services.Dashboard)
			summary, err := refresher.Refresh(ctx)
			if err != nil {
				return err
			}
			if err := printSummary(out, summary); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					summary, err := refresher.Refresh(ctx)
					if err != nil {
						if ctx.Err() != nil {
							return nil
						}
						return err
					}
					fmt.Fprintln(out)
					if err := printSummary(out, summary); err != nil {
						return err
					}
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "Refresh interval with --watch")
	return cmd
}

func printSummary(w io.Writer, summary dashboard.Summary) error {
	tw := newTable(w, "METRIC", "VALUE", "DETAIL")
	for _, card := range summary.Cards() {
		row(tw, card.Title, card.Value, card.FullValue)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, source := range summary.Failures {
		fmt.Fprintf(w, "Warning: %s could not be loaded\n", source)
	}
	return nil
}
