package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newStatsCmd is the dashboard landing screen: headline totals plus the
// per-month earning and signup series.
func newStatsCmd(e *env) *cobra.Command {
	var year string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := e.client()
			stats, err := c.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total users:         %d\n", stats.TotalUser)
			fmt.Fprintf(out, "Total orders:        %d\n", stats.TotalOrder)
			fmt.Fprintf(out, "Total meals:         %d\n", stats.TotalMeal)
			fmt.Fprintf(out, "Total notifications: %d\n", stats.TotalNotification)

			earnings, err := c.EarningStatistics(cmd.Context(), year)
			if err != nil {
				return err
			}
			if len(earnings) > 0 {
				fmt.Fprintln(out, "\nEarnings by month:")
				for _, m := range earnings {
					fmt.Fprintf(out, "  %-4s $%.2f\n", m.Month, m.Earning)
				}
			}

			signups, err := c.UserStatistics(cmd.Context(), year)
			if err != nil {
				return err
			}
			if len(signups) > 0 {
				fmt.Fprintln(out, "\nSignups by month:")
				for _, m := range signups {
					fmt.Fprintf(out, "  %-4s %d\n", m.Month, m.Value)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "Year for the monthly series")
	return cmd
}
