package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acganger/ganger-platform-sub011/pkg/core/services"
)

// GapsCmd creates the gaps command
func GapsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gaps",
		Short: "List coverage gaps left after local staffing, highest priority first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			start, end, err := resolveRange(start, end)
			if err != nil {
				return err
			}

			gaps, err := services.AnalyzeCoverageGaps(app.Ctx, app.Stores, app.Cfg, app.Logger, start, end)
			if err != nil {
				return err
			}

			if len(gaps) == 0 {
				fmt.Printf("\nNo gaps between %s and %s: every requirement can be staffed locally.\n", start, end)
				return nil
			}

			fmt.Printf("\nFound %d gaps between %s and %s:\n\n", len(gaps), start, end)
			fmt.Printf("%-10s  %-14s  %-12s  %-11s  %-14s  %s\n", "Priority", "Location", "Date", "Time", "Role", "Missing")
			for _, g := range gaps {
				r := g.Requirement
				fmt.Printf("%-10s  %-14s  %-12s  %s-%s  %-14s  %d\n",
					r.Priority, r.LocationID, r.Date, r.StartTime, r.EndTime, r.RequiredRole, g.Shortfall)
			}

			return nil
		},
	}

	cmd.Flags().String("start", "", "First date of the range (YYYY-MM-DD, default today)")
	cmd.Flags().String("end", "", "Last date of the range (YYYY-MM-DD, default start + 6 days)")

	return cmd
}
