package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/acganger/ganger-platform-sub011/pkg/core/services"
)

// RunsCmd creates the runs command
func RunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs [count]",
		Short: "View recorded optimization runs (defaults to the last 5)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 5
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("count must be a positive integer, got: %s", args[0])
				}
				count = n
			}

			summaries, err := services.ListRuns(app.Ctx, app.Stores.Runs, app.Logger, count)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			fmt.Printf("\n%-36s  %-20s  %-23s  %7s  %6s  %9s  %s\n",
				"Run ID", "Created", "Range", "Assigns", "Travel", "Cost", "Coverage")
			for _, s := range summaries {
				r := s.Run
				fmt.Printf("%-36s  %-20s  %s..%s  %7d  %6d  %9.2f  %.1f%%\n",
					r.ID, r.CreatedAt, r.StartDate, r.EndDate,
					len(s.Assignments), r.TravelAssignments, r.TotalTravelCost, r.CoverageRatio*100)
			}

			return nil
		},
	}
}
