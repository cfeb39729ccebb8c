package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acganger/ganger-platform-sub011/pkg/core/services"
)

// OptimizeCmd creates the optimize command
func OptimizeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Fill coverage gaps across locations for a date range",
		Long:  "Staff each location from its own roster, then fill the remaining gaps with staff who can travel from other locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			metricsOut, _ := cmd.Flags().GetString("metrics-out")

			start, end, err := resolveRange(start, end)
			if err != nil {
				return err
			}

			app.Logger.Debug("optimize command",
				zap.String("start", start),
				zap.String("end", end),
				zap.Bool("dry_run", dryRun))

			outcome, err := services.OptimizeCoverage(app.Ctx, app.Stores, app.Cfg, app.Recorder, app.Logger, services.OptimizeCoverageOptions{
				StartDate: start,
				EndDate:   end,
				DryRun:    dryRun,
			})
			if metricsOut != "" {
				if werr := app.Recorder.WriteToTextfile(metricsOut); werr != nil {
					app.Logger.Warn("Failed to write metrics", zap.Error(werr))
				}
			}
			if err != nil {
				return err
			}

			result := outcome.Result
			run := outcome.Run

			fmt.Printf("\nOptimization Results\n\n")
			fmt.Printf("Run ID:      %s\n", run.ID)
			fmt.Printf("Range:       %s to %s\n", run.StartDate, run.EndDate)
			if dryRun {
				fmt.Printf("Mode:        DRY RUN (not saved)\n")
			} else {
				fmt.Printf("Status:      saved\n")
			}
			fmt.Printf("Coverage:    %.1f%%\n", run.CoverageRatio*100)
			fmt.Printf("Travel cost: %.2f over %d trips (%d min)\n",
				result.TravelCosts.TotalCost,
				result.TravelCosts.TravelAssignments,
				result.TravelCosts.TotalTravelMinutes)
			fmt.Printf("Efficiency:  utilization %.2f, travel %.2f, coverage %.2f, satisfaction %.2f\n\n",
				result.Efficiency.Utilization,
				result.Efficiency.TravelEfficiency,
				result.Efficiency.CoverageOptimization,
				result.Efficiency.StaffSatisfaction)

			if len(result.Assignments) > 0 {
				fmt.Printf("Assignments (%d):\n\n", len(result.Assignments))
				fmt.Printf("%-12s  %-11s  %-16s  %-14s  %-14s  %s\n", "Date", "Time", "Staff", "Location", "From", "Travel")
				for _, a := range result.Assignments {
					travel := "-"
					if a.TravelRequired {
						travel = fmt.Sprintf("%d min, %.2f", a.TravelTimeMinutes, a.TravelCost)
					}
					fmt.Printf("%-12s  %s-%s  %-16s  %-14s  %-14s  %s\n",
						a.Date, a.StartTime, a.EndTime, a.StaffMemberID, a.AssignedLocationID, a.PrimaryLocationID, travel)
				}
				fmt.Println()
			}

			var short []string
			for _, c := range result.LocationCoverage {
				if c.Gaps.Shortfall > 0 {
					short = append(short, fmt.Sprintf("  • %s %s %s-%s %s: %d of %d (missing %d)",
						c.LocationID, c.Date, c.StartTime, c.EndTime, c.Role, c.AssignedStaff, c.RequiredStaff, c.Gaps.Shortfall))
				}
			}
			if len(short) > 0 {
				fmt.Printf("Unfilled requirements (%d):\n", len(short))
				for _, line := range short {
					fmt.Println(line)
				}
				fmt.Println()
			}

			if len(result.Warnings) > 0 {
				fmt.Printf("Warnings (%d):\n", len(result.Warnings))
				for _, w := range result.Warnings {
					fmt.Printf("  • %s\n", w)
				}
				fmt.Println()
			}
			if len(result.Recommendations) > 0 {
				fmt.Printf("Recommendations (%d):\n", len(result.Recommendations))
				for _, r := range result.Recommendations {
					fmt.Printf("  • %s\n", r)
				}
				fmt.Println()
			}
			if len(result.ValidationErrors) > 0 {
				fmt.Printf("Validation Errors (%d):\n", len(result.ValidationErrors))
				for _, v := range result.ValidationErrors {
					fmt.Printf("  • %s on %s - %s: %s\n", v.StaffMemberID, v.Date, v.CriterionName, v.Description)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("start", "", "First date of the range (YYYY-MM-DD, default today)")
	cmd.Flags().String("end", "", "Last date of the range (YYYY-MM-DD, default start + 6 days)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().String("metrics-out", "", "Write run metrics to this file in Prometheus text format")

	return cmd
}
