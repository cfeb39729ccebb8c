package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acganger/ganger-platform-sub011/pkg/core/services"
)

// TravelOptionsCmd creates the travelOptions command
func TravelOptionsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "travelOptions",
		Short: "List the locations each available staff member could travel to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			start, end, err := resolveRange(start, end)
			if err != nil {
				return err
			}

			options, err := services.ListTravelOptions(app.Ctx, app.Stores, app.Cfg, app.Logger, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d staff available for extra work between %s and %s:\n\n", len(options), start, end)
			for _, o := range options {
				fmt.Printf("- %s (based at %s)\n", o.StaffMemberID, o.PrimaryLocationID)
				if len(o.Routes) == 0 {
					fmt.Println("    no viable routes")
					continue
				}
				for _, r := range o.Routes {
					fmt.Printf("    → %-14s %5.1f mi  %3d min  reliability %.2f\n",
						r.ToLocationID, r.DistanceMiles, r.TravelTimeMinutes, r.Reliability)
				}
			}

			return nil
		},
	}

	cmd.Flags().String("start", "", "First date of the range (YYYY-MM-DD, default today)")
	cmd.Flags().String("end", "", "Last date of the range (YYYY-MM-DD, default start + 6 days)")

	return cmd
}
