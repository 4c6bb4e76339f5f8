package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// AvailabilityCmd returns the availability command
func AvailabilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "availability",
		Aliases: []string{"avail"},
		Short:   "Manage clerk availability",
	}

	cmd.AddCommand(availabilitySetCmd())
	cmd.AddCommand(availabilityListCmd())
	cmd.AddCommand(availabilityClearCmd())

	return cmd
}

func availabilitySetCmd() *cobra.Command {
	var req primary.SetAvailabilityRequest
	var unavailable bool

	cmd := &cobra.Command{
		Use:   "set [clerk-id] [date]",
		Short: "File availability for a date",
		Long: `File a clerk's availability for a date (YYYY-MM-DD).

Examples:
  fieldops availability set clerk-1 2026-09-01
  fieldops availability set clerk-1 2026-09-01 --from 09:00 --to 14:00 --postcode "E14 9GE"
  fieldops availability set clerk-1 2026-09-02 --off`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.UserID = args[0]
			req.AvailableDate = args[1]
			req.IsAvailable = !unavailable

			record, err := wire.AvailabilityService().SetAvailability(actorContext(cmd), req)
			if err != nil {
				return fmt.Errorf("failed to set availability: %w", err)
			}

			if record.IsAvailable {
				fmt.Printf("✓ %s available on %s (%s-%s)\n", record.UserID, record.AvailableDate, record.StartTime, record.EndTime)
			} else {
				fmt.Printf("✓ %s unavailable on %s\n", record.UserID, record.AvailableDate)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unavailable, "off", false, "Mark the date unavailable")
	cmd.Flags().StringVar(&req.StartTime, "from", "", "Start of window, HH:MM")
	cmd.Flags().StringVar(&req.EndTime, "to", "", "End of window, HH:MM")
	cmd.Flags().StringVar(&req.Postcode, "postcode", "", "Working-area postcode for the day")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")

	return cmd
}

func availabilityListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list [clerk-id]",
		Short: "List a clerk's availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := wire.AvailabilityService().ListAvailability(actorContext(cmd), args[0], limit)
			if err != nil {
				return fmt.Errorf("failed to list availability: %w", err)
			}

			if len(records) == 0 {
				fmt.Println("No availability filed.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "DATE\tAVAILABLE\tWINDOW\tPOSTCODE")
			fmt.Fprintln(w, "----\t---------\t------\t--------")

			for _, r := range records {
				window := "-"
				if r.IsAvailable {
					window = r.StartTime + "-" + r.EndTime
				}
				fmt.Fprintf(w, "%s\t%t\t%s\t%s\n", r.AvailableDate, r.IsAvailable, window, orDash(r.Postcode))
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 14, "Limit the number of results")

	return cmd
}

func availabilityClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [clerk-id] [date]",
		Short: "Remove the record for a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.AvailabilityService().ClearAvailability(actorContext(cmd), args[0], args[1]); err != nil {
				return fmt.Errorf("failed to clear availability: %w", err)
			}
			fmt.Printf("✓ Cleared %s for %s\n", args[1], args[0])
			return nil
		},
	}
}
