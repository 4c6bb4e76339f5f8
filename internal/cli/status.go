package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a dispatch overview",
		Long:  `Show job counts by status, on-shift clerks and the most recent audit entries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := actorContext(cmd)

			jobs, err := wire.JobService().ListJobs(ctx, primary.JobFilters{})
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			counts := map[string]int{}
			for _, j := range jobs {
				counts[j.Status]++
			}

			color.New(color.Bold).Println("Jobs")
			for _, status := range []string{"created", "assigned", "in_progress", "checked_in", "completed", "cancelled"} {
				if counts[status] == 0 {
					continue
				}
				fmt.Printf("  %-12s %d\n", statusColor(status), counts[status])
			}
			if len(jobs) == 0 {
				fmt.Println("  none")
			}

			clerks, err := wire.UserService().ListUsers(ctx, primary.UserFilters{
				Role:        "clerk",
				ActiveOnly:  true,
				OnShiftOnly: true,
			})
			if err != nil {
				return fmt.Errorf("failed to list clerks: %w", err)
			}

			fmt.Println()
			color.New(color.Bold).Println("On-shift clerks")
			if len(clerks) == 0 {
				fmt.Println("  none")
			}
			for _, c := range clerks {
				fmt.Printf("  %s (%s)\n", c.FullName, c.ID)
			}

			entries, err := wire.JobService().AllAssignmentLogs(ctx, 5)
			if err != nil {
				return fmt.Errorf("failed to list recent activity: %w", err)
			}

			fmt.Println()
			color.New(color.Bold).Println("Recent activity")
			if len(entries) == 0 {
				fmt.Println("  none")
			}
			for _, e := range entries {
				fmt.Printf("  %s  %s  %s → %s (%s)\n",
					humanTime(e.CreatedAt), e.JobID, e.FromStatus, e.ToStatus, e.ActionType)
			}

			return nil
		},
	}
}
