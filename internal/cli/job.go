package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// JobCmd returns the job command
func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage inspection jobs",
		Long:  `Create jobs and drive them through their lifecycle: assign, start, check-in, complete.`,
	}

	cmd.AddCommand(jobCreateCmd())
	cmd.AddCommand(jobListCmd())
	cmd.AddCommand(jobShowCmd())
	cmd.AddCommand(jobAssignCmd())
	cmd.AddCommand(jobAutoAssignCmd())
	cmd.AddCommand(jobStartCmd())
	cmd.AddCommand(jobCheckInCmd())
	cmd.AddCommand(jobCompleteCmd())
	cmd.AddCommand(jobCancelCmd())
	cmd.AddCommand(jobRejectCmd())
	cmd.AddCommand(jobLogsCmd())

	return cmd
}

func jobCreateCmd() *cobra.Command {
	var req primary.CreateJobRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new job",
		Long: `Create a new job in created status.

Examples:
  fieldops job create --property prop-123 --date 2026-09-01T10:00:00Z
  fieldops job create --property prop-123 --date 2026-09-01T10:00:00Z --type inventory --priority high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.PropertyID == "" {
				return fmt.Errorf("--property is required")
			}
			if req.AppointmentDate == "" {
				return fmt.Errorf("--date is required")
			}

			resp, err := wire.JobService().CreateJob(actorContext(cmd), req)
			if err != nil {
				return fmt.Errorf("failed to create job: %w", err)
			}

			fmt.Printf("✓ Created job %s at property %s (%s)\n", resp.JobID, resp.Job.PropertyID, resp.Job.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.PropertyID, "property", "", "Property ID (required)")
	cmd.Flags().StringVar(&req.AppointmentDate, "date", "", "Appointment date, RFC3339 (required)")
	cmd.Flags().StringVar(&req.JobType, "type", "", "Job type (inspection, inventory, check_in, check_out)")
	cmd.Flags().StringVar(&req.Priority, "priority", "", "Priority (low, normal, high, emergency)")
	cmd.Flags().IntVar(&req.EstimatedDuration, "duration", 0, "Estimated duration in minutes")
	cmd.Flags().StringVar(&req.AccessInstructions, "access", "", "Access instructions")
	cmd.Flags().StringVar(&req.KeyLocation, "keys", "", "Key location")
	cmd.Flags().StringVar(&req.AdminNotes, "notes", "", "Admin notes")

	return cmd
}

func jobListCmd() *cobra.Command {
	var filters primary.JobFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := wire.JobService().ListJobs(actorContext(cmd), filters)
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			if len(jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tPROPERTY\tTYPE\tSTATUS\tCLERK\tAPPOINTMENT")
			fmt.Fprintln(w, "--\t--------\t----\t------\t-----\t-----------")

			for _, j := range jobs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					j.ID,
					j.PropertyID,
					j.JobType,
					statusColor(j.Status),
					orDash(j.AssignedClerkID),
					humanTime(j.AppointmentDate),
				)
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&filters.ClerkID, "clerk", "", "Filter by assigned clerk")
	cmd.Flags().StringVar(&filters.PropertyID, "property", "", "Filter by property")
	cmd.Flags().IntVar(&filters.Limit, "limit", 0, "Limit the number of results")

	return cmd
}

func jobShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [job-id]",
		Short: "Show job details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := wire.JobService().GetJob(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("job not found: %w", err)
			}

			fmt.Printf("Job: %s\n", job.ID)
			fmt.Printf("Property: %s\n", job.PropertyID)
			fmt.Printf("Type: %s (%s priority)\n", job.JobType, job.Priority)
			fmt.Printf("Status: %s\n", statusColor(job.Status))
			fmt.Printf("Clerk: %s\n", orDash(job.AssignedClerkID))
			fmt.Printf("Appointment: %s (%s)\n", job.AppointmentDate, humanTime(job.AppointmentDate))
			fmt.Printf("Duration: %d minutes\n", job.EstimatedDuration)
			if job.StartTime != "" {
				fmt.Printf("Started: %s\n", humanTime(job.StartTime))
			}
			if job.CheckInTime != "" {
				fmt.Printf("Checked in: %s\n", humanTime(job.CheckInTime))
			}
			if job.CompleteTime != "" {
				fmt.Printf("Completed: %s\n", humanTime(job.CompleteTime))
			}
			if job.LocationWarningFlag {
				fmt.Println("⚠ Check-in location was far from the property")
			}
			if job.AdminNotes != "" {
				fmt.Printf("Notes: %s\n", job.AdminNotes)
			}
			return nil
		},
	}
}

func jobAssignCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "assign [job-id] [clerk-id]",
		Short: "Assign a job to a clerk (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := wire.JobService().Assign(actorContext(cmd), primary.AssignRequest{
				JobID:   args[0],
				ClerkID: args[1],
				Reason:  reason,
			})
			if err != nil {
				return fmt.Errorf("failed to assign job: %w", err)
			}

			fmt.Printf("✓ Job %s assigned to %s\n", job.ID, job.AssignedClerkID)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the audit trail")

	return cmd
}

func jobAutoAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto-assign [job-id]",
		Short: "Pick the best available clerk and assign the job (admin only)",
		Long: `Score every on-shift clerk by previous visits to the property, distance,
postcode match and current workload, and assign the job to the winner.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := wire.JobService().AutoAssign(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to auto-assign job: %w", err)
			}

			if job.AssignedClerkID == "" {
				fmt.Printf("No eligible clerk found for job %s; it stays in the pool\n", job.ID)
				return nil
			}

			fmt.Printf("✓ Job %s auto-assigned to %s\n", job.ID, job.AssignedClerkID)
			return nil
		},
	}
}

func jobStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [job-id]",
		Short: "Start an assigned job (assigned clerk only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := wire.JobService().Start(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to start job: %w", err)
			}

			fmt.Printf("✓ Job %s is now %s\n", job.ID, job.Status)
			return nil
		},
	}
}

func jobCheckInCmd() *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "check-in [job-id]",
		Short: "Record arrival at the property (assigned clerk only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.CheckInRequest{JobID: args[0]}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				req.Lat = &lat
				req.Lng = &lng
			}

			job, err := wire.JobService().CheckIn(actorContext(cmd), req)
			if err != nil {
				return fmt.Errorf("failed to check in: %w", err)
			}

			fmt.Printf("✓ Checked in on job %s\n", job.ID)
			if job.LocationWarningFlag {
				fmt.Println("⚠ Capture location is far from the property; the job was flagged")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Capture latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Capture longitude")

	return cmd
}

func jobCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [job-id]",
		Short: "Complete a checked-in job (assigned clerk only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := wire.JobService().Complete(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to complete job: %w", err)
			}

			fmt.Printf("✓ Job %s completed\n", job.ID)
			return nil
		},
	}
}

func jobCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [job-id]",
		Short: "Cancel a job (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := wire.JobService().Cancel(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel job: %w", err)
			}

			fmt.Printf("✓ Job %s cancelled\n", job.ID)
			return nil
		},
	}
}

func jobRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject [job-id]",
		Short: "Reject an assignment (assigned clerk only)",
		Long: `Return an assigned job to the pool. The scheduler immediately tries to
hand it to the next best clerk; when nobody qualifies it stays in the pool
for manual assignment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := wire.JobService().Reject(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to reject job: %w", err)
			}

			if job.AssignedClerkID != "" {
				fmt.Printf("✓ Job %s rejected and reassigned to %s\n", job.ID, job.AssignedClerkID)
			} else {
				fmt.Printf("✓ Job %s rejected and returned to the pool\n", job.ID)
			}
			return nil
		},
	}
}

func jobLogsCmd() *cobra.Command {
	var all bool
	var limit int

	cmd := &cobra.Command{
		Use:   "logs [job-id]",
		Short: "Show the assignment audit trail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []*primary.AssignmentLogEntry
			var err error

			switch {
			case len(args) == 1:
				entries, err = wire.JobService().AssignmentLogs(actorContext(cmd), args[0])
			case all:
				entries, err = wire.JobService().AllAssignmentLogs(actorContext(cmd), limit)
			default:
				return fmt.Errorf("pass a job ID or --all")
			}
			if err != nil {
				return fmt.Errorf("failed to list logs: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No audit entries found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "WHEN\tJOB\tTRANSITION\tACTION\tACTOR\tREASON")
			fmt.Fprintln(w, "----\t---\t----------\t------\t-----\t------")

			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s → %s\t%s\t%s\t%s\n",
					humanTime(e.CreatedAt),
					e.JobID,
					e.FromStatus, e.ToStatus,
					e.ActionType,
					orDash(e.ActorUserID),
					orDash(e.Reason),
				)
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show entries across all jobs")
	cmd.Flags().IntVar(&limit, "limit", 50, "Limit for --all")

	return cmd
}
