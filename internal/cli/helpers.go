// Package cli contains the cobra commands for the fieldops tool.
package cli

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/config"
	"github.com/example/fieldops/internal/ctxutil"
)

// actorContext resolves the acting user from the --actor flag, falling back
// to the actor recorded in .fieldops/config.json.
func actorContext(cmd *cobra.Command) context.Context {
	actor, _ := cmd.Flags().GetString("actor")
	if actor == "" {
		if cfg, err := config.LoadConfig("."); err == nil {
			actor = cfg.ActorUserID
		}
	}
	return ctxutil.WithActorID(context.Background(), actor)
}

// statusColor renders a job status with the dashboard color scheme.
func statusColor(status string) string {
	switch status {
	case "created":
		return color.New(color.FgYellow).Sprint(status)
	case "assigned":
		return color.New(color.FgCyan).Sprint(status)
	case "in_progress", "checked_in":
		return color.New(color.FgBlue).Sprint(status)
	case "completed":
		return color.New(color.FgGreen).Sprint(status)
	case "cancelled":
		return color.New(color.FgRed).Sprint(status)
	default:
		return status
	}
}

// humanTime renders an RFC3339 timestamp as a relative time ("2 hours ago").
// Unparseable or empty values come back as "-".
func humanTime(rfc3339 string) string {
	if rfc3339 == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		return rfc3339
	}
	return humanize.Time(t)
}

// orDash substitutes "-" for empty values in table output.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
