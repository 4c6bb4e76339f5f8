package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ctxutil"
	"github.com/example/fieldops/internal/wire"
)

// NotificationCmd returns the notification command
func NotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notif"},
		Short:   "Read transition notifications",
	}

	cmd.AddCommand(notificationListCmd())
	cmd.AddCommand(notificationReadCmd())
	cmd.AddCommand(notificationReadAllCmd())

	return cmd
}

// notificationUser resolves whose inbox to read: explicit argument first,
// then the acting user.
func notificationUser(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	ctx := actorContext(cmd)
	if actor := ctxutil.ActorFromContext(ctx); actor != "" {
		return actor, nil
	}
	return "", fmt.Errorf("pass a user ID or set --actor")
}

func notificationListCmd() *cobra.Command {
	var unreadOnly bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list [user-id]",
		Short: "List a user's notifications",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := notificationUser(cmd, args)
			if err != nil {
				return err
			}

			notifications, err := wire.NotificationService().ListNotifications(actorContext(cmd), userID, unreadOnly, limit)
			if err != nil {
				return fmt.Errorf("failed to list notifications: %w", err)
			}

			if len(notifications) == 0 {
				fmt.Println("No notifications.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tWHEN\tTYPE\tTITLE\tJOB")
			fmt.Fprintln(w, "--\t----\t----\t-----\t---")

			for _, n := range notifications {
				title := n.Title
				if !n.IsRead {
					title = color.New(color.Bold).Sprint(title)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					n.ID, humanTime(n.CreatedAt), n.Type, title, orDash(n.RelatedJobID))
			}

			w.Flush()

			count, err := wire.NotificationService().UnreadCount(actorContext(cmd), userID)
			if err == nil && count > 0 {
				fmt.Printf("\n%d unread\n", count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Unread notifications only")
	cmd.Flags().IntVar(&limit, "limit", 20, "Limit the number of results")

	return cmd
}

func notificationReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark a notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.NotificationService().MarkRead(actorContext(cmd), args[0]); err != nil {
				return fmt.Errorf("failed to mark read: %w", err)
			}
			fmt.Println("✓ Marked read")
			return nil
		},
	}
}

func notificationReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all [user-id]",
		Short: "Mark all of a user's notifications read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := notificationUser(cmd, args)
			if err != nil {
				return err
			}

			if err := wire.NotificationService().MarkAllRead(actorContext(cmd), userID); err != nil {
				return fmt.Errorf("failed to mark all read: %w", err)
			}
			fmt.Println("✓ All notifications marked read")
			return nil
		},
	}
}
