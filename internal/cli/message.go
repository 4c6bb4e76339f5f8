package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// MessageCmd returns the message command
func MessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "message",
		Aliases: []string{"msg"},
		Short:   "Job chat messages",
	}

	cmd.AddCommand(messageSendCmd())
	cmd.AddCommand(messageListCmd())

	return cmd
}

func messageSendCmd() *cobra.Command {
	var attachment string

	cmd := &cobra.Command{
		Use:   "send [job-id] [content]",
		Short: "Post a message to a job's chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := wire.MessageService().SendMessage(actorContext(cmd), primary.SendMessageRequest{
				JobID:         args[0],
				Content:       args[1],
				AttachmentURL: attachment,
			})
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			fmt.Printf("✓ Message %s posted to job %s\n", message.ID, message.JobID)
			return nil
		},
	}

	cmd.Flags().StringVar(&attachment, "attach", "", "Attachment URL")

	return cmd
}

func messageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [job-id]",
		Short: "Show a job's chat, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := wire.MessageService().ListMessages(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to list messages: %w", err)
			}

			if len(messages) == 0 {
				fmt.Println("No messages.")
				return nil
			}

			for _, m := range messages {
				sender := m.SenderID
				if m.IsSystemMessage {
					sender = "system"
				}
				fmt.Printf("[%s] %s: %s\n", humanTime(m.SentAt), sender, m.Content)
				if m.AttachmentURL != "" {
					fmt.Printf("        attachment: %s\n", m.AttachmentURL)
				}
			}
			return nil
		},
	}
}
