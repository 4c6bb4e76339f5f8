package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/wire"
)

// InvoiceCmd returns the invoice command
func InvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Manage clerk invoices",
	}

	cmd.AddCommand(invoiceSubmitCmd())
	cmd.AddCommand(invoiceListCmd())
	cmd.AddCommand(invoiceShowCmd())
	cmd.AddCommand(invoiceReviewCmd())

	return cmd
}

func invoiceSubmitCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "submit [clerk-id] [month]",
		Short: "Submit an invoice for a month (YYYY-MM)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoice, err := wire.InvoiceService().SubmitInvoice(actorContext(cmd), primary.SubmitInvoiceRequest{
				ClerkID:     args[0],
				MonthPeriod: args[1],
				InvoiceURL:  url,
			})
			if err != nil {
				return fmt.Errorf("failed to submit invoice: %w", err)
			}

			fmt.Printf("✓ Invoice %s submitted for %s\n", invoice.ID, invoice.MonthPeriod)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Link to the invoice document")

	return cmd
}

func invoiceListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list [clerk-id]",
		Short: "List a clerk's invoices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := wire.InvoiceService().ListInvoices(actorContext(cmd), args[0], limit)
			if err != nil {
				return fmt.Errorf("failed to list invoices: %w", err)
			}

			if len(invoices) == 0 {
				fmt.Println("No invoices found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tMONTH\tSTATUS\tSUBMITTED")
			fmt.Fprintln(w, "--\t-----\t------\t---------")

			for _, inv := range invoices {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					inv.ID, inv.MonthPeriod, inv.Status, humanTime(inv.SubmittedAt))
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 12, "Limit the number of results")

	return cmd
}

func invoiceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [invoice-id]",
		Short: "Show invoice details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := wire.InvoiceService().GetInvoice(actorContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("invoice not found: %w", err)
			}

			fmt.Printf("Invoice: %s\n", inv.ID)
			fmt.Printf("Clerk: %s\n", inv.ClerkID)
			fmt.Printf("Month: %s\n", inv.MonthPeriod)
			fmt.Printf("Status: %s\n", inv.Status)
			fmt.Printf("Submitted: %s\n", humanTime(inv.SubmittedAt))
			if inv.InvoiceURL != "" {
				fmt.Printf("Document: %s\n", inv.InvoiceURL)
			}
			if inv.AdminNotes != "" {
				fmt.Printf("Notes: %s\n", inv.AdminNotes)
			}
			return nil
		},
	}
}

func invoiceReviewCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "review [invoice-id] [paid|rejected]",
		Short: "Review an invoice (admin only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := wire.InvoiceService().ReviewInvoice(actorContext(cmd), primary.ReviewInvoiceRequest{
				InvoiceID:  args[0],
				Status:     args[1],
				AdminNotes: notes,
			})
			if err != nil {
				return fmt.Errorf("failed to review invoice: %w", err)
			}

			fmt.Printf("✓ Invoice %s marked %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Review notes")

	return cmd
}
