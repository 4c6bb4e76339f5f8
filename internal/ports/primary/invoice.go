package primary

import "context"

// InvoiceService defines the primary port for clerk invoices.
type InvoiceService interface {
	// SubmitInvoice files a clerk's invoice for a month.
	SubmitInvoice(ctx context.Context, req SubmitInvoiceRequest) (*Invoice, error)

	// GetInvoice retrieves an invoice by ID.
	GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error)

	// ListInvoices retrieves a clerk's invoices, newest period first.
	ListInvoices(ctx context.Context, clerkID string, limit int) ([]*Invoice, error)

	// ReviewInvoice sets the status (paid/rejected) with optional notes.
	// Admin only.
	ReviewInvoice(ctx context.Context, req ReviewInvoiceRequest) error
}

// Invoice is the invoice representation exposed to the driving layer.
type Invoice struct {
	ID          string
	ClerkID     string
	MonthPeriod string
	Status      string
	InvoiceURL  string
	AdminNotes  string
	SubmittedAt string
}

// SubmitInvoiceRequest contains parameters for submitting an invoice.
type SubmitInvoiceRequest struct {
	ClerkID     string
	MonthPeriod string // YYYY-MM
	InvoiceURL  string
}

// ReviewInvoiceRequest contains parameters for reviewing an invoice.
type ReviewInvoiceRequest struct {
	InvoiceID  string
	Status     string
	AdminNotes string
}
