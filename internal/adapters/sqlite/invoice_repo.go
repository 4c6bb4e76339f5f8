package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// InvoiceRepository implements secondary.InvoiceRepository with SQLite.
type InvoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new SQLite invoice repository.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, clerk_id, month_period, status, invoice_url, admin_notes, submitted_at, created_at, updated_at`

// Create persists a new invoice submission.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *secondary.InvoiceRecord) error {
	if invoice.ID == "" {
		return fmt.Errorf("invoice ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clerk_invoices (id, clerk_id, month_period, status, invoice_url)
		 VALUES (?, ?, ?, 'submitted', ?)`,
		invoice.ID, invoice.ClerkID, invoice.MonthPeriod, nullString(invoice.InvoiceURL),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*secondary.InvoiceRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+invoiceColumns+" FROM clerk_invoices WHERE id = ?", id)

	record, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invoice %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return record, nil
}

// ListByClerk retrieves a clerk's invoices, newest period first.
func (r *InvoiceRepository) ListByClerk(ctx context.Context, clerkID string, limit int) ([]*secondary.InvoiceRecord, error) {
	query := "SELECT " + invoiceColumns + " FROM clerk_invoices WHERE clerk_id = ? ORDER BY month_period DESC"
	args := []any{clerkID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*secondary.InvoiceRecord
	for rows.Next() {
		record, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, record)
	}

	return invoices, rows.Err()
}

// UpdateStatus sets the invoice status and optional admin notes.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id, status, adminNotes string) error {
	query := "UPDATE clerk_invoices SET status = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{status}

	if adminNotes != "" {
		query += ", admin_notes = ?"
		args = append(args, adminNotes)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("invoice %s not found", id)
	}

	return nil
}

func scanInvoice(s scanner) (*secondary.InvoiceRecord, error) {
	var (
		url, notes                        sql.NullString
		submittedAt, createdAt, updatedAt time.Time
	)

	record := &secondary.InvoiceRecord{}
	err := s.Scan(
		&record.ID, &record.ClerkID, &record.MonthPeriod, &record.Status,
		&url, &notes, &submittedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.InvoiceURL = url.String
	record.AdminNotes = notes.String
	record.SubmittedAt = formatTime(submittedAt)
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)

	return record, nil
}

// Ensure InvoiceRepository implements the interface
var _ secondary.InvoiceRepository = (*InvoiceRepository)(nil)
