package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	corejob "github.com/example/fieldops/internal/core/job"
	"github.com/example/fieldops/internal/ctxutil"
	"github.com/example/fieldops/internal/models"
	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// InvoiceServiceImpl implements the InvoiceService interface.
type InvoiceServiceImpl struct {
	invoiceRepo secondary.InvoiceRepository
	userRepo    secondary.UserRepository
	logger      zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService with injected dependencies.
func NewInvoiceService(
	invoiceRepo secondary.InvoiceRepository,
	userRepo secondary.UserRepository,
	logger zerolog.Logger,
) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("component", "invoice_service").Logger(),
	}
}

// SubmitInvoice files a clerk's invoice for a month.
func (s *InvoiceServiceImpl) SubmitInvoice(ctx context.Context, req primary.SubmitInvoiceRequest) (*primary.Invoice, error) {
	clerk, err := s.userRepo.GetByID(ctx, req.ClerkID)
	if err != nil {
		return nil, err
	}
	if clerk.Role != models.RoleClerk {
		return nil, fmt.Errorf("user %s has role %s, only clerks submit invoices", clerk.ID, clerk.Role)
	}

	if _, err := time.Parse("2006-01", req.MonthPeriod); err != nil {
		return nil, fmt.Errorf("invalid month period %q (want YYYY-MM): %w", req.MonthPeriod, err)
	}

	record := &secondary.InvoiceRecord{
		ID:          uuid.NewString(),
		ClerkID:     req.ClerkID,
		MonthPeriod: req.MonthPeriod,
		Status:      models.InvoiceSubmitted,
		InvoiceURL:  req.InvoiceURL,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.invoiceRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to submit invoice: %w", err)
	}

	s.logger.Info().
		Str("invoice_id", record.ID).
		Str("clerk_id", req.ClerkID).
		Str("period", req.MonthPeriod).
		Msg("invoice submitted")

	return recordToInvoice(record), nil
}

// GetInvoice retrieves an invoice by ID.
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, invoiceID string) (*primary.Invoice, error) {
	record, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return recordToInvoice(record), nil
}

// ListInvoices retrieves a clerk's invoices, newest period first.
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context, clerkID string, limit int) ([]*primary.Invoice, error) {
	records, err := s.invoiceRepo.ListByClerk(ctx, clerkID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*primary.Invoice, 0, len(records))
	for _, r := range records {
		invoices = append(invoices, recordToInvoice(r))
	}
	return invoices, nil
}

// ReviewInvoice sets the status (paid/rejected) with optional notes. Admin only.
func (s *InvoiceServiceImpl) ReviewInvoice(ctx context.Context, req primary.ReviewInvoiceRequest) error {
	actorID := ctxutil.ActorFromContext(ctx)
	if actorID == "" {
		return fmt.Errorf("no acting user in context: %w", corejob.ErrUnauthorizedActor)
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("actor %s: %w", actorID, corejob.ErrUnauthorizedActor)
	}
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("only admins review invoices (actor %s has role %s): %w", actor.ID, actor.Role, corejob.ErrUnauthorizedActor)
	}

	if req.Status != models.InvoicePaid && req.Status != models.InvoiceRejected {
		return fmt.Errorf("invalid review status %q (want paid or rejected)", req.Status)
	}

	if _, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID); err != nil {
		return err
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, req.InvoiceID, req.Status, req.AdminNotes); err != nil {
		return fmt.Errorf("failed to review invoice: %w", err)
	}

	s.logger.Info().
		Str("invoice_id", req.InvoiceID).
		Str("status", req.Status).
		Str("actor", actor.ID).
		Msg("invoice reviewed")

	return nil
}

func recordToInvoice(r *secondary.InvoiceRecord) *primary.Invoice {
	return &primary.Invoice{
		ID:          r.ID,
		ClerkID:     r.ClerkID,
		MonthPeriod: r.MonthPeriod,
		Status:      r.Status,
		InvoiceURL:  r.InvoiceURL,
		AdminNotes:  r.AdminNotes,
		SubmittedAt: r.SubmittedAt,
	}
}

var _ primary.InvoiceService = (*InvoiceServiceImpl)(nil)
