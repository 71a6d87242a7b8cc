package invoice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/logger"
)

// Service applies invoicing rules on top of the repository.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates an invoice service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo: repo,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueInput carries a new invoice request.
type IssueInput struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
}

// List returns the tenant's invoices.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error) {
	return s.repo.List(ctx, tenantID)
}

// Get returns one invoice by tenant and id.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// Issue creates and issues an invoice in one step.
func (s *Service) Issue(ctx context.Context, tenantID uuid.UUID, in IssueInput) (*Invoice, error) {
	if in.AmountCents <= 0 {
		return nil, errors.Join(ErrInvalidInput, errors.New("amount must be positive"))
	}
	if len(in.Currency) != 3 {
		return nil, errors.Join(ErrInvalidInput, errors.New("currency must be an ISO 4217 code"))
	}

	number, err := s.repo.NextNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	inv := &Invoice{
		ID:            uuid.New(),
		TenantID:      tenantID,
		AppointmentID: in.AppointmentID,
		Number:        number,
		AmountCents:   in.AmountCents,
		Currency:      in.Currency,
		Status:        StatusIssued,
		IssuedAt:      &issuedAt,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "invoice issued",
		logger.TenantID(tenantID),
		slog.String("invoice_number", inv.Number),
		slog.Int64("amount_cents", inv.AmountCents),
	)
	return inv, nil
}

// Void voids an issued invoice. Paid and draft invoices cannot be voided.
func (s *Service) Void(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusIssued {
		return nil, ErrNotVoidable
	}

	if err := s.repo.UpdateStatus(ctx, tenantID, id, StatusVoid); err != nil {
		return nil, err
	}
	inv.Status = StatusVoid

	s.log.InfoContext(ctx, "invoice voided",
		logger.TenantID(tenantID),
		slog.String("invoice_number", inv.Number),
	)
	return inv, nil
}
