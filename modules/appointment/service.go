package appointment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/logger"
)

// Service applies booking rules on top of the repository.
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

// NewService creates an appointment service.
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

// BookInput carries a new booking request.
type BookInput struct {
	VehicleID   uuid.UUID `json:"vehicle_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

// List returns the tenant's appointments.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Appointment, error) {
	return s.repo.List(ctx, tenantID)
}

// Get returns one appointment by tenant and id.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// Book schedules a new appointment.
func (s *Service) Book(ctx context.Context, tenantID, bookedBy uuid.UUID, in BookInput) (*Appointment, error) {
	if in.VehicleID == uuid.Nil {
		return nil, errors.Join(ErrInvalidInput, errors.New("vehicle_id is required"))
	}
	if !in.ScheduledAt.After(s.now()) {
		return nil, errors.Join(ErrInvalidInput, errors.New("scheduled_at must be in the future"))
	}

	a := &Appointment{
		ID:          uuid.New(),
		TenantID:    tenantID,
		VehicleID:   in.VehicleID,
		BookedBy:    bookedBy,
		ScheduledAt: in.ScheduledAt,
		Status:      StatusScheduled,
		Notes:       in.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "appointment booked",
		logger.TenantID(tenantID),
		slog.String("appointment_id", a.ID.String()),
		slog.Time("scheduled_at", a.ScheduledAt),
	)
	return a, nil
}

// Cancel cancels a scheduled appointment. Completed and already-cancelled
// appointments stay as they are.
func (s *Service) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusScheduled {
		return nil, ErrNotCancellable
	}

	if err := s.repo.UpdateStatus(ctx, tenantID, id, StatusCancelled); err != nil {
		return nil, err
	}
	a.Status = StatusCancelled
	return a, nil
}
