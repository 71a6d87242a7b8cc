package vehicle

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wrenchly/wrenchly/pkg/logger"
)

// Service applies validation and defaults on top of the repository.
type Service struct {
	repo Repository
	log  *slog.Logger
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

// NewService creates a vehicle service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo: repo,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateVehicleInput carries the fields a caller may set on a new vehicle.
type CreateVehicleInput struct {
	OwnerID uuid.UUID `json:"owner_id"`
	Make    string    `json:"make"`
	Model   string    `json:"model"`
	Year    int       `json:"year"`
	Plate   string    `json:"plate"`
}

func (in CreateVehicleInput) validate() error {
	if in.Make == "" || in.Model == "" {
		return errors.Join(ErrInvalidInput, errors.New("make and model are required"))
	}
	if in.Year < 1900 || in.Year > time.Now().Year()+1 {
		return errors.Join(ErrInvalidInput, errors.New("implausible year"))
	}
	return nil
}

// List returns the tenant's vehicles.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Vehicle, error) {
	return s.repo.ListVehicles(ctx, tenantID)
}

// Get returns one vehicle by tenant and id.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Vehicle, error) {
	return s.repo.GetVehicle(ctx, tenantID, id)
}

// Create registers a new vehicle for the tenant.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, in CreateVehicleInput) (*Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	v := &Vehicle{
		ID:       uuid.New(),
		TenantID: tenantID,
		OwnerID:  in.OwnerID,
		Make:     in.Make,
		Model:    in.Model,
		Year:     in.Year,
		Plate:    in.Plate,
	}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "vehicle created",
		logger.TenantID(tenantID),
		slog.String("vehicle_id", v.ID.String()),
	)
	return v, nil
}

// Update modifies an existing vehicle's details.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, in CreateVehicleInput) (*Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	v, err := s.repo.GetVehicle(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	v.Make = in.Make
	v.Model = in.Model
	v.Year = in.Year
	v.Plate = in.Plate

	if err := s.repo.UpdateVehicle(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// CreateAssessmentInput carries a new inspection finding.
type CreateAssessmentInput struct {
	Summary  string `json:"summary"`
	Severity string `json:"severity"`
}

// ListAssessments returns a vehicle's assessments, confirming first that
// the vehicle belongs to the tenant.
func (s *Service) ListAssessments(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]Assessment, error) {
	if _, err := s.repo.GetVehicle(ctx, tenantID, vehicleID); err != nil {
		return nil, err
	}
	return s.repo.ListAssessments(ctx, tenantID, vehicleID)
}

// CreateAssessment records an inspection finding against a vehicle.
func (s *Service) CreateAssessment(ctx context.Context, tenantID, vehicleID, createdBy uuid.UUID, in CreateAssessmentInput) (*Assessment, error) {
	if in.Summary == "" {
		return nil, errors.Join(ErrInvalidInput, errors.New("summary is required"))
	}
	if !validSeverity(in.Severity) {
		return nil, errors.Join(ErrInvalidInput, errors.New("unknown severity"))
	}

	if _, err := s.repo.GetVehicle(ctx, tenantID, vehicleID); err != nil {
		return nil, err
	}

	a := &Assessment{
		ID:        uuid.New(),
		TenantID:  tenantID,
		VehicleID: vehicleID,
		Summary:   in.Summary,
		Severity:  in.Severity,
		CreatedBy: createdBy,
	}
	if err := s.repo.CreateAssessment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
