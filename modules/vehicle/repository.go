package vehicle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrenchly/wrenchly/pkg/pg"
)

// Repository persists vehicles and assessments. Every method takes the
// tenant id explicitly; implementations must never return rows belonging
// to a different tenant.
type Repository interface {
	ListVehicles(ctx context.Context, tenantID uuid.UUID) ([]Vehicle, error)
	GetVehicle(ctx context.Context, tenantID, id uuid.UUID) (*Vehicle, error)
	CreateVehicle(ctx context.Context, v *Vehicle) error
	UpdateVehicle(ctx context.Context, v *Vehicle) error

	ListAssessments(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]Assessment, error)
	CreateAssessment(ctx context.Context, a *Assessment) error
}

// PGRepository implements Repository on a pgx connection pool.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs the repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) ListVehicles(ctx context.Context, tenantID uuid.UUID) ([]Vehicle, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, owner_id, make, model, year, plate, created_at, updated_at
		FROM vehicles
		WHERE tenant_id = $1
		ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.TenantID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.Plate, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *PGRepository) GetVehicle(ctx context.Context, tenantID, id uuid.UUID) (*Vehicle, error) {
	var v Vehicle
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, owner_id, make, model, year, plate, created_at, updated_at
		FROM vehicles
		WHERE tenant_id = $1 AND id = $2`, tenantID, id).
		Scan(&v.ID, &v.TenantID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.Plate, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) CreateVehicle(ctx context.Context, v *Vehicle) error {
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vehicles (id, tenant_id, owner_id, make, model, year, plate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.TenantID, v.OwnerID, v.Make, v.Model, v.Year, v.Plate, v.CreatedAt, v.UpdatedAt)
	return err
}

func (r *PGRepository) UpdateVehicle(ctx context.Context, v *Vehicle) error {
	v.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, `
		UPDATE vehicles
		SET make = $3, model = $4, year = $5, plate = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`,
		v.TenantID, v.ID, v.Make, v.Model, v.Year, v.Plate, v.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (r *PGRepository) ListAssessments(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]Assessment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, vehicle_id, summary, severity, created_by, created_at
		FROM assessments
		WHERE tenant_id = $1 AND vehicle_id = $2
		ORDER BY created_at DESC`, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.VehicleID, &a.Summary, &a.Severity, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

func (r *PGRepository) CreateAssessment(ctx context.Context, a *Assessment) error {
	a.CreatedAt = time.Now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO assessments (id, tenant_id, vehicle_id, summary, severity, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.TenantID, a.VehicleID, a.Summary, a.Severity, a.CreatedBy, a.CreatedAt)
	return err
}
