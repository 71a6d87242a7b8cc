package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrenchly/wrenchly/pkg/pg"
)

// Repository persists appointments, scoped by tenant on every call.
type Repository interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]Appointment, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error)
	Create(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
}

// PGRepository implements Repository on a pgx connection pool.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs the repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) List(ctx context.Context, tenantID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, vehicle_id, booked_by, scheduled_at, status, notes, created_at, updated_at
		FROM appointments
		WHERE tenant_id = $1
		ORDER BY scheduled_at`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.VehicleID, &a.BookedBy, &a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (r *PGRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*Appointment, error) {
	var a Appointment
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, vehicle_id, booked_by, scheduled_at, status, notes, created_at, updated_at
		FROM appointments
		WHERE tenant_id = $1 AND id = $2`, tenantID, id).
		Scan(&a.ID, &a.TenantID, &a.VehicleID, &a.BookedBy, &a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGRepository) Create(ctx context.Context, a *Appointment) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, tenant_id, vehicle_id, booked_by, scheduled_at, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.TenantID, a.VehicleID, a.BookedBy, a.ScheduledAt, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
