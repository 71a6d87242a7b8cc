package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrenchly/wrenchly/pkg/pg"
)

// Repository persists invoices, scoped by tenant on every call.
type Repository interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)
	Create(ctx context.Context, inv *Invoice) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
	NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// PGRepository implements Repository on a pgx connection pool.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs the repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) List(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, appointment_id, number, amount_cents, currency, status, issued_at, created_at, updated_at
		FROM invoices
		WHERE tenant_id = $1
		ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.TenantID, &inv.AppointmentID, &inv.Number, &inv.AmountCents, &inv.Currency, &inv.Status, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *PGRepository) Get(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error) {
	var inv Invoice
	err := r.pool.QueryRow(ctx, `
		SELECT id, tenant_id, appointment_id, number, amount_cents, currency, status, issued_at, created_at, updated_at
		FROM invoices
		WHERE tenant_id = $1 AND id = $2`, tenantID, id).
		Scan(&inv.ID, &inv.TenantID, &inv.AppointmentID, &inv.Number, &inv.AmountCents, &inv.Currency, &inv.Status, &inv.IssuedAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) Create(ctx context.Context, inv *Invoice) error {
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO invoices (id, tenant_id, appointment_id, number, amount_cents, currency, status, issued_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.TenantID, inv.AppointmentID, inv.Number, inv.AmountCents, inv.Currency, inv.Status, inv.IssuedAt, inv.CreatedAt, inv.UpdatedAt)
	if pg.IsDuplicateKey(err) {
		// Two issuers racing for the same allocated number within a tenant.
		return errors.Join(ErrDuplicateNumber, err)
	}
	return err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices
		SET status = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, status, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// NextNumber allocates the next sequential invoice number per tenant.
// Numbering is per-tenant so one organization's volume reveals nothing
// about another's.
func (r *PGRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO invoice_counters (tenant_id, counter)
		VALUES ($1, 1)
		ON CONFLICT (tenant_id) DO UPDATE SET counter = invoice_counters.counter + 1
		RETURNING counter`, tenantID).Scan(&n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%06d", n), nil
}
