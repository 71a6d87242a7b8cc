package invoice

import (
	"time"

	"github.com/google/uuid"
)

// Invoice statuses. draft -> issued -> paid, with issued -> void as the
// administrative escape hatch. Paid invoices cannot be voided.
const (
	StatusDraft  = "draft"
	StatusIssued = "issued"
	StatusPaid   = "paid"
	StatusVoid   = "void"
)

// Invoice is a billing document for service work.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"-"`
	AppointmentID uuid.UUID  `json:"appointment_id"`
	Number        string     `json:"number"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
