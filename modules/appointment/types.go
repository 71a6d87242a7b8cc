package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. An appointment moves scheduled -> completed or
// scheduled -> cancelled; there are no other transitions.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is a booked workshop visit.
type Appointment struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"-"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	BookedBy    uuid.UUID `json:"booked_by"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
