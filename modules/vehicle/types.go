package vehicle

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a customer vehicle registered with the workshop.
type Vehicle struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"-"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Plate     string    `json:"plate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Assessment severity levels.
const (
	SeverityInfo     = "info"
	SeverityAdvisory = "advisory"
	SeverityUrgent   = "urgent"
)

// Assessment is a recorded inspection finding for a vehicle.
type Assessment struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"-"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	Summary   string    `json:"summary"`
	Severity  string    `json:"severity"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// validSeverity reports whether s is one of the known severity levels.
func validSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeverityAdvisory, SeverityUrgent:
		return true
	}
	return false
}
