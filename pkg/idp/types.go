package idp

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an authenticated user identity as reported by the provider.
type Principal struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership is a principal's standing within one organization.
type Membership struct {
	PrincipalID uuid.UUID `json:"principal_id"`
	TenantID    uuid.UUID `json:"organization_id"`
	Role        string    `json:"role"`
}

// Config holds the provider endpoint settings.
type Config struct {
	BaseURL        string        `env:"IDP_BASE_URL,required"`             // BaseURL is the root of the provider API, e.g. "https://api.idp.example.com".
	APIKey         string        `env:"IDP_API_KEY,required"`              // APIKey authenticates this backend to the provider.
	RequestTimeout time.Duration `env:"IDP_REQUEST_TIMEOUT" envDefault:"5s"` // RequestTimeout bounds each provider call unless the caller's context is tighter.
}
