package vehicle

import "errors"

var (
	// ErrVehicleNotFound is returned when no vehicle matches the tenant and
	// id. A vehicle that exists in another tenant is not found.
	ErrVehicleNotFound = errors.New("vehicle.not_found")

	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("vehicle.invalid_input")
)
