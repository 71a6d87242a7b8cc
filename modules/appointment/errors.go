package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when no appointment matches the
	// tenant and id.
	ErrAppointmentNotFound = errors.New("appointment.not_found")

	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("appointment.invalid_input")

	// ErrNotCancellable is returned when cancelling an appointment that is
	// no longer in the scheduled state.
	ErrNotCancellable = errors.New("appointment.not_cancellable")
)
