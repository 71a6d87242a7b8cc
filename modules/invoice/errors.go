package invoice

import "errors"

var (
	// ErrInvoiceNotFound is returned when no invoice matches the tenant and id.
	ErrInvoiceNotFound = errors.New("invoice.not_found")

	// ErrInvalidInput is returned for requests that fail validation.
	ErrInvalidInput = errors.New("invoice.invalid_input")

	// ErrNotVoidable is returned when voiding an invoice that is not in the
	// issued state.
	ErrNotVoidable = errors.New("invoice.not_voidable")

	// ErrDuplicateNumber is returned when an invoice insert loses a race for
	// an allocated number. The unique (tenant_id, number) constraint backs it.
	ErrDuplicateNumber = errors.New("invoice.duplicate_number")
)
