// Package response provides the standard JSON response envelope used by
// API handlers, plus HTTP error values that map domain failures onto
// status codes without leaking internals to the client.
package response
