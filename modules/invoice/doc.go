// Package invoice manages billing documents for completed service work.
// Issuing requires invoices:write; voiding is an administrative operation
// guarded by the admin permission at the route level. Queries carry the
// tenant id everywhere, so invoice numbers and amounts never cross an
// organization boundary.
package invoice
