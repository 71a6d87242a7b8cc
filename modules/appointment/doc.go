// Package appointment handles service appointment scheduling for an
// organization. Bookings and cancellations are tenant-scoped the same way
// as every other module: a tenant id accompanies every query, and an
// appointment in another organization is indistinguishable from one that
// does not exist.
package appointment
