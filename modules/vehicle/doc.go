// Package vehicle manages an organization's vehicles and their condition
// assessments. All reads and writes are scoped to the tenant the request
// was authorized against: every query filters by tenant id in addition to
// any entity id, so a guessed UUID from another organization resolves to
// not-found rather than to data.
package vehicle
