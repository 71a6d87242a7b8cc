// Package gate composes the authorization check run at every protected
// entry point: resolve the principal, resolve their membership in the
// requested tenant, evaluate the route's declared requirement, and produce
// a single terminal decision.
//
// The gate never reads ambient state: the session token, tenant id and
// requirement are explicit inputs, which keeps Check testable in isolation
// and safe under concurrent request handling. Decisions are transient
// values produced fresh per request; nothing is cached between calls, so
// two identical checks against unchanged membership state always agree.
//
// Two middleware flavors wrap Check for the two kinds of entry point:
//
//   - Pages converts denials into 303 redirects (sign-in with a return-to
//     parameter, organization selection, or the forbidden page).
//   - API converts denials into structured 401/403 JSON rejections that
//     carry the decision kind and nothing else.
//
// The check always completes before the wrapped handler runs; no
// tenant-scoped data access happens on a denied request.
package gate
