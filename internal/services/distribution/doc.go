// Package distribution implements the HTTP client for the distribution
// back-office API: draft creation, per-step persistence, final submission,
// and the read-only release projection.
//
// Responses are classified into the workflow error taxonomy: 4xx bodies on
// step persistence decode into field-scoped validation details, transport
// failures and 5xx responses surface as network errors, and draft creation
// rejections are fatal to the session.
package distribution
