// Package api defines wire-format types and converters for the distribution
// service. It translates the in-memory draft into the per-step JSON payloads
// the service persists, and models the read-only projection of a submitted
// release that the dashboard renders.
//
// DTOs use camelCase JSON tags to match the service's JavaScript consumers.
// Payloads form a tagged union over the step ordinal; every step has exactly
// one payload type and conversion is exhaustive at the persistence boundary.
// Repeatable lists are flattened to plain slices with blank entries dropped;
// item identities are a client-side concern and never travel on the wire.
package api
