// Package draft defines the in-memory release draft aggregate and its
// per-step payloads.
//
// A draft exists only after the distribution service assigns a release id;
// the category chosen at creation is immutable afterwards and caps the track
// list for single-track categories. Step payloads form a tagged union
// (release info, track list, distribution) validated independently before
// persistence; local validation runs before any network call so obviously
// broken payloads never leave the client.
//
// Treat this package as the single source of truth for draft semantics;
// when a step gains fields, update its payload type and validation here.
package draft
