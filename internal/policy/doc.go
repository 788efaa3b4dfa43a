// Package policy encodes the conditional field rules of the authoring form:
// flipping a governing flag to its "not applicable" value clears the fields
// it gates, so stale values are never submitted.
//
// Every rule is a pure in-place transformation applied by the session
// reducer on each relevant change. Rules are idempotent, and clearing is
// one-directional: re-enabling a flag never restores a cleared value.
package policy
