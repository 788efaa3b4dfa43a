// Package collection implements the ordered, user-extensible lists that back
// repeatable form sections: artist names, contributors, tracks, and
// per-platform links.
//
// Every element carries a client-generated UUID that stays stable for the
// lifetime of the session and is never reused across add/remove cycles. A
// list always holds at least one element; removing the last remaining
// element is a no-op rather than an error. Each list knows how to construct
// its own empty element, so callers never infer element shape from a string
// key.
package collection
