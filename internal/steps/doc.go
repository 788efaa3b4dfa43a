// Package steps drives the draft lifecycle against the distribution
// service: draft creation, per-step persistence and finalization.
//
// The coordinator owns the orderings the backend cares about. A step can
// only be persisted once every earlier step has been acknowledged, the
// acknowledged count advances by exactly one per new step, and only one
// request is in flight at a time. Local validation runs before anything
// touches the network.
package steps
