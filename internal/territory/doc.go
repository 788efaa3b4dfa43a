// Package territory models the set-valued territory and storefront partner
// selections of the distribution step.
//
// Each named set draws from a fixed universe partitioned into display
// categories. "Select all" is derived from membership rather than stored:
// unchecking any single member immediately reports the set as not-all.
// Submission always carries the flattened member list; no explicit "all"
// flag travels on the wire.
package territory
