// Package logging builds slog loggers for the authoring workflow.
//
// Two output formats are supported: a console handler that prints compact,
// optionally colorized lines for interactive use, and a JSON handler for
// machine consumption. Standardized field keys keep release, step, slot, and
// correlation identifiers consistent across packages; WithContext derives
// those fields from a request context stamped by the services package.
package logging
