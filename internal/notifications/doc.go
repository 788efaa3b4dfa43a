// Package notifications delivers authoring events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-event toggles in the configuration control which milestones
// are published so workflow code can emit every event unconditionally.
//
// Extend this package if you need alternative transports; all workflow code
// depends only on the simple Service interface.
package notifications
