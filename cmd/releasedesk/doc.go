// Package main hosts the releasedesk CLI entrypoint and command graph.
//
// The Cobra-based command tree drives release authoring end to end: a
// submit command that replays a TOML manifest through the draft workflow,
// a show command rendering the submitted-release projection, configuration
// scaffolding and a notification test. It centralizes configuration
// resolution and logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags
// here.
package main
