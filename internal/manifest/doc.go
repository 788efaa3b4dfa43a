// Package manifest reads a declarative TOML description of a release
// and replays it as session commands. It is the input format of the
// submit command: one file naming the category, the release metadata,
// every track with its assets, and the distribution choices.
package manifest
