// Package session holds the editing state of one release draft: the
// draft aggregate, its upload pipeline and its persistence coordinator.
//
// All mutations go through typed commands applied by a single reducer,
// which re-applies the conditional field policy after every relevant
// change. The category is fixed at session creation. Once the release
// has been submitted the session is terminal and rejects every further
// command.
package session
