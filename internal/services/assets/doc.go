// Package assets implements the multipart upload client for the object
// storage collaborator. It streams one binary per call and returns the
// stored URL plus size and format metadata. File validation (type allow
// lists, cover dimensions) happens in the uploads package before this
// client is ever invoked.
package assets
