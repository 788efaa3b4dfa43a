// Package uploads drives binary asset uploads for the authoring workflow.
//
// Each upload slot (cover art, copyright proof, one audio slot per track)
// owns an explicit state machine: idle -> uploading -> done | failed. Local
// validation runs before any network call: content sniffing against a
// per-slot allow list, size caps, and a decode-based minimum dimension
// check for cover art. Exactly one upload may be in flight per slot; a
// second start while one is running is rejected. A failed upload leaves no
// partial URL behind.
package uploads
