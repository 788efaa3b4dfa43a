// Package services defines shared utilities consumed by the authoring
// workflow and the external HTTP collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp release identifiers, step numbers, upload
//     slots, and correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the workflow error taxonomy (draft creation, validation, upload,
//     network, finalization, precondition).
//   - Field-level validation details decoded from collaborator responses.
//
// Use these helpers when wiring new workflow logic so operational behaviour
// (error handling, observability, retries) stays uniform across steps.
package services
