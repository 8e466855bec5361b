// Package services defines shared utilities consumed by the workflow runner
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp unit names, segment IDs, stage names, and
//     run correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the error taxonomy (configuration, source, persistence,
//     translation, consistency).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across components.
package services
