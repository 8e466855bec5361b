// Package checkpoint persists per-unit resume state as JSON files so an
// interrupted run can continue from the last fully processed chapter.
package checkpoint
