// Package logging wraps log/slog with the handlers and attribute helpers the
// rest of the pipeline uses: a single-line console handler for interactive
// runs, a JSON handler for machine consumption, standardized field keys, and
// context-derived fields (unit, segment, stage, run id).
package logging
