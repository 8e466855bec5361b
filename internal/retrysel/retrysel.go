// Package retrysel picks the subset of source segments that a retry run
// must re-attempt, based on the ledger's failed ids.
package retrysel

import (
	"fmt"
	"log/slog"

	"inkwell/internal/logging"
	"inkwell/internal/segment"
	"inkwell/internal/services"
)

// Selection is the result of matching failed ids against the source
// segments. Missing ids are a consistency problem between ledger and source,
// reported rather than silently dropped.
type Selection struct {
	Segments []segment.Segment
	Missing  []string
}

// Selector filters source segments down to the failed set.
type Selector struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Selector {
	return &Selector{logger: logging.NewComponentLogger(logger, "retrysel")}
}

// Select returns the segments whose ids appear in failedIDs, preserving
// source order and every segment attribute untouched. Ids with no matching
// segment are collected in Missing; they typically mean the source file was
// re-split since the failing run.
func (s *Selector) Select(failedIDs []string, source []segment.Segment) Selection {
	wanted := make(map[string]bool, len(failedIDs))
	for _, id := range failedIDs {
		wanted[id] = true
	}

	var sel Selection
	for _, seg := range source {
		if wanted[seg.ID] {
			sel.Segments = append(sel.Segments, seg)
			delete(wanted, seg.ID)
		}
	}
	for _, id := range failedIDs {
		if wanted[id] {
			sel.Missing = append(sel.Missing, id)
		}
	}

	if len(sel.Missing) > 0 {
		s.logger.Warn("failed ids missing from source segments",
			logging.Int("missing", len(sel.Missing)),
			logging.String(logging.FieldErrorHint, "source may have been re-split since the failing run"))
	}
	return sel
}

// Err converts a non-empty Missing list into a consistency error suitable
// for surfacing in run results. A fully matched selection returns nil.
func (sel Selection) Err() error {
	if len(sel.Missing) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConsistency, "retry", "select",
		fmt.Sprintf("%d failed id(s) not present in source: %v", len(sel.Missing), sel.Missing), nil)
}
