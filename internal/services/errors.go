package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks missing or invalid configuration. Fatal: the
	// run aborts before any work starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrSourceNotFound marks a missing input file or URL. Fatal for the
	// unit-of-work it belongs to.
	ErrSourceNotFound = errors.New("source not found")
	// ErrPersistence marks checkpoint or ledger I/O failures. Callers catch
	// these at the store boundary and degrade to boolean/nil results.
	ErrPersistence = errors.New("persistence error")
	// ErrTranslation marks a failed or timed-out translation call. Recorded
	// per segment; never aborts the run.
	ErrTranslation = errors.New("translation error")
	// ErrConsistency marks a retry-set id that has no matching segment in
	// the supplied source. Reported to the operator; the run continues.
	ErrConsistency = errors.New("consistency error")
	// ErrTimeout marks a bounded operation that exceeded its deadline.
	ErrTimeout = errors.New("timeout")
	// ErrTransient marks failures with no more specific classification.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error should halt the run outright rather than
// being absorbed as per-segment or per-line data.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrSourceNotFound)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
