package translator

import (
	"context"
	"fmt"

	"inkwell/internal/segment"
	"inkwell/internal/services"
)

// Mock is a Translator for tests. Segments whose id appears in FailIDs
// return a translation error; everything else echoes a deterministic
// translated form.
type Mock struct {
	FailIDs map[string]bool
	Calls   []string
}

// Translate records the call and returns either a canned failure or a
// deterministic translation of the segment.
func (m *Mock) Translate(_ context.Context, seg segment.Segment) (string, error) {
	m.Calls = append(m.Calls, seg.ID)
	if m.FailIDs[seg.ID] {
		return "", services.Wrap(services.ErrTranslation, "translating", "translate", "mock failure for "+seg.ID, nil)
	}
	return fmt.Sprintf("[translated] %s", seg.Content), nil
}
