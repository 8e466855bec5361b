package translator

import (
	"context"

	"inkwell/internal/segment"
)

// Translator produces the translated text for one segment. Implementations
// must be safe for sequential reuse across a run.
type Translator interface {
	Translate(ctx context.Context, seg segment.Segment) (string, error)
}
