package workflow

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"inkwell/internal/logging"
	"inkwell/internal/segment"
	"inkwell/internal/services"
	"inkwell/internal/textutil"
)

// Merger persists translated segments and reconstructs the readable
// document. Retry runs hand it only the re-attempted segments; it overlays
// them onto what earlier runs already produced, so the output always
// reflects the newest successful translation of every segment.
type Merger struct {
	outputDir string
	logger    *slog.Logger
}

func NewMerger(outputDir string, logger *slog.Logger) *Merger {
	return &Merger{
		outputDir: outputDir,
		logger:    logging.NewComponentLogger(logger, "merger"),
	}
}

// SegmentsPath returns where translated segments are stored for a unit.
func (m *Merger) SegmentsPath(unitName string) string {
	return filepath.Join(m.outputDir, textutil.SanitizeUnitName(unitName)+"_translated.yaml")
}

// DocumentPath returns where the merged document is written for a unit.
func (m *Merger) DocumentPath(unitName string) string {
	return filepath.Join(m.outputDir, textutil.SanitizeUnitName(unitName)+"_translated.md")
}

// Merge overlays newly translated segments onto any existing translated file
// for the unit, writes the combined set back in narrative order, and renders
// the merged document. It returns the segments path and the document path.
func (m *Merger) Merge(unitName string, translated []segment.Segment) (string, string, error) {
	segsPath := m.SegmentsPath(unitName)

	combined := map[string]segment.Segment{}
	existing, err := segment.LoadFile(segsPath)
	if err == nil {
		for _, seg := range existing {
			combined[seg.ID] = seg
		}
	} else if !errors.Is(err, services.ErrSourceNotFound) {
		return "", "", err
	}
	for _, seg := range translated {
		combined[seg.ID] = seg
	}

	ordered := make([]segment.Segment, 0, len(combined))
	for _, seg := range combined {
		ordered = append(ordered, seg)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return segment.CompareIDs(ordered[i].ID, ordered[j].ID) < 0
	})

	if err := segment.WriteFile(segsPath, ordered); err != nil {
		return "", "", err
	}

	docPath := m.DocumentPath(unitName)
	if err := os.WriteFile(docPath, []byte(renderDocument(ordered)), 0o644); err != nil {
		return "", "", services.Wrap(services.ErrPersistence, "logging", "merge", "write merged document", err)
	}

	m.logger.Info("merged translated output",
		logging.String(logging.FieldUnit, unitName),
		logging.Int("segments", len(ordered)),
		logging.String("document", docPath))
	return segsPath, docPath, nil
}

// renderDocument joins segments into one readable document. Chapter titles
// become headings; continuation pieces of a split chapter flow without a
// repeated heading.
func renderDocument(segments []segment.Segment) string {
	var b strings.Builder
	prevChapterKey := ""
	for _, seg := range segments {
		parts := segment.ParseID(seg.ID)
		key := chapterKey(parts)
		if key != prevChapterKey || key == "" {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			title := strings.TrimSpace(seg.Title)
			if title != "" {
				b.WriteString("# " + title + "\n\n")
			}
		} else {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.TrimSpace(seg.Content))
		prevChapterKey = key
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + "\n"
}

func chapterKey(parts segment.IDParts) string {
	if parts.Chapter == nil {
		return ""
	}
	key := "c" + strconv.Itoa(*parts.Chapter)
	if parts.Volume != nil {
		key = "v" + strconv.Itoa(*parts.Volume) + key
	}
	return key
}
