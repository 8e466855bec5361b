package segment

import (
	"regexp"
	"strconv"
	"strings"
)

// IDParts holds the numeric components recovered from a segment identifier.
// A nil field means the corresponding level is absent from the id.
type IDParts struct {
	Volume  *int
	Chapter *int
	Segment *int
}

// Identifier patterns, most specific first. Parsing tries them in order and
// stops at the first full match.
var idPatterns = []struct {
	re     *regexp.Regexp
	fields []string
}{
	{regexp.MustCompile(`^Volume_(\d+)_Chapter_(\d+)_Segment_(\d+)$`), []string{"volume", "chapter", "segment"}},
	{regexp.MustCompile(`^Volume_(\d+)_Chapter_(\d+)$`), []string{"volume", "chapter"}},
	{regexp.MustCompile(`^Chapter_(\d+)_Segment_(\d+)$`), []string{"chapter", "segment"}},
	{regexp.MustCompile(`^Chapter_(\d+)$`), []string{"chapter"}},
}

// BuildID assembles an identifier from the available components, omitting
// absent levels. The result is empty when no component is present.
func BuildID(parts IDParts) string {
	var b strings.Builder
	if parts.Volume != nil {
		b.WriteString("Volume_")
		b.WriteString(strconv.Itoa(*parts.Volume))
	}
	if parts.Chapter != nil {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString("Chapter_")
		b.WriteString(strconv.Itoa(*parts.Chapter))
	}
	if parts.Segment != nil {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		b.WriteString("Segment_")
		b.WriteString(strconv.Itoa(*parts.Segment))
	}
	return b.String()
}

// ParseID recovers the numeric components embedded in an identifier.
// Unrecognized ids yield all-nil parts; callers treat a nil chapter as
// "unordered, sort last".
func ParseID(id string) IDParts {
	for _, pattern := range idPatterns {
		match := pattern.re.FindStringSubmatch(id)
		if match == nil {
			continue
		}
		var parts IDParts
		for i, field := range pattern.fields {
			value, err := strconv.Atoi(match[i+1])
			if err != nil {
				return IDParts{}
			}
			switch field {
			case "volume":
				parts.Volume = &value
			case "chapter":
				parts.Chapter = &value
			case "segment":
				parts.Segment = &value
			}
		}
		return parts
	}
	return IDParts{}
}

// CompareIDs orders identifiers by their embedded numeric components
// (volume, then chapter, then segment). Identifiers without a recognizable
// chapter sort after every recognized one. Returns -1, 0, or 1.
func CompareIDs(a, b string) int {
	pa, pb := ParseID(a), ParseID(b)
	if pa.Chapter == nil && pb.Chapter == nil {
		return strings.Compare(a, b)
	}
	if pa.Chapter == nil {
		return 1
	}
	if pb.Chapter == nil {
		return -1
	}
	if c := compareLevel(pa.Volume, pb.Volume); c != 0 {
		return c
	}
	if c := compareLevel(pa.Chapter, pb.Chapter); c != 0 {
		return c
	}
	return compareLevel(pa.Segment, pb.Segment)
}

// compareLevel orders optional components: absent sorts before present at the
// same level (a bare chapter precedes its segments).
func compareLevel(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
