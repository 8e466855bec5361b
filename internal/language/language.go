package language

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string // Canonical form used in prompts
}

var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"vi", "vie", "", "Vietnamese"},
	{"th", "tha", "", "Thai"},
	{"id", "ind", "", "Indonesian"},
	{"ar", "ara", "", "Arabic"},
	{"hi", "hin", "", "Hindi"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"tr", "tur", "", "Turkish"},
}

var byKey map[string]*entry

func init() {
	byKey = make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		byKey[e.code2] = e
		byKey[e.code3] = e
		if e.alt3 != "" {
			byKey[e.alt3] = e
		}
		byKey[strings.ToLower(e.display)] = e
	}
}

// Canonical resolves a user-supplied language value to its display form.
// Codes and lowercase words map through the table; anything unrecognized is
// title-cased and passed through so uncommon targets still work.
func Canonical(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if e, ok := byKey[strings.ToLower(trimmed)]; ok {
		return e.display
	}
	if tag, err := language.Parse(trimmed); err == nil {
		if base, conf := tag.Base(); conf >= language.High {
			if e, ok := byKey[base.String()]; ok {
				return e.display
			}
		}
	}
	return cases.Title(language.Und).String(trimmed)
}

// Known reports whether the value resolves through the language table.
func Known(input string) bool {
	_, ok := byKey[strings.ToLower(strings.TrimSpace(input))]
	return ok
}
