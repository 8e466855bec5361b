package textutil_test

import (
	"testing"

	"inkwell/internal/textutil"
)

func TestSanitizeUnitName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "MySeries", "MySeries"},
		{"spaces become underscores", "My Series Vol 2", "My_Series_Vol_2"},
		{"keeps hyphen underscore", "a-b_c", "a-b_c"},
		{"drops punctuation", "series: the?journey!", "series_thejourney"},
		{"keeps cjk", "小说 series", "小说_series"},
		{"cjk titles stay distinct", "斗破苍穹", "斗破苍穹"},
		{"trims whitespace", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.SanitizeUnitName(tc.input); got != tc.want {
				t.Fatalf("SanitizeUnitName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeUnitNameDeterministic(t *testing.T) {
	a := textutil.SanitizeUnitName("Tower of Dawn")
	b := textutil.SanitizeUnitName("Tower of Dawn")
	if a != b {
		t.Fatalf("expected deterministic output, got %q and %q", a, b)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := textutil.SanitizeFileName("a/b:c*d?e"); got != "a-b-c-de" {
		t.Fatalf("SanitizeFileName = %q", got)
	}
}
