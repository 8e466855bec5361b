package segment_test

import (
	"testing"

	"inkwell/internal/segment"
)

func TestClassifyLeadingASCIIMarker(t *testing.T) {
	cls := segment.Classify("第3章 Arrival")
	if cls.Kind != segment.KindChapter {
		t.Fatalf("expected chapter, got %s", cls.Kind)
	}
	if cls.Number == nil || *cls.Number != 3 {
		t.Fatalf("expected number 3, got %v", cls.Number)
	}
	if cls.IsSpecial {
		t.Fatal("numbered chapters are not special")
	}
	if cls.Title != "第3章 Arrival" {
		t.Fatalf("title not preserved: %q", cls.Title)
	}
}

func TestClassifyCJKNumerals(t *testing.T) {
	cases := []struct {
		title string
		want  int
	}{
		{"第一章 启程", 1},
		{"第十章", 10},
		{"第十五章", 15},
		{"第二十一章", 21},
		{"第三百二十五章 决战", 325},
		{"第一千零一章", 1001},
		{"第两百章", 200},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			cls := segment.Classify(tc.title)
			if cls.Kind != segment.KindChapter {
				t.Fatalf("expected chapter for %q", tc.title)
			}
			if cls.Number == nil || *cls.Number != tc.want {
				t.Fatalf("Classify(%q).Number = %v, want %d", tc.title, cls.Number, tc.want)
			}
		})
	}
}

func TestClassifyInterludes(t *testing.T) {
	cases := []string{
		"Side Story: Arrival",
		"后记",
		"间章 回忆",
		"A chapter mentioning 第3章 midway is still an interlude",
		" 第3章 leading space defeats the marker",
	}
	for _, title := range cases {
		cls := segment.Classify(title)
		if cls.Kind != segment.KindInterlude {
			t.Fatalf("expected interlude for %q, got %s", title, cls.Kind)
		}
		if cls.Number != nil {
			t.Fatalf("interludes carry no number: %q", title)
		}
		if !cls.IsSpecial {
			t.Fatalf("interludes are special: %q", title)
		}
		if cls.Title != title {
			t.Fatalf("title not preserved verbatim: %q vs %q", cls.Title, title)
		}
	}
}

func TestClassifyEmptyTitle(t *testing.T) {
	cls := segment.Classify("")
	if cls.Kind != segment.KindInterlude || cls.Number != nil || !cls.IsSpecial {
		t.Fatalf("unexpected classification for empty title: %+v", cls)
	}
}

func TestClassifyMarkerWithoutSuffixText(t *testing.T) {
	cls := segment.Classify("第42章")
	if cls.Kind != segment.KindChapter || cls.Number == nil || *cls.Number != 42 {
		t.Fatalf("unexpected: %+v", cls)
	}
}

func TestClassifyFourDigitASCIIIsNotAMarker(t *testing.T) {
	// The ASCII alternative is bounded at three digits.
	cls := segment.Classify("第1234章")
	if cls.Kind != segment.KindInterlude {
		t.Fatalf("expected interlude for four-digit marker, got %+v", cls)
	}
}
