package segment

import "regexp"

// Classification is the result of scanning a title for a chapter marker.
type Classification struct {
	Kind      Kind
	Number    *int
	Title     string
	IsSpecial bool
}

// A numbered chapter marker must appear at the very start of the title:
// 第 + numeral + 章, where the numeral is 1-3 ASCII digits or a run of
// traditional numeral characters. Presence of the marker at position 0 is the
// sole discriminator between chapters and interludes; keyword heuristics and
// mid-string scanning are deliberately excluded.
var chapterMarker = regexp.MustCompile(`^第([0-9]{1,3}|[零〇一二三四五六七八九十百千两]+)章`)

// Classify determines whether a title names a numbered chapter or an
// interlude. Empty titles and titles without a leading marker classify as
// interludes with the title preserved verbatim. A marker whose numeral cannot
// be converted still classifies as a chapter, with a nil number.
func Classify(title string) Classification {
	if title == "" {
		return Classification{Kind: KindInterlude, Title: title, IsSpecial: true}
	}
	match := chapterMarker.FindStringSubmatch(title)
	if match == nil {
		return Classification{Kind: KindInterlude, Title: title, IsSpecial: true}
	}
	cls := Classification{Kind: KindChapter, Title: title}
	if n, ok := parseNumeral(match[1]); ok {
		cls.Number = &n
	}
	return cls
}

var cjkDigits = map[rune]int{
	'零': 0, '〇': 0,
	'一': 1, '二': 2, '两': 2, '三': 3, '四': 4,
	'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
}

var cjkMagnitudes = map[rune]int{
	'十': 10,
	'百': 100,
	'千': 1000,
}

// parseNumeral converts the captured marker numeral to an integer. ASCII
// digits convert directly; traditional numerals use positional digit and
// magnitude characters covering values up to the thousands.
func parseNumeral(numeral string) (int, bool) {
	if numeral == "" {
		return 0, false
	}
	if numeral[0] >= '0' && numeral[0] <= '9' {
		value := 0
		for i := 0; i < len(numeral); i++ {
			value = value*10 + int(numeral[i]-'0')
		}
		return value, true
	}
	return parseCJKNumeral(numeral)
}

func parseCJKNumeral(numeral string) (int, bool) {
	total := 0
	current := 0
	sawAny := false
	for _, r := range numeral {
		if digit, ok := cjkDigits[r]; ok {
			current = current*10 + digit
			sawAny = true
			continue
		}
		if magnitude, ok := cjkMagnitudes[r]; ok {
			// A bare magnitude implies one unit: 十 is 10, 百 is 100.
			if current == 0 {
				current = 1
			}
			total += current * magnitude
			current = 0
			sawAny = true
			continue
		}
		return 0, false
	}
	if !sawAny {
		return 0, false
	}
	return total + current, true
}
