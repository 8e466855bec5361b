package splitter

import (
	"strings"
	"unicode/utf8"

	"inkwell/internal/segment"
	"inkwell/internal/services"
)

// Options controls how raw text is partitioned into segments.
type Options struct {
	// MaxChars bounds segment content size, measured in runes. Chapters
	// larger than this are partitioned at paragraph boundaries.
	MaxChars int
	// MaxChapters, when positive, truncates output to the first N
	// chapter-level chunks without renumbering the retained ones.
	MaxChapters int
	// Volume, when set, prefixes every identifier with Volume_V.
	Volume *int
}

// chunk is one chapter-level unit of the source before size partitioning.
type chunk struct {
	title string
	body  []string // paragraphs
	cls   segment.Classification
}

// Split partitions raw long-form text into an ordered sequence of segments.
// Chapter boundaries are detected by heading lines: a line whose text
// classifies as a numbered chapter marker, or a Markdown #-heading. Text
// before the first heading becomes an interlude chunk. Output order equals
// narrative order of the input; downstream retry selection and merging
// depend on it.
func Split(raw string, opts Options) ([]segment.Segment, error) {
	if opts.MaxChars <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "splitting", "validate options", "max_chars must be positive", nil)
	}

	chunks := partitionChapters(raw)
	if opts.MaxChapters > 0 && len(chunks) > opts.MaxChapters {
		chunks = chunks[:opts.MaxChapters]
	}

	segs := make([]segment.Segment, 0, len(chunks))
	used := make(map[string]struct{})
	for i, ch := range chunks {
		number := i + 1
		if ch.cls.Kind == segment.KindChapter && ch.cls.Number != nil {
			number = *ch.cls.Number
		}
		// Repeated marker numbers in the source would collide; advance to
		// the first unused number to keep ids unique.
		for {
			if _, taken := used[buildID(opts.Volume, number, nil)]; !taken {
				break
			}
			number++
		}

		content := strings.Join(ch.body, "\n\n")
		pieces := partitionBySize(ch.body, opts.MaxChars)
		if utf8.RuneCountInString(content) <= opts.MaxChars || len(pieces) == 1 {
			id := buildID(opts.Volume, number, nil)
			used[id] = struct{}{}
			segs = append(segs, newSegment(id, ch, content))
			continue
		}
		for n, piece := range pieces {
			part := n + 1
			id := buildID(opts.Volume, number, &part)
			used[id] = struct{}{}
			segs = append(segs, newSegment(id, ch, piece))
		}
		used[buildID(opts.Volume, number, nil)] = struct{}{}
	}
	return segs, nil
}

func newSegment(id string, ch chunk, content string) segment.Segment {
	return segment.Segment{
		ID:        id,
		Title:     ch.title,
		Content:   content,
		Kind:      ch.cls.Kind,
		Number:    ch.cls.Number,
		IsSpecial: ch.cls.IsSpecial,
	}
}

func buildID(volume *int, chapter int, part *int) string {
	return segment.BuildID(segment.IDParts{Volume: volume, Chapter: &chapter, Segment: part})
}

// partitionChapters splits raw text into chapter-level chunks at heading
// lines. Paragraphs are blank-line delimited; line endings are normalized.
func partitionChapters(raw string) []chunk {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")

	var chunks []chunk
	var current *chunk

	flushParagraph := func(para *[]string) {
		if len(*para) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(*para, "\n"))
		*para = (*para)[:0]
		if text == "" {
			return
		}
		if current == nil {
			// Preamble before the first heading.
			chunks = append(chunks, chunk{cls: segment.Classify("")})
			current = &chunks[len(chunks)-1]
		}
		current.body = append(current.body, text)
	}

	var para []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if title, ok := headingTitle(trimmed); ok {
			flushParagraph(&para)
			chunks = append(chunks, chunk{title: title, cls: segment.Classify(title)})
			current = &chunks[len(chunks)-1]
			continue
		}
		if trimmed == "" {
			flushParagraph(&para)
			continue
		}
		para = append(para, line)
	}
	flushParagraph(&para)

	return chunks
}

// headingTitle reports whether a line is a chapter boundary and returns the
// title text. Markdown heading prefixes are stripped; marker-classified lines
// are used verbatim.
func headingTitle(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	if strings.HasPrefix(line, "#") {
		text := strings.TrimSpace(strings.TrimLeft(line, "#"))
		return text, true
	}
	if cls := segment.Classify(line); cls.Kind == segment.KindChapter {
		return line, true
	}
	return "", false
}

// partitionBySize greedily packs paragraphs into pieces no larger than
// maxChars. A single paragraph exceeding the bound is split at sentence
// boundaries; a sentence exceeding the bound is hard-wrapped as a last
// resort. Boundaries never fall mid-paragraph otherwise.
func partitionBySize(paragraphs []string, maxChars int) []string {
	var pieces []string
	var buf []string
	size := 0

	flush := func() {
		if len(buf) == 0 {
			return
		}
		pieces = append(pieces, strings.Join(buf, "\n\n"))
		buf = buf[:0]
		size = 0
	}

	push := func(text string) {
		length := utf8.RuneCountInString(text)
		joined := length
		if len(buf) > 0 {
			joined += 2 // the \n\n join
		}
		if size+joined > maxChars && len(buf) > 0 {
			flush()
			joined = length
		}
		buf = append(buf, text)
		size += joined
	}

	for _, paragraph := range paragraphs {
		if utf8.RuneCountInString(paragraph) <= maxChars {
			push(paragraph)
			continue
		}
		flush()
		for _, piece := range splitOversized(paragraph, maxChars) {
			push(piece)
		}
	}
	flush()

	if pieces == nil {
		return []string{""}
	}
	return pieces
}

// sentenceEnders close a sentence for oversized-paragraph splitting. Both
// CJK and ASCII terminal punctuation are recognized.
var sentenceEnders = map[rune]struct{}{
	'。': {}, '！': {}, '？': {}, '…': {},
	'.': {}, '!': {}, '?': {},
}

func splitOversized(paragraph string, maxChars int) []string {
	sentences := splitSentences(paragraph)
	var out []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if bufLen == 0 {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
		bufLen = 0
	}

	for _, sentence := range sentences {
		length := utf8.RuneCountInString(sentence)
		if length > maxChars {
			flush()
			out = append(out, hardWrap(sentence, maxChars)...)
			continue
		}
		if bufLen+length > maxChars {
			flush()
		}
		buf.WriteString(sentence)
		bufLen += length
	}
	flush()
	return out
}

func splitSentences(text string) []string {
	var sentences []string
	var buf strings.Builder
	for _, r := range text {
		buf.WriteRune(r)
		if _, ok := sentenceEnders[r]; ok {
			sentences = append(sentences, buf.String())
			buf.Reset()
		}
	}
	if buf.Len() > 0 {
		sentences = append(sentences, buf.String())
	}
	return sentences
}

func hardWrap(text string, maxChars int) []string {
	var out []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += maxChars {
		end := start + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
