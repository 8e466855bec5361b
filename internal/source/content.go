package source

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/text/unicode/norm"

	"inkwell/internal/services"
)

// HTMLToText converts an extracted HTML fragment into normalized plain text
// with markdown headings preserved, ready for chapter splitting.
func HTMLToText(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", services.Wrap(services.ErrSourceNotFound, "fetching", "convert", "convert html to markdown", err)
	}
	return NormalizeText(markdown), nil
}

// NormalizeText applies NFKC normalization and canonicalizes line endings
// and blank runs so downstream rune counts are stable regardless of how the
// source encoded its characters.
func NormalizeText(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}

// ReadLocal loads source text from a file on disk. A missing file is a
// source-not-found error so callers can distinguish it from read failures.
func ReadLocal(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrSourceNotFound, "fetching", "read", "source file missing: "+path, err)
		}
		return "", services.Wrap(services.ErrPersistence, "fetching", "read", "read source file "+path, err)
	}
	return NormalizeText(string(data)), nil
}
