package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"inkwell/internal/services"
)

// noiseSelectors are removed before extraction. None of them contribute
// narrative text on novel hosting sites.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
	".comments", ".recommend", ".breadcrumb",
}

// ExtractContent isolates the main content fragment of an HTML page. The
// most specific container wins: <main>, then <article>, then <body>.
func ExtractContent(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", services.Wrap(services.ErrSourceNotFound, "fetching", "extract", "parse html", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", services.Wrap(services.ErrSourceNotFound, "fetching", "extract", "no content container found", nil)
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return "", services.Wrap(services.ErrSourceNotFound, "fetching", "extract", "serialize content", err)
	}
	return fragment, nil
}
