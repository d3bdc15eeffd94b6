package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// resumeSelectors are tried in order when looking for the main resume body.
var resumeSelectors = []string{
	"main",
	"article",
	".resume",
	"#resume",
	".content",
	"#content",
}

// ExtractHTMLText parses an HTML resume and returns its readable text.
// Script, style and navigation noise is stripped first; the body element is
// the fallback when no content selector matches. Header elements are kept
// since resumes usually open with name and contact details there.
func ExtractHTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("nav, footer, script, style, noscript, .sidebar, .cookie-banner, .popup").Remove()

	var main *goquery.Selection
	for _, selector := range resumeSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	return collapseLines(main.Text()), nil
}

// collapseLines trims every line and drops the empty ones.
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
