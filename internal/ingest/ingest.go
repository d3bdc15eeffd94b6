// Package ingest turns resume documents into the plain text the assessment
// engine consumes. It reads local .txt, .md and .html files and fetches
// resumes from URLs, normalizing whitespace and stripping HTML chrome along
// the way.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`\s+`)
var blankRun = regexp.MustCompile(`\n\n\n+`)

// FromFile reads a resume document and returns its cleaned text. HTML files
// are routed through the HTML extractor; Markdown and plain text are cleaned
// directly. Binary formats are not supported.
func FromFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".markdown", "", ".html", ".htm":
	default:
		return "", fmt.Errorf("unsupported resume format %q (supported: .txt, .md, .html)", ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("resume not found: %w", err)
		}
		return "", fmt.Errorf("read resume: %w", err)
	}

	text := strings.TrimPrefix(string(content), "\uFEFF")
	if ext == ".html" || ext == ".htm" {
		text, err = ExtractHTMLText(text)
		if err != nil {
			return "", err
		}
	}

	return CleanText(text), nil
}

// CleanText normalizes resume text while preserving structure: line endings
// become LF, trailing whitespace goes, heading and bullet lines keep their
// markers, runs of blank lines collapse to at most one blank line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRun.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Markdown headings lose their indentation but keep the markers.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullet lines keep indentation and marker. Resumes use the literal
	// bullet characters as often as Markdown dashes.
	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	indent := len(line) - len(trimmed)
	content := spaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}
