// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-assessor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for CLI results.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the extracted candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	name := profile.Name
	if name == "" {
		name = "(not found)"
	}
	sb.WriteString(fmt.Sprintf("Name:       %s\n", name))
	if profile.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", profile.Email))
	}
	if profile.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", profile.Phone))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", profile.Location))
	}
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", profile.ExperienceYears))

	if len(profile.Skills.All) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(profile.Skills.All), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills.All[i]))
		}
		if len(profile.Skills.All) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills.All)-maxItemsToShow))
		}
	}

	if len(profile.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		count := min(len(profile.Education), 3)
		for i := 0; i < count; i++ {
			edu := profile.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s", edu.Degree))
			if edu.Field != "" {
				sb.WriteString(fmt.Sprintf(" in %s", edu.Field))
			}
			sb.WriteString("\n")
		}
	}

	if len(profile.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("\nCertifications: %d\n", len(profile.Certifications)))
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestions outputs the generated question set.
func (p *Printer) PrintQuestions(questions []types.Question) {
	if len(questions) == 0 {
		return
	}

	var sb strings.Builder
	for i, q := range questions {
		text := q.Text
		if len(text) > 48 {
			text = text[:45] + "..."
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", q.Index, text))
		sb.WriteString(fmt.Sprintf("   [%s", q.Category))
		if q.Difficulty != "" {
			sb.WriteString(fmt.Sprintf(", %s", q.Difficulty))
		}
		sb.WriteString("]\n")
		if i < len(questions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs a single answer evaluation with dimension scores.
func (p *Printer) PrintEvaluation(eval *types.Evaluation) {
	if eval == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Question:   #%d\n", eval.QuestionIndex))
	sb.WriteString(fmt.Sprintf("Overall:    %.1f / 100\n", eval.OverallScore))
	sb.WriteString(fmt.Sprintf("Decision:   %s", eval.Decision))
	if eval.Assisted {
		if eval.Cached {
			sb.WriteString("  (assisted, cached)")
		} else {
			sb.WriteString("  (assisted)")
		}
	}
	sb.WriteString("\n\n")

	sb.WriteString(formatDimensions(eval.Dimensions))

	if eval.Feedback != "" {
		sb.WriteString("\nFeedback:\n")
		sb.WriteString(wrapText(eval.Feedback, boxWidth-6))
		sb.WriteString("\n")
	}

	p.printBox("ANSWER EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the final assessment report.
func (p *Printer) PrintReport(report *types.AssessmentReport) {
	if report == nil {
		return
	}

	var sb strings.Builder

	if report.CandidateName != "" {
		sb.WriteString(fmt.Sprintf("Candidate:  %s\n", report.CandidateName))
	}
	sb.WriteString(fmt.Sprintf("Role:       %s\n", report.Role))
	sb.WriteString(fmt.Sprintf("Answered:   %d of %d questions\n", report.AnsweredCount, report.QuestionCount))
	if report.AssistedCount > 0 {
		sb.WriteString(fmt.Sprintf("Assisted:   %d (%d cached)\n", report.AssistedCount, report.CachedCount))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Overall:    %.1f / 100\n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("Verdict:    %s\n", report.Verdict))
	sb.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", report.Confidence*100))
	sb.WriteString("\n")

	sb.WriteString(formatDimensions(report.Dimensions))

	if len(report.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range report.Strengths {
			sb.WriteString(fmt.Sprintf("  + %s\n", s))
		}
	}
	if len(report.Improvements) > 0 {
		sb.WriteString("\nImprovements:\n")
		for _, s := range report.Improvements {
			sb.WriteString(fmt.Sprintf("  - %s\n", s))
		}
	}

	p.printBox("ASSESSMENT REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// formatDimensions renders the six dimension scores with aligned bars.
func formatDimensions(d types.DimensionScores) string {
	rows := []struct {
		label string
		score float64
	}{
		{"Technical", d.TechnicalMastery},
		{"Problem", d.ProblemSolving},
		{"Comms", d.Communication},
		{"Innovation", d.Innovation},
		{"Leadership", d.Leadership},
		{"Systems", d.SystemThinking},
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-11s %5.1f  %s\n", row.label, row.score, scoreBar(row.score)))
	}
	return sb.String()
}

// scoreBar renders a 0-100 score as a ten-segment bar.
func scoreBar(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 10)
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// wrapText folds text to the given width on word boundaries.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
