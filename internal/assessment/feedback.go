package assessment

import (
	"strings"

	"github.com/jonathan/candidate-assessor/internal/types"
)

// weakDimensionBar is the score under which a dimension earns a remedial
// feedback sentence.
const weakDimensionBar = 70

// highlightCount is how many dimensions land in each of the strengths and
// improvements lists.
const highlightCount = 2

// dimensionEntry pairs a display name with its score for ranked selection.
type dimensionEntry struct {
	name  string
	score float64
}

// entries returns the dimensions in canonical order, which doubles as the
// tie-breaker when ranking.
func entries(d types.DimensionScores) []dimensionEntry {
	return []dimensionEntry{
		{"Technical Mastery", d.TechnicalMastery},
		{"Problem Solving", d.ProblemSolving},
		{"Communication", d.Communication},
		{"Innovation", d.Innovation},
		{"Leadership", d.Leadership},
		{"System Thinking", d.SystemThinking},
	}
}

// feedbackFor builds the evaluation feedback: one band sentence for the
// overall score plus a remedial sentence for each core dimension under the
// bar. Never returns an empty string.
func feedbackFor(overall float64, d types.DimensionScores) string {
	parts := make([]string, 0, 4)

	switch {
	case overall >= 85:
		parts = append(parts, "Exceptional performance demonstrating senior+ level expertise suitable for top-tier roles.")
	case overall >= 75:
		parts = append(parts, "Strong performance showing solid competency with room for senior growth.")
	case overall >= 65:
		parts = append(parts, "Good foundation with potential for top-tier roles after targeted improvement.")
	default:
		parts = append(parts, "Significant development needed to meet top-tier hiring standards.")
	}

	if d.TechnicalMastery < weakDimensionBar {
		parts = append(parts, "Technical depth needs significant enhancement for top-tier standards.")
	}
	if d.ProblemSolving < weakDimensionBar {
		parts = append(parts, "Problem-solving approach requires more structured and comprehensive methodology.")
	}
	if d.Communication < weakDimensionBar {
		parts = append(parts, "Communication clarity and structure need improvement for senior technical roles.")
	}

	return strings.Join(parts, " ")
}

// dimensionHighlights returns the display names of the two highest-scoring
// dimensions as strengths and the two lowest as improvements. Ties resolve in
// canonical dimension order, so identical inputs always produce identical
// lists.
func dimensionHighlights(d types.DimensionScores) (strengths, improvements []string) {
	ranked := entries(d)

	strengths = make([]string, 0, highlightCount)
	for len(strengths) < highlightCount {
		best := -1
		for i, e := range ranked {
			if contains(strengths, e.name) {
				continue
			}
			if best < 0 || e.score > ranked[best].score {
				best = i
			}
		}
		strengths = append(strengths, ranked[best].name)
	}

	improvements = make([]string, 0, highlightCount)
	for len(improvements) < highlightCount {
		worst := -1
		for i, e := range ranked {
			if contains(improvements, e.name) {
				continue
			}
			if worst < 0 || e.score < ranked[worst].score {
				worst = i
			}
		}
		improvements = append(improvements, ranked[worst].name)
	}
	return strengths, improvements
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
