// Package types provides type definitions for structured data used throughout the candidate-assessor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Verdict represents a hiring recommendation derived from an overall score.
type Verdict string

// Verdict values, ordered from strongest to weakest recommendation.
const (
	VerdictStrongHire Verdict = "STRONG_HIRE"
	VerdictHire       Verdict = "HIRE"
	VerdictLeanHire   Verdict = "LEAN_HIRE"
	VerdictLeanNoHire Verdict = "LEAN_NO_HIRE"
	VerdictNoHire     Verdict = "NO_HIRE"
)

// Rank returns the position of the verdict in the recommendation ladder,
// with higher values meaning a stronger recommendation. Unknown verdicts rank lowest.
func (v Verdict) Rank() int {
	switch v {
	case VerdictStrongHire:
		return 4
	case VerdictHire:
		return 3
	case VerdictLeanHire:
		return 2
	case VerdictLeanNoHire:
		return 1
	case VerdictNoHire:
		return 0
	default:
		return -1
	}
}

// Valid reports whether v is one of the known verdict values.
func (v Verdict) Valid() bool {
	return v.Rank() >= 0
}

// DimensionScores holds the six scoring dimensions, each on a 0-100 scale.
type DimensionScores struct {
	TechnicalMastery float64 `json:"technical_mastery"`
	ProblemSolving   float64 `json:"problem_solving"`
	Communication    float64 `json:"communication"`
	Innovation       float64 `json:"innovation"`
	Leadership       float64 `json:"leadership"`
	SystemThinking   float64 `json:"system_thinking"`
}

// Evaluation represents the scored result of a single answer.
type Evaluation struct {
	QuestionIndex   int             `json:"question_index"`
	OverallScore    float64         `json:"overall_score"`
	Dimensions      DimensionScores `json:"dimension_scores"`
	Feedback        string          `json:"feedback"`
	Strengths       []string        `json:"strengths,omitempty"`
	Improvements    []string        `json:"improvements,omitempty"`
	Decision        Verdict         `json:"decision"`
	Confidence      float64         `json:"confidence"`
	Assisted        bool            `json:"assisted"`
	Cached          bool            `json:"cached"`
	AnswerWordCount int             `json:"answer_word_count"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Clone returns a copy of the evaluation with its own slice backing.
func (e Evaluation) Clone() Evaluation {
	out := e
	out.Strengths = cloneStrings(e.Strengths)
	out.Improvements = cloneStrings(e.Improvements)
	return out
}
