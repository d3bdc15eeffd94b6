// Package types provides type definitions for structured data used throughout the candidate-assessor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// AssessmentReport represents the fully aggregated outcome of an assessment session.
type AssessmentReport struct {
	SessionID      string            `json:"session_id"`
	CandidateName  string            `json:"candidate_name"`
	Role           string            `json:"role"`
	Profile        *CandidateProfile `json:"profile,omitempty"`
	OverallScore   float64           `json:"overall_score"`
	Dimensions     DimensionScores   `json:"dimension_scores"`
	Verdict        Verdict           `json:"verdict"`
	Confidence     float64           `json:"confidence"`
	QuestionCount  int               `json:"question_count"`
	AnsweredCount  int               `json:"answered_count"`
	AssistedCount  int               `json:"assisted_count"`
	CachedCount    int               `json:"cached_count"`
	Strengths      []string          `json:"strengths,omitempty"`
	Improvements   []string          `json:"improvements,omitempty"`
	Evaluations    []Evaluation      `json:"evaluations"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
	CreatedAt      time.Time         `json:"created_at"`
}
