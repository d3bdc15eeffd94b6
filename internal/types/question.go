// Package types provides type definitions for structured data used throughout the candidate-assessor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Question categories used by the question bank and the answer scorer.
const (
	CategoryTechnical      = "technical"
	CategoryProblemSolving = "problem_solving"
	CategorySystemDesign   = "system_design"
	CategoryBehavioral     = "behavioral"
	CategoryInnovation     = "innovation"
)

// Question represents a single interview question presented to a candidate.
type Question struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty,omitempty"`
}
