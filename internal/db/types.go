package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-assessor/internal/types"
)

// SessionRecord mirrors one row of the sessions table. Profile and Questions
// are stored as JSONB.
type SessionRecord struct {
	ID            uuid.UUID               `json:"id"`
	Role          string                  `json:"role"`
	CandidateName string                  `json:"candidate_name"`
	Status        string                  `json:"status"`
	Profile       *types.CandidateProfile `json:"profile,omitempty"`
	Questions     []types.Question        `json:"questions,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// SessionSummary is the compact listing row returned by ListSessions.
type SessionSummary struct {
	ID            uuid.UUID `json:"id"`
	Role          string    `json:"role"`
	CandidateName string    `json:"candidate_name"`
	Status        string    `json:"status"`
	QuestionCount int       `json:"question_count"`
	AnsweredCount int       `json:"answered_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
