// Package session holds assessment session state behind an injected Store
// abstraction. Sessions are mutable only through a Store, which keeps
// concurrent assessments isolated from each other; there is no package-level
// session state.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-assessor/internal/types"
)

// Session lifecycle states.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Store errors.
var (
	// ErrNotFound reports that no session exists under the requested id.
	ErrNotFound = errors.New("session not found")

	// ErrCompleted reports an append to a session that has already been
	// completed.
	ErrCompleted = errors.New("session already completed")
)

// Session is one candidate's assessment: the extracted profile, the question
// sequence, and the evaluations accumulated in submission order.
type Session struct {
	ID            uuid.UUID               `json:"id"`
	Role          string                  `json:"role"`
	CandidateName string                  `json:"candidate_name"`
	Status        string                  `json:"status"`
	Profile       *types.CandidateProfile `json:"profile,omitempty"`
	Questions     []types.Question        `json:"questions"`
	Evaluations   []types.Evaluation      `json:"evaluations"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// AnsweredCount reports how many questions have been evaluated so far.
func (s *Session) AnsweredCount() int {
	return len(s.Evaluations)
}

// NextQuestionIndex returns the 1-based index of the next unanswered
// question, or 0 when every question has been answered.
func (s *Session) NextQuestionIndex() int {
	next := len(s.Evaluations) + 1
	if next > len(s.Questions) {
		return 0
	}
	return next
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Profile = s.Profile.Clone()
	out.Questions = append([]types.Question(nil), s.Questions...)
	if s.Evaluations != nil {
		out.Evaluations = make([]types.Evaluation, len(s.Evaluations))
		for i, e := range s.Evaluations {
			out.Evaluations[i] = e.Clone()
		}
	}
	return &out
}

// Summary is the compact listing shape returned by Store.List.
type Summary struct {
	ID            uuid.UUID `json:"id"`
	Role          string    `json:"role"`
	CandidateName string    `json:"candidate_name"`
	Status        string    `json:"status"`
	QuestionCount int       `json:"question_count"`
	AnsweredCount int       `json:"answered_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Store persists sessions. Implementations must be safe for concurrent use
// and must return evaluations in append order from Get.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	AppendEvaluation(ctx context.Context, id uuid.UUID, e types.Evaluation) error
	Complete(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Summary, error)
}

// New builds an active session with a fresh id.
func New(role, candidateName string, profile *types.CandidateProfile, questions []types.Question) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            uuid.New(),
		Role:          role,
		CandidateName: candidateName,
		Status:        StatusActive,
		Profile:       profile,
		Questions:     questions,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
