package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-assessor/internal/db"
	"github.com/jonathan/candidate-assessor/internal/types"
)

// Database is the slice of the db layer the Postgres store uses. *db.DB
// satisfies it.
type Database interface {
	CreateSession(ctx context.Context, s *db.SessionRecord) error
	GetSession(ctx context.Context, id uuid.UUID) (*db.SessionRecord, error)
	UpdateSessionStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	DeleteSession(ctx context.Context, id uuid.UUID) (int64, error)
	ListSessions(ctx context.Context, limit int) ([]db.SessionSummary, error)
	AppendEvaluation(ctx context.Context, sessionID uuid.UUID, e *types.Evaluation) (int, error)
	ListEvaluations(ctx context.Context, sessionID uuid.UUID) ([]types.Evaluation, error)
}

const listLimit = 100

// PostgresStore persists sessions in PostgreSQL. Evaluations carry an
// ordinal column and append inside a transaction, so submission order
// survives the round trip.
type PostgresStore struct {
	db Database
}

// NewPostgresStore wraps a database handle.
func NewPostgresStore(database Database) *PostgresStore {
	return &PostgresStore{db: database}
}

// Create inserts the session row.
func (p *PostgresStore) Create(ctx context.Context, s *Session) error {
	record := &db.SessionRecord{
		ID:            s.ID,
		Role:          s.Role,
		CandidateName: s.CandidateName,
		Status:        s.Status,
		Profile:       s.Profile,
		Questions:     s.Questions,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if err := p.db.CreateSession(ctx, record); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get loads the session row and its evaluations in append order.
func (p *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	record, err := p.db.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if record == nil {
		return nil, ErrNotFound
	}

	evaluations, err := p.db.ListEvaluations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session evaluations: %w", err)
	}

	return &Session{
		ID:            record.ID,
		Role:          record.Role,
		CandidateName: record.CandidateName,
		Status:        record.Status,
		Profile:       record.Profile,
		Questions:     record.Questions,
		Evaluations:   evaluations,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}, nil
}

// AppendEvaluation appends at the next ordinal after checking the session is
// still active.
func (p *PostgresStore) AppendEvaluation(ctx context.Context, id uuid.UUID, e types.Evaluation) error {
	record, err := p.db.GetSession(ctx, id)
	if err != nil {
		return fmt.Errorf("append evaluation: %w", err)
	}
	if record == nil {
		return ErrNotFound
	}
	if record.Status == StatusCompleted {
		return ErrCompleted
	}

	if _, err := p.db.AppendEvaluation(ctx, id, &e); err != nil {
		return fmt.Errorf("append evaluation: %w", err)
	}
	return nil
}

// Complete marks the session as finished.
func (p *PostgresStore) Complete(ctx context.Context, id uuid.UUID) error {
	affected, err := p.db.UpdateSessionStatus(ctx, id, StatusCompleted)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the session and its evaluations.
func (p *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := p.db.DeleteSession(ctx, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns recent session summaries.
func (p *PostgresStore) List(ctx context.Context) ([]Summary, error) {
	records, err := p.db.ListSessions(ctx, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summaries := make([]Summary, len(records))
	for i, r := range records {
		summaries[i] = Summary{
			ID:            r.ID,
			Role:          r.Role,
			CandidateName: r.CandidateName,
			Status:        r.Status,
			QuestionCount: r.QuestionCount,
			AnsweredCount: r.AnsweredCount,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		}
	}
	return summaries, nil
}
