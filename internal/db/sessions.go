package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateSession inserts a new session row
func (db *DB) CreateSession(ctx context.Context, s *SessionRecord) error {
	profileJSON, err := json.Marshal(s.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	questionsJSON, err := json.Marshal(s.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO sessions (id, role, candidate_name, status, profile, questions, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Role, s.CandidateName, s.Status, profileJSON, questionsJSON, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID, or nil when it does not exist
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*SessionRecord, error) {
	var (
		s             SessionRecord
		profileJSON   []byte
		questionsJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, role, candidate_name, status, profile, questions, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Role, &s.CandidateName, &s.Status, &profileJSON, &questionsJSON, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &s.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session profile: %w", err)
		}
	}
	if len(questionsJSON) > 0 {
		if err := json.Unmarshal(questionsJSON, &s.Questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session questions: %w", err)
		}
	}
	return &s, nil
}

// UpdateSessionStatus sets the session status and returns the number of rows
// affected, so callers can distinguish a missing session
func (db *DB) UpdateSessionStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE sessions SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update session status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteSession removes a session and, through the cascade, its evaluations
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM sessions WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListSessions retrieves recent sessions with answer counts
func (db *DB) ListSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.role, s.candidate_name, s.status,
		        jsonb_array_length(COALESCE(s.questions, '[]'::jsonb)) AS question_count,
		        COUNT(e.ordinal) AS answered_count,
		        s.created_at, s.updated_at
		 FROM sessions s
		 LEFT JOIN evaluations e ON e.session_id = s.id
		 GROUP BY s.id, s.role, s.candidate_name, s.status, s.questions, s.created_at, s.updated_at
		 ORDER BY s.created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.ID, &s.Role, &s.CandidateName, &s.Status,
			&s.QuestionCount, &s.AnsweredCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
