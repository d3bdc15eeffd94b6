package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-assessor/internal/types"
)

// AppendEvaluation inserts an evaluation at the next ordinal for the session
// and returns that ordinal. The ordinal query and insert run in one
// transaction, so concurrent appends to the same session cannot collide.
func (db *DB) AppendEvaluation(ctx context.Context, sessionID uuid.UUID, e *types.Evaluation) (int, error) {
	dimensionsJSON, err := json.Marshal(e.Dimensions)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal dimensions: %w", err)
	}
	strengthsJSON, err := json.Marshal(e.Strengths)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal strengths: %w", err)
	}
	improvementsJSON, err := json.Marshal(e.Improvements)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal improvements: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin evaluation append: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ordinal int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(ordinal), 0) + 1 FROM evaluations WHERE session_id = $1`,
		sessionID,
	).Scan(&ordinal)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate evaluation ordinal: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO evaluations (session_id, ordinal, question_index, overall_score, dimensions,
		                          feedback, strengths, improvements, decision, confidence,
		                          assisted, cached, answer_word_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		sessionID, ordinal, e.QuestionIndex, e.OverallScore, dimensionsJSON,
		e.Feedback, strengthsJSON, improvementsJSON, string(e.Decision), e.Confidence,
		e.Assisted, e.Cached, e.AnswerWordCount, e.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert evaluation: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE sessions SET updated_at = NOW() WHERE id = $1`,
		sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to touch session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit evaluation append: %w", err)
	}
	return ordinal, nil
}

// ListEvaluations retrieves a session's evaluations in append order
func (db *DB) ListEvaluations(ctx context.Context, sessionID uuid.UUID) ([]types.Evaluation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT question_index, overall_score, dimensions, feedback, strengths, improvements,
		        decision, confidence, assisted, cached, answer_word_count, created_at
		 FROM evaluations WHERE session_id = $1
		 ORDER BY ordinal ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []types.Evaluation
	for rows.Next() {
		var (
			e                types.Evaluation
			dimensionsJSON   []byte
			strengthsJSON    []byte
			improvementsJSON []byte
			decision         string
		)
		if err := rows.Scan(&e.QuestionIndex, &e.OverallScore, &dimensionsJSON, &e.Feedback,
			&strengthsJSON, &improvementsJSON, &decision, &e.Confidence,
			&e.Assisted, &e.Cached, &e.AnswerWordCount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}

		if err := json.Unmarshal(dimensionsJSON, &e.Dimensions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dimensions: %w", err)
		}
		if len(strengthsJSON) > 0 {
			if err := json.Unmarshal(strengthsJSON, &e.Strengths); err != nil {
				return nil, fmt.Errorf("failed to unmarshal strengths: %w", err)
			}
		}
		if len(improvementsJSON) > 0 {
			if err := json.Unmarshal(improvementsJSON, &e.Improvements); err != nil {
				return nil, fmt.Errorf("failed to unmarshal improvements: %w", err)
			}
		}
		e.Decision = types.Verdict(decision)
		evaluations = append(evaluations, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evaluations, nil
}
