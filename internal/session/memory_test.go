package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-assessor/internal/types"
)

func newTestSession(role string) *Session {
	return New(role, "Jane Doe", &types.CandidateProfile{
		Name:   "Jane Doe",
		Skills: types.SkillSet{All: []string{"Go", "PostgreSQL"}, TotalCount: 2},
	}, []types.Question{
		{Index: 1, Text: "Describe a system you designed.", Category: types.CategorySystemDesign},
		{Index: 2, Text: "How do you debug a memory leak?", Category: types.CategoryTechnical},
	})
}

func newTestEvaluation(questionIndex int, score float64) types.Evaluation {
	return types.Evaluation{
		QuestionIndex: questionIndex,
		OverallScore:  score,
		Decision:      types.VerdictLeanHire,
		Confidence:    7.5,
		Strengths:     []string{"Technical Mastery"},
		CreatedAt:     time.Now().UTC(),
	}
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newTestSession("software engineer")

	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, 1, got.NextQuestionIndex())

	require.NoError(t, store.AppendEvaluation(ctx, s.ID, newTestEvaluation(1, 72)))
	require.NoError(t, store.AppendEvaluation(ctx, s.ID, newTestEvaluation(2, 81)))

	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AnsweredCount())
	assert.Equal(t, 0, got.NextQuestionIndex())
	assert.Equal(t, 72.0, got.Evaluations[0].OverallScore)
	assert.Equal(t, 81.0, got.Evaluations[1].OverallScore)

	require.NoError(t, store.Complete(ctx, s.ID))
	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := uuid.New()

	_, err := store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.AppendEvaluation(ctx, id, newTestEvaluation(1, 50)), ErrNotFound)
	assert.ErrorIs(t, store.Complete(ctx, id), ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, id), ErrNotFound)
}

func TestMemoryStore_CreateDuplicateFails(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newTestSession("software engineer")

	require.NoError(t, store.Create(ctx, s))
	assert.Error(t, store.Create(ctx, s))
}

func TestMemoryStore_AppendAfterCompleteFails(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newTestSession("software engineer")

	require.NoError(t, store.Create(ctx, s))
	require.NoError(t, store.Complete(ctx, s.ID))

	err := store.AppendEvaluation(ctx, s.ID, newTestEvaluation(1, 60))
	assert.ErrorIs(t, err, ErrCompleted)

	// Completing again stays a no-op.
	require.NoError(t, store.Complete(ctx, s.ID))
}

func TestMemoryStore_GetReturnsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newTestSession("software engineer")

	require.NoError(t, store.Create(ctx, s))
	require.NoError(t, store.AppendEvaluation(ctx, s.ID, newTestEvaluation(1, 70)))

	first, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	first.Status = StatusCompleted
	first.Profile.Name = "Mallory"
	first.Profile.Skills.All[0] = "COBOL"
	first.Questions[0].Text = "tampered"
	first.Evaluations[0].Strengths[0] = "tampered"

	second, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, second.Status)
	assert.Equal(t, "Jane Doe", second.Profile.Name)
	assert.Equal(t, "Go", second.Profile.Skills.All[0])
	assert.Equal(t, "Describe a system you designed.", second.Questions[0].Text)
	assert.Equal(t, "Technical Mastery", second.Evaluations[0].Strengths[0])
}

func TestMemoryStore_CreateDetachesFromCaller(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := newTestSession("software engineer")

	require.NoError(t, store.Create(ctx, s))
	s.Profile.Name = "Mallory"
	s.Questions[1].Text = "tampered"

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Profile.Name)
	assert.Equal(t, "How do you debug a memory leak?", got.Questions[1].Text)
}

func TestMemoryStore_ConcurrentSessionsStayIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const sessionCount = 8
	const perSession = 5

	ids := make([]uuid.UUID, sessionCount)
	for i := range ids {
		s := newTestSession(fmt.Sprintf("role-%d", i))
		require.NoError(t, store.Create(ctx, s))
		ids[i] = s.ID
	}

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			for q := 1; q <= perSession; q++ {
				if err := store.AppendEvaluation(ctx, id, newTestEvaluation(q, float64(q*10))); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Evaluations, perSession)
		for q := 1; q <= perSession; q++ {
			assert.Equal(t, q, got.Evaluations[q-1].QuestionIndex)
		}
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	older := newTestSession("backend engineer")
	older.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := newTestSession("data scientist")
	newer.CreatedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(ctx, older))
	require.NoError(t, store.Create(ctx, newer))
	require.NoError(t, store.AppendEvaluation(ctx, newer.ID, newTestEvaluation(1, 65)))

	summaries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, 1, summaries[0].AnsweredCount)
	assert.Equal(t, 2, summaries[0].QuestionCount)
	assert.Equal(t, older.ID, summaries[1].ID)
	assert.Equal(t, 0, summaries[1].AnsweredCount)
}

func TestSession_NextQuestionIndex(t *testing.T) {
	s := newTestSession("software engineer")
	assert.Equal(t, 1, s.NextQuestionIndex())

	s.Evaluations = append(s.Evaluations, newTestEvaluation(1, 70))
	assert.Equal(t, 2, s.NextQuestionIndex())

	s.Evaluations = append(s.Evaluations, newTestEvaluation(2, 70))
	assert.Equal(t, 0, s.NextQuestionIndex())
}
