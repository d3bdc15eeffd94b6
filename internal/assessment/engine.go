// Package assessment orchestrates the assessment engine: it starts sessions,
// evaluates answers against the local scorer with optional external assist,
// and aggregates a session's evaluations into the final hiring report. All
// session state lives behind the injected session.Store; the engine itself is
// stateless and safe for concurrent use.
package assessment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-assessor/internal/assist"
	"github.com/jonathan/candidate-assessor/internal/profile"
	"github.com/jonathan/candidate-assessor/internal/questions"
	"github.com/jonathan/candidate-assessor/internal/scoring"
	"github.com/jonathan/candidate-assessor/internal/session"
	"github.com/jonathan/candidate-assessor/internal/types"
)

// Contract errors. These report caller defects, not data quality: garbled
// resumes and empty answers degrade to default results instead of failing.
var (
	// ErrRoleRequired reports a request without a role.
	ErrRoleRequired = errors.New("role is required")

	// ErrQuestionRequired reports an evaluation request without question text.
	ErrQuestionRequired = errors.New("question text is required")

	// ErrOutOfOrder reports an answer that does not address the next
	// unanswered question.
	ErrOutOfOrder = errors.New("answer out of order")
)

const (
	// defaultAssistMinWords is the answer length under which the remote
	// assist is skipped; very short answers carry too little signal to be
	// worth a paid call.
	defaultAssistMinWords = 30

	// MaxQuestions bounds the question count of a single session.
	MaxQuestions = 10

	poorOverallScore = 20.0
	poorConfidence   = 0.9
	poorFeedback     = "No answer provided"
)

// Options tunes the engine. Zero values select the defaults.
type Options struct {
	Scoring        scoring.Config
	Thresholds     Thresholds
	AssistMinWords int
}

// Engine evaluates candidates. The session store is the only stateful
// collaborator; the assist evaluator may be nil, which disables external
// calibration without changing result shapes.
type Engine struct {
	store          session.Store
	extractor      *profile.Extractor
	generator      *questions.Generator
	assist         assist.AnswerEvaluator
	scoring        scoring.Config
	thresholds     Thresholds
	assistMinWords int
	logger         *zap.Logger
}

// NewEngine builds an engine over a session store and question generator.
func NewEngine(store session.Store, generator *questions.Generator, evaluator assist.AnswerEvaluator, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Scoring == (scoring.Config{}) {
		opts.Scoring = scoring.DefaultConfig()
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	if opts.AssistMinWords <= 0 {
		opts.AssistMinWords = defaultAssistMinWords
	}
	return &Engine{
		store:          store,
		extractor:      profile.NewExtractor(),
		generator:      generator,
		assist:         evaluator,
		scoring:        opts.Scoring,
		thresholds:     opts.Thresholds,
		assistMinWords: opts.AssistMinWords,
		logger:         logger,
	}
}

// StartRequest describes a new assessment session.
type StartRequest struct {
	Role          string
	CandidateName string
	ResumeText    string
	QuestionCount int
}

// StartSession extracts the candidate profile, generates the question set,
// and persists a new active session. The resume text may be empty; extraction
// then yields the default profile.
func (e *Engine) StartSession(ctx context.Context, req StartRequest) (*session.Session, error) {
	if strings.TrimSpace(req.Role) == "" {
		return nil, ErrRoleRequired
	}

	count := req.QuestionCount
	if count <= 0 {
		count = questions.DefaultCount
	}
	if count > MaxQuestions {
		count = MaxQuestions
	}

	prof := e.extractor.Extract(req.ResumeText)
	name := strings.TrimSpace(req.CandidateName)
	if name == "" {
		name = prof.Name
	}

	qs := e.generator.Generate(ctx, req.Role, prof, count)

	s := session.New(req.Role, name, prof, qs)
	if err := e.store.Create(ctx, s); err != nil {
		return nil, err
	}

	e.logger.Info("assessment: session started",
		zap.String("session_id", s.ID.String()),
		zap.String("role", s.Role),
		zap.Int("questions", len(qs)))
	return s, nil
}

// SubmitAnswer evaluates the answer to the session's next unanswered question
// and appends the evaluation. questionIndex is 1-based and must address the
// next unanswered question; anything else returns ErrOutOfOrder. Answering
// the final question completes the session.
func (e *Engine) SubmitAnswer(ctx context.Context, id uuid.UUID, questionIndex int, answer string) (types.Evaluation, error) {
	s, err := e.store.Get(ctx, id)
	if err != nil {
		return types.Evaluation{}, err
	}
	if s.Status == session.StatusCompleted {
		return types.Evaluation{}, session.ErrCompleted
	}
	if questionIndex != s.NextQuestionIndex() {
		return types.Evaluation{}, ErrOutOfOrder
	}

	q := s.Questions[questionIndex-1]
	eval := e.evaluate(ctx, s.Role, q, answer, s.Profile)
	eval.QuestionIndex = questionIndex

	if err := e.store.AppendEvaluation(ctx, id, eval); err != nil {
		return types.Evaluation{}, err
	}
	if questionIndex == len(s.Questions) {
		if err := e.store.Complete(ctx, id); err != nil {
			return types.Evaluation{}, err
		}
	}
	return eval, nil
}

// EvaluateAnswer scores a single answer outside any session. Role and
// question text are required; everything else degrades to defaults.
func (e *Engine) EvaluateAnswer(ctx context.Context, role string, q types.Question, answer string, prof *types.CandidateProfile) (types.Evaluation, error) {
	if strings.TrimSpace(role) == "" {
		return types.Evaluation{}, ErrRoleRequired
	}
	if strings.TrimSpace(q.Text) == "" {
		return types.Evaluation{}, ErrQuestionRequired
	}
	return e.evaluate(ctx, role, q, answer, prof), nil
}

// Report aggregates the session into its final report. Unanswered questions
// simply reduce AnsweredCount; reporting does not require completion.
func (e *Engine) Report(ctx context.Context, id uuid.UUID) (*types.AssessmentReport, error) {
	s, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return AggregateWith(e.thresholds, s), nil
}

// AssessRequest describes a full offline assessment: one resume, one ordered
// answer list.
type AssessRequest struct {
	Role          string
	CandidateName string
	ResumeText    string
	Answers       []string
	QuestionCount int
}

// Assess runs a complete session in one call: start, submit every answer in
// order, report. Answers beyond the question count are ignored; missing
// answers leave questions unanswered and the report reflects that.
func (e *Engine) Assess(ctx context.Context, req AssessRequest) (*types.AssessmentReport, error) {
	count := req.QuestionCount
	if count <= 0 {
		count = len(req.Answers)
	}

	s, err := e.StartSession(ctx, StartRequest{
		Role:          req.Role,
		CandidateName: req.CandidateName,
		ResumeText:    req.ResumeText,
		QuestionCount: count,
	})
	if err != nil {
		return nil, err
	}

	for i, answer := range req.Answers {
		if i >= len(s.Questions) {
			e.logger.Warn("assessment: ignoring extra answers",
				zap.String("session_id", s.ID.String()),
				zap.Int("questions", len(s.Questions)),
				zap.Int("answers", len(req.Answers)))
			break
		}
		if _, err := e.SubmitAnswer(ctx, s.ID, i+1, answer); err != nil {
			return nil, err
		}
	}
	return e.Report(ctx, s.ID)
}

// evaluate produces one Evaluation. The local scorer always runs; the assist
// call contributes feedback and calibration when it succeeds and is silently
// skipped otherwise. The overall score is always the weighted dimension
// combination, assisted or not.
func (e *Engine) evaluate(ctx context.Context, role string, q types.Question, answer string, prof *types.CandidateProfile) types.Evaluation {
	now := time.Now().UTC()
	words := len(strings.Fields(answer))

	if strings.TrimSpace(answer) == "" {
		return poorEvaluation(q.Index, now)
	}

	dims := e.scoring.Score(answer, scoring.Context{
		Role:     role,
		Category: q.Category,
		Skills:   profileSkills(prof),
	})
	overall := round1(e.scoring.Weights.Combine(dims))

	eval := types.Evaluation{
		QuestionIndex:   q.Index,
		OverallScore:    overall,
		Dimensions:      dims,
		AnswerWordCount: words,
		CreatedAt:       now,
	}

	// Local clarity proxy; replaced by the assist confidence when one arrives.
	calibration := dims.Communication / 10

	if e.assist != nil && words >= e.assistMinWords {
		outcome := e.assist.EvaluateAnswer(ctx, assist.EvaluationRequest{
			Role:     role,
			Category: q.Category,
			Question: q.Text,
			Answer:   answer,
		})
		if outcome.OK() {
			eval.Assisted = true
			eval.Cached = outcome.Cached
			eval.Feedback = outcome.Evaluation.Feedback
			eval.Confidence = outcome.Evaluation.Confidence
			calibration = outcome.Evaluation.Confidence * 10
		} else {
			e.logger.Debug("assessment: assist unavailable, local scoring only",
				zap.String("role", role),
				zap.Int("question_index", q.Index))
		}
	}

	eval.Decision = e.thresholds.Decide(overall, calibration)
	if !eval.Assisted {
		eval.Confidence = bandConfidence(eval.Decision)
	}
	if eval.Feedback == "" {
		eval.Feedback = feedbackFor(overall, dims)
	}
	eval.Strengths, eval.Improvements = dimensionHighlights(dims)
	return eval
}

// poorEvaluation is the documented result for an empty answer: floor scores,
// overall 20, a confident no-hire.
func poorEvaluation(questionIndex int, now time.Time) types.Evaluation {
	return types.Evaluation{
		QuestionIndex: questionIndex,
		OverallScore:  poorOverallScore,
		Dimensions:    scoring.FloorScores(),
		Feedback:      poorFeedback,
		Decision:      types.VerdictNoHire,
		Confidence:    poorConfidence,
		CreatedAt:     now,
	}
}

func profileSkills(p *types.CandidateProfile) []string {
	if p == nil {
		return nil
	}
	return p.Skills.All
}
