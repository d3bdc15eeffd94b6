// Package assist wraps the external model call that enriches answer
// evaluation and question generation. Everything here is best effort: every
// failure mode folds into an unavailable outcome, and the deterministic
// scorer carries the session when the remote side is down, slow, or
// incoherent.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-assessor/internal/prompts"
	"github.com/jonathan/candidate-assessor/internal/schemas"
	"github.com/jonathan/candidate-assessor/internal/types"
)

// DefaultTimeout bounds every remote call when the caller does not configure
// one. The evaluator never blocks past its timeout.
const DefaultTimeout = 15 * time.Second

const (
	evaluationPromptKey = "answer_evaluation"
	questionsPromptKey  = "question_generation"

	// answerPromptLimit is how many answer runes the evaluation prompt
	// carries. The model calibrates from the opening of the answer; the
	// full text never leaves the process.
	answerPromptLimit = 150

	// promptSkillLimit is how many candidate skills the question prompt names.
	promptSkillLimit = 3

	logPreviewLimit = 120

	// hireScoreBar is the score at which a missing decision field defaults
	// to Hire.
	hireScoreBar = 70

	defaultQuestionCount = 5
)

// EvaluationRequest describes one answer to evaluate remotely.
type EvaluationRequest struct {
	Role     string
	Category string
	Question string
	Answer   string
}

// QuestionsRequest describes one question-set generation.
type QuestionsRequest struct {
	Role       string
	Years      int
	Skills     []string
	Count      int
	Difficulty string
}

// AnswerEvaluator is the surface the engine and the cache wrapper consume.
type AnswerEvaluator interface {
	EvaluateAnswer(ctx context.Context, req EvaluationRequest) Outcome
}

// Options configures an Evaluator.
type Options struct {
	// Enabled turns the remote call on. When false every call returns
	// StatusUnavailable without touching the network.
	Enabled bool
	// Timeout bounds each remote call. Zero means DefaultTimeout.
	Timeout time.Duration
	// Tier selects the model tier. Empty means TierStandard.
	Tier ModelTier
}

// Evaluator calls the remote model and parses its responses into tagged
// outcomes. It holds no per-session state and is safe for concurrent use.
type Evaluator struct {
	client          Client
	logger          *zap.Logger
	timeout         time.Duration
	tier            ModelTier
	enabled         bool
	evalTemplate    string
	questionsPrompt string
}

// NewEvaluator builds an evaluator over a client. A nil client behaves like
// a disabled one.
func NewEvaluator(client Client, logger *zap.Logger, opts Options) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Tier == "" {
		opts.Tier = TierStandard
	}
	return &Evaluator{
		client:          client,
		logger:          logger,
		timeout:         opts.Timeout,
		tier:            opts.Tier,
		enabled:         opts.Enabled && client != nil,
		evalTemplate:    prompts.MustGet(evaluationPromptKey),
		questionsPrompt: prompts.MustGet(questionsPromptKey),
	}
}

// Enabled reports whether remote calls are live.
func (e *Evaluator) Enabled() bool {
	return e.enabled
}

// EvaluateAnswer asks the model to score one answer. Transport failures and
// unusable payloads both come back as tagged outcomes, never errors.
func (e *Evaluator) EvaluateAnswer(ctx context.Context, req EvaluationRequest) Outcome {
	if !e.enabled {
		return Unavailable()
	}

	prompt := prompts.Format(e.evalTemplate, map[string]string{
		"Role":     req.Role,
		"Category": req.Category,
		"Answer":   truncateRunes(req.Answer, answerPromptLimit),
	})

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		e.logger.Warn("assist: evaluation call failed", zap.Error(err))
		return Unavailable()
	}

	payload := extractJSONObject(CleanJSONBlock(raw))
	if payload == "" {
		e.logger.Warn("assist: evaluation response carried no JSON object",
			zap.String("response", truncateForLog(raw, logPreviewLimit)))
		return Outcome{Status: StatusMalformed}
	}

	if err := schemas.ValidateAnswerEvaluation(payload); err != nil {
		e.logger.Warn("assist: evaluation response failed schema validation",
			zap.String("response", truncateForLog(payload, logPreviewLimit)),
			zap.Error(err))
		return Outcome{Status: StatusMalformed}
	}

	eval, ok := decodeEvaluation(payload)
	if !ok {
		e.logger.Warn("assist: evaluation response did not decode",
			zap.String("response", truncateForLog(payload, logPreviewLimit)))
		return Outcome{Status: StatusMalformed}
	}
	return Outcome{Status: StatusSuccess, Evaluation: eval}
}

// GenerateQuestions asks the model for an interview question set, with the
// same failure discipline as EvaluateAnswer.
func (e *Evaluator) GenerateQuestions(ctx context.Context, req QuestionsRequest) QuestionsOutcome {
	if !e.enabled {
		return QuestionsOutcome{Status: StatusUnavailable}
	}

	count := req.Count
	if count <= 0 {
		count = defaultQuestionCount
	}

	skills := req.Skills
	if len(skills) > promptSkillLimit {
		skills = skills[:promptSkillLimit]
	}
	skillsText := strings.Join(skills, ", ")
	if skillsText == "" {
		skillsText = "general technical"
	}

	prompt := prompts.Format(e.questionsPrompt, map[string]string{
		"Role":   req.Role,
		"Years":  strconv.Itoa(req.Years),
		"Skills": skillsText,
		"Count":  strconv.Itoa(count),
	})

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		e.logger.Warn("assist: question generation call failed", zap.Error(err))
		return QuestionsOutcome{Status: StatusUnavailable}
	}

	payload := extractJSONArray(CleanJSONBlock(raw))
	if payload == "" {
		e.logger.Warn("assist: question response carried no JSON array",
			zap.String("response", truncateForLog(raw, logPreviewLimit)))
		return QuestionsOutcome{Status: StatusMalformed}
	}

	if err := schemas.ValidateQuestionSet(payload); err != nil {
		e.logger.Warn("assist: question response failed schema validation",
			zap.String("response", truncateForLog(payload, logPreviewLimit)),
			zap.Error(err))
		return QuestionsOutcome{Status: StatusMalformed}
	}

	questions := decodeQuestions(payload, req.Difficulty, count)
	if len(questions) == 0 {
		e.logger.Warn("assist: question response carried no usable questions",
			zap.String("response", truncateForLog(payload, logPreviewLimit)))
		return QuestionsOutcome{Status: StatusMalformed}
	}
	return QuestionsOutcome{Status: StatusSuccess, Questions: questions}
}

// decodeEvaluation parses a schema-valid payload with tolerant coercion.
func decodeEvaluation(payload string) (Evaluation, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return Evaluation{}, false
	}

	score, ok := toFloat64(fields["score"])
	if !ok {
		return Evaluation{}, false
	}
	score = clamp(score, 0, 100)

	eval := Evaluation{Score: score}

	eval.Feedback = toString(fields["feedback"])
	if eval.Feedback == "" {
		eval.Feedback = fmt.Sprintf("Score: %.0f/100", score)
	}

	eval.Decision = toString(fields["decision"])
	if eval.Decision == "" {
		if score >= hireScoreBar {
			eval.Decision = "Hire"
		} else {
			eval.Decision = "No Hire"
		}
	}

	if confidence, ok := toFloat64(fields["confidence"]); ok {
		eval.Confidence = clamp(confidence, 0, 1)
	} else {
		eval.Confidence = clamp(score/100, 0.1, 1)
	}

	return eval, true
}

// decodeQuestions parses a schema-valid question array, accepting both the
// long and short key forms and dropping entries with empty text.
func decodeQuestions(payload, fallbackDifficulty string, limit int) []types.Question {
	var items []map[string]any
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil
	}

	questions := make([]types.Question, 0, limit)
	for _, item := range items {
		if len(questions) == limit {
			break
		}
		text := toString(item["question"])
		if text == "" {
			text = toString(item["q"])
		}
		if text == "" {
			continue
		}

		category := firstNonEmpty(toString(item["category"]), toString(item["cat"]))
		difficulty := firstNonEmpty(toString(item["difficulty"]), toString(item["diff"]), fallbackDifficulty)

		questions = append(questions, types.Question{
			Index:      len(questions) + 1,
			Text:       text,
			Category:   normalizeCategory(category),
			Difficulty: difficulty,
		})
	}
	return questions
}

// normalizeCategory maps free-form category labels onto the five canonical
// question categories.
func normalizeCategory(raw string) string {
	c := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
	switch c {
	case types.CategoryTechnical, types.CategoryProblemSolving,
		types.CategorySystemDesign, types.CategoryBehavioral, types.CategoryInnovation:
		return c
	case "problem-solving":
		return types.CategoryProblemSolving
	case "system-design", "design", "architecture":
		return types.CategorySystemDesign
	case "behavioural":
		return types.CategoryBehavioral
	default:
		return types.CategoryTechnical
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
