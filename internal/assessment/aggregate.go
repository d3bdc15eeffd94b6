package assessment

import (
	"math"
	"time"

	"github.com/jonathan/candidate-assessor/internal/session"
	"github.com/jonathan/candidate-assessor/internal/types"
)

// Aggregate builds the final report for a session using the default verdict
// thresholds. See AggregateWith.
func Aggregate(s *session.Session) *types.AssessmentReport {
	return AggregateWith(DefaultThresholds(), s)
}

// AggregateWith collapses a session's evaluations into the final report.
// Overall score and per-dimension scores are arithmetic means, so the result
// is independent of evaluation order; the report's evaluation list still
// preserves submission order. A single-evaluation session goes through the
// same formula, and a session with no evaluations reports zero scores.
func AggregateWith(t Thresholds, s *session.Session) *types.AssessmentReport {
	report := &types.AssessmentReport{
		SessionID:      s.ID.String(),
		CandidateName:  s.CandidateName,
		Role:           s.Role,
		Profile:        s.Profile.Clone(),
		QuestionCount:  len(s.Questions),
		AnsweredCount:  len(s.Evaluations),
		Evaluations:    cloneEvaluations(s.Evaluations),
		ElapsedSeconds: time.Since(s.CreatedAt).Seconds(),
		CreatedAt:      time.Now().UTC(),
	}

	n := float64(len(s.Evaluations))
	var dims types.DimensionScores
	var overall, confidence float64
	for _, e := range s.Evaluations {
		overall += e.OverallScore
		confidence += e.Confidence
		dims.TechnicalMastery += e.Dimensions.TechnicalMastery
		dims.ProblemSolving += e.Dimensions.ProblemSolving
		dims.Communication += e.Dimensions.Communication
		dims.Innovation += e.Dimensions.Innovation
		dims.Leadership += e.Dimensions.Leadership
		dims.SystemThinking += e.Dimensions.SystemThinking
		if e.Assisted {
			report.AssistedCount++
		}
		if e.Cached {
			report.CachedCount++
		}
	}

	if n > 0 {
		overall /= n
		confidence /= n
		dims.TechnicalMastery = round1(dims.TechnicalMastery / n)
		dims.ProblemSolving = round1(dims.ProblemSolving / n)
		dims.Communication = round1(dims.Communication / n)
		dims.Innovation = round1(dims.Innovation / n)
		dims.Leadership = round1(dims.Leadership / n)
		dims.SystemThinking = round1(dims.SystemThinking / n)
	}

	report.OverallScore = round1(overall)
	report.Dimensions = dims
	report.Verdict = t.Decide(report.OverallScore, confidence*10)
	if n > 0 {
		report.Confidence = round2(confidence)
		report.Strengths, report.Improvements = dimensionHighlights(dims)
	} else {
		report.Confidence = bandConfidence(report.Verdict)
	}
	return report
}

func cloneEvaluations(in []types.Evaluation) []types.Evaluation {
	out := make([]types.Evaluation, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
