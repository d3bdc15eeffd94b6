// Package scoring implements the local six-dimension answer scorer. Scoring
// is a pure keyword-density heuristic over fixed vocabulary tables: no I/O,
// no remote calls, deterministic for identical input. It is the baseline that
// stays available when the external assist is disabled or unreachable.
package scoring

import (
	"strings"

	"github.com/jonathan/candidate-assessor/internal/types"
)

// Weights control how the six dimension scores combine into an overall score.
type Weights struct {
	TechnicalMastery float64
	ProblemSolving   float64
	Communication    float64
	Innovation       float64
	Leadership       float64
	SystemThinking   float64
}

// DefaultWeights returns the standard dimension weighting.
func DefaultWeights() Weights {
	return Weights{
		TechnicalMastery: 0.25,
		ProblemSolving:   0.20,
		Communication:    0.15,
		Innovation:       0.15,
		Leadership:       0.15,
		SystemThinking:   0.10,
	}
}

// Combine collapses dimension scores into one overall score using the
// configured weights.
func (w Weights) Combine(d types.DimensionScores) float64 {
	return d.TechnicalMastery*w.TechnicalMastery +
		d.ProblemSolving*w.ProblemSolving +
		d.Communication*w.Communication +
		d.Innovation*w.Innovation +
		d.Leadership*w.Leadership +
		d.SystemThinking*w.SystemThinking
}

// Gate is the short-answer penalty. The multiplier is derived once per
// evaluation from the answer word count and applied to the keyword-density
// technical mastery score, never compounded per sub-signal. Communication
// handles answer length separately through its additive bands.
type Gate struct {
	ShortWordLimit int
	ShortFactor    float64
	BriefWordLimit int
	BriefFactor    float64
}

// DefaultGate halves keyword scores under 100 words and dampens them under 200.
func DefaultGate() Gate {
	return Gate{
		ShortWordLimit: 100,
		ShortFactor:    0.5,
		BriefWordLimit: 200,
		BriefFactor:    0.7,
	}
}

func (g Gate) factor(wordCount int) float64 {
	switch {
	case wordCount < g.ShortWordLimit:
		return g.ShortFactor
	case wordCount < g.BriefWordLimit:
		return g.BriefFactor
	default:
		return 1
	}
}

// Config carries the tunable scoring constants. Variants (per role family,
// per seniority) are expressed as alternative configs, not forked scorers.
type Config struct {
	Weights Weights
	Gate    Gate
}

// DefaultConfig returns the standard weights and gate.
func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		Gate:    DefaultGate(),
	}
}

// Context identifies the question being answered and carries the candidate
// skills used for the technical depth bonus.
type Context struct {
	Role     string
	Category string
	Skills   []string
}

// Communication length bands.
const (
	commSentenceFloor = 5
	commSentenceBonus = 20
	commIdealMinWords = 200
	commIdealMaxWords = 500
	commIdealBonus    = 20
	commLongBonus     = 10
	commShortWords    = 100
	commShortPenalty  = 20
)

// Floor values reported for an empty or whitespace-only answer. Their
// weighted combination under the default weights is exactly 20.
const (
	floorDefault       = 20.0
	floorCommunication = 10.0
	floorLeadership    = 30.0
)

// FloorScores is the poor-evaluation profile: the minimum every dimension
// reports when there is no answer text to score.
func FloorScores() types.DimensionScores {
	return types.DimensionScores{
		TechnicalMastery: floorDefault,
		ProblemSolving:   floorDefault,
		Communication:    floorCommunication,
		Innovation:       floorDefault,
		Leadership:       floorLeadership,
		SystemThinking:   floorDefault,
	}
}

// Score computes the six dimension scores for one answer using the default
// configuration.
func Score(answer string, ctx Context) types.DimensionScores {
	return DefaultConfig().Score(answer, ctx)
}

// Score computes the six dimension scores for one answer. Every score is in
// [0,100]. An empty or whitespace-only answer returns FloorScores.
func (c Config) Score(answer string, ctx Context) types.DimensionScores {
	if strings.TrimSpace(answer) == "" {
		return FloorScores()
	}

	lower := strings.ToLower(answer)
	wordCount := len(strings.Fields(answer))
	gate := c.Gate.factor(wordCount)

	return types.DimensionScores{
		TechnicalMastery: clampScore(technicalMastery(lower, ctx.Skills) * gate),
		ProblemSolving:   clampScore(problemSolving(lower)),
		Communication:    clampScore(communication(answer, lower, wordCount)),
		Innovation:       clampScore(innovation(lower)),
		Leadership:       clampScore(leadership(lower)),
		SystemThinking:   clampScore(systemThinking(lower)),
	}
}

func technicalMastery(lower string, skills []string) float64 {
	score := advancedConcepts.score(lower) +
		designPrinciples.score(lower) +
		codeQuality.score(lower) +
		performanceTerms.score(lower)

	detailed := false
	for _, term := range skillDetailTerms {
		if strings.Contains(lower, term) {
			detailed = true
			break
		}
	}
	if detailed {
		for _, skill := range skills {
			s := strings.ToLower(strings.TrimSpace(skill))
			if s != "" && strings.Contains(lower, s) {
				score += skillDepthPoints
			}
		}
	}
	return score
}

func problemSolving(lower string) float64 {
	return structureIndicators.score(lower) +
		decompositionWords.score(lower) +
		tradeoffIndicators.score(lower) +
		edgeCaseWords.score(lower) +
		scaleWords.score(lower)
}

func communication(answer, lower string, wordCount int) float64 {
	score := professionalTerms.score(lower) +
		explanationWords.score(lower) +
		confidenceWords.score(lower)

	if countSentences(answer) >= commSentenceFloor {
		score += commSentenceBonus
	}

	switch {
	case wordCount >= commIdealMinWords && wordCount <= commIdealMaxWords:
		score += commIdealBonus
	case wordCount > commIdealMaxWords:
		score += commLongBonus
	case wordCount < commShortWords:
		score -= commShortPenalty
	}
	return score
}

func innovation(lower string) float64 {
	return innovationWords.score(lower) +
		alternativeWords.score(lower) +
		futureWords.score(lower) +
		creativeWords.score(lower) +
		trendWords.score(lower)
}

func leadership(lower string) float64 {
	return leadershipActions.score(lower) +
		decisionWords.score(lower) +
		teamWords.score(lower) +
		ownershipWords.score(lower)
}

func systemThinking(lower string) float64 {
	return systemWords.score(lower) +
		holisticWords.score(lower) +
		dependencyWords.score(lower) +
		impactWords.score(lower)
}

func countSentences(answer string) int {
	n := 0
	for _, s := range strings.Split(answer, ".") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
