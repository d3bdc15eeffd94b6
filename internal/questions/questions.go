// Package questions produces the interview question set for a session. The
// preferred source is the external assist service, keyed into the shared
// evaluation cache so identical candidates reuse a generated set; when the
// assist call is disabled, times out, or returns something unusable, a
// built-in bank keyed by role family and experience tier supplies the set
// instead. The bank path never fails, so Generate always returns a full,
// ordinal-numbered list.
package questions

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-assessor/internal/assist"
	"github.com/jonathan/candidate-assessor/internal/evalcache"
	"github.com/jonathan/candidate-assessor/internal/types"
)

// DefaultCount is the number of questions in a standard session.
const DefaultCount = 5

// Experience tiers derived from a candidate's years of experience. They label
// question difficulty and partition the question-set cache.
const (
	TierEntry     = "entry"
	TierMid       = "mid"
	TierSenior    = "senior"
	TierPrincipal = "principal"
)

// ExperienceTier buckets years of experience into a difficulty tier.
func ExperienceTier(years int) string {
	switch {
	case years < 2:
		return TierEntry
	case years < 5:
		return TierMid
	case years < 10:
		return TierSenior
	default:
		return TierPrincipal
	}
}

func tierIndex(tier string) int {
	switch tier {
	case TierEntry:
		return 0
	case TierMid:
		return 1
	case TierSenior:
		return 2
	case TierPrincipal:
		return 3
	default:
		return 1
	}
}

// Source is the assist surface the generator consumes.
type Source interface {
	GenerateQuestions(ctx context.Context, req assist.QuestionsRequest) assist.QuestionsOutcome
}

// Generator produces question sets. Both the assist source and the cache are
// optional; with neither the generator serves straight from the bank.
type Generator struct {
	source Source
	cache  evalcache.Store
	logger *zap.Logger
}

// NewGenerator returns a Generator. source and cache may be nil.
func NewGenerator(source Source, cache evalcache.Store, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{source: source, cache: cache, logger: logger}
}

// Generate returns n questions for the role and profile. Resolution order is
// cached set, assisted generation, built-in bank. Only assisted sets are
// cached; the bank is deterministic and costs nothing to rebuild. The result
// always has exactly n entries with ordinals 1..n and non-empty text.
func (g *Generator) Generate(ctx context.Context, role string, profile *types.CandidateProfile, n int) []types.Question {
	if n <= 0 {
		n = DefaultCount
	}

	years := 0
	var skills []string
	if profile != nil {
		years = profile.ExperienceYears
		skills = profile.Skills.All
	}
	tier := ExperienceTier(years)
	key := evalcache.QuestionSetKey(role, tier, skills)

	if cached, ok := g.fromCache(ctx, key); ok {
		g.logger.Debug("questions: cache hit", zap.String("role", role), zap.String("tier", tier))
		return g.finalize(role, tier, skills, cached, n)
	}

	if g.source != nil {
		outcome := g.source.GenerateQuestions(ctx, assist.QuestionsRequest{
			Role:       role,
			Years:      years,
			Skills:     skills,
			Count:      n,
			Difficulty: tier,
		})
		if outcome.OK() {
			set := g.finalize(role, tier, skills, outcome.Questions, n)
			g.store(ctx, key, set)
			return set
		}
		g.logger.Debug("questions: assist unavailable, using bank",
			zap.String("role", role),
			zap.String("status", string(outcome.Status)))
	}

	return FromBank(role, tier, skills, n)
}

func (g *Generator) fromCache(ctx context.Context, key string) ([]types.Question, bool) {
	if g.cache == nil {
		return nil, false
	}
	raw, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		g.logger.Warn("questions: cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var set []types.Question
	if err := json.Unmarshal(raw, &set); err != nil || len(set) == 0 {
		g.logger.Warn("questions: discarding undecodable cache entry", zap.Error(err))
		return nil, false
	}
	return set, true
}

func (g *Generator) store(ctx context.Context, key string, set []types.Question) {
	if g.cache == nil {
		return
	}
	raw, err := json.Marshal(set)
	if err != nil {
		g.logger.Warn("questions: cache encode failed", zap.Error(err))
		return
	}
	if err := g.cache.Put(ctx, key, raw); err != nil {
		g.logger.Warn("questions: cache write failed", zap.Error(err))
	}
}

// finalize enforces the output contract on a candidate set: blank entries
// drop, missing categories and difficulties get defaults, the bank tops up
// short sets, and ordinals are reassigned 1..n.
func (g *Generator) finalize(role, tier string, skills []string, set []types.Question, n int) []types.Question {
	out := make([]types.Question, 0, n)
	for _, q := range set {
		if len(out) == n {
			break
		}
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if q.Category == "" {
			q.Category = types.CategoryTechnical
		}
		if q.Difficulty == "" {
			q.Difficulty = tier
		}
		q.Index = len(out) + 1
		out = append(out, q)
	}

	if len(out) < n {
		for _, q := range FromBank(role, tier, skills, n) {
			if len(out) == n {
				break
			}
			if containsText(out, q.Text) {
				continue
			}
			q.Index = len(out) + 1
			out = append(out, q)
		}
	}
	return out
}

func containsText(set []types.Question, text string) bool {
	for _, q := range set {
		if q.Text == text {
			return true
		}
	}
	return false
}
