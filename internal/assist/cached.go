package assist

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/candidate-assessor/internal/evalcache"
)

// CachedEvaluator fronts an AnswerEvaluator with the evaluation cache. The
// cache is consulted before any remote call, only successful outcomes are
// written back, and concurrent identical requests collapse into a single
// in-flight call. Cache failures degrade to misses; they never fail an
// evaluation.
type CachedEvaluator struct {
	inner  AnswerEvaluator
	cache  evalcache.Store
	logger *zap.Logger
	group  singleflight.Group
}

// NewCachedEvaluator wraps an evaluator with a cache store.
func NewCachedEvaluator(inner AnswerEvaluator, cache evalcache.Store, logger *zap.Logger) *CachedEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEvaluator{inner: inner, cache: cache, logger: logger}
}

// EvaluateAnswer returns the cached outcome when one exists, otherwise calls
// through and caches a successful result.
func (c *CachedEvaluator) EvaluateAnswer(ctx context.Context, req EvaluationRequest) Outcome {
	key := evalcache.EvaluationKey(req.Role, req.Question, req.Answer)

	raw, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("assist: cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var eval Evaluation
		if err := json.Unmarshal(raw, &eval); err == nil {
			return Outcome{Status: StatusSuccess, Evaluation: eval, Cached: true}
		}
		c.logger.Warn("assist: discarding undecodable cache entry", zap.String("key", key))
	}

	// An abandoned session must not abort a flight other callers share;
	// the evaluator's own timeout still bounds the call, and a completed
	// result goes into the cache either way.
	flightCtx := context.WithoutCancel(ctx)

	v, _, _ := c.group.Do(key, func() (any, error) {
		out := c.inner.EvaluateAnswer(flightCtx, req)
		if out.Status == StatusSuccess {
			c.store(flightCtx, key, out.Evaluation)
		}
		return out, nil
	})
	return v.(Outcome)
}

func (c *CachedEvaluator) store(ctx context.Context, key string, eval Evaluation) {
	raw, err := json.Marshal(eval)
	if err != nil {
		c.logger.Warn("assist: cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Put(ctx, key, raw); err != nil {
		c.logger.Warn("assist: cache write failed", zap.String("key", key), zap.Error(err))
	}
}
