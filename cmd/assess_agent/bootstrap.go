package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/candidate-assessor/internal/assessment"
	"github.com/jonathan/candidate-assessor/internal/assist"
	"github.com/jonathan/candidate-assessor/internal/config"
	"github.com/jonathan/candidate-assessor/internal/db"
	"github.com/jonathan/candidate-assessor/internal/evalcache"
	"github.com/jonathan/candidate-assessor/internal/questions"
	"github.com/jonathan/candidate-assessor/internal/session"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// runtimeDefaults fill zero-valued fields after loading. Explicit empty keys
// in assessor.yaml override the loader defaults, so the merge restores the
// required ones afterwards.
var runtimeDefaults = config.Config{
	Server: config.ServerConfig{
		Port:                8080,
		ReadTimeoutSecs:     15,
		WriteTimeoutSecs:    30,
		ShutdownTimeoutSecs: 10,
	},
	Store: config.StoreConfig{Driver: config.StoreMemory},
	Cache: config.CacheConfig{Backend: config.CacheMemory},
	Assist: config.AssistConfig{
		Tier:        "standard",
		TimeoutSecs: 15,
	},
	Assessment: config.AssessmentConfig{
		QuestionCount:  5,
		AssistMinWords: 30,
	},
	Auth: config.AuthConfig{
		TokenTTLHours: 24,
		BcryptCost:    12,
	},
	Log: config.LogConfig{Level: "info", Format: "json"},
}

// app holds the wired collaborators shared by the CLI commands.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     session.Store
	cache     evalcache.Store
	generator *questions.Generator
	engine    *assessment.Engine

	// database is opened lazily and shared by the postgres store and the
	// postgres cache backend.
	database *db.DB
	closers  []func() error
}

// buildApp loads configuration and wires the assessment stack. offline forces
// the in-memory session store so one-shot commands never require a database;
// the cache and assist wiring still follow the configuration.
func buildApp(ctx context.Context, offline bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(runtimeDefaults)
	cfg = &merged
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		return nil, eris.Wrap(err, "assess_agent: init logger")
	}

	a := &app{cfg: cfg, logger: logger}
	if err := a.wire(ctx, offline); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(ctx context.Context, offline bool) error {
	cfg := a.cfg

	// Session store.
	if offline || cfg.Store.Driver == config.StoreMemory {
		a.store = session.NewMemoryStore()
	} else {
		database, err := a.postgres(ctx)
		if err != nil {
			return err
		}
		a.store = session.NewPostgresStore(database)
	}

	// Evaluation cache.
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		redisCache := evalcache.NewRedis(evalcache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      time.Duration(cfg.Cache.TTLHours) * time.Hour,
		})
		if err := redisCache.Ping(ctx); err != nil {
			return eris.Wrap(err, "assess_agent: redis cache unreachable")
		}
		a.closers = append(a.closers, redisCache.Close)
		a.cache = redisCache
	case config.CachePostgres:
		database, err := a.postgres(ctx)
		if err != nil {
			return err
		}
		a.cache = evalcache.NewPostgres(database)
	default:
		a.cache = evalcache.NewMemory()
	}

	// Assist stack. The raw evaluator doubles as the question source; the
	// cached wrapper only fronts answer evaluation.
	var (
		source     questions.Source
		answerEval assist.AnswerEvaluator
	)
	if cfg.Assist.Active() {
		client, err := assist.NewGeminiClient(ctx, cfg.Assist.APIKey, nil)
		if err != nil {
			return eris.Wrap(err, "assess_agent: assist client")
		}
		a.closers = append(a.closers, client.Close)

		evaluator := assist.NewEvaluator(client, a.logger, assist.Options{
			Enabled: true,
			Timeout: time.Duration(cfg.Assist.TimeoutSecs) * time.Second,
			Tier:    assist.ModelTier(cfg.Assist.Tier),
		})
		source = evaluator
		answerEval = assist.NewCachedEvaluator(evaluator, a.cache, a.logger)
	}

	a.generator = questions.NewGenerator(source, a.cache, a.logger)
	a.engine = assessment.NewEngine(a.store, a.generator, answerEval, a.logger, assessment.Options{
		AssistMinWords: cfg.Assessment.AssistMinWords,
	})
	return nil
}

// postgres opens the shared database handle on first use and ensures the
// schema exists.
func (a *app) postgres(ctx context.Context) (*db.DB, error) {
	if a.database != nil {
		return a.database, nil
	}

	database, err := db.Connect(ctx, a.cfg.Store.DatabaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "assess_agent: connect database")
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, eris.Wrap(err, "assess_agent: ensure database schema")
	}

	a.database = database
	a.closers = append(a.closers, func() error {
		database.Close()
		return nil
	})
	return database, nil
}

// Close releases wired resources in reverse construction order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("assess_agent: close failed", zap.Error(err))
		}
	}
	a.closers = nil
	_ = a.logger.Sync()
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
