// Package config provides configuration loading and validation for the
// assessor service and CLI. Values come from an optional assessor.yaml, the
// ASSESS_ environment prefix, and built-in defaults, in that order of
// precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Store drivers and cache backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Redis      RedisConfig      `yaml:"redis" mapstructure:"redis"`
	Assist     AssistConfig     `yaml:"assist" mapstructure:"assist"`
	Assessment AssessmentConfig `yaml:"assessment" mapstructure:"assessment"`
	Auth       AuthConfig       `yaml:"auth" mapstructure:"auth"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host                string `yaml:"host" mapstructure:"host"`
	Port                int    `yaml:"port" mapstructure:"port"`
	ReadTimeoutSecs     int    `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs    int    `yaml:"write_timeout_secs" mapstructure:"write_timeout_secs"`
	ShutdownTimeoutSecs int    `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// StoreConfig configures session persistence.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// CacheConfig selects the evaluation cache backend.
type CacheConfig struct {
	Backend  string `yaml:"backend" mapstructure:"backend"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// AssistConfig configures the external assist client.
type AssistConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	Tier        string `yaml:"tier" mapstructure:"tier"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Active reports whether the assist client should actually be constructed: a
// toggle without credentials degrades to disabled instead of failing.
func (a AssistConfig) Active() bool {
	return a.Enabled && a.APIKey != ""
}

// AssessmentConfig tunes the evaluation engine.
type AssessmentConfig struct {
	QuestionCount  int `yaml:"question_count" mapstructure:"question_count"`
	AssistMinWords int `yaml:"assist_min_words" mapstructure:"assist_min_words"`
}

// AuthConfig configures session tokens and the admin token.
type AuthConfig struct {
	JWTSecret      string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTLHours  int    `yaml:"token_ttl_hours" mapstructure:"token_ttl_hours"`
	AdminTokenHash string `yaml:"admin_token_hash" mapstructure:"admin_token_hash"`
	BcryptCost     int    `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("assessor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ASSESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credential keys get empty defaults so the prefixed
	// environment variables bind without a config file.
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_secs", 15)
	v.SetDefault("server.write_timeout_secs", 30)
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.database_url", "")
	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.ttl_hours", 0)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("assist.enabled", true)
	v.SetDefault("assist.api_key", "")
	v.SetDefault("assist.tier", "standard")
	v.SetDefault("assist.timeout_secs", 15)
	v.SetDefault("assessment.question_count", 5)
	v.SetDefault("assessment.assist_min_words", 30)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl_hours", 24)
	v.SetDefault("auth.admin_token_hash", "")
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// The conventional variable wins over nothing; the prefixed form and the
	// config file win over it.
	if cfg.Assist.APIKey == "" {
		cfg.Assist.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: 'store.database_url' is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config error: unknown store driver: %q", c.Store.Driver)
	}

	switch c.Cache.Backend {
	case CacheMemory:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("config error: 'redis.addr' is required for the redis cache backend")
		}
	case CachePostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: 'store.database_url' is required for the postgres cache backend")
		}
	default:
		return fmt.Errorf("config error: unknown cache backend: %q", c.Cache.Backend)
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("config error: 'cache.ttl_hours' must be non-negative")
	}

	switch c.Assist.Tier {
	case "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: unknown assist tier: %q", c.Assist.Tier)
	}
	if c.Assist.TimeoutSecs < 1 {
		return fmt.Errorf("config error: 'assist.timeout_secs' must be at least 1")
	}

	if c.Assessment.QuestionCount < 1 || c.Assessment.QuestionCount > 10 {
		return fmt.Errorf("config error: 'assessment.question_count' out of range: %d", c.Assessment.QuestionCount)
	}
	if c.Assessment.AssistMinWords < 0 {
		return fmt.Errorf("config error: 'assessment.assist_min_words' must be non-negative")
	}

	if c.Auth.TokenTTLHours < 1 {
		return fmt.Errorf("config error: 'auth.token_ttl_hours' must be at least 1 hour")
	}
	if c.Auth.BcryptCost < 10 || c.Auth.BcryptCost > 14 {
		return fmt.Errorf("config error: 'auth.bcrypt_cost' out of range: %d (must be 10-14)", c.Auth.BcryptCost)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config error: unknown log level: %q", c.Log.Level)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Used to apply a loaded configuration underneath CLI flag values:
// flags that were set win, unset flags fall back to the loaded values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Server.Host == "" {
		result.Server.Host = defaults.Server.Host
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.ReadTimeoutSecs == 0 {
		result.Server.ReadTimeoutSecs = defaults.Server.ReadTimeoutSecs
	}
	if result.Server.WriteTimeoutSecs == 0 {
		result.Server.WriteTimeoutSecs = defaults.Server.WriteTimeoutSecs
	}
	if result.Server.ShutdownTimeoutSecs == 0 {
		result.Server.ShutdownTimeoutSecs = defaults.Server.ShutdownTimeoutSecs
	}

	if result.Store.Driver == "" {
		result.Store.Driver = defaults.Store.Driver
	}
	if result.Store.DatabaseURL == "" {
		result.Store.DatabaseURL = defaults.Store.DatabaseURL
	}

	if result.Cache.Backend == "" {
		result.Cache.Backend = defaults.Cache.Backend
	}
	if result.Cache.TTLHours == 0 {
		result.Cache.TTLHours = defaults.Cache.TTLHours
	}

	if result.Redis.Addr == "" {
		result.Redis.Addr = defaults.Redis.Addr
	}
	if result.Redis.Password == "" {
		result.Redis.Password = defaults.Redis.Password
	}
	if result.Redis.DB == 0 {
		result.Redis.DB = defaults.Redis.DB
	}

	if result.Assist.APIKey == "" {
		result.Assist.APIKey = defaults.Assist.APIKey
	}
	if result.Assist.Tier == "" {
		result.Assist.Tier = defaults.Assist.Tier
	}
	if result.Assist.TimeoutSecs == 0 {
		result.Assist.TimeoutSecs = defaults.Assist.TimeoutSecs
	}

	if result.Assessment.QuestionCount == 0 {
		result.Assessment.QuestionCount = defaults.Assessment.QuestionCount
	}
	if result.Assessment.AssistMinWords == 0 {
		result.Assessment.AssistMinWords = defaults.Assessment.AssistMinWords
	}

	if result.Auth.JWTSecret == "" {
		result.Auth.JWTSecret = defaults.Auth.JWTSecret
	}
	if result.Auth.TokenTTLHours == 0 {
		result.Auth.TokenTTLHours = defaults.Auth.TokenTTLHours
	}
	if result.Auth.AdminTokenHash == "" {
		result.Auth.AdminTokenHash = defaults.Auth.AdminTokenHash
	}
	if result.Auth.BcryptCost == 0 {
		result.Auth.BcryptCost = defaults.Auth.BcryptCost
	}

	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}

	// Bool fields cannot distinguish unset from false, so flags always win.

	return result
}

// NewLogger builds a zap logger from the log configuration.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	return logger, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) (*zap.Logger, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
