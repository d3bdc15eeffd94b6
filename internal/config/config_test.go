package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a configuration that passes Validate.
func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080, ReadTimeoutSecs: 15, WriteTimeoutSecs: 30, ShutdownTimeoutSecs: 10},
		Store:  StoreConfig{Driver: StoreMemory},
		Cache:  CacheConfig{Backend: CacheMemory},
		Assist: AssistConfig{Enabled: true, Tier: "standard", TimeoutSecs: 15},
		Assessment: AssessmentConfig{
			QuestionCount:  5,
			AssistMinWords: 30,
		},
		Auth: AuthConfig{TokenTTLHours: 24, BcryptCost: 12},
		Log:  LogConfig{Level: "info", Format: "json"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSecs)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.True(t, cfg.Assist.Enabled)
	assert.Equal(t, "standard", cfg.Assist.Tier)
	assert.Equal(t, 15, cfg.Assist.TimeoutSecs)
	assert.Equal(t, 5, cfg.Assessment.QuestionCount)
	assert.Equal(t, 30, cfg.Assessment.AssistMinWords)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: 9090
store:
  driver: postgres
  database_url: postgres://localhost/assessor
assist:
  tier: lite
log:
  level: debug
  format: console
`
	err := os.WriteFile(filepath.Join(dir, "assessor.yaml"), []byte(content), 0644)
	require.NoError(t, err)
	t.Chdir(dir)
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/assessor", cfg.Store.DatabaseURL)
	assert.Equal(t, "lite", cfg.Assist.Tier)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	// Unset keys keep their defaults.
	assert.Equal(t, 5, cfg.Assessment.QuestionCount)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "server:\n  port: 9090\n"
	err := os.WriteFile(filepath.Join(dir, "assessor.yaml"), []byte(content), 0644)
	require.NoError(t, err)
	t.Chdir(dir)

	t.Setenv("ASSESS_SERVER_PORT", "7070")
	t.Setenv("ASSESS_ASSIST_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.Assist.APIKey)
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ASSESS_ASSIST_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "fallback-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fallback-key", cfg.Assist.APIKey)
}

func TestLoad_PrefixedKeyWinsOverFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ASSESS_ASSIST_API_KEY", "prefixed-key")
	t.Setenv("GEMINI_API_KEY", "fallback-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prefixed-key", cfg.Assist.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "assessor.yaml"), []byte("server: [not: a map"), 0644)
	require.NoError(t, err)
	t.Chdir(dir)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidate_UnknownStoreDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = "sqlite"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store driver")
}

func TestValidate_PostgresNeedsURL(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = StorePostgres
	cfg.Store.DatabaseURL = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url")
}

func TestValidate_RedisCacheNeedsAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Backend = CacheRedis
	cfg.Redis.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis.addr")
}

func TestValidate_PostgresCacheNeedsURL(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Backend = CachePostgres

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url")
}

func TestValidate_UnknownAssistTier(t *testing.T) {
	cfg := validConfig()
	cfg.Assist.Tier = "turbo"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "assist tier")
}

func TestValidate_QuestionCountBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Assessment.QuestionCount = 0
	assert.Error(t, cfg.Validate())

	cfg.Assessment.QuestionCount = 11
	assert.Error(t, cfg.Validate())

	cfg.Assessment.QuestionCount = 10
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BcryptCostBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.BcryptCost = 9
	assert.Error(t, cfg.Validate())

	cfg.Auth.BcryptCost = 15
	assert.Error(t, cfg.Validate())
}

func TestValidate_UnknownLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "chatty"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := validConfig()
	defaults.Assist.APIKey = "file-key"
	defaults.Store.DatabaseURL = "postgres://localhost/assessor"

	flags := Config{
		Server: ServerConfig{Port: 9999},
		Assist: AssistConfig{APIKey: "flag-key"},
	}

	merged := flags.MergeWithDefaults(defaults)

	// Flag values win.
	assert.Equal(t, 9999, merged.Server.Port)
	assert.Equal(t, "flag-key", merged.Assist.APIKey)

	// Loaded values fill in the rest.
	assert.Equal(t, "postgres://localhost/assessor", merged.Store.DatabaseURL)
	assert.Equal(t, StoreMemory, merged.Store.Driver)
	assert.Equal(t, "standard", merged.Assist.Tier)
	assert.Equal(t, 5, merged.Assessment.QuestionCount)
	assert.Equal(t, "info", merged.Log.Level)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{Port: 8081},
		Log:    LogConfig{Level: "warn"},
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, 8081, merged.Server.Port)
	assert.Equal(t, "warn", merged.Log.Level)
}

func TestAssistConfig_Active(t *testing.T) {
	assert.True(t, AssistConfig{Enabled: true, APIKey: "k"}.Active())
	assert.False(t, AssistConfig{Enabled: true}.Active())
	assert.False(t, AssistConfig{Enabled: false, APIKey: "k"}.Active())
}

func TestNewLogger_Formats(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}
