// Package config provides configuration types and defaults for dinoguessr.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Quiz providers.
const (
	ProviderLocal      = "local"
	ProviderGenerative = "generative"
)

// Tracing exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// DefaultHintsURL serves [{"Name": ..., "Description": ...}] records.
const DefaultHintsURL = "https://dinosaur-facts-api.shultzlab.com/dinosaurs"

// Config holds all configuration options for dinoguessr.
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Quiz    QuizConfig    `mapstructure:"quiz"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Log     LogConfig     `mapstructure:"log"`
}

// StoreConfig selects where settings and game history live.
type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Path    string      `mapstructure:"path"` // sqlite database file
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds connection options for the redis settings backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AudioConfig holds sound effect options.
type AudioConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	SampleRate int           `mapstructure:"sample_rate"`
	Buffer     time.Duration `mapstructure:"buffer"`
}

// QuizConfig holds quiz content options.
type QuizConfig struct {
	Provider     string           `mapstructure:"provider"`
	HintsURL     string           `mapstructure:"hints_url"`
	HintsTimeout time.Duration    `mapstructure:"hints_timeout"`
	HintsTTL     time.Duration    `mapstructure:"hints_ttl"`
	Generative   GenerativeConfig `mapstructure:"generative"`
}

// GenerativeConfig points at an OpenAI-compatible chat completions endpoint.
type GenerativeConfig struct {
	URL     string        `mapstructure:"url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TracingConfig selects the OpenTelemetry exporter.
type TracingConfig struct {
	Exporter string `mapstructure:"exporter"`
	Endpoint string `mapstructure:"endpoint"` // otlp grpc endpoint
	File     string `mapstructure:"file"`     // stdout exporter destination
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Defaults returns a Config with sensible default values.
// Empty file paths are filled in by Load from the platform data directory.
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendSQLite,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Buffer:     100 * time.Millisecond,
		},
		Quiz: QuizConfig{
			Provider:     ProviderLocal,
			HintsURL:     DefaultHintsURL,
			HintsTimeout: 3 * time.Second,
			HintsTTL:     time.Hour,
			Generative: GenerativeConfig{
				URL:     "https://openrouter.ai/api/v1",
				Timeout: 20 * time.Second,
			},
		},
		Tracing: TracingConfig{
			Exporter: ExporterNone,
			Endpoint: "localhost:4317",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks configuration for errors.
func (c Config) Validate() error {
	if !slices.Contains([]string{BackendSQLite, BackendRedis, BackendMemory}, c.Store.Backend) {
		return fmt.Errorf("store.backend: unknown backend %q (want sqlite, redis or memory)", c.Store.Backend)
	}
	if c.Store.Backend == BackendRedis && c.Store.Redis.Addr == "" {
		return fmt.Errorf("store.redis.addr: required for redis backend")
	}
	if c.Audio.SampleRate <= 0 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate: %d out of range", c.Audio.SampleRate)
	}
	if c.Audio.Buffer <= 0 {
		return fmt.Errorf("audio.buffer: must be positive")
	}
	switch c.Quiz.Provider {
	case ProviderLocal:
	case ProviderGenerative:
		if strings.TrimSpace(c.Quiz.Generative.Model) == "" {
			return fmt.Errorf("quiz.generative.model: required for generative provider")
		}
	default:
		return fmt.Errorf("quiz.provider: unknown provider %q (want local or generative)", c.Quiz.Provider)
	}
	if c.Quiz.HintsTimeout <= 0 {
		return fmt.Errorf("quiz.hints_timeout: must be positive")
	}
	if !slices.Contains([]string{ExporterNone, ExporterStdout, ExporterOTLP}, c.Tracing.Exporter) {
		return fmt.Errorf("tracing.exporter: unknown exporter %q (want none, stdout or otlp)", c.Tracing.Exporter)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "warning", "error"}, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# DinoGuessr Configuration

# Where settings (volume, last difficulty) and game history are kept
store:
  backend: sqlite        # sqlite, redis or memory
  # path: ~/.local/share/dinoguessr/dinoguessr.db
  redis:
    addr: localhost:6379
    # password: ""
    db: 0

# Sound effects
audio:
  enabled: true
  sample_rate: 44100
  buffer: 100ms          # speaker buffer, lower is snappier but may crackle

# Quiz content
quiz:
  provider: local        # local or generative
  hints_url: https://dinosaur-facts-api.shultzlab.com/dinosaurs
  hints_timeout: 3s
  hints_ttl: 1h          # how long fetched hints are reused
  # Generative provider (OpenAI-compatible chat completions endpoint).
  # Set the key with DINOGUESSR_QUIZ_GENERATIVE_API_KEY or in a .env file.
  generative:
    url: https://openrouter.ai/api/v1
    # model: openai/gpt-4o-mini
    timeout: 20s

# OpenTelemetry tracing
tracing:
  exporter: none         # none, stdout or otlp
  endpoint: localhost:4317
  # file: ~/.local/share/dinoguessr/traces.json

# Logging (the game UI owns the terminal, so logs go to a file)
log:
  level: info            # debug, info, warn or error
  # file: ~/.local/share/dinoguessr/dinoguessr.log
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
