package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/zjrosen/dinoguessr/internal/log"
	"github.com/zjrosen/dinoguessr/internal/paths"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DINOGUESSR_STORE_BACKEND.
const EnvPrefix = "DINOGUESSR"

// Source reads configuration from file, environment and defaults.
type Source struct {
	v *viper.Viper
}

// NewSource builds a Source. When configFile is empty the default location is
// searched and a missing file is not an error. An explicit configFile must exist.
// A .env file next to the working directory is loaded into the environment first.
func NewSource(configFile string) (*Source, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn(log.CatConfig, "Ignoring unreadable .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v, Defaults())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(paths.Expand(configFile))
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(paths.ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "No config file found, using defaults")
	}

	return &Source{v: v}, nil
}

// File returns the config file in use, or "" when running on defaults.
func (s *Source) File() string {
	return s.v.ConfigFileUsed()
}

// Config decodes and validates the current configuration.
func (s *Source) Config() (Config, error) {
	var cfg Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	resolvePaths(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Set overrides a single key, typically from a command-line flag.
func (s *Source) Set(key string, value any) {
	s.v.Set(key, value)
}

// Watch calls fn with the new configuration whenever the config file changes.
// Invalid edits are logged and skipped. No-op when no file is in use.
func (s *Source) Watch(fn func(Config)) {
	if s.File() == "" {
		return
	}
	s.v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := s.Config()
		if err != nil {
			log.ErrorErr(log.CatConfig, "Ignoring invalid config change", err, "file", e.Name)
			return
		}
		log.Info(log.CatConfig, "Config reloaded", "file", e.Name, "op", e.Op.String())
		fn(cfg)
	})
	s.v.WatchConfig()
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.redis.addr", d.Store.Redis.Addr)
	v.SetDefault("store.redis.password", d.Store.Redis.Password)
	v.SetDefault("store.redis.db", d.Store.Redis.DB)
	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.sample_rate", d.Audio.SampleRate)
	v.SetDefault("audio.buffer", d.Audio.Buffer)
	v.SetDefault("quiz.provider", d.Quiz.Provider)
	v.SetDefault("quiz.hints_url", d.Quiz.HintsURL)
	v.SetDefault("quiz.hints_timeout", d.Quiz.HintsTimeout)
	v.SetDefault("quiz.hints_ttl", d.Quiz.HintsTTL)
	v.SetDefault("quiz.generative.url", d.Quiz.Generative.URL)
	v.SetDefault("quiz.generative.model", d.Quiz.Generative.Model)
	v.SetDefault("quiz.generative.api_key", d.Quiz.Generative.APIKey)
	v.SetDefault("quiz.generative.timeout", d.Quiz.Generative.Timeout)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.file", d.Tracing.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

func resolvePaths(cfg *Config) {
	if cfg.Store.Path == "" {
		cfg.Store.Path = paths.DatabaseFile()
	}
	if cfg.Log.File == "" {
		cfg.Log.File = paths.LogFile()
	}
	if cfg.Tracing.File == "" {
		cfg.Tracing.File = filepath.Join(paths.DataDir(), "traces.json")
	}
	cfg.Store.Path = paths.Expand(cfg.Store.Path)
	cfg.Log.File = paths.Expand(cfg.Log.File)
	cfg.Tracing.File = paths.Expand(cfg.Tracing.File)
}
