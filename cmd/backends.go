package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/dinoguessr/internal/audio"
	"github.com/zjrosen/dinoguessr/internal/config"
	"github.com/zjrosen/dinoguessr/internal/history/domain"
	"github.com/zjrosen/dinoguessr/internal/infrastructure/sqlite"
	"github.com/zjrosen/dinoguessr/internal/log"
	"github.com/zjrosen/dinoguessr/internal/quiz"
	"github.com/zjrosen/dinoguessr/internal/store"

	"github.com/gopxl/beep"
)

// backends bundles the persistence chosen by store.backend.
type backends struct {
	prefs   *store.Preferences
	results domain.ResultRepository // nil unless the backend keeps history
	closers []func() error
}

func openBackends(ctx context.Context, c config.StoreConfig) (*backends, error) {
	switch c.Backend {
	case config.BackendSQLite:
		db, err := sqlite.NewDB(c.Path)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return &backends{
			prefs:   store.NewPreferences(db.Settings()),
			results: db.ResultRepository(),
			closers: []func() error{db.Close},
		}, nil
	case config.BackendRedis:
		r, err := store.DialRedis(ctx, c.Redis.Addr, c.Redis.Password, c.Redis.DB)
		if err != nil {
			return nil, err
		}
		return &backends{
			prefs:   store.NewPreferences(r),
			closers: []func() error{r.Close},
		}, nil
	case config.BackendMemory:
		return &backends{prefs: store.NewPreferences(store.NewMemory())}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.Backend)
	}
}

// Close releases every backend, logging failures.
func (b *backends) Close() {
	for _, c := range b.closers {
		if err := c(); err != nil {
			log.ErrorErr(log.CatDB, "Closing store failed", err)
		}
	}
}

// newSynthesizer returns an inert synthesizer when muted so volume changes
// still persist.
func newSynthesizer(ctx context.Context, c config.AudioConfig, muted bool, prefs *store.Preferences) *audio.Synthesizer {
	var out audio.Output
	if !muted {
		out = audio.NewSpeakerOutput(c.Buffer)
	}
	return audio.NewSynthesizer(out, audio.Config{
		SampleRate: beep.SampleRate(c.SampleRate),
		Volume:     prefs.LoadVolume(ctx),
		Saver:      prefs,
	})
}

// newProvider builds the configured quiz provider, wrapped for tracing.
// Remote hints are fetched in the background so the first game starts warm.
func newProvider(ctx context.Context, c config.QuizConfig) quiz.Provider {
	var hints quiz.HintSource
	if c.HintsURL != "" {
		remote := quiz.NewRemoteHints(c.HintsURL, c.HintsTimeout, c.HintsTTL)
		log.SafeGo("quiz.prefetchHints", func() {
			if _, err := remote.Hints(ctx); err != nil {
				log.Debug(log.CatQuiz, "Hint prefetch failed", "error", err)
			}
		})
		hints = remote
	}
	local := quiz.NewLocalProvider(quiz.DefaultCatalog(), hints)

	if c.Provider == config.ProviderGenerative {
		g := quiz.NewGenerativeProvider(c.Generative.URL, c.Generative.APIKey, c.Generative.Model, c.Generative.Timeout, nil, local)
		return quiz.NewTraced(g, config.ProviderGenerative, nil)
	}
	return quiz.NewTraced(local, config.ProviderLocal, nil)
}

// fetchTimeout bounds a quiz fetch by the slowest step the provider can take.
func fetchTimeout(c config.QuizConfig) time.Duration {
	d := c.HintsTimeout
	if c.Provider == config.ProviderGenerative {
		d += c.Generative.Timeout
	}
	return d + 5*time.Second
}
