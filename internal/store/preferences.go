package store

import (
	"context"
	"math"
	"strconv"

	"github.com/zjrosen/dinoguessr/internal/log"
	"github.com/zjrosen/dinoguessr/internal/quiz"
)

// Persisted preference keys.
const (
	KeyVolume     = "dinoGuessrVolume"
	KeyDifficulty = "dinoGuessrDifficulty"
)

// DefaultVolume is used when no valid volume has been stored.
const DefaultVolume = 1.0

// Preferences reads and writes typed settings on top of a Store.
// Reads never fail: absent, unreadable or invalid values yield defaults.
type Preferences struct {
	store Store
}

// NewPreferences wraps s.
func NewPreferences(s Store) *Preferences {
	return &Preferences{store: s}
}

// LoadVolume returns the stored master volume in [0,1].
func (p *Preferences) LoadVolume(ctx context.Context) float64 {
	raw, ok, err := p.store.Get(ctx, KeyVolume)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Failed to read volume", err)
		return DefaultVolume
	}
	if !ok {
		return DefaultVolume
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
		log.Warn(log.CatConfig, "Ignoring invalid stored volume", "value", raw)
		return DefaultVolume
	}
	return v
}

// SaveVolume stores v. The audio engine calls this after clamping.
func (p *Preferences) SaveVolume(ctx context.Context, v float64) error {
	return p.store.Set(ctx, KeyVolume, strconv.FormatFloat(v, 'f', -1, 64))
}

// LoadDifficulty returns the last chosen difficulty, or the default.
func (p *Preferences) LoadDifficulty(ctx context.Context) quiz.Difficulty {
	raw, ok, err := p.store.Get(ctx, KeyDifficulty)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Failed to read difficulty", err)
		return quiz.DefaultDifficulty
	}
	if !ok {
		return quiz.DefaultDifficulty
	}
	d, err := quiz.ParseDifficulty(raw)
	if err != nil {
		log.Warn(log.CatConfig, "Ignoring invalid stored difficulty", "value", raw)
		return quiz.DefaultDifficulty
	}
	return d
}

// SaveDifficulty stores d.
func (p *Preferences) SaveDifficulty(ctx context.Context, d quiz.Difficulty) error {
	return p.store.Set(ctx, KeyDifficulty, string(d))
}
