package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/zjrosen/dinoguessr/internal/log"
)

// ErrCatalogTooSmall is returned when the catalog cannot fill a quiz.
var ErrCatalogTooSmall = errors.New("catalog too small for difficulty")

// HintSource supplies hint text keyed by dinosaur name.
type HintSource interface {
	Hints(ctx context.Context) (map[string]string, error)
}

// NoHints is a HintSource with nothing to offer; every question gets the fallback hint.
type NoHints struct{}

// Hints implements HintSource.
func (NoHints) Hints(context.Context) (map[string]string, error) { return nil, nil }

// LocalProvider builds quizzes from a catalog with randomly drawn wrong answers.
type LocalProvider struct {
	catalog Catalog
	hints   HintSource

	mu  sync.Mutex
	rng *rand.Rand
}

// LocalOption configures a LocalProvider.
type LocalOption func(*LocalProvider)

// WithRand sets the random source, mainly so tests can seed it.
func WithRand(r *rand.Rand) LocalOption {
	return func(p *LocalProvider) { p.rng = r }
}

// NewLocalProvider creates a provider over catalog. A nil hints source means NoHints.
func NewLocalProvider(catalog Catalog, hints HintSource, opts ...LocalOption) *LocalProvider {
	if hints == nil {
		hints = NoHints{}
	}
	p := &LocalProvider{
		catalog: catalog,
		hints:   hints,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // game randomness
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Catalog returns the catalog questions are drawn from.
func (p *LocalProvider) Catalog() Catalog { return p.catalog }

// GetQuiz picks d.Rounds() distinct dinosaurs and builds d.Options() choices for each.
// Hint lookup failures are logged and replaced by fallback hints.
func (p *LocalProvider) GetQuiz(ctx context.Context, d Difficulty) (Quiz, error) {
	selected, err := p.pick(d)
	if err != nil {
		return Quiz{}, err
	}

	hints, err := p.hints.Hints(ctx)
	if err != nil {
		log.Warn(log.CatQuiz, "Hint lookup failed, using fallback hints", "error", err)
	}

	questions := make([]Question, len(selected))
	for i, dino := range selected {
		hint := hints[dino.Name]
		if hint == "" {
			hint = FallbackHint(dino.Name)
		}
		questions[i] = Question{
			CorrectAnswer: dino.Name,
			Options:       p.options(dino.Name, d.Options()),
			ImageURL:      dino.Image,
			Hint:          hint,
			FunFact:       FallbackFunFact(dino.Name),
		}
	}

	log.Debug(log.CatQuiz, "Built local quiz", "difficulty", d, "questions", len(questions))
	return Quiz{Questions: questions}, nil
}

// pick returns d.Rounds() distinct catalog entries in random order.
func (p *LocalProvider) pick(d Difficulty) ([]Dinosaur, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", d)
	}
	if p.catalog.Len() < d.Rounds() || p.catalog.Len() < d.Options() {
		return nil, fmt.Errorf("%w: %d entries, %s needs %d", ErrCatalogTooSmall, p.catalog.Len(), d, d.Rounds())
	}

	pool := make([]Dinosaur, p.catalog.Len())
	copy(pool, p.catalog.Dinosaurs)

	p.mu.Lock()
	p.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	p.mu.Unlock()

	return pool[:d.Rounds()], nil
}

// options returns the correct name plus n-1 distinct wrong names, shuffled.
func (p *LocalProvider) options(correct string, n int) []string {
	wrong := make([]string, 0, p.catalog.Len()-1)
	for _, dino := range p.catalog.Dinosaurs {
		if dino.Name != correct {
			wrong = append(wrong, dino.Name)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
	opts := append([]string{correct}, wrong[:n-1]...)
	p.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}
