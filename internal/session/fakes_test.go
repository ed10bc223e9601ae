package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/dinoguessr/internal/audio"
	"github.com/zjrosen/dinoguessr/internal/history/domain"
	"github.com/zjrosen/dinoguessr/internal/quiz"
)

type recordingSynth struct {
	events []audio.Event
}

func (s *recordingSynth) Play(ev audio.Event) { s.events = append(s.events, ev) }

func (s *recordingSynth) last() audio.Event {
	if len(s.events) == 0 {
		return audio.Event(-1)
	}
	return s.events[len(s.events)-1]
}

// fakeProvider builds quizzes named dino-<round>-<option>; option 0 is correct.
type fakeProvider struct {
	mu     sync.Mutex
	calls  int
	rounds int // overrides d.Rounds() when non-zero
	empty  bool
	err    error
}

func (p *fakeProvider) GetQuiz(_ context.Context, d quiz.Difficulty) (quiz.Quiz, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return quiz.Quiz{}, p.err
	}
	if p.empty {
		return quiz.Quiz{}, nil
	}
	n := d.Rounds()
	if p.rounds > 0 {
		n = p.rounds
	}
	q := quiz.Quiz{Questions: make([]quiz.Question, n)}
	for r := range n {
		opts := make([]string, d.Options())
		for o := range opts {
			opts[o] = fmt.Sprintf("dino-%d-%d", r, o)
		}
		q.Questions[r] = quiz.Question{
			CorrectAnswer: opts[0],
			Options:       opts,
			ImageURL:      fmt.Sprintf("assets/dino-%d.jpg", r),
			Hint:          quiz.FallbackHint(opts[0]),
		}
	}
	return q, nil
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type memoryRecorder struct {
	results []*domain.GameResult
	err     error
}

func (r *memoryRecorder) Save(res *domain.GameResult) error {
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, res)
	return nil
}

type savedDifficulties struct {
	saved []quiz.Difficulty
	err   error
}

func (s *savedDifficulties) SaveDifficulty(_ context.Context, d quiz.Difficulty) error {
	s.saved = append(s.saved, d)
	return s.err
}

var errBoom = errors.New("boom")

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time      { return c.t }
func (c *fakeClock) Add(d time.Duration) { c.t = c.t.Add(d) }

// correct and wrong name the options the fake provider generates.
func correct(c *Controller) string {
	q, _ := c.Current()
	return q.CorrectAnswer
}

func wrong(c *Controller) string {
	q, _ := c.Current()
	return q.Options[len(q.Options)-1]
}

// startGame drives a controller from Idle to Playing.
func startGame(c *Controller, d quiz.Difficulty) error {
	t, err := c.Start(context.Background(), d)
	if err != nil {
		return err
	}
	return c.Loaded(c.Fetch(t)(context.Background()))
}
