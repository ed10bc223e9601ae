package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/zjrosen/dinoguessr/internal/audio"
	"github.com/zjrosen/dinoguessr/internal/history/domain"
	"github.com/zjrosen/dinoguessr/internal/log"
	"github.com/zjrosen/dinoguessr/internal/quiz"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AdvanceDelay is how long an answered round stays on screen.
const AdvanceDelay = 1500 * time.Millisecond

const tracerName = "github.com/zjrosen/dinoguessr/internal/session"

// Synth plays sound effects. *audio.Synthesizer satisfies it.
type Synth interface {
	Play(audio.Event)
}

// DifficultySaver persists the last chosen difficulty.
type DifficultySaver interface {
	SaveDifficulty(ctx context.Context, d quiz.Difficulty) error
}

// ResultRecorder receives the result of every finished game.
// domain.ResultRepository satisfies it.
type ResultRecorder interface {
	Save(result *domain.GameResult) error
}

// LoadedMsg carries the outcome of a quiz fetch back to Loaded.
type LoadedMsg struct {
	Ticket Ticket
	Quiz   quiz.Quiz
	Err    error
}

// State is a read-only snapshot of a Controller.
type State struct {
	Phase      Phase
	Difficulty quiz.Difficulty
	Round      int
	Total      int
	Score      int
	RoundTimes []float64
	Answered   bool
	Selected   string
	HintShown  bool
	SessionID  string
}

// Controller drives one player's games.
type Controller struct {
	synth    Synth
	provider quiz.Provider
	saver    DifficultySaver
	recorder ResultRecorder
	tracer   trace.Tracer
	now      func() time.Time
	newID    func() string

	phase       Phase
	difficulty  quiz.Difficulty
	quiz        quiz.Quiz
	round       int
	score       int
	roundTimes  []float64
	answered    bool
	selected    string
	hintShown   bool
	generation  uint64
	sessionID   string
	presentedAt time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithDifficulty sets the difficulty preselected on the start screen.
func WithDifficulty(d quiz.Difficulty) Option {
	return func(c *Controller) {
		if d.Valid() {
			c.difficulty = d
		}
	}
}

// WithDifficultySaver persists the difficulty on every Start.
func WithDifficultySaver(s DifficultySaver) Option {
	return func(c *Controller) { c.saver = s }
}

// WithRecorder records finished games.
func WithRecorder(r ResultRecorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) { c.tracer = t }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides uuid generation for session IDs.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// New returns an Idle controller.
func New(synth Synth, provider quiz.Provider, opts ...Option) *Controller {
	c := &Controller{
		synth:      synth,
		provider:   provider,
		now:        time.Now,
		newID:      uuid.NewString,
		phase:      PhaseIdle,
		difficulty: quiz.DefaultDifficulty,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// Start begins a game at difficulty d.
func (c *Controller) Start(ctx context.Context, d quiz.Difficulty) (Ticket, error) {
	if c.phase != PhaseIdle {
		return Ticket{}, c.invalid("start")
	}
	if !d.Valid() {
		return Ticket{}, fmt.Errorf("start: unknown difficulty %q", d)
	}

	c.play(audio.EventStart)
	c.difficulty = d
	if c.saver != nil {
		if err := c.saver.SaveDifficulty(ctx, d); err != nil {
			log.ErrorErr(log.CatSession, "Failed to persist difficulty", err, "difficulty", d)
		}
	}
	return c.beginLoading(), nil
}

// PlayAgain restarts at the current difficulty.
func (c *Controller) PlayAgain() (Ticket, error) {
	if c.phase != PhaseFinished {
		return Ticket{}, c.invalid("play again")
	}
	c.play(audio.EventStart)
	return c.beginLoading(), nil
}

// BackToHome abandons the finished game.
func (c *Controller) BackToHome() error {
	if c.phase != PhaseFinished {
		return c.invalid("back to home")
	}
	c.play(audio.EventStart)
	c.reset()
	c.phase = PhaseIdle
	log.Debug(log.CatSession, "Returned to start screen", "generation", c.generation)
	return nil
}

func (c *Controller) beginLoading() Ticket {
	c.reset()
	c.phase = PhaseLoading
	log.Debug(log.CatSession, "Loading quiz", "difficulty", c.difficulty, "generation", c.generation)
	return Ticket{Generation: c.generation}
}

// reset discards the current game and invalidates outstanding tickets.
func (c *Controller) reset() {
	c.generation++
	c.quiz = quiz.Quiz{}
	c.round = 0
	c.score = 0
	c.roundTimes = nil
	c.sessionID = ""
	c.resetRound()
}

func (c *Controller) resetRound() {
	c.answered = false
	c.selected = ""
	c.hintShown = false
	c.presentedAt = c.now()
}

// Fetch returns the quiz request for t. The returned function does not touch
// the controller and may run on any goroutine.
func (c *Controller) Fetch(t Ticket) func(ctx context.Context) LoadedMsg {
	provider, d, tracer := c.provider, c.difficulty, c.tracer
	return func(ctx context.Context) LoadedMsg {
		ctx, span := tracer.Start(ctx, "session.Fetch", trace.WithAttributes(
			attribute.Int64("session.generation", int64(t.Generation)), //nolint:gosec // generation is a small counter
			attribute.String("quiz.difficulty", string(d)),
		))
		defer span.End()

		q, err := provider.GetQuiz(ctx, d)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return LoadedMsg{Ticket: t, Quiz: q, Err: err}
	}
}

// Loaded applies a fetched quiz. Results for a stale ticket are dropped.
// A failed or empty fetch returns the controller to Idle.
func (c *Controller) Loaded(msg LoadedMsg) error {
	if c.stale(msg.Ticket) || c.phase != PhaseLoading {
		log.Debug(log.CatSession, "Ignoring stale quiz", "generation", msg.Ticket.Generation, "current", c.generation)
		return nil
	}

	var err error
	switch {
	case msg.Err != nil:
		err = fmt.Errorf("failed to load quiz: %w", msg.Err)
	case msg.Quiz.Len() == 0:
		err = ErrEmptyQuiz
	}
	if err != nil {
		log.ErrorErr(log.CatSession, "Quiz unavailable", err, "difficulty", c.difficulty)
		c.reset()
		c.phase = PhaseIdle
		return err
	}

	c.quiz = msg.Quiz
	c.round = 0
	c.score = 0
	c.roundTimes = []float64{}
	c.sessionID = c.newID()
	c.resetRound()
	c.phase = PhasePlaying
	log.Info(log.CatSession, "Game started",
		"session", c.sessionID, "difficulty", c.difficulty, "rounds", c.quiz.Len())
	return nil
}

// Answer records option as the answer to the current round, elapsed after
// the round was presented. The returned ticket is for the delayed Advance.
func (c *Controller) Answer(option string, elapsed time.Duration) (Ticket, error) {
	if c.phase != PhasePlaying {
		return Ticket{}, c.invalid("answer")
	}
	if c.answered {
		return Ticket{}, ErrAlreadyAnswered
	}
	q := c.quiz.Questions[c.round]
	if !slices.Contains(q.Options, option) {
		return Ticket{}, fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}

	c.answered = true
	c.selected = option
	if option == q.CorrectAnswer {
		c.score++
		c.roundTimes = append(c.roundTimes, elapsed.Seconds())
		c.play(audio.EventCorrect)
	} else {
		c.play(audio.EventIncorrect)
	}
	log.Debug(log.CatSession, "Answered",
		"round", c.round, "correct", option == q.CorrectAnswer, "elapsed", elapsed)
	return Ticket{Generation: c.generation, Round: c.round}, nil
}

// Elapsed is the time since the current round was presented.
func (c *Controller) Elapsed() time.Duration {
	return c.now().Sub(c.presentedAt)
}

// Advance moves past an answered round. It reports false for stale tickets.
func (c *Controller) Advance(t Ticket) bool {
	if c.stale(t) || c.phase != PhasePlaying || t.Round != c.round || !c.answered {
		return false
	}
	if c.round < c.quiz.Len()-1 {
		c.round++
		c.resetRound()
		c.play(audio.EventTransition)
		return true
	}
	c.finish()
	return true
}

// ShowHint reveals the hint for the current round.
func (c *Controller) ShowHint() error {
	if c.phase != PhasePlaying {
		return c.invalid("show hint")
	}
	if c.answered {
		return ErrAlreadyAnswered
	}
	c.hintShown = true
	return nil
}

// SelectDifficulty changes the preselected difficulty on the start screen.
func (c *Controller) SelectDifficulty(d quiz.Difficulty) error {
	if c.phase != PhaseIdle {
		return c.invalid("select difficulty")
	}
	if !d.Valid() {
		return fmt.Errorf("select difficulty: unknown difficulty %q", d)
	}
	c.difficulty = d
	return nil
}

func (c *Controller) finish() {
	c.phase = PhaseFinished
	log.Info(log.CatSession, "Game finished",
		"session", c.sessionID, "score", c.score, "total", c.quiz.Len(), "average", c.AverageTime())

	_, span := c.tracer.Start(context.Background(), "session.Finish", trace.WithAttributes(
		attribute.String("session.id", c.sessionID),
		attribute.String("quiz.difficulty", string(c.difficulty)),
		attribute.Int("session.score", c.score),
		attribute.Int("session.total", c.quiz.Len()),
	))
	defer span.End()

	if c.recorder == nil {
		return
	}
	result, err := domain.NewGameResult(c.sessionID, c.difficulty, c.score, c.quiz.Len(), c.roundTimes, c.now())
	if err == nil {
		err = c.recorder.Save(result)
	}
	if err != nil {
		span.RecordError(err)
		log.ErrorErr(log.CatSession, "Failed to record game result", err, "session", c.sessionID)
	}
}

func (c *Controller) stale(t Ticket) bool {
	return t.Generation != c.generation
}

func (c *Controller) invalid(event string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, event, c.phase)
}

func (c *Controller) play(ev audio.Event) {
	if c.synth != nil {
		c.synth.Play(ev)
	}
}

// Ticket identifies the current game and round. Effects scheduled with it
// are stale once it no longer equals Ticket().
func (c *Controller) Ticket() Ticket {
	return Ticket{Generation: c.generation, Round: c.round}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Difficulty returns the chosen (or preselected) difficulty.
func (c *Controller) Difficulty() quiz.Difficulty { return c.difficulty }

// Score returns the number of correct answers so far.
func (c *Controller) Score() int { return c.score }

// Round returns the zero-based current round.
func (c *Controller) Round() int { return c.round }

// TotalRounds returns the number of questions in the loaded quiz.
func (c *Controller) TotalRounds() int { return c.quiz.Len() }

// RoundTimes returns the seconds taken for each correct answer.
func (c *Controller) RoundTimes() []float64 { return slices.Clone(c.roundTimes) }

// AverageTime is the mean correct-answer time in seconds, 0 when none.
func (c *Controller) AverageTime() float64 { return domain.Average(c.roundTimes) }

// Current returns the question for the current round.
func (c *Controller) Current() (quiz.Question, bool) {
	if c.phase != PhasePlaying && c.phase != PhaseFinished {
		return quiz.Question{}, false
	}
	if c.round >= c.quiz.Len() {
		return quiz.Question{}, false
	}
	return c.quiz.Questions[c.round], true
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Phase:      c.phase,
		Difficulty: c.difficulty,
		Round:      c.round,
		Total:      c.quiz.Len(),
		Score:      c.score,
		RoundTimes: slices.Clone(c.roundTimes),
		Answered:   c.answered,
		Selected:   c.selected,
		HintShown:  c.hintShown,
		SessionID:  c.sessionID,
	}
}
