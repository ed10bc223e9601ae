// Package game is the Bubble Tea front end for a quiz session.
package game

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/zjrosen/dinoguessr/internal/log"
	"github.com/zjrosen/dinoguessr/internal/quiz"
	"github.com/zjrosen/dinoguessr/internal/session"
	"github.com/zjrosen/dinoguessr/internal/ui/styles"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const (
	// RevealDuration is how long the picture takes to fade in fully.
	RevealDuration = 10 * time.Second
	revealStep     = 100 * time.Millisecond
	volumeStep     = 0.1
	defaultTimeout = 30 * time.Second
)

// Volume is the master volume control. *audio.Synthesizer satisfies it.
type Volume interface {
	Volume() float64
	SetVolume(level float64)
}

type loadedMsg session.LoadedMsg

type advanceMsg struct{ ticket session.Ticket }

type revealMsg struct{ ticket session.Ticket }

// Model renders the controller's state and turns input into controller events.
type Model struct {
	ctrl    *session.Controller
	volume  Volume
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	meter   progress.Model
	zones   *zone.Manager

	ctx     context.Context
	timeout time.Duration

	width  int
	height int
	reveal float64
	notice string
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the parent context for quiz fetches.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithFetchTimeout bounds each quiz fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(m *Model) { m.timeout = d }
}

// New returns the start screen for ctrl. volume may be nil.
func New(ctrl *session.Controller, volume Volume, opts ...Option) Model {
	m := Model{
		ctrl:    ctrl,
		volume:  volume,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Title)),
		meter:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		zones:   zone.New(),
		ctx:     context.Background(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.VolumeUp) {
			m.nudgeVolume(volumeStep)
			return m, nil
		}
		if key.Matches(msg, m.keys.VolumeDown) {
			m.nudgeVolume(-volumeStep)
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handleClick(msg)

	case loadedMsg:
		return m.handleLoaded(session.LoadedMsg(msg))

	case advanceMsg:
		if !m.ctrl.Advance(msg.ticket) {
			return m, nil
		}
		if m.ctrl.Phase() == session.PhasePlaying {
			m.reveal = 0
			return m, m.revealTick()
		}
		return m, nil

	case revealMsg:
		if msg.ticket != m.ctrl.Ticket() || m.ctrl.Phase() != session.PhasePlaying || m.ctrl.State().Answered {
			return m, nil
		}
		m.reveal = min(m.reveal+float64(revealStep)/float64(RevealDuration), 1)
		if m.reveal >= 1 {
			return m, nil
		}
		return m, m.revealTick()

	case spinner.TickMsg:
		if m.ctrl.Phase() != session.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ctrl.Phase() {
	case session.PhaseIdle:
		switch {
		case key.Matches(msg, m.keys.Prev):
			m.shiftDifficulty(-1)
		case key.Matches(msg, m.keys.Next):
			m.shiftDifficulty(1)
		case key.Matches(msg, m.keys.Start):
			return m.start(m.ctrl.Difficulty())
		}

	case session.PhasePlaying:
		switch {
		case key.Matches(msg, m.keys.Answer):
			return m.answer(int(msg.String()[0] - '1'))
		case key.Matches(msg, m.keys.Hint):
			if err := m.ctrl.ShowHint(); err != nil {
				log.Debug(log.CatUI, "Hint unavailable", "error", err)
			}
		}

	case session.PhaseFinished:
		switch {
		case key.Matches(msg, m.keys.PlayAgain):
			return m.playAgain()
		case key.Matches(msg, m.keys.Home):
			return m.home()
		}
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.ctrl.Phase() {
	case session.PhaseIdle:
		for _, d := range quiz.Difficulties() {
			if m.clicked(msg, difficultyZone(d)) {
				m.selectDifficulty(d)
				return m, nil
			}
		}
		if m.clicked(msg, zoneStart) {
			return m.start(m.ctrl.Difficulty())
		}

	case session.PhasePlaying:
		if m.clicked(msg, zoneHint) {
			_ = m.ctrl.ShowHint()
			return m, nil
		}
		for i := range 4 {
			if m.clicked(msg, optionZone(i)) {
				return m.answer(i)
			}
		}

	case session.PhaseFinished:
		if m.clicked(msg, zonePlayAgain) {
			return m.playAgain()
		}
		if m.clicked(msg, zoneHome) {
			return m.home()
		}
	}
	return m, nil
}

func (m Model) clicked(msg tea.MouseMsg, id string) bool {
	z := m.zones.Get(id)
	return z != nil && z.InBounds(msg)
}

func (m Model) start(d quiz.Difficulty) (tea.Model, tea.Cmd) {
	ticket, err := m.ctrl.Start(m.ctx, d)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to start game", err)
		return m, nil
	}
	m.notice = ""
	return m, tea.Batch(m.fetch(ticket), m.spinner.Tick)
}

func (m Model) playAgain() (tea.Model, tea.Cmd) {
	ticket, err := m.ctrl.PlayAgain()
	if err != nil {
		return m, nil
	}
	return m, tea.Batch(m.fetch(ticket), m.spinner.Tick)
}

func (m Model) home() (tea.Model, tea.Cmd) {
	_ = m.ctrl.BackToHome()
	return m, nil
}

func (m Model) answer(i int) (tea.Model, tea.Cmd) {
	q, ok := m.ctrl.Current()
	if !ok || i < 0 || i >= len(q.Options) {
		return m, nil
	}
	ticket, err := m.ctrl.Answer(q.Options[i], m.ctrl.Elapsed())
	if err != nil {
		if !errors.Is(err, session.ErrAlreadyAnswered) {
			log.ErrorErr(log.CatUI, "Answer rejected", err)
		}
		return m, nil
	}
	m.reveal = 1
	return m, tea.Tick(session.AdvanceDelay, func(time.Time) tea.Msg {
		return advanceMsg{ticket: ticket}
	})
}

func (m Model) handleLoaded(msg session.LoadedMsg) (tea.Model, tea.Cmd) {
	if err := m.ctrl.Loaded(msg); err != nil {
		m.notice = "Couldn't load a quiz. Press enter to try again."
		return m, nil
	}
	if m.ctrl.Phase() != session.PhasePlaying || m.ctrl.Ticket().Generation != msg.Ticket.Generation {
		return m, nil
	}
	m.reveal = 0
	return m, m.revealTick()
}

// fetch runs the quiz request off the update loop.
func (m Model) fetch(ticket session.Ticket) tea.Cmd {
	run := m.ctrl.Fetch(ticket)
	parent, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return loadedMsg(run(ctx))
	}
}

func (m Model) revealTick() tea.Cmd {
	ticket := m.ctrl.Ticket()
	return tea.Tick(revealStep, func(time.Time) tea.Msg {
		return revealMsg{ticket: ticket}
	})
}

func (m *Model) shiftDifficulty(delta int) {
	all := quiz.Difficulties()
	i := 0
	for j, d := range all {
		if d == m.ctrl.Difficulty() {
			i = j
		}
	}
	m.selectDifficulty(all[(i+delta+len(all))%len(all)])
}

func (m *Model) selectDifficulty(d quiz.Difficulty) {
	if err := m.ctrl.SelectDifficulty(d); err != nil {
		log.Debug(log.CatUI, "Difficulty not changed", "error", err)
	}
}

func (m *Model) nudgeVolume(delta float64) {
	if m.volume == nil {
		return
	}
	m.volume.SetVolume(math.Round((m.volume.Volume()+delta)*10) / 10)
}

// SetSize updates the view dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.meter.Width = max(width-8, 10)
	m.help.Width = width
	return m
}

// Reveal returns how much of the current picture is shown, from 0 to 1.
func (m Model) Reveal() float64 {
	return m.reveal
}

// Close releases the click-zone tracker.
func (m Model) Close() {
	m.zones.Close()
}
