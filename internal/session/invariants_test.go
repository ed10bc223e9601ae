package session

import (
	"context"
	"testing"
	"time"

	"github.com/zjrosen/dinoguessr/internal/quiz"

	"pgregory.net/rapid"
)

// TestController_Invariants drives random event sequences, including late and
// duplicated fetch results and advance ticks, and checks the state after each.
func TestController_Invariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		p := &fakeProvider{rounds: rapid.IntRange(1, 4).Draw(t, "rounds")}
		c := New(nil, p, WithIDGenerator(func() string { return "s" }))

		var loads []LoadedMsg
		var advances []Ticket

		t.Repeat(map[string]func(*rapid.T){
			"start": func(t *rapid.T) {
				d := rapid.SampledFrom(quiz.Difficulties()).Draw(t, "difficulty")
				if ticket, err := c.Start(ctx, d); err == nil {
					loads = append(loads, c.Fetch(ticket)(ctx))
				}
			},
			"play again": func(t *rapid.T) {
				if ticket, err := c.PlayAgain(); err == nil {
					loads = append(loads, c.Fetch(ticket)(ctx))
				}
			},
			"home": func(t *rapid.T) {
				_ = c.BackToHome()
			},
			"deliver": func(t *rapid.T) {
				if len(loads) == 0 {
					t.Skip("nothing fetched")
				}
				_ = c.Loaded(rapid.SampledFrom(loads).Draw(t, "load"))
			},
			"answer": func(t *rapid.T) {
				q, ok := c.Current()
				if !ok || c.Phase() != PhasePlaying {
					t.Skip("no open round")
				}
				option := rapid.SampledFrom(q.Options).Draw(t, "option")
				secs := rapid.IntRange(0, 30).Draw(t, "seconds")
				before := c.Score()
				ticket, err := c.Answer(option, time.Duration(secs)*time.Second)
				if err != nil {
					return
				}
				advances = append(advances, ticket)
				want := before
				if option == q.CorrectAnswer {
					want++
				}
				if c.Score() != want {
					t.Fatalf("score %d after answering, want %d", c.Score(), want)
				}
			},
			"hint": func(t *rapid.T) {
				_ = c.ShowHint()
			},
			"advance": func(t *rapid.T) {
				if len(advances) == 0 {
					t.Skip("nothing scheduled")
				}
				c.Advance(rapid.SampledFrom(advances).Draw(t, "ticket"))
			},
			"": func(t *rapid.T) {
				s := c.State()
				if len(s.RoundTimes) != s.Score {
					t.Fatalf("%d round times for score %d", len(s.RoundTimes), s.Score)
				}
				if s.Score > s.Total {
					t.Fatalf("score %d exceeds %d rounds", s.Score, s.Total)
				}
				switch s.Phase {
				case PhaseIdle, PhaseLoading:
					if s.Total != 0 || s.Score != 0 {
						t.Fatalf("%s holds a quiz: total=%d score=%d", s.Phase, s.Total, s.Score)
					}
				case PhasePlaying, PhaseFinished:
					if s.Total == 0 || s.Round >= s.Total {
						t.Fatalf("round %d out of %d while %s", s.Round, s.Total, s.Phase)
					}
					if s.Score > s.Round+1 {
						t.Fatalf("score %d ahead of round %d", s.Score, s.Round)
					}
					if s.Phase == PhaseFinished && (!s.Answered || s.Round != s.Total-1) {
						t.Fatalf("finished before the last round was answered")
					}
				default:
					t.Fatalf("unknown phase %q", s.Phase)
				}
			},
		})
	})
}
