package quiz

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type stubHints struct {
	hints map[string]string
	err   error
	calls int
}

func (s *stubHints) Hints(context.Context) (map[string]string, error) {
	s.calls++
	return s.hints, s.err
}

func seeded(seed uint64) LocalOption {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func TestLocalProvider_QuizShape(t *testing.T) {
	p := NewLocalProvider(DefaultCatalog(), nil, seeded(1))

	for _, d := range Difficulties() {
		t.Run(string(d), func(t *testing.T) {
			q, err := p.GetQuiz(context.Background(), d)
			require.NoError(t, err)
			require.NoError(t, q.Validate(d))
			assert.Equal(t, d.Rounds(), q.Len())
			for _, question := range q.Questions {
				assert.Len(t, question.Options, d.Options())
				assert.NotEmpty(t, question.ImageURL)
			}
		})
	}
}

// Property: every quiz for every difficulty and seed is well formed, and no
// dinosaur is asked about twice in the same game.
func TestLocalProvider_Properties(t *testing.T) {
	catalog := DefaultCatalog()

	rapid.Check(t, func(t *rapid.T) {
		d := rapid.SampledFrom(Difficulties()).Draw(t, "difficulty")
		seed := rapid.Uint64().Draw(t, "seed")

		p := NewLocalProvider(catalog, nil, seeded(seed))
		q, err := p.GetQuiz(context.Background(), d)
		if err != nil {
			t.Fatalf("GetQuiz: %v", err)
		}
		if err := q.Validate(d); err != nil {
			t.Fatalf("invalid quiz: %v", err)
		}

		seen := make(map[string]bool)
		for _, question := range q.Questions {
			if seen[question.CorrectAnswer] {
				t.Fatalf("%s asked twice", question.CorrectAnswer)
			}
			seen[question.CorrectAnswer] = true
			if _, ok := catalog.Lookup(question.CorrectAnswer); !ok {
				t.Fatalf("%s not in catalog", question.CorrectAnswer)
			}
		}
	})
}

func TestLocalProvider_HintsAndFallback(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`
dinosaurs:
  - name: Troodon
  - name: Oviraptor
  - name: Utahraptor
  - name: Baryonyx
  - name: Maiasaura
`))
	require.NoError(t, err)

	hints := &stubHints{hints: map[string]string{"Troodon": "Big brain for its size"}}
	p := NewLocalProvider(catalog, hints, seeded(7))

	q, err := p.GetQuiz(context.Background(), Easy)
	require.NoError(t, err)
	require.Equal(t, 1, hints.calls, "hints fetched once per quiz")

	for _, question := range q.Questions {
		if question.CorrectAnswer == "Troodon" {
			assert.Equal(t, "Big brain for its size", question.Hint)
		} else {
			assert.Equal(t, FallbackHint(question.CorrectAnswer), question.Hint)
		}
		assert.Equal(t, FallbackFunFact(question.CorrectAnswer), question.FunFact)
	}
}

func TestLocalProvider_HintErrorDegrades(t *testing.T) {
	hints := &stubHints{err: errors.New("connection refused")}
	p := NewLocalProvider(DefaultCatalog(), hints, seeded(3))

	q, err := p.GetQuiz(context.Background(), Medium)
	require.NoError(t, err, "hint failures never surface")
	for _, question := range q.Questions {
		assert.Equal(t, FallbackHint(question.CorrectAnswer), question.Hint)
	}
}

func TestLocalProvider_Errors(t *testing.T) {
	p := NewLocalProvider(DefaultCatalog(), nil)
	_, err := p.GetQuiz(context.Background(), Difficulty("nightmare"))
	require.Error(t, err)

	small, err := ParseCatalog([]byte("dinosaurs:\n  - name: A\n  - name: B\n  - name: C\n"))
	require.NoError(t, err)
	_, err = NewLocalProvider(small, nil).GetQuiz(context.Background(), Easy)
	require.ErrorIs(t, err, ErrCatalogTooSmall)
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		want    int
		wantErr bool
	}{
		{"ok", Question{CorrectAnswer: "A", Options: []string{"B", "A"}}, 2, false},
		{"count ignored", Question{CorrectAnswer: "A", Options: []string{"A"}}, 0, false},
		{"missing correct", Question{CorrectAnswer: "A", Options: []string{"B", "C"}}, 2, true},
		{"duplicate", Question{CorrectAnswer: "A", Options: []string{"A", "A"}}, 2, true},
		{"wrong count", Question{CorrectAnswer: "A", Options: []string{"A", "B", "C"}}, 2, true},
		{"empty correct", Question{Options: []string{"A", "B"}}, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate(tt.want)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidQuestion)
				return
			}
			require.NoError(t, err)
		})
	}
}
