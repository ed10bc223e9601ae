// Package quiz produces the questions a DinoGuessr game is played with.
//
// A Provider turns a Difficulty into a Quiz. Providers degrade rather than
// fail: when hint lookup or generation breaks they fall back to locally built
// content, so callers can treat GetQuiz as always yielding playable data.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Question is one round: a picture to identify and the names to choose from.
type Question struct {
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
	ImageURL      string   `json:"imageUrl"`
	Hint          string   `json:"hint"`
	FunFact       string   `json:"funFact,omitempty"`
}

// Quiz is the ordered list of questions for one game.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Len returns the number of rounds in the quiz.
func (q Quiz) Len() int { return len(q.Questions) }

// Provider yields a quiz for a difficulty.
type Provider interface {
	GetQuiz(ctx context.Context, d Difficulty) (Quiz, error)
}

// ErrInvalidQuestion is wrapped by Validate failures.
var ErrInvalidQuestion = errors.New("invalid question")

// Validate checks that the correct answer is offered exactly once among
// wantOptions distinct choices. wantOptions <= 0 skips the count check.
func (q Question) Validate(wantOptions int) error {
	if q.CorrectAnswer == "" {
		return fmt.Errorf("%w: empty correct answer", ErrInvalidQuestion)
	}
	if wantOptions > 0 && len(q.Options) != wantOptions {
		return fmt.Errorf("%w: %d options, want %d", ErrInvalidQuestion, len(q.Options), wantOptions)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("%w: duplicate option %q", ErrInvalidQuestion, opt)
		}
		seen[opt] = struct{}{}
	}
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		return fmt.Errorf("%w: %q missing from options", ErrInvalidQuestion, q.CorrectAnswer)
	}
	return nil
}

// Validate checks every question against the difficulty's option and round counts.
func (q Quiz) Validate(d Difficulty) error {
	if len(q.Questions) != d.Rounds() {
		return fmt.Errorf("%w: %d questions, want %d", ErrInvalidQuestion, len(q.Questions), d.Rounds())
	}
	for i, question := range q.Questions {
		if err := question.Validate(d.Options()); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// FallbackHint is shown when no hint text is available for name.
func FallbackHint(name string) string {
	return "This is a hint about " + name
}

// FallbackFunFact is shown when no fun fact is available for name.
func FallbackFunFact(name string) string {
	return "This is a fun fact about " + name
}
