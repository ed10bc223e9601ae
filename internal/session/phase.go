// Package session implements the quiz game state machine.
//
// A Controller moves through Idle, Loading, Playing and Finished. It is not
// safe for concurrent use: the UI update loop owns it. Work that outlives a
// call (the quiz fetch and the delayed round advance) is described by a Ticket
// and fed back later; tickets issued before a reset are ignored.
package session

import "errors"

// Phase is the coarse state of a game.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

func (p Phase) String() string { return string(p) }

// Ticket identifies the game and round a deferred effect was scheduled for.
type Ticket struct {
	Generation uint64
	Round      int
}

var (
	// ErrInvalidTransition is returned for events that do not apply in the current phase.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrAlreadyAnswered is returned when the current round has already been answered.
	ErrAlreadyAnswered = errors.New("round already answered")
	// ErrEmptyQuiz is returned when a provider produced no questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrUnknownOption is returned when an answer is not one of the round's options.
	ErrUnknownOption = errors.New("not an option for this round")
)
