// Package domain holds the game history model: finished games and where they are kept.
package domain

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/zjrosen/dinoguessr/internal/quiz"
)

// GameResult is one finished game.
type GameResult struct {
	id         int64
	guid       string
	difficulty quiz.Difficulty
	score      int
	total      int
	roundTimes []float64
	finishedAt time.Time
}

// NewGameResult validates and creates an unsaved result.
// roundTimes holds one entry per correct answer, so its length must equal score.
func NewGameResult(guid string, difficulty quiz.Difficulty, score, total int, roundTimes []float64, finishedAt time.Time) (*GameResult, error) {
	switch {
	case guid == "":
		return nil, &InvalidResultError{Reason: "guid is required"}
	case !difficulty.Valid():
		return nil, &InvalidResultError{Reason: fmt.Sprintf("unknown difficulty %q", difficulty)}
	case total <= 0:
		return nil, &InvalidResultError{Reason: "total must be positive"}
	case score < 0 || score > total:
		return nil, &InvalidResultError{Reason: fmt.Sprintf("score %d outside 0..%d", score, total)}
	case len(roundTimes) != score:
		return nil, &InvalidResultError{Reason: fmt.Sprintf("%d round times for score %d", len(roundTimes), score)}
	}
	return ReconstituteGameResult(0, guid, difficulty, score, total, roundTimes, finishedAt), nil
}

// ReconstituteGameResult rebuilds a result from storage without validation.
func ReconstituteGameResult(id int64, guid string, difficulty quiz.Difficulty, score, total int, roundTimes []float64, finishedAt time.Time) *GameResult {
	return &GameResult{
		id:         id,
		guid:       guid,
		difficulty: difficulty,
		score:      score,
		total:      total,
		roundTimes: slices.Clone(roundTimes),
		finishedAt: finishedAt,
	}
}

func (r *GameResult) ID() int64                   { return r.id }
func (r *GameResult) GUID() string                { return r.guid }
func (r *GameResult) Difficulty() quiz.Difficulty { return r.difficulty }
func (r *GameResult) Score() int                  { return r.score }
func (r *GameResult) Total() int                  { return r.total }
func (r *GameResult) FinishedAt() time.Time       { return r.finishedAt }

// RoundTimes returns a copy of the per-correct-answer times in seconds.
func (r *GameResult) RoundTimes() []float64 { return slices.Clone(r.roundTimes) }

// SetID is called by repositories after insert.
func (r *GameResult) SetID(id int64) { r.id = id }

// AverageSeconds is the mean correct-answer time, 0 when nothing was answered correctly.
func (r *GameResult) AverageSeconds() float64 {
	return Average(r.roundTimes)
}

// Average returns the arithmetic mean of times, or 0 for none.
func Average(times []float64) float64 {
	if len(times) == 0 {
		return 0
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return sum / float64(len(times))
}

// FormatSeconds renders seconds with two decimals, e.g. "2.35".
func FormatSeconds(s float64) string {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		s = 0
	}
	return fmt.Sprintf("%.2f", s)
}

// ListFilter narrows ResultRepository.List.
type ListFilter struct {
	Difficulty quiz.Difficulty // empty matches all
	Limit      int             // 0 means no limit
}

// ResultRepository stores finished games.
type ResultRepository interface {
	// Save inserts a new result and assigns its ID.
	Save(result *GameResult) error
	// FindByGUID returns ResultNotFoundError when absent.
	FindByGUID(guid string) (*GameResult, error)
	// List returns results newest first.
	List(filter ListFilter) ([]*GameResult, error)
	// DeleteAll removes every stored result.
	DeleteAll() error
}
