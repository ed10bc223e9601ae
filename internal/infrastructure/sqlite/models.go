package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zjrosen/dinoguessr/internal/history/domain"
	"github.com/zjrosen/dinoguessr/internal/quiz"
)

// GameResultModel is a game_results row. Round times are a JSON array.
type GameResultModel struct {
	ID         int64
	GUID       string
	Difficulty string
	Score      int
	Total      int
	RoundTimes string
	FinishedAt int64 // Unix timestamp
}

func toGameResultModel(r *domain.GameResult) (*GameResultModel, error) {
	times, err := json.Marshal(r.RoundTimes())
	if err != nil {
		return nil, fmt.Errorf("failed to encode round times: %w", err)
	}
	return &GameResultModel{
		ID:         r.ID(),
		GUID:       r.GUID(),
		Difficulty: string(r.Difficulty()),
		Score:      r.Score(),
		Total:      r.Total(),
		RoundTimes: string(times),
		FinishedAt: r.FinishedAt().Unix(),
	}, nil
}

func (m *GameResultModel) toDomain() (*domain.GameResult, error) {
	var times []float64
	if m.RoundTimes != "" {
		if err := json.Unmarshal([]byte(m.RoundTimes), &times); err != nil {
			return nil, fmt.Errorf("failed to decode round times for %s: %w", m.GUID, err)
		}
	}
	return domain.ReconstituteGameResult(
		m.ID,
		m.GUID,
		quiz.Difficulty(m.Difficulty),
		m.Score,
		m.Total,
		times,
		time.Unix(m.FinishedAt, 0),
	), nil
}
