package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/dinoguessr/internal/history/domain"
)

const resultColumns = `id, guid, difficulty, score, total, round_times, finished_at`

type resultRepository struct {
	db *sql.DB
}

func newResultRepository(db *sql.DB) *resultRepository {
	return &resultRepository{db: db}
}

var _ domain.ResultRepository = (*resultRepository)(nil)

// Save inserts a new result and assigns its ID. Results are immutable once
// stored, so saving a result that already has an ID is a no-op.
func (r *resultRepository) Save(result *domain.GameResult) error {
	if result.ID() != 0 {
		return nil
	}
	model, err := toGameResultModel(result)
	if err != nil {
		return err
	}
	res, err := r.db.Exec(
		`INSERT INTO game_results (guid, difficulty, score, total, round_times, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		model.GUID, model.Difficulty, model.Score, model.Total, model.RoundTimes, model.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	result.SetID(id)
	return nil
}

// FindByGUID returns ResultNotFoundError when no row matches.
func (r *resultRepository) FindByGUID(guid string) (*domain.GameResult, error) {
	var m GameResultModel
	err := r.db.QueryRow(
		`SELECT `+resultColumns+` FROM game_results WHERE guid = ?`, guid,
	).Scan(&m.ID, &m.GUID, &m.Difficulty, &m.Score, &m.Total, &m.RoundTimes, &m.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ResultNotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game result by guid: %w", err)
	}
	return m.toDomain()
}

// List returns results newest first.
func (r *resultRepository) List(filter domain.ListFilter) ([]*domain.GameResult, error) {
	query := `SELECT ` + resultColumns + ` FROM game_results`
	var args []any

	if filter.Difficulty != "" {
		query += ` WHERE difficulty = ?`
		args = append(args, string(filter.Difficulty))
	}
	query += ` ORDER BY finished_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*domain.GameResult
	for rows.Next() {
		var m GameResultModel
		if err := rows.Scan(&m.ID, &m.GUID, &m.Difficulty, &m.Score, &m.Total, &m.RoundTimes, &m.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		result, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game results: %w", err)
	}
	return results, nil
}

func (r *resultRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM game_results`); err != nil {
		return fmt.Errorf("failed to delete game results: %w", err)
	}
	return nil
}
