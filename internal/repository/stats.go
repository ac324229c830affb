package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dekritpn/kawio/internal/entity"
)

const defaultElo = 1200

type StatsRepository interface {
	EnsurePlayer(ctx context.Context, name string) error
	GetElo(ctx context.Context, name string) (float64, error)
	UpdateElo(ctx context.Context, name string, elo float64) error
	IncrementResult(ctx context.Context, name string, won bool) error
	Leaderboard(ctx context.Context) ([]*entity.PlayerStats, error)
}

type dbStats struct {
	conn *sql.DB
}

func NewStatsRepository(conn *sql.DB) StatsRepository {
	return &dbStats{
		conn: conn,
	}
}

func (that *dbStats) EnsurePlayer(ctx context.Context, name string) error {
	query := `INSERT OR IGNORE INTO players (name, elo, wins, losses) VALUES (?, ?, 0, 0)`

	if _, err := that.conn.ExecContext(ctx, query, name, defaultElo); err != nil {
		return fmt.Errorf("failed to ensure player row: %w", err)
	}

	return nil
}

func (that *dbStats) GetElo(ctx context.Context, name string) (float64, error) {
	query := `SELECT elo FROM players WHERE name = ?`

	var elo float64
	err := that.conn.QueryRowContext(ctx, query, name).Scan(&elo)

	if errors.Is(err, sql.ErrNoRows) {
		return defaultElo, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get elo: %w", err)
	}

	return elo, nil
}

func (that *dbStats) UpdateElo(ctx context.Context, name string, elo float64) error {
	if err := that.EnsurePlayer(ctx, name); err != nil {
		return err
	}

	query := `UPDATE players SET elo = ? WHERE name = ?`

	if _, err := that.conn.ExecContext(ctx, query, elo, name); err != nil {
		return fmt.Errorf("failed to update elo: %w", err)
	}

	return nil
}

func (that *dbStats) IncrementResult(ctx context.Context, name string, won bool) error {
	if err := that.EnsurePlayer(ctx, name); err != nil {
		return err
	}

	query := `UPDATE players SET losses = losses + 1 WHERE name = ?`
	if won {
		query = `UPDATE players SET wins = wins + 1 WHERE name = ?`
	}

	if _, err := that.conn.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to increment result: %w", err)
	}

	return nil
}

func (that *dbStats) Leaderboard(ctx context.Context) ([]*entity.PlayerStats, error) {
	query := `SELECT name, elo, wins, losses FROM players ORDER BY elo DESC`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []*entity.PlayerStats

	for rows.Next() {
		record := &entity.PlayerStats{}
		if err = rows.Scan(&record.Name, &record.Elo, &record.Wins, &record.Losses); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}

		stats = append(stats, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard rows: %w", err)
	}

	return stats, nil
}
