// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

// PlayerStats is the row layout of the player_stats table.
type PlayerStats struct {
	bun.BaseModel `bun:"table:player_stats,alias:ps"`

	PlayerID  string    `bun:"player_id,pk"`
	Name      string    `bun:"name,notnull"`
	Wins      int       `bun:"wins,notnull,default:0"`
	WinStreak int       `bun:"win_streak,notnull,default:0"`
	Losses    int       `bun:"losses,notnull,default:0"`
	Kills     int       `bun:"kills,notnull,default:0"`
	Deaths    int       `bun:"deaths,notnull,default:0"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (p *PlayerStats) toModel() *models.Stats {
	return &models.Stats{
		Wins:      p.Wins,
		WinStreak: p.WinStreak,
		Losses:    p.Losses,
		Kills:     p.Kills,
		Deaths:    p.Deaths,
	}
}

func newPlayerStats(playerID, name string, stats models.Stats) *PlayerStats {
	return &PlayerStats{
		PlayerID:  playerID,
		Name:      name,
		Wins:      stats.Wins,
		WinStreak: stats.WinStreak,
		Losses:    stats.Losses,
		Kills:     stats.Kills,
		Deaths:    stats.Deaths,
		UpdatedAt: time.Now().UTC(),
	}
}

// PostgresStatsStore stores stats through bun on postgres.
type PostgresStatsStore struct {
	DB *bun.DB
}

// OpenPostgres connects to dsn and makes sure the stats table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStatsStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	store := &PostgresStatsStore{DB: db}
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Migrate creates the stats table if it is missing.
func (s *PostgresStatsStore) Migrate(ctx context.Context) error {
	_, err := s.DB.NewCreateTable().Model((*PlayerStats)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create player_stats table: %w", err)
	}

	return nil
}

func (s *PostgresStatsStore) Load(ctx context.Context, playerID string) (*models.Stats, error) {
	row := &PlayerStats{}
	err := s.DB.NewSelect().Model(row).Where("player_id = ?", playerID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stats of player %s: %w", playerID, err)
	}

	return row.toModel(), nil
}

func (s *PostgresStatsStore) Create(ctx context.Context, playerID string, name string, stats models.Stats) error {
	_, err := s.DB.NewInsert().Model(newPlayerStats(playerID, name, stats)).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create stats of player %s: %w", playerID, err)
	}

	return nil
}

func (s *PostgresStatsStore) Update(ctx context.Context, playerID string, name string, stats models.Stats) error {
	result, err := s.DB.NewUpdate().
		Model(newPlayerStats(playerID, name, stats)).
		Column("name", "wins", "win_streak", "losses", "kills", "deaths", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update stats of player %s: %w", playerID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after update: %w", err)
	}
	if rowsAffected == 0 {
		return ErrStatsNotFound
	}

	return nil
}

func (s *PostgresStatsStore) Close() error {
	return s.DB.Close()
}
