// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"errors"

	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

var ErrStatsNotFound = errors.New("player stats not found")

// StatsStore persists lifetime player counters.
type StatsStore interface {
	// Load returns ErrStatsNotFound when the player has never been saved.
	Load(ctx context.Context, playerID string) (*models.Stats, error)
	Create(ctx context.Context, playerID string, name string, stats models.Stats) error
	Update(ctx context.Context, playerID string, name string, stats models.Stats) error
}
