// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AccelByte/extend-bridge-match/pkg/models"
)

func TestPostgresStatsStore(t *testing.T) {
	if os.Getenv("BRIDGE_INTEGRATION") != "1" {
		t.Skip("set BRIDGE_INTEGRATION=1 to run against a postgres container")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bridge"),
		postgres.WithUsername("bridge"),
		postgres.WithPassword("bridge"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Load(ctx, "p1")
	assert.ErrorIs(t, err, ErrStatsNotFound)
	assert.ErrorIs(t, store.Update(ctx, "p1", "Steve", models.Stats{}), ErrStatsNotFound)

	require.NoError(t, store.Create(ctx, "p1", "Steve", models.Stats{Wins: 1, WinStreak: 1}))
	require.NoError(t, store.Update(ctx, "p1", "Steve", models.Stats{Wins: 1, Losses: 1, Deaths: 3}))

	got, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Wins: 1, Losses: 1, Deaths: 3}, *got)
}
