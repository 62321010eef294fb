// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("MATCH_TICK_INTERVAL_MS", "500")
	t.Setenv("PROVISION_WORKERS", "0")
	t.Setenv("KILL_CREDIT_WINDOW_SECOND", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.MatchTickInterval())
	assert.Equal(t, 50*time.Millisecond, cfg.MovementTickInterval())
	assert.Equal(t, 1, cfg.ProvisionWorkers)
	assert.Equal(t, 10*time.Second, cfg.KillCreditWindow())
	assert.Equal(t, "data/maps", cfg.MapsDirectory)
	assert.True(t, cfg.LobbyCountdownEnabled)
}

func TestSetDefaultValuesKeepsDefaults(t *testing.T) {
	cfg := Default()
	cfg.SetDefaultValues()

	assert.Equal(t, Default(), cfg)
}

func TestSetDefaultValuesRepairsInvalidKnobs(t *testing.T) {
	cfg := &Config{MatchTickIntervalMs: -1, ResultBufferSize: 0, KillCreditWindowSecond: -3, MaxRequeueAttempts: -1}
	cfg.SetDefaultValues()

	assert.Equal(t, time.Second, cfg.MatchTickInterval())
	assert.Equal(t, 1, cfg.ResultBufferSize)
	assert.Equal(t, time.Duration(0), cfg.KillCreditWindow())
	assert.Equal(t, 0, cfg.MaxRequeueAttempts)
}
