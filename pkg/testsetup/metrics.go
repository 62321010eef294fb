// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"time"

	"github.com/AccelByte/extend-bridge-match/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) MatchCreated(mapName string, mode string) {}

func (s stubMetricsCollection) MatchDestroyed(mapName string, mode string, reason string) {}

func (s stubMetricsCollection) ActiveMatches(count int) {}

func (s stubMetricsCollection) QueuedParticipants(count int) {}

func (s stubMetricsCollection) GoalScored(mapName string, team string) {}

func (s stubMetricsCollection) JoinRejected(mapName string, reason string) {}

func (s stubMetricsCollection) AddTickElapsedTimeMs(function string, elapsedTime time.Duration) {}

func NewMetrics() metrics.MatchMetrics {
	return stubMetricsCollection{}
}
