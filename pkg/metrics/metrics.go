// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MatchMetrics interface {
	MatchCreated(mapName string, mode string)
	MatchDestroyed(mapName string, mode string, reason string)
	ActiveMatches(count int)
	QueuedParticipants(count int)
	GoalScored(mapName string, team string)
	JoinRejected(mapName string, reason string)
	AddTickElapsedTimeMs(function string, elapsedTime time.Duration)
}

func NewMetrics(registry *prometheus.Registry) MatchMetrics {
	return setupPrometheusMetrics(registry)
}
