// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	matchesCreated     prometheus.CounterVec
	matchesDestroyed   prometheus.CounterVec
	activeMatches      prometheus.Gauge
	queuedParticipants prometheus.Gauge
	goalsScored        prometheus.CounterVec
	joinsRejected      prometheus.CounterVec
	tickElapsedTime    prometheus.HistogramVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)
	matchLabelDimensions := []string{"map", "mode"}

	matchesCreated := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_matches_created_total",
			Help: "Number of match instances created per map and mode",
		}, matchLabelDimensions)
	matchesDestroyed := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_matches_destroyed_total",
			Help: "Number of match instances destroyed per map, mode and reason",
		}, append(matchLabelDimensions, "reason"))
	activeMatches := factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_active_matches",
			Help: "Number of live match instances",
		})
	queuedParticipants := factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "bridge_queued_participants",
			Help: "Number of participants waiting in match queues",
		})
	goalsScored := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_goals_scored_total",
			Help: "Number of goals scored per map and team",
		}, []string{"map", "team"})
	joinsRejected := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_joins_rejected_total",
			Help: "Number of rejected join attempts per map and reason",
		}, []string{"map", "reason"})
	//nolint:promlinter
	tickElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridge_tick_elapsed_time_ms",
			Help:    "A histogram of tick functions elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"function"})

	return prometheusMetrics{
		matchesCreated:     *matchesCreated,
		matchesDestroyed:   *matchesDestroyed,
		activeMatches:      activeMatches,
		queuedParticipants: queuedParticipants,
		goalsScored:        *goalsScored,
		joinsRejected:      *joinsRejected,
		tickElapsedTime:    *tickElapsedTime,
	}
}

func (metrics prometheusMetrics) MatchCreated(mapName string, mode string) {
	metrics.matchesCreated.With(prometheus.Labels{"map": mapName, "mode": mode}).Inc()
}

func (metrics prometheusMetrics) MatchDestroyed(mapName string, mode string, reason string) {
	metrics.matchesDestroyed.With(prometheus.Labels{"map": mapName, "mode": mode, "reason": reason}).Inc()
}

func (metrics prometheusMetrics) ActiveMatches(count int) {
	metrics.activeMatches.Set(float64(count))
}

func (metrics prometheusMetrics) QueuedParticipants(count int) {
	metrics.queuedParticipants.Set(float64(count))
}

func (metrics prometheusMetrics) GoalScored(mapName string, team string) {
	metrics.goalsScored.With(prometheus.Labels{"map": mapName, "team": team}).Inc()
}

func (metrics prometheusMetrics) JoinRejected(mapName string, reason string) {
	metrics.joinsRejected.With(prometheus.Labels{"map": mapName, "reason": reason}).Inc()
}

func (metrics prometheusMetrics) AddTickElapsedTimeMs(function string, elapsedTime time.Duration) {
	metrics.tickElapsedTime.With(prometheus.Labels{"function": function}).Observe(float64(elapsedTime.Milliseconds()))
}
