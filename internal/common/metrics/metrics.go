package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_notifications_sent_total",
			Help: "Total number of notifications delivered, by channel",
		},
		[]string{"channel", "type"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_notifications_failed_total",
			Help: "Total number of notification delivery failures, by channel",
		},
		[]string{"channel", "type"},
	)

	MilestonesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_milestones_recorded_total",
			Help: "Total number of milestone records created",
		},
		[]string{"milestone"},
	)

	RankingsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_rankings_completed_total",
			Help: "Total number of applicant ranking requests, by scoring mode",
		},
		[]string{"mode"},
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "jobboard_ranking_duration_seconds",
			Help: "Duration of applicant ranking requests in seconds",
		},
		[]string{"mode"},
	)

	OracleFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_oracle_failures_total",
			Help: "Total number of AI scoring failures, by reason",
		},
		[]string{"reason"},
	)
)

// Scoring modes for RankingsCompleted / RankingDuration.
const (
	ModeOracle   = "oracle"
	ModeFallback = "fallback"
)
