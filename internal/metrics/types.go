package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PlayersAdded       prometheus.Counter
	PlayersRemoved     prometheus.Counter
	SessionsCreated    prometheus.Counter
	SessionsRemoved    prometheus.Counter
	ResultsRecorded    prometheus.Counter
	CommandsRejected   *prometheus.CounterVec
	RankingDuration    prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
