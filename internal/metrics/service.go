package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_players_added_total",
			Help: "The total number of players added to the roster.",
		}),
		PlayersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_players_removed_total",
			Help: "The total number of players removed from the roster.",
		}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_sessions_created_total",
			Help: "The total number of sessions created.",
		}),
		SessionsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_sessions_removed_total",
			Help: "The total number of sessions removed, including their records.",
		}),
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_results_recorded_total",
			Help: "The total number of session results written.",
		}),
		CommandsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "club_commands_rejected_total",
			Help: "The total number of roster commands rejected by validation, by reason.",
		}, []string{"reason"}),
		RankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "club_ranking_duration_seconds",
			Help:    "The duration of ranking a set of players.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "club_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "club_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersAdded,
		s.PlayersRemoved,
		s.SessionsCreated,
		s.SessionsRemoved,
		s.ResultsRecorded,
		s.CommandsRejected,
		s.RankingDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayersAdded() {
	s.PlayersAdded.Inc()
}

func (s *Service) IncPlayersRemoved() {
	s.PlayersRemoved.Inc()
}

func (s *Service) IncSessionsCreated() {
	s.SessionsCreated.Inc()
}

func (s *Service) IncSessionsRemoved() {
	s.SessionsRemoved.Inc()
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) IncCommandsRejected(reason string) {
	s.CommandsRejected.WithLabelValues(reason).Inc()
}

func (s *Service) ObserveRankingDuration(duration float64) {
	s.RankingDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
