package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/club-ranker/internal/config"
	"github.com/mauv0809/club-ranker/internal/http/handlers"
	"github.com/mauv0809/club-ranker/internal/metrics"
	"github.com/mauv0809/club-ranker/internal/notifier"
	"github.com/mauv0809/club-ranker/internal/roster"
)

type Server struct {
	Roster         *roster.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Poster         handlers.LeaderboardPoster
	Router         *chi.Mux
}
