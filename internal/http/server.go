package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/club-ranker/internal/config"
	"github.com/mauv0809/club-ranker/internal/http/handlers"
	"github.com/mauv0809/club-ranker/internal/metrics"
	"github.com/mauv0809/club-ranker/internal/notifier"
	"github.com/mauv0809/club-ranker/internal/roster"
	corslib "github.com/rs/cors"
)

func NewServer(svc *roster.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, poster handlers.LeaderboardPoster) *Server {
	server := &Server{
		Roster:         svc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Poster:         poster,
		Router:         chi.NewRouter(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	r := s.Router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(corslib.New(corslib.Options{
		AllowedOrigins: s.Cfg.HTTP.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", playerNumberHeader},
		MaxAge:         3600,
	}).Handler)

	r.Handle("/metrics", s.MetricsHandler)
	r.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))

	r.Route("/api", func(r chi.Router) {
		r.Use(paramsMiddleware)
		r.With(rateLimitMiddleware(s.Cfg.HTTP.LoginRateLimit, time.Minute)).
			Post("/login", handlers.LoginHandler(s.Roster))

		r.Group(func(r chi.Router) {
			r.Use(requirePlayer(s.Roster))

			r.Get("/leaderboard", handlers.LeaderboardHandler(s.Roster))
			r.Get("/players", handlers.ListPlayersHandler(s.Roster))
			r.Get("/players/{playerID}/stats", handlers.PlayerStatsHandler(s.Roster))
			r.Get("/sessions", handlers.ListSessionsHandler(s.Roster))
			r.Get("/sessions/{sessionID}/results/{playerID}", handlers.SessionResultHandler(s.Roster))
			r.Put("/sessions/{sessionID}/results/{playerID}", handlers.RecordResultHandler(s.Roster))

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Post("/players", handlers.AddPlayerHandler(s.Roster))
				r.Delete("/players/{playerID}", handlers.RemovePlayerHandler(s.Roster))
				r.Post("/sessions", handlers.CreateSessionHandler(s.Roster))
				r.Delete("/sessions/{sessionID}", handlers.RemoveSessionHandler(s.Roster))
				r.Post("/shortlist", handlers.ShortlistHandler(s.Roster, s.Notifier))
				r.Post("/leaderboard/post", handlers.PostLeaderboardHandler(s.Poster))
			})
		})
	})

	verifySlack := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)
	r.Handle("/slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Roster, s.Notifier), paramsMiddleware, verifySlack))
	r.Handle("/slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Roster, s.Notifier), paramsMiddleware, verifySlack))

	r.Handle("/pubsub/result-recorded", Chain(handlers.ResultRecordedHandler(s.Poster), paramsMiddleware))
	r.Handle("/pubsub/session-removed", Chain(handlers.SessionRemovedHandler(s.Roster, s.Poster), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
