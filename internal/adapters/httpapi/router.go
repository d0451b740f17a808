package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/metro-cards/internal/app"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

type Server struct {
	logger    zerolog.Logger
	timetable *app.Timetable
	board     *app.Board
	fetcher   *app.ScheduleFetcher
	bus       ports.EventBus
	// metrics est optionnel (/metrics).
	metrics http.Handler
	// staticDir est optionnel : sert le front et ses assets.
	staticDir string

	heartbeat time.Duration
}

func NewServer(logger zerolog.Logger, timetable *app.Timetable, board *app.Board, fetcher *app.ScheduleFetcher, bus ports.EventBus, metrics http.Handler, staticDir string) *Server {
	return &Server{
		logger:    logger,
		timetable: timetable,
		board:     board,
		fetcher:   fetcher,
		bus:       bus,
		metrics:   metrics,
		staticDir: staticDir,
		heartbeat: 15 * time.Second,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))
	r.Use(withCacheRules)

	r.Route("/api/v1", func(r chi.Router) {
		// Flux long : hors du timeout de requête.
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))

			r.Get("/health", s.handleHealth)
			r.Get("/version", s.handleVersion)
			r.Get("/openapi.json", s.handleOpenAPI)

			if s.timetable != nil {
				NewStationsHandler(s.timetable, s.board).Routes(r)
			}
			if s.board != nil {
				NewCardsHandler(s.board, s.timetable).Routes(r)
				r.Get("/audit/card", s.handleCardAudit)
			}
			if s.fetcher != nil {
				r.Get("/schedules/*", s.handleSchedule)
			}
		})
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	if s.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}

	return r
}
