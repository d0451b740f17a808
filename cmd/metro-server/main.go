package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Guilhem-Bonnet/metro-cards/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/metro-cards/internal/adapters/lrucache"
	"github.com/Guilhem-Bonnet/metro-cards/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/metro-cards/internal/adapters/memstore"
	"github.com/Guilhem-Bonnet/metro-cards/internal/adapters/ratp"
	"github.com/Guilhem-Bonnet/metro-cards/internal/adapters/sqlite"
	"github.com/Guilhem-Bonnet/metro-cards/internal/app"
	"github.com/Guilhem-Bonnet/metro-cards/internal/buildinfo"
	"github.com/Guilhem-Bonnet/metro-cards/internal/config"
	"github.com/Guilhem-Bonnet/metro-cards/internal/metrics"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

func main() {
	configPath := flag.String("config", envOr("METRO_CONFIG", ""), "Fichier de configuration YAML (optionnel)")
	addr := flag.String("addr", "", "Adresse d'écoute (ex: 127.0.0.1:8080)")
	dbPath := flag.String("db", "", "Chemin SQLite (ex: metro.db)")
	staticDir := flag.String("static", "", "Répertoire des assets statiques")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	// Les flags explicites priment sur le fichier et l'environnement.
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *staticDir != "" {
		cfg.StaticDir = *staticDir
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("app", "metro-server").Logger()
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("db", cfg.DBPath).Str("cache", cfg.CacheBackend).Msg("starting")

	ctx := context.Background()
	var (
		stationsRepo ports.StationRepository
		responses    ports.ResponseCache
	)
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		// L'application continue sans persistance.
		logger.Error().Err(errors.Join(app.ErrStorageUnavailable, err)).Msg("failed to open db, using in-memory storage")
		stationsRepo = memstore.NewStationsRepository()
		responses = lrucache.New(cfg.CacheSize)
	} else {
		defer func() { _ = db.Close() }()
		stationsRepo = sqlite.NewStationsRepository(db.SQL)
		responses = sqlite.NewResponsesRepository(db.SQL)
		if cfg.CacheBackend == config.CacheBackendMemory {
			responses = lrucache.New(cfg.CacheSize)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewObserver("metro", reg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register metrics")
	}

	bus := memorybus.New()
	defer bus.Close()

	board := app.NewBoard(bus, observer)
	cache := app.NewResponseCache(logger.With().Str("component", "response-cache").Logger(), responses, cfg.CacheMaxAge)
	source := ratp.New(cfg.ScheduleEndpoint, cfg.FetchTimeout)
	fetcher := app.NewScheduleFetcher(logger.With().Str("component", "fetcher").Logger(), source, cache, board, observer)
	stations := app.NewStationService(logger.With().Str("component", "stations").Logger(), stationsRepo)
	timetable := app.NewTimetable(logger.With().Str("component", "timetable").Logger(), stations, fetcher, board)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Premier affichage : sélection persistée ou stations par défaut.
	go timetable.Start(shutdownCtx)

	pruner := app.NewCachePruner(logger.With().Str("component", "cache-pruner").Logger(), cache, cfg.PruneInterval)
	go pruner.Run(shutdownCtx)

	srv := httpapi.NewServer(logger, timetable, board, fetcher, bus, metrics.Handler(reg), cfg.StaticDir)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	fetcher.Wait()
	logger.Info().Msg("bye")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
