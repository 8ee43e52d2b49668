// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("catalog_source", cfg.Catalog.Source).
		Bool("tmdb_enabled", cfg.TMDB.Enabled).
		Msg("Starting Reelmatch")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Reelmatch stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, err := loadCatalog(ctx, &cfg.Catalog)
	if err != nil {
		return err
	}

	engine, err := recommend.NewEngine(cat, buildEngineConfig(&cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("failed to create recommendation engine: %w", err)
	}

	posters, err := initPosters(cfg)
	if err != nil {
		return err
	}
	defer posters.Close()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	if posters.store != nil && !cfg.PosterCache.InMemory {
		tree.AddDataService(services.NewPosterCacheGCService(posters.store, cfg.PosterCache.GCInterval, logging.Logger()))
	}
	if cfg.PosterWarmup.Enabled && posters.warmer != nil {
		ids := make([]int, 0, cat.Len())
		for _, m := range cat.Movies() {
			ids = append(ids, m.ID)
		}
		tree.AddBackgroundService(services.NewPosterWarmupService(posters.warmer, ids, logging.Logger()))
		logging.Info().Int("movies", len(ids)).Int("concurrency", cfg.PosterWarmup.Concurrency).Msg("Poster warmup scheduled")
	}

	deps := api.HandlerDeps{
		Catalog: cat,
		Engine:  engine,
		Posters: posters.resolver,
		Version: version,
	}
	if posters.tmdb != nil {
		deps.TMDB = posters.tmdb
	}
	if posters.breaker != nil {
		deps.Breaker = posters.breaker
	}
	if posters.cached != nil {
		deps.PosterCache = posters.cached
	}
	handler := api.NewHandler(deps)

	router := api.NewRouter(handler,
		api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)),
		api.WithRequestTimeout(cfg.Server.Timeout),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logging.Logger()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

// buildEngineConfig maps the recommend config section onto the engine's.
func buildEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Limits.DefaultK = rc.DefaultK
	cfg.Limits.MaxK = rc.MaxK
	cfg.Cache.Enabled = rc.CacheEnabled
	if rc.CacheTTL > 0 {
		cfg.Cache.TTL = rc.CacheTTL
	}
	if rc.CacheMaxEntries > 0 {
		cfg.Cache.MaxEntries = rc.CacheMaxEntries
	}
	return cfg
}
