// tracker polls the Space XY stats API and serves the synchronized state
// over HTTP and WebSocket.
// Usage: go run ./cmd/tracker --config configs/tracker.example.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/spacexy-tracker/internal/api"
	"github.com/rickgao/spacexy-tracker/internal/calc"
	"github.com/rickgao/spacexy-tracker/internal/config"
	"github.com/rickgao/spacexy-tracker/internal/feed"
	"github.com/rickgao/spacexy-tracker/internal/logger"
	"github.com/rickgao/spacexy-tracker/internal/poller"
	"github.com/rickgao/spacexy-tracker/internal/server"
	"github.com/rickgao/spacexy-tracker/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/tracker.example.yaml", "path to config file")
	envFile := flag.String("env", ".env", "optional env file loaded before the config")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load env file:", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: version.ServiceName,
		Version:     version.Version,
		InstanceID:  cfg.Instance.ID,
	})
	slog.SetDefault(log)

	log.Info("starting tracker",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"api_url", cfg.API.BaseURL,
		"game", cfg.Game.ID,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	apiClient := api.NewClient(
		cfg.API.BaseURL,
		api.WithLogger(log),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		api.WithCrashStatsCache(cfg.CrashStats.CacheSize, cfg.CrashStats.CacheTTL),
	)

	// Probe upstream health. An unhealthy API is not fatal: the
	// synchronizers report Signal Lost until it recovers.
	probeCtx, probeCancel := context.WithTimeout(ctx, cfg.API.Timeout)
	health, err := apiClient.GetHealth(probeCtx)
	probeCancel()
	if err != nil {
		log.Warn("upstream health check failed", "error", err)
	} else {
		log.Info("upstream health",
			"status", health.Status,
			"game", health.Game,
			"database", health.Database,
			"last_data_update", health.LastDataUpdate,
		)
	}

	// Synchronizers
	rounds := poller.NewRoundSynchronizer(poller.RoundConfig{
		Interval:   cfg.Feed.Interval,
		PageSize:   cfg.Feed.PageSize,
		DecayDelay: cfg.Feed.DecayDelay,
		Timeout:    cfg.API.Timeout,
	}, apiClient, log)

	stats := poller.NewStatsSynchronizer(poller.StatsConfig{
		Interval:    cfg.Stats.Interval,
		RecentLimit: cfg.Stats.RecentLimit,
		Timeout:     cfg.API.Timeout,
	}, apiClient, log)

	// WebSocket hub
	hubCfg := feed.DefaultHubConfig()
	hubCfg.ClientBuffer = cfg.Server.ClientBuffer
	hubCfg.AllowedOrigins = cfg.Server.AllowedOrigins
	hub := feed.NewHub(hubCfg, cfg.Zones, log)
	rounds.Subscribe(hub)
	stats.Subscribe(hub)

	// HTTP server
	srv := server.New(server.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Game:           cfg.Game,
		Zones:          cfg.Zones,
		DefaultPeriod:  cfg.CrashStats.DefaultPeriod,
	}, server.Deps{
		Rounds:     rounds,
		Stats:      stats,
		Crash:      apiClient,
		Calculator: calc.NewCalculator(cfg.Game.RTP),
		Feed:       hub,
	}, log)

	if err := srv.Start(ctx); err != nil {
		log.Error("failed to start http server", "error", err)
		os.Exit(1)
	}
	if err := rounds.Start(ctx); err != nil {
		log.Error("failed to start round synchronizer", "error", err)
		os.Exit(1)
	}
	if err := stats.Start(ctx); err != nil {
		log.Error("failed to start stats synchronizer", "error", err)
		os.Exit(1)
	}

	log.Info("tracker running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port),
	)

	// Wait for shutdown
	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-srv.Err():
		log.Error("http server error", "error", err)
		exitCode = 1
		cancel()
	}

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := rounds.Stop(shutdownCtx); err != nil {
		log.Warn("round synchronizer stop", "error", err)
	}
	if err := stats.Stop(shutdownCtx); err != nil {
		log.Warn("stats synchronizer stop", "error", err)
	}
	hub.Close()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warn("http server stop", "error", err)
	}

	log.Info("tracker stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
