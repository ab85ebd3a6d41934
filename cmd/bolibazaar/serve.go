package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	auditadapter "github.com/bolibazaar/bolibazaar/internal/adapters/audit"
	"github.com/bolibazaar/bolibazaar/internal/adapters/httpapi"
	"github.com/bolibazaar/bolibazaar/internal/adapters/memory"
	openaiadapter "github.com/bolibazaar/bolibazaar/internal/adapters/openai"
	"github.com/bolibazaar/bolibazaar/internal/adapters/oracle"
	redisadapter "github.com/bolibazaar/bolibazaar/internal/adapters/redis"
	"github.com/bolibazaar/bolibazaar/internal/config"
	"github.com/bolibazaar/bolibazaar/internal/logging"
	"github.com/bolibazaar/bolibazaar/pkg/broadcast"
	"github.com/bolibazaar/bolibazaar/pkg/dialogue"
	"github.com/bolibazaar/bolibazaar/pkg/language"
	"github.com/bolibazaar/bolibazaar/pkg/ports"
	"github.com/bolibazaar/bolibazaar/pkg/pricing"
	"github.com/bolibazaar/bolibazaar/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the dialogue engine and broadcast simulator behind a JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := logging.New(parseLevel(cfg.LogLevel), cfg.LogFormat)

		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for serve mode")
		}

		registry, err := language.NewRegistry()
		if err != nil {
			return err
		}

		// Session persistence: Redis when configured, in-memory otherwise.
		var store ports.SessionStore
		var managerOpts []session.Option
		if cfg.RedisAddr != "" {
			client := backend.NewClient(&backend.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			store = redisadapter.NewFromClient(client, redisadapter.WithTTL(cfg.SessionTTL))
			managerOpts = append(managerOpts,
				session.WithLocker(redisadapter.NewLocker(client, "bolibazaar:")))
			logger.Info("using redis session store", "addr", cfg.RedisAddr)
		} else {
			store = memory.NewSessionStore()
			logger.Info("using in-memory session store")
		}
		managerOpts = append(managerOpts, session.WithLogger(logger))
		sessions := session.NewManager(store, managerOpts...)

		// Market oracle with static fallback.
		var inner ports.PriceOracle
		if cfg.OracleBaseURL != "" {
			inner = oracle.NewHTTPClient(cfg.OracleBaseURL, cfg.OracleTimeout)
		}
		prices := oracle.NewFallback(inner, logger)

		extractor := openaiadapter.New(
			cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, registry,
			openaiadapter.WithLogger(logger),
		)

		engine := dialogue.NewEngine(registry, extractor,
			dialogue.WithLogger(logger),
			dialogue.WithOracle(prices),
			dialogue.WithDefaultCurrency(cfg.DefaultCurrency),
			dialogue.WithExtractionRetry(cfg.ExtractionRetries, cfg.ExtractionBackoff),
		)

		sink, err := auditadapter.NewFileSink(cfg.AuditLogPath)
		if err != nil {
			return err
		}
		defer sink.Close()

		learner := pricing.NewLearner(pricing.Config{
			Alpha:    cfg.SmoothingAlpha,
			MinRatio: cfg.MinBidRatio,
			MaxRatio: cfg.MaxBidRatio,
		})

		simCfg := broadcast.DefaultConfig()
		simCfg.NetworkErrorRate = cfg.ChaosNetworkError
		simCfg.GatewayTimeoutRate = cfg.ChaosGatewayTimeout
		simCfg.NoSellersRate = cfg.ChaosNoSellers
		simCfg.RateLimitedRate = cfg.ChaosRateLimited
		simCfg.WarmupThreshold = cfg.WarmupThreshold
		simCfg.WarmupNoise = cfg.WarmupNoise
		simCfg.MinRatio = cfg.MinBidRatio
		simCfg.MaxRatio = cfg.MaxBidRatio

		simulator, err := broadcast.NewSimulator(simCfg, learner, prices, sink,
			broadcast.WithLogger(logger),
			broadcast.WithMetrics(broadcast.NewMetrics(prometheus.DefaultRegisterer)),
		)
		if err != nil {
			return err
		}

		server := httpapi.NewServer(engine, sessions, memory.NewListingStore(), simulator,
			httpapi.WithLogger(logger),
			httpapi.WithLearner(learner),
			httpapi.WithMetrics(prometheus.DefaultRegisterer),
		)

		return run(cfg, logger, server.Handler())
	},
}

// run starts the HTTP listener and blocks until a signal or server error.
func run(cfg *config.Config, logger *slog.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		logger.Info("server stopped")
		return nil
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
