package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"reviewd/internal/api"
	"reviewd/internal/api/handler/v1handler"
	"reviewd/internal/checker"
	"reviewd/internal/config"
	"reviewd/internal/reporter"
	"reviewd/internal/worker"
	"reviewd/pkg/adscache"
	"reviewd/pkg/logger"
	"reviewd/pkg/metrics"
	"reviewd/pkg/prefs"
	"reviewd/pkg/reviews/trustapi"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// getRedis creates a Redis client when an address is configured and verifies
// connectivity. Returns nil when Redis is disabled.
func getRedis(ctx context.Context, cfg *config.Config) (*redis.Client, func()) {
	if cfg.Redis.Addr == "" {
		logger.Info(ctx, "redis not configured, using in-memory ads cache and preferences")

		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal(ctx, "could not connect to redis", zap.Error(err))
	}

	return client, func() {
		logger.Info(ctx, "closing redis client...")
		if err := client.Close(); err != nil {
			logger.Warn(ctx, "could not close redis client", zap.Error(err))
		}
	}
}

func setupServer(ctx context.Context,
	cfg *config.Config,
	deps api.Deps,
	mp metric.MeterProvider) func(ctx context.Context) {
	server, err := api.NewServer(deps, mp, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			redisClient, closeRedis := getRedis(ctx, cfg)
			defer closeRedis()

			var adsCache adscache.Cache = adscache.NewMemory()
			var prefStore prefs.Store = prefs.NewMemory()
			if redisClient != nil {
				adsCache = adscache.NewRedis(redisClient, cfg.Checker.AdsCacheTTL)
				prefStore = prefs.NewRedis(redisClient)
			}

			mp, err := api.NewMeterProvider()
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			checkerMetrics, err := metrics.NewChecker(mp)
			if err != nil {
				logger.Fatal(ctx, "could not create checker metrics", zap.Error(err))
			}

			client := trustapi.New(&http.Client{Timeout: cfg.Upstream.Timeout},
				cfg.Upstream.BaseURL,
				cfg.Upstream.APIKey)

			rep := reporter.New(strg, client, checkerMetrics)

			riverClient, err := worker.Start(ctx, strg.Pool, rep)
			if err != nil {
				logger.Fatal(ctx, "could not start river workers", zap.Error(err))
			}

			hub := checker.NewHub(checker.Deps{
				Client:   client,
				Ads:      adsCache,
				Prefs:    prefStore,
				Reporter: rep,
				Metrics:  checkerMetrics,
			}, checker.NewOptions(cfg))

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Deps: v1handler.Deps{Hub: hub, Reporter: rep},
			}, mp)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			hub.CloseAll()

			logger.Info(ctx, "stopping river workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop river workers", zap.Error(err))
			}
		},
	}

	return cmd
}
