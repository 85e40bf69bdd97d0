package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gasline/gasline-backend/internal/assignment"
	"github.com/gasline/gasline-backend/internal/cron"
	"github.com/gasline/gasline-backend/pkg/config"
	"github.com/gasline/gasline-backend/pkg/db"
	"github.com/gasline/gasline-backend/pkg/logger"
	"github.com/gasline/gasline-backend/pkg/metrics"
	"github.com/gasline/gasline-backend/pkg/migrate"
	"github.com/gasline/gasline-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	location, err := cfg.Scheduler.Location()
	if err != nil {
		logg.Error(ctx, "invalid scheduler timezone", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	cronMetrics := metrics.NewCronJobMetrics(registry)
	assignMetrics := metrics.NewAssignmentMetrics(registry)

	assignmentJob, err := assignment.NewJob(assignment.JobParams{
		Logger:   logg,
		Repo:     assignment.NewRepository(dbClient.DB()),
		Tx:       dbClient,
		Metrics:  assignMetrics,
		Location: location,
	})
	if err != nil {
		logg.Error(ctx, "failed to create assignment job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), 0)
	if err != nil {
		logg.Error(ctx, "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(assignmentJob),
		Lock:     lock,
		Metrics:  cronMetrics,
		RunHour:  cfg.Scheduler.RunHour,
		Location: location,
	})
	if err != nil {
		logg.Error(ctx, "failed to create cron service", err)
		os.Exit(1)
	}

	go serveOps(ctx, logg, cfg.Scheduler.MetricsPort, registry, dbClient)

	logg.Info(logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"timezone": cfg.Scheduler.TimeZone,
		"run_hour": cfg.Scheduler.RunHour,
	}), "starting cron worker")

	if err := service.Run(ctx); err != nil && ctx.Err() == nil {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "cron worker shut down gracefully")
}

// serveOps exposes liveness and metrics for the worker until the context
// ends.
func serveOps(ctx context.Context, logg *logger.Logger, port string, registry *prometheus.Registry, dbClient *db.Client) {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbClient.Ping(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "ops server stopped unexpectedly", err)
	}
}
