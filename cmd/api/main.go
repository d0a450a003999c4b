package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventica/registration-api/internal/config"
	"github.com/eventica/registration-api/internal/db"
	httpx "github.com/eventica/registration-api/internal/http"
	"github.com/eventica/registration-api/internal/http/handlers"
	"github.com/eventica/registration-api/internal/observability"
	"github.com/eventica/registration-api/internal/redisclient"
	"github.com/eventica/registration-api/internal/repo/memory"
	"github.com/eventica/registration-api/internal/repo/postgres"
	redisrepo "github.com/eventica/registration-api/internal/repo/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)

	// tracing is opt-in via OTEL_EXPORTER_OTLP_ENDPOINT
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), "eventica-registration", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	promReg := prometheus.NewRegistry()
	prom := observability.NewProm(promReg)

	store, ping, closeStore, err := buildStore(cfg, prom)

	if err != nil {
		log.Error("store init failed", "backend", cfg.StoreBackend, "err", err)
		os.Exit(1)
	}

	defer closeStore()

	router := httpx.NewRouter(httpx.RouterDeps{
		Log:          log,
		Store:        store,
		Ping:         ping,
		Prom:         prom,
		Metrics:      promReg,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreBackend)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// buildStore wires the configured backend and returns the store, its
// readiness ping and a close func.
func buildStore(cfg config.Config, prom *observability.Prom) (handlers.RegistrationStore, func(ctx context.Context) error, func(), error) {
	switch cfg.StoreBackend {
	case "postgres":
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			return nil, nil, nil, err
		}

		repo := postgres.NewRegistrationsRepo(pool, prom)

		ctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()

		err = repo.EnsureSchema(ctx)

		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}

		return repo, pool.Ping, pool.Close, nil

	case "memory":
		return memory.NewRegistrationsRepo(), nil, func() {}, nil

	default: // redis
		client := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		repo := redisrepo.NewRegistrationsRepo(client.Raw(), prom)

		return repo, client.Ping, func() { _ = client.Close() }, nil
	}
}
