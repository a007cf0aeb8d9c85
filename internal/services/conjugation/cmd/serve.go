package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/middleware"
	"github.com/gamma-omg/lexi-conjugation/internal/pkg/router"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/catalog"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/config"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/lookup"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/rest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve conjugation tables over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

func run(ctx context.Context) error {
	slog.Info("starting conjugation service")

	cfg := config.FromEnv()
	policy, err := conjugation.ParsePolicy(cfg.Lookup.DedupPolicy)
	if err != nil {
		return fmt.Errorf("dedup policy: %w", err)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := lookup.NewService(st,
		lookup.WithPolicy(policy),
		lookup.WithTimeout(cfg.Lookup.Timeout),
		lookup.WithMetrics(lookup.NewMetrics(reg)),
	)

	r := router.New()
	r.Use(middleware.Recover(), middleware.RequestID(), middleware.Log())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := st.Ping(pingCtx); err != nil {
			slog.Warn("store is not ready", "driver", st.Dialect(), "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	api := r.SubRouter("/api/v1")
	api.Handle("/", rest.NewAPI(svc, catalog.NewCatalog(st), []byte(cfg.AuthSecret)))

	httpSrv := &http.Server{
		Addr:         cfg.Http.ListenAddr,
		IdleTimeout:  cfg.Http.IdleTimeout,
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
		Handler:      withCORS(r, cfg.Http.AllowedOrigins),
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("HTTP server starting", "addr", httpSrv.Addr, "store", st.Dialect(), "dedup_policy", policy.String())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Http.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}).Handler(h)
}
