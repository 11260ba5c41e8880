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

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visus/internal/config"
	"github.com/Vovarama1992/visus/internal/delivery"
	"github.com/Vovarama1992/visus/internal/infra"
	"github.com/Vovarama1992/visus/internal/mediapath"
	"github.com/Vovarama1992/visus/internal/site"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "visus-site:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	zl, syncLog, err := infra.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer syncLog()

	bundle, err := site.NewBundle(cfg.SiteDefaultLang)
	if err != nil {
		return err
	}
	base := mediapath.DeriveBase(cfg.MediaURL, cfg.APIURL, cfg.PageOrigin)
	renderer, err := site.NewRenderer(bundle, mediapath.NewPublic(base))
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	client := site.NewClient(cfg.APIURL, cfg.HTTPTimeout, zl)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(delivery.MetricsMiddleware)
	r.Handle("/metrics", promhttp.Handler())
	site.NewHandler(client, bundle, renderer, zl).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.SitePort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "site started",
			Fields:  map[string]any{"port": cfg.SitePort, "api": cfg.APIURL, "media": base},
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
