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
	ws "github.com/Vovarama1992/visus/internal/delivery/ws"
	"github.com/Vovarama1992/visus/internal/domain"
	"github.com/Vovarama1992/visus/internal/infra"
	"github.com/Vovarama1992/visus/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "visus-api:", err)
		os.Exit(1)
	}
}

func run() error {
	// CONFIG
	cfg, err := config.LoadAPI()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// LOGGER
	zl, syncLog, err := infra.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer syncLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// POSTGRES
	version, err := infra.Migrate(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "migrations applied",
		Fields:  map[string]any{"version": version},
	})

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	doctors := infra.NewPostgresDoctorRepo(pool)
	reviews := infra.NewPostgresReviewRepo(pool)
	services := infra.NewPostgresServiceRepo(pool)
	media := infra.NewPostgresMediaRepo(pool)
	callbacks := infra.NewPostgresCallbackRepo(pool)

	if cfg.SeedData {
		if err := domain.Seed(ctx, doctors, services, reviews); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		zl.Log(logger.LogEntry{Level: "info", Message: "seed data checked"})
	}

	// STORAGE
	storage, files, err := openStorage(cfg)
	if err != nil {
		return err
	}
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "storage ready",
		Fields:  map[string]any{"mode": cfg.StorageMode},
	})

	// SERVICES
	authService := domain.NewAuthService(cfg.AdminUsername, cfg.AdminPassword)
	contentService := domain.NewContentService(doctors, reviews, services, media, storage, zl)
	uploadService := domain.NewUploadService(storage, zl)
	callbackService := domain.NewCallbackService(callbacks, zl)

	// WS HUB
	hub := ws.NewHub(zl)

	// ROUTER
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(delivery.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, delivery.Handlers{
		Auth:     authService,
		Session:  delivery.NewAuthHandler(zl),
		Content:  delivery.NewContentHandler(contentService, zl),
		Upload:   delivery.NewUploadHandler(uploadService, zl),
		Callback: delivery.NewCallbackHandler(callbackService, zl),
		WS:       ws.Handler(hub, domain.CallbackRoom, zl),
		Media:    files,
		HealthFn: func(req *http.Request) error {
			if err := pool.Ping(req.Context()); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			if p, ok := storage.(pinger); ok {
				if err := p.Ping(req.Context()); err != nil {
					return fmt.Errorf("storage: %w", err)
				}
			}
			return nil
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "server started",
			Fields:  map[string]any{"port": cfg.Port},
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// BROADCAST LISTENER
	g.Go(func() error {
		return ws.Broadcast(gctx, hub, callbackService.Events(), zl)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		zl.Log(logger.LogEntry{Level: "info", Message: "shutting down"})
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server stopped with error",
			Error:   err,
		})
	}
	return err
}

// pinger is implemented by remote storages (minio).
type pinger interface {
	Ping(ctx context.Context) error
}

// openStorage returns the configured object storage and, for local mode,
// the file server that exposes it under /media.
func openStorage(cfg *config.API) (ports.ObjectStorage, http.Handler, error) {
	switch cfg.StorageMode {
	case config.StorageMinio:
		s, err := infra.NewMinioStorage(infra.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("minio storage: %w", err)
		}
		return s, nil, nil
	default:
		s, err := infra.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalPublicURL)
		if err != nil {
			return nil, nil, fmt.Errorf("local storage: %w", err)
		}
		return s, http.FileServer(http.Dir(s.Root())), nil
	}
}
