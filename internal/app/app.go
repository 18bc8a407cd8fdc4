package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	natsio "github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"github.com/delilar/avito-intenship-2025/internal/adapter/catalog"
	natsadapter "github.com/delilar/avito-intenship-2025/internal/adapter/nats"
	redisadapter "github.com/delilar/avito-intenship-2025/internal/adapter/redis"
	miniostorage "github.com/delilar/avito-intenship-2025/internal/adapter/storage/minio"
	"github.com/delilar/avito-intenship-2025/internal/app/config"
	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/delilar/avito-intenship-2025/internal/platform/tracer"
	httpport "github.com/delilar/avito-intenship-2025/internal/port/http"
	"github.com/delilar/avito-intenship-2025/internal/service"
)

const serviceName = "listing-editor"

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *http.Server
	redisClient *redis.Client
	natsConn    *natsio.Conn
	tp          *sdktrace.TracerProvider
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP port: %s", cfg.Env, cfg.HTTPServer.Port)

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracer.Init(ctx, serviceName, cfg.Tracing.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		appLogger.Info("Tracer initialized")
	}

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis client: %w", err)
	}
	appLogger.Info("Redis client initialized")

	natsConn, err := natsadapter.NewConnection(cfg.NATS)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize NATS connection: %w", err)
	}
	publisher, err := natsadapter.NewPublisher(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
	}
	appLogger.Info("NATS publisher initialized")

	imageStorage, err := miniostorage.NewStorage(ctx, cfg.Storage, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}
	appLogger.Info("Image storage initialized")

	draftRepo := redisadapter.NewDraftRepository(redisClient, cfg.Draft.TTL, appLogger)
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, appLogger)

	wizard := service.NewWizardService(draftRepo, catalogClient, publisher, imageStorage, appLogger)
	handler := httpport.NewEditorHandler(wizard, catalogClient, appLogger)
	router := httpport.NewRouter(handler, cfg.JWTSecret, appLogger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      server,
		redisClient: redisClient,
		natsConn:    natsConn,
		tp:          tp,
	}, nil
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// everything down gracefully.
func (a *App) Run() error {
	defer func() { _ = a.log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("HTTP server listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.ShutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.log.Errorf("HTTP server shutdown: %v", err)
		}

		if a.natsConn != nil {
			a.natsConn.Close()
		}
		if a.redisClient != nil {
			if err := a.redisClient.Close(); err != nil {
				a.log.Errorf("Error closing redis client: %v", err)
			}
		}
		if a.tp != nil {
			if err := a.tp.Shutdown(shutdownCtx); err != nil {
				a.log.Errorf("Error shutting down tracer provider: %v", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.log.Info("Application shut down successfully")
	return nil
}
