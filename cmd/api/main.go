package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"enrollment-dashboard-service/internal/config"
	"enrollment-dashboard-service/internal/dashboard"
	enrollmentsHttp "enrollment-dashboard-service/internal/enrollments/adapters/http/fiber"
	"enrollment-dashboard-service/internal/enrollments/adapters/totvs"
	enrollmentsPorts "enrollment-dashboard-service/internal/enrollments/core/ports"
	enrollmentsUsecase "enrollment-dashboard-service/internal/enrollments/core/usecase"
	"enrollment-dashboard-service/internal/logger"
	queryRunsHttp "enrollment-dashboard-service/internal/queryruns/adapters/http/fiber"
	queryRunsRepoPg "enrollment-dashboard-service/internal/queryruns/adapters/postgres"
	queryRunsPorts "enrollment-dashboard-service/internal/queryruns/core/ports"
	queryRunsUsecase "enrollment-dashboard-service/internal/queryruns/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "enrollment-dashboard-service/docs"
)

const (
	appName      = "enrollment-dashboard"
	sessionIdle  = 30 * time.Minute
	sweepEvery   = 5 * time.Minute
	shutdownWait = 5 * time.Second
)

func main() {
	// Config
	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := logger.Init(logger.Options{
		AppName: appName,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		LogPath: cfg.LogFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	if cfg.InsecureSkipVerify {
		log.Warn("TLS certificate verification is disabled for the reporting endpoint")
	}

	// Query-run trail (optional)
	var (
		runRepo  queryRunsPorts.QueryRunRepositoryPort
		recorder enrollmentsPorts.QueryRunRecorderPort
	)
	if cfg.PostgresDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := queryRunsRepoPg.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			cancel()
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close()

		repo := queryRunsRepoPg.NewQueryRunRepository(queryRunsRepoPg.NewSQLDB(db))
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatal("failed to prepare query_runs table", zap.Error(err))
		}

		runRepo = repo
		recorder = queryRunsUsecase.NewRecordQueryRunUseCase(repo, cfg.QueryName)
		log.Info("query-run trail enabled")
	}

	// Remote query client
	client := totvs.NewClient(totvs.Config{
		Endpoint:           cfg.Endpoint,
		Username:           cfg.Username,
		Password:           cfg.Password,
		QueryName:          cfg.QueryName,
		QueryVersion:       cfg.QueryVersion,
		QueryScope:         cfg.QueryScope,
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		RequestRateLimit:   cfg.RequestRateLimit,
		RequestRateBurst:   cfg.RequestRateBurst,
	})
	log.Info("reporting endpoint configured", zap.String("url", client.URL()))

	// Usecases
	fetchUC := enrollmentsUsecase.NewFetchEnrollmentsUseCase(client, recorder, cfg.NoiseSubstring, log.Named("enrollments"))
	cachedFetch := enrollmentsUsecase.NewCachedFetchEnrollments(fetchUC, cfg.CacheTTL, time.Now)
	listRunsUC := queryRunsUsecase.NewListQueryRunsUseCase(runRepo)

	sessions := dashboard.NewSessionStore(cfg.RefreshInterval)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		// a cold cache waits on the remote call
		WriteTimeout: cfg.Timeout + 10*time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// dashboard
	dashboardHandler := dashboard.NewHandler(cachedFetch, sessions, cfg.PageTitle, log.Named("dashboard"))
	app.Get("/", dashboardHandler.Page)
	app.Get(dashboard.CSVPath, dashboardHandler.ExportCSV)

	// enrollments endpoints
	enrollmentsHandler := enrollmentsHttp.NewEnrollmentsHandler(cachedFetch)
	app.Get("/api/enrollments", enrollmentsHandler.GetEnrollments)
	app.Get("/healthz", enrollmentsHttp.Health)

	// diagnostics endpoints
	queryRunsHandler := queryRunsHttp.NewQueryRunsHandler(listRunsUC)
	app.Get("/api/diagnostics/query-runs", queryRunsHandler.ListQueryRuns)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Session sweeper
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepSessions(sweepCtx, sessions, log)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Error("fiber stopped", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", cfg.ListenAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("fiber shutdown error", zap.Error(err))
	}

	log.Info("server exiting")
}

func sweepSessions(ctx context.Context, sessions *dashboard.SessionStore, log *zap.Logger) {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := sessions.Sweep(now, sessionIdle); n > 0 {
				log.Debug("idle sessions dropped", zap.Int("removed", n), zap.Int("active", sessions.Count()))
			}
		}
	}
}
