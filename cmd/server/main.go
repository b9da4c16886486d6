package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcollection "github.com/cobranza/backend/internal/application/collection"
	"github.com/cobranza/backend/internal/application/ledger"
	appreconciliation "github.com/cobranza/backend/internal/application/reconciliation"
	"github.com/cobranza/backend/internal/domain/reconciliation"
	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/auth"
	"github.com/cobranza/backend/internal/infrastructure/cache"
	"github.com/cobranza/backend/internal/infrastructure/config"
	"github.com/cobranza/backend/internal/infrastructure/event"
	"github.com/cobranza/backend/internal/infrastructure/export"
	"github.com/cobranza/backend/internal/infrastructure/folio"
	"github.com/cobranza/backend/internal/infrastructure/logger"
	"github.com/cobranza/backend/internal/infrastructure/persistence"
	"github.com/cobranza/backend/internal/infrastructure/printing"
	"github.com/cobranza/backend/internal/infrastructure/scheduler"
	"github.com/cobranza/backend/internal/infrastructure/storage"
	"github.com/cobranza/backend/internal/infrastructure/telemetry"
	"github.com/cobranza/backend/internal/interfaces/http/handler"
	"github.com/cobranza/backend/internal/interfaces/http/middleware"
	"github.com/cobranza/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/cobranza/backend/docs"
)

//	@title			Cobranza API
//	@version		1.0
//	@description	Debt collection ledger and daily/weekly cut reconciliation

//	@contact.name	API Support

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting cobranza backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tp.Shutdown)

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdown(log, "meter provider", mp.Shutdown)

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdown(log, "logger provider", lp.Shutdown)
	minLevel, err := zapcore.ParseLevel(cfg.Telemetry.LogsMinLevel)
	if err != nil {
		minLevel = zapcore.InfoLevel
	}
	log = lp.Bridge(log, cfg.Telemetry.ServiceName, minLevel)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.PyroscopeServer,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.PyroscopeUser,
		BasicAuthPassword: cfg.Telemetry.PyroscopePassword,
		ProfileMemory:     cfg.Telemetry.ProfileMemory,
		ProfileGoroutines: cfg.Telemetry.ProfileGoroutines,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if cfg.Telemetry.ProfilingEnabled {
		tp.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Locks and idempotency
	backends, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Build(ctx)
	if err != nil {
		log.Fatal("Failed to initialize coordination backends", zap.Error(err))
	}
	defer func() {
		if err := backends.Close(); err != nil {
			log.Error("Error closing coordination backends", zap.Error(err))
		}
	}()

	// Calendar
	loc, err := cfg.Reconciliation.Location()
	if err != nil {
		log.Fatal("Invalid reconciliation timezone", zap.Error(err))
	}
	weekStart, err := reconciliation.ParseWeekday(cfg.Reconciliation.WeekStart)
	if err != nil {
		log.Fatal("Invalid week start", zap.Error(err))
	}
	clock := shared.SystemClock{}
	resolver := reconciliation.NewResolver(clock, loc, weekStart)

	folios, err := folio.NewGenerator(cfg.App.NodeID)
	if err != nil {
		log.Fatal("Failed to initialize folio generator", zap.Error(err))
	}

	// Events
	eventBus := event.NewInMemoryEventBus(log)
	collectionMetrics, err := telemetry.NewCollectionMetrics(mp.Meter("cobranza"))
	if err != nil {
		log.Fatal("Failed to register collection metrics", zap.Error(err))
	}
	eventBus.Subscribe(collectionMetrics)

	workbooks := export.NewWorkbookRenderer(loc)
	if cfg.Storage.Enabled {
		objects, err := storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure archive bucket", zap.Error(err))
		}
		archiver := storage.NewCutArchiver(objects, workbooks, cfg.Storage.Prefix, export.XLSXContentType, ".xlsx", log)
		eventBus.Subscribe(event.NewIdempotentHandler(archiver, backends.Idempotency, shared.IdempotencyConfig{
			Enabled: true,
			TTL:     cfg.Idempotency.TTL,
		}, log))
		log.Info("Cut archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer shutdown(log, "event bus", eventBus.Stop)

	// Repositories and services
	collectorRepo := persistence.NewGormCollectorRepository(db.DB)
	debtorRepo := persistence.NewGormDebtorRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	ledgerScope := persistence.NewLedgerTransactionScope(db.DB)

	ledgerService := ledger.NewService(ledgerScope, collectorRepo, debtorRepo, paymentRepo,
		backends.Locker, eventBus, clock, log)
	collectorService := appcollection.NewCollectorService(collectorRepo, log)
	debtorService := appcollection.NewDebtorService(ledgerScope, collectorRepo, debtorRepo, contractRepo,
		backends.Locker, eventBus, clock, log)
	cutService := appreconciliation.NewService(appreconciliation.Dependencies{
		Resolver:   resolver,
		TxScope:    persistence.NewCutTransactionScope(db.DB),
		Collectors: collectorRepo,
		Debtors:    debtorRepo,
		Payments:   paymentRepo,
		Cuts:       persistence.NewGormCutRepository(db.DB),
		WeeklyCuts: persistence.NewGormWeeklyCutRepository(db.DB),
		PreCuts:    persistence.NewGormPreCutRepository(db.DB),
		Folios:     folios,
		Locker:     backends.Locker,
		Publisher:  eventBus,
		Metrics:    collectionMetrics,
		Logger:     log,
	})

	// Automatic daily cut
	if cfg.Scheduler.Enabled {
		autoCfg, err := scheduler.ParseAutoCutConfig(cfg.Scheduler.DailyCutTime, loc, cfg.Scheduler.JobTimeout)
		if err != nil {
			log.Fatal("Invalid scheduler configuration", zap.Error(err))
		}
		trigger := scheduler.NewAutoCutTrigger(autoCfg, cutService, backends.Idempotency, log)
		if err := trigger.Start(ctx); err != nil {
			log.Fatal("Failed to start daily cut scheduler", zap.Error(err))
		}
		defer shutdown(log, "daily cut scheduler", trigger.Stop)
		log.Info("Daily cut scheduler started", zap.String("at", cfg.Scheduler.DailyCutTime))
	}

	// HTTP
	cutOpts := []handler.CutHandlerOption{handler.WithExporter(workbooks)}
	if cfg.Printing.Enabled {
		chrome := printing.NewChromedpRenderer(printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.ChromeRemoteURL,
			NoSandbox:      os.Geteuid() == 0,
			Logger:         log,
		})
		defer func() {
			if err := chrome.Close(); err != nil {
				log.Error("Error closing chrome renderer", zap.Error(err))
			}
		}()
		cutOpts = append(cutOpts, handler.WithReceiptPrinter(printing.NewReceiptPrinter(chrome, loc)))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	healthChecks := map[string]handler.HealthCheck{
		"database": func(context.Context) error { return db.Ping() },
	}
	if backends.Distributed() {
		healthChecks["redis"] = func(ctx context.Context) error { return backends.Client.Ping(ctx).Err() }
	}

	engineCfg := router.EngineConfig{
		Logger:           log,
		ServiceName:      cfg.Telemetry.ServiceName,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
		CORS:             corsConfig(cfg.HTTP),
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		IdempotencyStore: backends.Idempotency,
		IdempotencyTTL:   cfg.Idempotency.TTL,
		Swagger:          cfg.Swagger,
		Tracing:          tp.IsEnabled(),
		Profiling:        cfg.Telemetry.ProfilingEnabled,
	}
	if cfg.Auth.Enabled {
		engineCfg.Verifier = auth.NewVerifier(cfg.Auth)
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled {
		engineCfg.Meter = mp.Meter("cobranza/http")
	}

	engine, err := router.NewEngine(engineCfg, router.Handlers{
		Payments:   handler.NewPaymentHandler(ledgerService, loc),
		Cuts:       handler.NewCutHandler(cutService, collectorService, loc, cutOpts...),
		Collectors: handler.NewCollectorHandler(collectorService),
		Debtors:    handler.NewDebtorHandler(debtorService, ledgerService, loc),
		Health:     handler.NewHealthHandler(healthChecks),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

// shutdown runs a component's stop function with its own deadline
func shutdown(log *zap.Logger, name string, stop func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := stop(ctx); err != nil {
		log.Error("Error stopping "+name, zap.Error(err))
	}
}
