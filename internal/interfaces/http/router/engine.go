package router

import (
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/config"
	"github.com/cobranza/backend/internal/infrastructure/logger"
	"github.com/cobranza/backend/internal/interfaces/http/handler"
	"github.com/cobranza/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const healthPath = "/health"

// Handlers are the HTTP handlers mounted by the engine
type Handlers struct {
	Payments   *handler.PaymentHandler
	Cuts       *handler.CutHandler
	Collectors *handler.CollectorHandler
	Debtors    *handler.DebtorHandler
	Health     *handler.HealthHandler
}

// EngineConfig selects the optional parts of the middleware chain
type EngineConfig struct {
	Logger         *zap.Logger
	ServiceName    string
	TrustedProxies []string
	CORS           middleware.CORSConfig
	MaxBodySize    int64

	// Verifier is nil when authentication is disabled
	Verifier middleware.TokenVerifier

	IdempotencyStore shared.IdempotencyStore
	IdempotencyTTL   time.Duration

	Swagger config.SwaggerConfig

	Tracing   bool
	Profiling bool
	Meter     metric.Meter // nil disables HTTP metrics
}

// NewEngine builds the gin engine with the middleware chain and every route
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log, healthPath))
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	if cfg.Tracing {
		engine.Use(middleware.Tracing(cfg.ServiceName))
	}
	if cfg.Meter != nil {
		metrics, err := middleware.HTTPMetrics(cfg.Meter)
		if err != nil {
			return nil, err
		}
		engine.Use(metrics)
	}

	if h.Health != nil {
		engine.GET(healthPath, h.Health.Health)
	}
	engine.GET("/swagger/*any", middleware.SwaggerGuard(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := NewRouter(engine, WithAPIVersion("v1"))
	if cfg.Verifier != nil {
		r.Use(middleware.JWTAuth(middleware.DefaultJWTConfig(cfg.Verifier, log)))
	} else {
		log.Warn("Authentication disabled, every request acts as admin")
	}
	if cfg.Tracing {
		r.Use(middleware.SpanEnricher())
	}
	if cfg.Profiling {
		r.Use(middleware.Profiling(healthPath))
	}

	for _, g := range apiGroups(h, cfg) {
		r.Register(g)
	}
	r.Setup()
	return engine, nil
}

func apiGroups(h Handlers, cfg EngineConfig) []*DomainGroup {
	var groups []*DomainGroup

	if h.Payments != nil {
		payments := NewDomainGroup("payments", "/payments")
		register := []gin.HandlerFunc{h.Payments.Register}
		if cfg.IdempotencyStore != nil {
			register = append([]gin.HandlerFunc{middleware.IdempotencyKey(cfg.IdempotencyStore, cfg.IdempotencyTTL)}, register...)
		}
		payments.POST("", register...)
		payments.PUT("/:id", h.Payments.Amend)
		payments.DELETE("/:id", h.Payments.Cancel)
		groups = append(groups, payments)
	}

	if h.Cuts != nil {
		cuts := NewDomainGroup("cuts", "/cuts")
		cuts.DELETE("/:id", h.Cuts.DeleteCut)

		daily := cuts.Group("daily", "/daily")
		daily.POST("", h.Cuts.FinalizeDailyCut)
		daily.POST("/manual", h.Cuts.FinalizeManualDailyCut)
		daily.GET("/collector/:collectorId", h.Cuts.ListDailyCuts)
		daily.GET("/collector/:collectorId/export", h.Cuts.ExportDailyCuts)

		weekly := cuts.Group("weekly", "/weekly")
		weekly.POST("", h.Cuts.CreateWeeklyCut)
		weekly.GET("/window", h.Cuts.PreviewWeek)
		weekly.GET("/collector/:collectorId", h.Cuts.ListWeeklyCuts)
		weekly.GET("/:id/receipt", h.Cuts.WeeklyReceipt)

		precuts := NewDomainGroup("precuts", "/precuts")
		precuts.POST("", h.Cuts.CreatePreCut)
		precuts.GET("/collector/:collectorId/latest", h.Cuts.LatestPreCut)

		groups = append(groups, cuts, precuts)
	}

	if h.Collectors != nil {
		collectors := NewDomainGroup("collectors", "/collectors")
		collectors.POST("", h.Collectors.Create)
		collectors.GET("", h.Collectors.List)
		collectors.GET("/:id", h.Collectors.Get)
		groups = append(groups, collectors)
	}

	if h.Debtors != nil {
		debtors := NewDomainGroup("debtors", "/debtors")
		debtors.POST("", h.Debtors.Create)
		debtors.GET("/collector/:collectorId", h.Debtors.ListByCollector)
		debtors.GET("/:id", h.Debtors.Get)
		debtors.POST("/:id/renew", h.Debtors.Renew)
		debtors.GET("/:id/payments", h.Debtors.Payments)
		debtors.GET("/:id/contracts", h.Debtors.Contracts)
		groups = append(groups, debtors)
	}

	return groups
}
