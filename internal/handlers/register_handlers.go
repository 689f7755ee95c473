package handlers

import (
	"github.com/SscSPs/gl_backend/cmd/docs"
	portssvc "github.com/SscSPs/gl_backend/internal/core/ports/services"
	"github.com/SscSPs/gl_backend/internal/middleware"
	"github.com/SscSPs/gl_backend/internal/platform/analytics"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the optional cross-cutting pieces of the API group.
// A nil Limiter disables rate limiting; a nil Analytics disables event tracking.
type RouteDeps struct {
	Limiter   *limiter.Limiter
	Analytics *analytics.Client
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the company-scoped /api/v1 group and delegates to entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if deps.Limiter != nil {
		v1.Use(middleware.RateLimit(deps.Limiter))
	}

	company := v1.Group("/companies/:company_id", middleware.RequireCompanyAccess("company_id"))
	company.Use(middleware.PosthogMiddleware(deps.Analytics))

	registerAccountRoutes(company, service.Account)
	registerJournalRoutes(company, service.Journal, deps.Analytics)
	registerBatchRoutes(company, service.Batch, deps.Analytics)
	registerMappingRoutes(company, service.Mapping)
	registerBalanceRoutes(company, service.Balance)
	registerSettingsRoutes(company, service.Settings)
	registerImportRoutes(company, service.Import, deps.Analytics)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
