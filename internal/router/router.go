package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"docforensics/internal/config"
	"docforensics/internal/handler"
	"docforensics/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	analysisH *handler.AnalysisHandler,
	credentialH *handler.CredentialHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Analysis routes
	analyses := v1.Group("/analyses")
	analyses.POST("", analysisH.Create)
	analyses.GET("", analysisH.List)
	analyses.GET("/export", analysisH.Export)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.DELETE("/:id", analysisH.Delete)

	// Credential management - requires a deployer-minted bearer token
	credentials := v1.Group("/credentials")
	credentials.Use(middleware.Auth(cfg.Auth))
	credentials.PUT("/:provider", credentialH.Set)
	credentials.DELETE("/:provider", credentialH.Clear)

	return r
}
