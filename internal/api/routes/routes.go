package routes

import (
	"github.com/fakenewsverificaton/verificaton-api/internal/api/handlers"
	"github.com/fakenewsverificaton/verificaton-api/internal/captcha"
	"github.com/fakenewsverificaton/verificaton-api/internal/config"
	middlewares "github.com/fakenewsverificaton/verificaton-api/internal/middleware"
	"github.com/fakenewsverificaton/verificaton-api/internal/observability"
	"github.com/fakenewsverificaton/verificaton-api/internal/ratelimit"
	"github.com/fakenewsverificaton/verificaton-api/internal/storage"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SuggestKeyPrefix separa a cota de sugestões da cota de análises
const SuggestKeyPrefix = "suggest:"

// Dependencies são os componentes montados em cmd/api
type Dependencies struct {
	Analyzer handlers.Analyzer
	Store    storage.Store
	Limiter  ratelimit.Limiter
	Verifier captcha.Verifier
	Metrics  *observability.Metrics
}

func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORS(cfg.CORSAllowedOrigins))
	r.Use(middlewares.RequestTiming())
	r.Use(middlewares.RequestMetrics(deps.Metrics))

	analyzeHandler := handlers.NewAnalyzeHandler(deps.Analyzer, deps.Verifier, deps.Metrics, cfg.Pipeline.MaxContentBytes)
	resultsHandler := handlers.NewResultsHandler(deps.Store)
	trendsHandler := handlers.NewTrendsHandler(deps.Store, deps.Verifier, deps.Metrics)
	healthHandler := handlers.NewHealthHandler(deps.Store, cfg.GeminiAPIKey != "")

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", middlewares.RateLimit(deps.Limiter, "", deps.Metrics), analyzeHandler.Analyze)
		api.POST("/alerts/suggest", middlewares.RateLimit(deps.Limiter, SuggestKeyPrefix, deps.Metrics), trendsHandler.Suggest)
		api.GET("/results/:id", resultsHandler.GetResult)
		api.GET("/trends", trendsHandler.List)
	}

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)

	if cfg.MetricsEnabled && deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
