package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/api"
	"github.com/pageza/recipe-finder/backend/internal/middleware"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

// Dependencies are the collaborators the router wires into handlers.
// DB, Redis and SearchLog are optional.
type Dependencies struct {
	Config    *config.Config
	Gateway   service.RecipeGateway
	SearchLog service.ISearchLogService
	DB        *gorm.DB
	Redis     *redis.Client
	Logger    *slog.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.ErrorHandler(logger),
		middleware.CORS(deps.Config.AllowedOrigins),
	)
	router.NoRoute(middleware.NotFound())

	router.GET("/health", api.NewHealthHandler(deps.DB, deps.Redis).Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewLimiter(deps.Redis, deps.Config.RateLimit)

	v1 := router.Group("/api")
	v1.Use(middleware.RateLimit(limiter, logger))
	{
		recipeHandler := api.NewRecipeHandler(deps.Gateway, api.RecipeHandlerOptions{
			SearchLog:         deps.SearchLog,
			StatusPassthrough: deps.Config.UpstreamStatusPassthrough,
			Logger:            logger,
		})
		recipeHandler.RegisterRoutes(v1)

		if deps.SearchLog != nil {
			api.NewSearchLogHandler(deps.SearchLog).RegisterRoutes(v1)
		}
	}

	return router
}
