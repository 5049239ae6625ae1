package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/telemetry"
)

// SetupRouter wires the gin engine: tracing, logging, metrics and rate
// limiting first, then the public account routes and the token-protected
// group.
func SetupRouter(container *Container, metrics *telemetry.AppMetrics, logger *otelzap.Logger, appName string) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(appName))
	router.Use(middleware.RequestLogging(logger))
	router.Use(corsMiddleware())

	if metrics != nil {
		router.Use(metrics.RequestMiddleware())
	}

	rateLimiter := middleware.NewRateLimiter(logger.Logger, metrics)
	router.Use(rateLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/")
	{
		public.POST("/users", container.AccountHandler.Register)
		public.POST("/users/login", container.AccountHandler.Login)
	}

	protected := router.Group("/")
	protected.Use(middleware.TokenAuth(container.UserRepo, container.TokenCache, metrics))
	{
		protected.GET("/users/current", container.AccountHandler.Current)
		protected.PATCH("/users/current", container.AccountHandler.Update)
		protected.DELETE("/users/logout", container.AccountHandler.Logout)

		protected.POST("/tasks", container.TaskHandler.Create)
		protected.GET("/tasks", container.TaskHandler.Search)
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
