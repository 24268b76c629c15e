package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wist/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, auth TokenAuthenticator, logger *slog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(LoggerMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(HeaderSanitizationMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	router.Use(TimeoutMiddleware(cfg.Server.RequestTimeout))

	router.GET("/", handler.Root)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", handler.Signup)
			authRoutes.POST("/login", handler.Login)
			authRoutes.GET("/me", AuthMiddleware(auth), handler.Me)
		}

		protected := v1.Group("", AuthMiddleware(auth))
		{
			protected.POST("/scrape", handler.ScrapeProduct)

			wishlists := protected.Group("/wishlists")
			{
				wishlists.GET("", handler.ListWishlists)
				wishlists.POST("", handler.CreateWishlist)
				wishlists.GET("/:wishlistId", handler.GetWishlist)
				wishlists.PUT("/:wishlistId", handler.UpdateWishlist)
				wishlists.DELETE("/:wishlistId", handler.DeleteWishlist)

				items := wishlists.Group("/:wishlistId/items")
				{
					items.GET("", handler.ListItems)
					items.POST("", handler.AddItem)
					items.PUT("/:itemId", handler.UpdateItem)
					items.DELETE("/:itemId", handler.DeleteItem)
				}
			}
		}
	}

	return router
}
