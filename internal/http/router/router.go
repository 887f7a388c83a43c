package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bidworks/backend/internal/config"
	"github.com/bidworks/backend/internal/http/handlers"
	"github.com/bidworks/backend/internal/http/middleware"
	"github.com/bidworks/backend/internal/service"
)

// SetupRouter собирает все маршруты приложения.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	bidHandler *handlers.BidHandler,
	walletHandler *handlers.WalletHandler,
	reviewHandler *handlers.ReviewHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Публичные маршруты.
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Get)
	api.GET("/users/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.ListByUser)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты.
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager, cfg.CookieName))
	{
		protected.GET("/me", authHandler.Me)
		protected.DELETE("/users/:id", middleware.UUIDValidator("id"), authHandler.DeleteUser)

		protected.POST("/projects", projectHandler.Create)
		protected.PUT("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Update)
		protected.DELETE("/projects/:id", middleware.UUIDValidator("id"), projectHandler.Delete)
		protected.POST("/projects/:id/deliverable", middleware.UUIDValidator("id"), projectHandler.SubmitDeliverable)
		protected.POST("/projects/:id/close", middleware.UUIDValidator("id"), projectHandler.Close)
		protected.POST("/projects/:id/complete", middleware.UUIDValidator("id"), projectHandler.ConfirmCompletion)

		protected.POST("/projects/:id/bids", middleware.UUIDValidator("id"), bidHandler.Place)
		protected.GET("/projects/:id/bids", middleware.UUIDValidator("id"), bidHandler.ListByProject)
		protected.GET("/bids/my", bidHandler.ListMy)
		protected.PUT("/bids/:id", middleware.UUIDValidator("id"), bidHandler.Update)
		protected.DELETE("/bids/:id", middleware.UUIDValidator("id"), bidHandler.Delete)
		protected.POST("/bids/:id/award", middleware.UUIDValidator("id"), bidHandler.Award)

		protected.POST("/projects/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.Create)

		protected.GET("/wallet", walletHandler.Balance)
		protected.POST("/wallet/deposit", walletHandler.Deposit)
		protected.POST("/wallet/pay", walletHandler.Pay)
		protected.GET("/wallet/transactions", walletHandler.Transactions)

		protected.POST("/media", mediaHandler.Upload)
		protected.GET("/media/:id", middleware.UUIDValidator("id"), mediaHandler.Download)
		protected.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.Delete)
	}

	return r
}
