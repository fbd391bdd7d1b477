package routes

import (
	"github.com/gin-gonic/gin"

	userhandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/user"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
	"github.com/trackr-io/trackr/internal/shared/authorization"
)

// UserRouteConfig holds dependencies for account and user routes.
type UserRouteConfig struct {
	UserHandler    *userhandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
	// AuthLimit throttles the unauthenticated endpoints. nil disables it.
	AuthLimit gin.HandlerFunc
}

func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")

	public := users.Group("")
	if cfg.AuthLimit != nil {
		public.Use(cfg.AuthLimit)
	}
	{
		public.POST("", cfg.UserHandler.Register)
		public.POST("/login", cfg.UserHandler.Login)
		public.POST("/refresh", cfg.UserHandler.Refresh)
	}

	authed := users.Group("")
	authed.Use(cfg.AuthMiddleware.RequireAuth())
	{
		authed.GET("/profile", cfg.UserHandler.GetProfile)
		authed.PUT("/profile", cfg.UserHandler.UpdateProfile)
		authed.GET("/search", cfg.UserHandler.Search)

		authed.PUT("/:id/role", authorization.RequireAdmin(), cfg.UserHandler.ChangeRole)
	}
}
