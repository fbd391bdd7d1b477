package routes

import (
	"github.com/gin-gonic/gin"

	teamhandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/team"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
)

type TeamRouteConfig struct {
	TeamHandler    *teamhandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTeamRoutes(api *gin.RouterGroup, cfg *TeamRouteConfig) {
	teams := api.Group("/teams")
	teams.Use(cfg.AuthMiddleware.RequireAuth())
	{
		teams.POST("", cfg.TeamHandler.Create)
		teams.GET("", cfg.TeamHandler.List)
		teams.GET("/:id", cfg.TeamHandler.Get)

		teams.POST("/:id/members", cfg.TeamHandler.AddMember)
		teams.PUT("/:id/members/:userId", cfg.TeamHandler.UpdateMemberRole)
		teams.DELETE("/:id/members/:userId", cfg.TeamHandler.RemoveMember)
	}
}
