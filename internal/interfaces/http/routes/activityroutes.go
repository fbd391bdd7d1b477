package routes

import (
	"github.com/gin-gonic/gin"

	activityhandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/activity"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
)

type ActivityRouteConfig struct {
	ActivityHandler *activityhandlers.Handler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupActivityRoutes(api *gin.RouterGroup, cfg *ActivityRouteConfig) {
	activities := api.Group("/activities")
	activities.Use(cfg.AuthMiddleware.RequireAuth())
	{
		activities.GET("/user/:userId", cfg.ActivityHandler.ListUser)
		activities.GET("/project/:projectId", cfg.ActivityHandler.ListProject)
		activities.GET("/team/:teamId", cfg.ActivityHandler.ListTeam)
		activities.GET("/entity/:entityType/:entityId", cfg.ActivityHandler.ListEntity)
	}
}
