package routes

import (
	"github.com/gin-gonic/gin"

	projecthandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/project"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
)

type ProjectRouteConfig struct {
	ProjectHandler *projecthandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupProjectRoutes(api *gin.RouterGroup, cfg *ProjectRouteConfig) {
	projects := api.Group("/projects")
	projects.Use(cfg.AuthMiddleware.RequireAuth())
	{
		projects.POST("", cfg.ProjectHandler.Create)
		projects.GET("", cfg.ProjectHandler.List)

		projects.GET("/:id", cfg.ProjectHandler.Get)
		projects.PUT("/:id", cfg.ProjectHandler.Update)
		projects.DELETE("/:id", cfg.ProjectHandler.Delete)

		projects.POST("/:id/members", cfg.ProjectHandler.AddMember)
		projects.PUT("/:id/members/:userId", cfg.ProjectHandler.UpdateMemberRole)
		projects.DELETE("/:id/members/:userId", cfg.ProjectHandler.RemoveMember)

		// Registries replace the whole list of entries for one kind.
		projects.PUT("/:id/ticket-types", cfg.ProjectHandler.UpdateTicketTypes)
		projects.PUT("/:id/ticket-statuses", cfg.ProjectHandler.UpdateTicketStatuses)
		projects.PUT("/:id/ticket-priorities", cfg.ProjectHandler.UpdateTicketPriorities)
	}
}
