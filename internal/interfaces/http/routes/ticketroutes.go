package routes

import (
	"github.com/gin-gonic/gin"

	commenthandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/comment"
	tickethandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/ticket"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	CommentHandler *commenthandlers.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		tickets.POST("", cfg.TicketHandler.CreateTicket)
		tickets.GET("", cfg.TicketHandler.ListTickets)

		tickets.GET("/:id", cfg.TicketHandler.GetTicket)
		tickets.PUT("/:id", cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id", cfg.TicketHandler.DeleteTicket)

		tickets.PUT("/:id/assign", cfg.TicketHandler.AssignTicket)
		tickets.PUT("/:id/status", cfg.TicketHandler.UpdateStatus)
		tickets.GET("/:id/history", cfg.TicketHandler.GetHistory)

		tickets.POST("/:id/watchers", cfg.TicketHandler.AddWatcher)
		tickets.DELETE("/:id/watchers/:userId", cfg.TicketHandler.RemoveWatcher)

		tickets.POST("/:id/attachments", cfg.TicketHandler.AddAttachment)
		tickets.DELETE("/:id/attachments/:attachmentId", cfg.TicketHandler.RemoveAttachment)

		tickets.GET("/:id/comments", cfg.CommentHandler.List)
		tickets.POST("/:id/comments", cfg.CommentHandler.Create)
	}

	comments := api.Group("/comments")
	comments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		comments.PUT("/:id", cfg.CommentHandler.Edit)
		comments.DELETE("/:id", cfg.CommentHandler.Delete)
		comments.POST("/:id/attachments", cfg.CommentHandler.AddAttachment)
		comments.DELETE("/:id/attachments/:attachmentId", cfg.CommentHandler.RemoveAttachment)
	}
}
