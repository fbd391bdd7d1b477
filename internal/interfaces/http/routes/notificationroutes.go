package routes

import (
	"github.com/gin-gonic/gin"

	notificationhandlers "github.com/trackr-io/trackr/internal/interfaces/http/handlers/notification"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *notificationhandlers.Handler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupNotificationRoutes(api *gin.RouterGroup, cfg *NotificationRouteConfig) {
	notifications := api.Group("/notifications")
	notifications.Use(cfg.AuthMiddleware.RequireAuth())
	{
		notifications.GET("", cfg.NotificationHandler.List)
		notifications.DELETE("", cfg.NotificationHandler.DeleteAll)

		notifications.GET("/unread/count", cfg.NotificationHandler.UnreadCount)
		notifications.PUT("/read-all", cfg.NotificationHandler.MarkAllRead)

		notifications.PUT("/:id/read", cfg.NotificationHandler.MarkRead)
		notifications.DELETE("/:id", cfg.NotificationHandler.Delete)
	}
}
