package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/trackr-io/trackr/internal/infrastructure/ratelimit"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
	"github.com/trackr-io/trackr/internal/interfaces/http/routes"
	"github.com/trackr-io/trackr/internal/shared/biztime"
	"github.com/trackr-io/trackr/internal/shared/utils"

	_ "github.com/trackr-io/trackr/docs"
)

const healthCheckTimeout = 2 * time.Second

// Router registers middleware and routes on the container's engine.
type Router struct {
	*Container
}

func NewRouter(c *Container) *Router {
	return &Router{Container: c}
}

// SetupRoutes configures all HTTP routes.
func (r *Router) SetupRoutes() {
	utils.RegisterValidators()

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log.Named("access")))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/health", r.health)
	if r.cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api")

	var authLimit gin.HandlerFunc
	if r.cfg.RateLimit.Enabled {
		authLimit = middleware.RateLimit(r.rateLimiter, "auth", ratelimit.Limits{
			PerMinute: r.cfg.RateLimit.PerMinute,
			PerHour:   r.cfg.RateLimit.PerHour,
		}, r.log.Named("ratelimit"))
	}

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:    r.hdlrs.userHandler,
		AuthMiddleware: r.authMiddleware,
		AuthLimit:      authLimit,
	})
	routes.SetupTeamRoutes(api, &routes.TeamRouteConfig{
		TeamHandler:    r.hdlrs.teamHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupProjectRoutes(api, &routes.ProjectRouteConfig{
		ProjectHandler: r.hdlrs.projectHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:  r.hdlrs.ticketHandler,
		CommentHandler: r.hdlrs.commentHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupActivityRoutes(api, &routes.ActivityRouteConfig{
		ActivityHandler: r.hdlrs.activityHandler,
		AuthMiddleware:  r.authMiddleware,
	})
	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler: r.hdlrs.notificationHandler,
		AuthMiddleware:      r.authMiddleware,
	})

	r.engine.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "route not found")
	})
}

// health reports 503 when the database or Redis is unreachable.
func (r *Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := r.Ping(ctx); err != nil {
		r.log.Warnw("health check failed", "error", err)
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"status": "ok",
		"time":   biztime.NowUTC(),
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
