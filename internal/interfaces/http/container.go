package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appactivity "github.com/trackr-io/trackr/internal/application/activity"
	appnotification "github.com/trackr-io/trackr/internal/application/notification"
	"github.com/trackr-io/trackr/internal/domain/ticket"
	"github.com/trackr-io/trackr/internal/infrastructure/auth"
	"github.com/trackr-io/trackr/internal/infrastructure/cache"
	"github.com/trackr-io/trackr/internal/infrastructure/config"
	"github.com/trackr-io/trackr/internal/infrastructure/email"
	"github.com/trackr-io/trackr/internal/infrastructure/permission"
	"github.com/trackr-io/trackr/internal/infrastructure/ratelimit"
	"github.com/trackr-io/trackr/internal/interfaces/http/middleware"
	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/db"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/services/markdown"
)

const redisDialTimeout = 5 * time.Second

// Container holds the infrastructure, repositories, use cases and handlers and
// wires them together.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware *middleware.AuthMiddleware
	rateLimiter    ratelimit.RateLimiter

	jwtSvc     *auth.JWTService
	hasher     *auth.BcryptPasswordHasher
	enforcer   *permission.Enforcer
	txManager  *db.TransactionManager
	renderer   markdown.Renderer
	numberer   ticket.NumberGenerator
	recorder   *appactivity.Recorder
	dispatcher *appnotification.Dispatcher
}

// NewContainer builds every component. db must already be migrated.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initUseCases()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	c.repos = newRepositories(c.db)

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.AccessExpMinutes, c.cfg.Auth.JWT.RefreshExpDays)
	c.hasher = auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	c.txManager = db.NewTransactionManager(c.db)
	c.renderer = markdown.NewRenderer()
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log.Named("auth"))

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.EnsureDefaultPolicies(); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}
	c.enforcer = enforcer

	if c.cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(c.cfg.Redis, redisDialTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.redis = client
	}

	c.rateLimiter = ratelimit.Unlimited{}
	if c.redis != nil && c.cfg.RateLimit.Enabled {
		c.rateLimiter = ratelimit.NewRedisRateLimiter(c.redis)
	} else if c.cfg.RateLimit.Enabled {
		c.log.Warnw("rate limiting needs redis, requests will not be throttled")
	}

	var counter ticket.SequenceCounter = c.repos.sequenceCounter
	if c.cfg.Ticket.Numbering.Backend == constants.NumberingBackendRedis {
		if c.redis == nil {
			return fmt.Errorf("ticket numbering backend redis requires redis.enabled")
		}
		counter = cache.NewRedisSequenceCounter(c.redis)
	}
	numberer, err := ticket.NewNumberer(c.cfg.Ticket.Numbering.Scheme, c.cfg.Ticket.Numbering.GlobalPrefix, counter)
	if err != nil {
		return err
	}
	c.numberer = numberer

	c.recorder = appactivity.NewRecorder(c.repos.activityRepo, c.log.Named("activity"))
	c.dispatcher = appnotification.NewDispatcher(c.repos.notificationRepo, c.log.Named("notification"))
	if c.cfg.Email.Enabled {
		sink := email.NewSMTPSink(c.cfg.Email, c.cfg.Server.BaseURL, c.repos.userRepo, c.renderer)
		c.dispatcher.WithEmail(sink)
	}

	c.log.Infow("infrastructure initialized",
		"database", c.cfg.Database.Driver,
		"redis", c.redis != nil,
		"numbering_scheme", c.cfg.Ticket.Numbering.Scheme,
		"numbering_backend", c.cfg.Ticket.Numbering.Backend,
		"email", c.cfg.Email.Enabled)
	return nil
}

// Engine returns the gin engine routes are registered on.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Ping checks the database and, when enabled, Redis.
func (c *Container) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.redis != nil {
		if err := c.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Shutdown releases connections owned by the container. The database handle
// belongs to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
