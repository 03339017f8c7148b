package di

import (
	"github.com/redis/go-redis/v9"

	"github.com/Rawuh-in/console/internal/cache"
	"github.com/Rawuh-in/console/internal/handler"
	"github.com/Rawuh-in/console/internal/service"
	"github.com/Rawuh-in/console/internal/session"
	"github.com/Rawuh-in/console/internal/upstream"
	"github.com/Rawuh-in/console/pkg/config"
	"github.com/Rawuh-in/console/pkg/logger"
	"github.com/Rawuh-in/console/pkg/telemetry"
)

// Container holds all dependencies for the console service
type Container struct {
	// Infrastructure
	Session *session.MemoryStore
	Client  *upstream.Client
	Cache   *cache.QueryCache
	Redis   *redis.Client

	// Services
	AuthService  service.AuthService
	EventService service.EventService
	GuestService service.GuestService
	UserService  service.UserService

	// Handlers
	Handlers *handler.Handlers
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *logger.Logger, tel *telemetry.Telemetry, metrics *telemetry.Metrics) *Container {
	c := &Container{}

	c.Session = session.NewMemoryStore(cfg.Upstream.Token)

	c.Client = upstream.NewClient(upstream.ClientConfig{
		BaseURL: cfg.Upstream.BaseURL,
		Project: cfg.Upstream.Project,
		Timeout: cfg.Upstream.Timeout,
	}, c.Session, log, tel.Tracer(), metrics)

	var store cache.Store
	if cfg.Cache.Backend == "redis" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		store = cache.NewRedisStore(c.Redis, cfg.Cache.MaxAge)
	} else {
		store = cache.NewMemoryStore(cfg.Cache.MaxAge)
	}
	c.Cache = cache.New(store, cache.Config{FreshFor: cfg.Cache.FreshFor}, log, metrics)

	// Resource APIs
	authAPI := upstream.NewAuthAPI(c.Client)
	eventAPI := upstream.NewEventAPI(c.Client)
	guestAPI := upstream.NewGuestAPI(c.Client)
	userAPI := upstream.NewUserAPI(c.Client)

	// Services
	c.AuthService = service.NewAuthService(authAPI, c.Session, c.Cache)
	c.EventService = service.NewEventService(eventAPI, c.Cache)
	c.GuestService = service.NewGuestService(guestAPI, c.EventService, c.Cache)
	c.UserService = service.NewUserService(userAPI, c.Cache)

	// Handlers
	c.Handlers = &handler.Handlers{
		Health: handler.NewHealthHandler(cfg.App.Version),
		Auth:   handler.NewAuthHandler(c.AuthService),
		Events: handler.NewEventHandler(c.EventService),
		Guests: handler.NewGuestHandler(c.GuestService),
		Users:  handler.NewUserHandler(c.UserService),
	}

	return c
}

// Close releases held connections
func (c *Container) Close() error {
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}
