package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	database "github.com/FACorreiaa/go-picnic-planner/app/db"
	"github.com/FACorreiaa/go-picnic-planner/config"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/city"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/picnic"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/user"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/weather"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Pool          *pgxpool.Pool
	CityHandler   *city.Handler
	UserHandler   *user.HandlerImpl
	PicnicHandler *picnic.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, connectionURL string, logger *slog.Logger) (*Container, error) {
	pool, err := database.Init(ctx, connectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	lookup := NewLookup(cfg, logger)

	cityRepo := city.NewCityRepository(pool, logger)
	cityService := city.NewCityService(cityRepo, lookup, logger)
	cityHandler := city.NewCityHandler(cityService, logger)

	userRepo := user.NewPostgresUserRepo(pool, logger)
	userService := user.NewUserService(userRepo, logger)
	userHandler := user.NewHandlerImpl(userService, logger)

	picnicRepo := picnic.NewPostgresRepository(pool, logger)
	picnicService := picnic.NewService(picnicRepo, clockwork.NewRealClock(), logger)
	picnicHandler := picnic.NewHandlerImpl(picnicService, logger)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Pool:          pool,
		CityHandler:   cityHandler,
		UserHandler:   userHandler,
		PicnicHandler: picnicHandler,
	}, nil
}

// NewLookup builds the weather client, wrapped in a cache when weather.cacheTTL is set.
func NewLookup(cfg *config.Config, logger *slog.Logger) weather.Lookup {
	w := cfg.Weather
	client := weather.NewClient(w.BaseURL, w.APIKey, w.Units, w.Timeout, logger)
	if w.CacheTTL <= 0 {
		return client
	}
	logger.Info("Weather lookups are cached", slog.Duration("ttl", w.CacheTTL))
	return weather.NewCachedLookup(client, w.CacheTTL)
}

// Close releases resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
		c.Logger.Info("Database pool closed")
	}
}
