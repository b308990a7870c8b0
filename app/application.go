package app

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/khudaiyar/aerora/api"
	"github.com/khudaiyar/aerora/cache"
	"github.com/khudaiyar/aerora/config"
	"github.com/khudaiyar/aerora/database"
	"github.com/khudaiyar/aerora/providers"
	"github.com/khudaiyar/aerora/repository"
	"github.com/khudaiyar/aerora/scheduler"
	"github.com/khudaiyar/aerora/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config     *config.Config
	db         *gorm.DB
	cacheStore cache.Store
	server     *api.Server
	scheduler  *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing database...")

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("Database initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	store, err := app.createCacheStore()
	if err != nil {
		return fmt.Errorf("create cache store: %w", err)
	}
	app.cacheStore = store
	queryCache := cache.New(store, app.config.Cache.Type)

	provider := providers.NewOpenWeatherClient(&app.config.Provider)

	locationRepo := repository.NewLocationRepository(app.db)
	weatherRepo := repository.NewWeatherRepository(app.db)

	weatherService := service.NewWeatherService(provider, queryCache, weatherRepo, app.config.Cache)
	geocodingService := service.NewGeocodingService(
		provider,
		queryCache,
		locationRepo,
		app.config.Provider.SearchLimit,
		app.config.Cache.GeocodeTTL(),
	)

	app.server = api.NewServer(app.config, weatherService, geocodingService)
	app.scheduler = scheduler.NewScheduler(weatherRepo, app.config.Scheduler)

	slog.Info("Services initialized successfully")
	return nil
}

// createCacheStore selects the cache backend from configuration.
func (app *Application) createCacheStore() (cache.Store, error) {
	switch app.config.Cache.Type {
	case "redis":
		return cache.NewRedisStore(&cache.RedisConfig{
			Addr:         app.config.Cache.RedisAddr,
			Password:     app.config.Cache.RedisPassword,
			DB:           app.config.Cache.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	default:
		return cache.NewMemoryStore(), nil
	}
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting application...")

	slog.Info("Starting scheduler...")
	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if memStore, ok := app.cacheStore.(*cache.MemoryStore); ok {
		memStore.Stop()
	}
	if redisStore, ok := app.cacheStore.(*cache.RedisStore); ok {
		if err := redisStore.Close(); err != nil {
			slog.Warn("Error closing Redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
