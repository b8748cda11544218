// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	menuapp "github.com/mealwise/v1/internal/application/menu"
	nutritionapp "github.com/mealwise/v1/internal/application/nutrition"
	"github.com/mealwise/v1/internal/infrastructure/ai/openai"
	"github.com/mealwise/v1/internal/infrastructure/config"
	"github.com/mealwise/v1/internal/infrastructure/http/apiserver"
	gormRepo "github.com/mealwise/v1/internal/infrastructure/persistence/gorm"
	"github.com/mealwise/v1/internal/infrastructure/persistence/memory"
	"github.com/mealwise/v1/internal/infrastructure/persistence/redis"
	"github.com/mealwise/v1/internal/ports/inbound"
	"github.com/mealwise/v1/internal/ports/outbound"
	"github.com/mealwise/v1/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := gormRepo.SetupDatabase(cfg, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup database: %w", err)
		}

		log.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("database", cfg.Database.Database),
		)
		return db, nil
	},
)

// CacheModule provides caching, Redis when enabled with an in-process
// fallback otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Enabled {
			return redis.NewCacheRepository(cfg.Redis, log)
		}
		log.Info("Redis disabled, using in-memory cache")
		return memory.NewCacheRepository(), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewAnalysisRepository,
	gormRepo.NewMenuRepository,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	// Model client
	fx.Annotate(
		func(cfg *config.Config, log *zap.Logger) *openai.Client {
			return openai.NewClient(cfg.AI, log)
		},
		fx.As(new(outbound.ModelClient)),
	),

	// Meal replacement policy
	func() menuapp.SelectionPolicy {
		return menuapp.NewRandomSelection(rand.NewSource(time.Now().UnixNano()))
	},

	// Nutrition analysis service
	nutritionapp.NewService,

	// Menu service
	func(
		model outbound.ModelClient,
		menus outbound.MenuRepository,
		cache outbound.CacheRepository,
		selection menuapp.SelectionPolicy,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.MenuService {
		return menuapp.NewService(model, menus, cache, selection, cfg.Cache, log)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	apiserver.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	cache outbound.CacheRepository,
	server *apiserver.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if closer, ok := cache.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					log.Error("Failed to close cache", zap.Error(err))
				}
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
