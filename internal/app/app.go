// Package app wires configuration, storage and services together for the
// server and CLI binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/config"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/selector"
	"pulsecheck/internal/service"
)

const pingTimeout = 5 * time.Second

// App holds connected infrastructure and the services built on it
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Mongo *mongo.Client
	Redis *redis.Client

	ItemRepo     repository.ItemRepo
	CatalogCache cache.CatalogCache
	RecentCache  cache.RecentCache

	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Selection *service.SelectionService
}

// NewSelector builds the selector from service configuration
func NewSelector(cfg config.SelectionConfig) *selector.Selector {
	selCfg := selector.DefaultConfig()
	if cfg.MaxPadIterations > 0 {
		selCfg.MaxPadIterations = cfg.MaxPadIterations
	}
	return selector.New(selCfg)
}

// ConnectMongo connects and pings MongoDB
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// ConnectRedis connects and pings Redis
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr()})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return rdb, nil
}

// New connects to MongoDB and Redis and builds every service
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	mongoClient, err := ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	rdb, err := ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		mongoClient.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr()))

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Mongo:        mongoClient,
		Redis:        rdb,
		ItemRepo:     repository.NewItemRepo(mongoClient.Database(cfg.Mongo.Database)),
		CatalogCache: cache.NewCatalogCache(rdb, cfg.Selection.CatalogCacheTTL),
		RecentCache:  cache.NewRecentCache(rdb, cfg.Selection.RecentWindow),
		Auth:         service.NewAuthService(cfg.Auth),
	}
	a.Catalog = service.NewCatalogService(a.ItemRepo, a.CatalogCache, logger.Named("catalog"))
	a.Selection = service.NewSelectionService(
		a.ItemRepo,
		a.CatalogCache,
		a.RecentCache,
		NewSelector(cfg.Selection),
		cfg.Selection,
		logger.Named("selection"),
	)
	return a, nil
}

// Close releases the database connections
func (a *App) Close(ctx context.Context) {
	if err := a.Redis.Close(); err != nil {
		a.Logger.Warn("redis close failed", zap.Error(err))
	}
	if err := a.Mongo.Disconnect(ctx); err != nil {
		a.Logger.Warn("mongo disconnect failed", zap.Error(err))
	}
}
