package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/handleart/server/internal/analyzer"
	"codeberg.org/handleart/server/internal/config"
	"codeberg.org/handleart/server/internal/identity"
	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}

		redisClient = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	var db *pgxpool.Pool

	if cfg.PostgresURL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}

		poolConfig.MaxConns = 5
		poolConfig.MinConns = 1
		poolConfig.MaxConnLifetime = 30 * time.Minute
		poolConfig.MaxConnIdleTime = 5 * time.Minute

		db, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}

		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	ledgerStore, err := chooseLedgerStore(ctx, cfg, redisClient, db)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	cacheStore := chooseCacheStore(cfg, redisClient)

	services := InitializeServices(cfg, ledgerStore, cacheStore)

	identitySource, err := chooseIdentitySource(cfg)
	if err != nil {
		return nil, err
	}

	rateLimit, err := RateLimitMiddleware(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		config:      cfg,
		router:      router,
		services:    services,
		ledgerStore: ledgerStore,
		cacheStore:  cacheStore,
		redisClient: redisClient,
		db:          db,
	}

	RegisterRoutes(router, server, identitySource, rateLimit)

	return server, nil
}

// picks the ledger backend: postgres when configured, then redis, then memory
func chooseLedgerStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client, db *pgxpool.Pool) (ledger.Store, error) {
	if db != nil {
		store := ledger.NewPostgresStore(db)
		if err := store.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize ledger table: %w", err)
		}

		logger.Info("usage ledger backed by postgres")
		return store, nil
	}

	if redisClient != nil {
		logger.Info("usage ledger backed by redis")
		return ledger.NewRedisStore(redisClient), nil
	}

	logger.Warn("usage ledger backed by process memory, quota resets on restart")
	return ledger.NewMemoryStore(), nil
}

// picks the search-cache backend; nil when the cache is disabled
func chooseCacheStore(cfg *config.Config, redisClient *redis.Client) analyzer.CacheStore {
	if !cfg.SearchCacheEnabled {
		return nil
	}

	if redisClient != nil {
		logger.Info("search cache enabled, backed by redis")
		return analyzer.NewRedisCache(redisClient)
	}

	logger.Info("search cache enabled, backed by process memory")
	return analyzer.NewMemoryCache()
}

func chooseIdentitySource(cfg *config.Config) (identity.Source, error) {
	switch cfg.IdentitySource {
	case "hash", "":
		return identity.NewHashSource(cfg.IdentitySalt), nil
	case "token":
		return identity.NewTokenSource(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown identity source: %s", cfg.IdentitySource)
	}
}
