package main

import (
	"codeberg.org/handleart/server/internal/analyzer"
	"codeberg.org/handleart/server/internal/config"
	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/pipeline"
	"codeberg.org/handleart/server/internal/synthesizer"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	config      *config.Config
	router      *gin.Engine
	services    *Services
	ledgerStore ledger.Store
	cacheStore  analyzer.CacheStore // nil when the search cache is disabled
	redisClient *redis.Client       // nil when REDIS_URL is unset
	db          *pgxpool.Pool       // nil when DATABASE_URL is unset
}

// holds the generation service graph
type Services struct {
	Analyzer    *analyzer.Analyzer
	Synthesizer *synthesizer.Synthesizer
	Pipeline    *pipeline.Pipeline
	Ledger      *ledger.Ledger
}
