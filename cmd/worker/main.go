package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/docqa/docqa/internal/cache"
	"github.com/docqa/docqa/internal/config"
	"github.com/docqa/docqa/internal/database"
	"github.com/docqa/docqa/internal/embedding"
	"github.com/docqa/docqa/internal/queue"
	"github.com/docqa/docqa/internal/queue/workers"
	"github.com/docqa/docqa/internal/rag"
	"github.com/docqa/docqa/internal/registry"
	"github.com/docqa/docqa/internal/storage"
	"github.com/docqa/docqa/internal/vectorstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	reg := registry.NewPostgresRegistry(db)
	store := vectorstore.NewPgVectorStore(db)

	files, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		slog.Error("init storage failed", "error", err)
		os.Exit(1)
	}

	var embedder embedding.Embedder = embedding.NewOpenAIEmbedder(cfg.Embedding)
	if cfg.Embedding.CacheTTL > 0 {
		ttl := time.Duration(cfg.Embedding.CacheTTL) * time.Second
		embedder = embedding.NewCachedEmbedder(embedder, cache.NewCache(rdb), ttl)
	}

	pipeline := rag.NewPipeline(store, embedder, rag.Options{
		SimilarityThreshold: cfg.RAG.SimilarityThreshold,
		MaxChunks:           cfg.RAG.MaxChunks,
		MaxChunksLimit:      cfg.RAG.MaxChunksLimit,
		ContextCharBudget:   cfg.RAG.ContextCharBudget,
		ChunkSize:           cfg.RAG.ChunkSize,
		ChunkOverlap:        cfg.RAG.ChunkOverlap,
	})

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	handlersRegistry := queue.NewHandlersRegistry()

	ingestWorker := workers.NewIngestWorker(reg, store, files, pipeline)
	handlersRegistry.Register(queue.TypeDocumentProcess, asynq.HandlerFunc(ingestWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 10)
	if err := srv.Run(handlersRegistry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
