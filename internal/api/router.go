package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/docqa/docqa/internal/api/handlers"
	"github.com/docqa/docqa/internal/api/middleware"
	"github.com/docqa/docqa/internal/cache"
	"github.com/docqa/docqa/internal/config"
	"github.com/docqa/docqa/internal/embedding"
	"github.com/docqa/docqa/internal/queue"
	"github.com/docqa/docqa/internal/rag"
	"github.com/docqa/docqa/internal/registry"
	"github.com/docqa/docqa/internal/storage"
	"github.com/docqa/docqa/internal/vectorstore"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
	}
}

func (rt *Router) Setup() (http.Handler, error) {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	reg := registry.NewPostgresRegistry(rt.db)
	store := vectorstore.NewPgVectorStore(rt.db)

	files, err := storage.NewLocalStorage(rt.cfg.Upload.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	queueClient := queue.NewClient(rt.cfg.Redis)

	var embedder embedding.Embedder = embedding.NewOpenAIEmbedder(rt.cfg.Embedding)
	if rt.cfg.Embedding.CacheTTL > 0 {
		ttl := time.Duration(rt.cfg.Embedding.CacheTTL) * time.Second
		embedder = embedding.NewCachedEmbedder(embedder, cache.NewCache(rt.redis), ttl)
	}

	pipeline := rag.NewPipeline(store, embedder, rag.Options{
		SimilarityThreshold: rt.cfg.RAG.SimilarityThreshold,
		MaxChunks:           rt.cfg.RAG.MaxChunks,
		MaxChunksLimit:      rt.cfg.RAG.MaxChunksLimit,
		ContextCharBudget:   rt.cfg.RAG.ContextCharBudget,
		ChunkSize:           rt.cfg.RAG.ChunkSize,
		ChunkOverlap:        rt.cfg.RAG.ChunkOverlap,
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		docH := handlers.NewDocumentHandler(reg, store, files, queueClient, rt.cfg.Upload.MaxFileBytes)
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", docH.Upload)
			r.Get("/", docH.List)
			r.Get("/{id}", docH.Get)
			r.Delete("/{id}", docH.Delete)
			r.Get("/{id}/status", docH.Status)
			r.Get("/{id}/chunks", docH.Chunks)
		})

		askH := handlers.NewAskHandler(pipeline)
		r.Post("/ask", askH.Ask)
		r.Post("/search", askH.Search)

		statsH := handlers.NewStatsHandler(reg, store, embedder, pipeline.Options())
		r.Get("/stats", statsH.Stats)
	})

	return r, nil
}
