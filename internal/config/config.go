package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	RAG       RAGConfig
	Upload    UploadConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EmbeddingConfig struct {
	OpenAIKey string
	Model     string
	Dimension int
	CacheTTL  int // seconds; 0 disables the cache
}

type RAGConfig struct {
	SimilarityThreshold float64
	MaxChunks           int
	MaxChunksLimit      int
	ContextCharBudget   int
	ChunkSize           int
	ChunkOverlap        int
}

type UploadConfig struct {
	Dir          string
	MaxFileBytes int64
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	embedDim, err := getEnvInt("EMBEDDING_DIMENSION", 1536)
	if err != nil {
		return nil, fmt.Errorf("invalid EMBEDDING_DIMENSION: %w", err)
	}

	cacheTTL, err := getEnvInt("EMBEDDING_CACHE_TTL", 3600)
	if err != nil {
		return nil, fmt.Errorf("invalid EMBEDDING_CACHE_TTL: %w", err)
	}

	threshold, err := getEnvFloat("RAG_SIMILARITY_THRESHOLD", 0.1)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_SIMILARITY_THRESHOLD: %w", err)
	}

	maxChunks, err := getEnvInt("RAG_MAX_CHUNKS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_MAX_CHUNKS: %w", err)
	}

	maxChunksLimit, err := getEnvInt("RAG_MAX_CHUNKS_LIMIT", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_MAX_CHUNKS_LIMIT: %w", err)
	}

	charBudget, err := getEnvInt("RAG_CONTEXT_CHAR_BUDGET", 6000)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_CONTEXT_CHAR_BUDGET: %w", err)
	}

	chunkSize, err := getEnvInt("RAG_CHUNK_SIZE", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_CHUNK_SIZE: %w", err)
	}

	chunkOverlap, err := getEnvInt("RAG_CHUNK_OVERLAP", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid RAG_CHUNK_OVERLAP: %w", err)
	}

	maxFileMB, err := getEnvInt("UPLOAD_MAX_FILE_MB", 50)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_FILE_MB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Embedding: EmbeddingConfig{
			OpenAIKey: getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Dimension: embedDim,
			CacheTTL:  cacheTTL,
		},
		RAG: RAGConfig{
			SimilarityThreshold: threshold,
			MaxChunks:           maxChunks,
			MaxChunksLimit:      maxChunksLimit,
			ContextCharBudget:   charBudget,
			ChunkSize:           chunkSize,
			ChunkOverlap:        chunkOverlap,
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./uploads"),
			MaxFileBytes: int64(maxFileMB) * 1024 * 1024,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Embedding.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if c.RAG.SimilarityThreshold < 0 || c.RAG.SimilarityThreshold > 1 {
		return fmt.Errorf("RAG_SIMILARITY_THRESHOLD must be in [0,1], got %v", c.RAG.SimilarityThreshold)
	}
	if c.RAG.MaxChunks < 1 {
		return fmt.Errorf("RAG_MAX_CHUNKS must be >= 1, got %d", c.RAG.MaxChunks)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
