package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PgVectorStore persists chunks in Postgres with a pgvector embedding
// column. Cosine distance (<=>) is the search metric.
type PgVectorStore struct {
	db *pgxpool.Pool
}

func NewPgVectorStore(db *pgxpool.Pool) *PgVectorStore {
	return &PgVectorStore{db: db}
}

func (s *PgVectorStore) Upsert(ctx context.Context, chunks []Chunk) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range chunks {
		id := c.ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		embedding := pgvector.NewVector(c.Embedding)

		_, err := tx.Exec(ctx,
			`INSERT INTO document_chunks (id, document_id, chunk_index, content, embedding, filename)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE SET content = $4, embedding = $5, filename = $6`,
			id, c.DocumentID, c.ChunkIndex, c.Content, embedding, c.Filename,
		)
		if err != nil {
			return fmt.Errorf("upsert chunk %d: %w", c.ChunkIndex, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PgVectorStore) Search(ctx context.Context, query []float32, opts SearchOptions) ([]Candidate, error) {
	if opts.TopK < 1 {
		return nil, ErrInvalidTopK
	}

	embedding := pgvector.NewVector(query)

	sql := `SELECT id, document_id, content, filename, chunk_index,
	               embedding <=> $1 AS distance
	        FROM document_chunks`
	args := []any{embedding}

	if opts.DocumentID != uuid.Nil {
		sql += ` WHERE document_id = $2
		         ORDER BY embedding <=> $1 LIMIT $3`
		args = append(args, opts.DocumentID, opts.TopK)
	} else {
		sql += ` ORDER BY embedding <=> $1 LIMIT $2`
		args = append(args, opts.TopK)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var results []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ChunkID, &c.DocumentID, &c.Content, &c.Filename, &c.ChunkIndex, &c.Distance); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (s *PgVectorStore) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	_, err := s.db.Exec(ctx, "DELETE FROM document_chunks WHERE document_id = $1", documentID)
	return err
}

func (s *PgVectorStore) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Chunk, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, document_id, chunk_index, content, filename
		 FROM document_chunks WHERE document_id = $1 ORDER BY chunk_index`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.ChunkIndex, &c.Content, &c.Filename); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func (s *PgVectorStore) CountChunks(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM document_chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}
