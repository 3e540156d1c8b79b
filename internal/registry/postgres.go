package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docqa/docqa/internal/models"
)

type PostgresRegistry struct {
	db *pgxpool.Pool
}

func NewPostgresRegistry(db *pgxpool.Pool) *PostgresRegistry {
	return &PostgresRegistry{db: db}
}

const docColumns = `id, filename, file_path, file_size_bytes, page_count, status, chunk_count, error_message, uploaded_at`

func (r *PostgresRegistry) Create(ctx context.Context, doc *models.Document) error {
	if doc.Status == "" {
		doc.Status = models.DocStatusProcessing
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO documents (id, filename, file_path, file_size_bytes, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING uploaded_at`,
		doc.ID, doc.Filename, doc.FilePath, doc.FileSizeBytes, doc.Status,
	).Scan(&doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *PostgresRegistry) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := r.db.QueryRow(ctx,
		`SELECT `+docColumns+` FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.Filename, &doc.FilePath, &doc.FileSizeBytes, &doc.PageCount,
		&doc.Status, &doc.ChunkCount, &doc.ErrorMessage, &doc.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

func (r *PostgresRegistry) List(ctx context.Context) ([]models.Document, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+docColumns+` FROM documents ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.FilePath, &d.FileSizeBytes, &d.PageCount,
			&d.Status, &d.ChunkCount, &d.ErrorMessage, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *PostgresRegistry) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRegistry) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (r *PostgresRegistry) MarkCompleted(ctx context.Context, id uuid.UUID, chunkCount, pageCount int, fileSize int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE documents
		 SET status = $2, chunk_count = $3, page_count = $4, file_size_bytes = $5
		 WHERE id = $1 AND status = $6`,
		id, models.DocStatusCompleted, chunkCount, pageCount, fileSize, models.DocStatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark completed %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *PostgresRegistry) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE documents SET status = $2, error_message = $3
		 WHERE id = $1 AND status = $4`,
		id, models.DocStatusFailed, reason, models.DocStatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark failed %s: %w", id, ErrNotFound)
	}
	return nil
}
