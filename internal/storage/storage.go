// Package storage persists uploaded document files on disk so the
// ingestion worker can read them back later.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage abstracts where uploaded files live. The API handler saves,
// the worker opens, deletion happens on document removal.
type Storage interface {
	// Save writes the file contents and returns the stored path.
	Save(docID uuid.UUID, filename string, r io.Reader) (string, error)
	// Open returns a reader for a previously saved file.
	Open(path string) (*os.File, error)
	// Delete removes a stored file. Missing files are not an error.
	Delete(path string) error
}

// LocalStorage keeps files under a single directory, one file per
// document, named by document ID to avoid collisions between uploads
// with the same filename.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(docID uuid.UUID, filename string, r io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	path := filepath.Join(s.dir, docID.String()+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

func (s *LocalStorage) Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
