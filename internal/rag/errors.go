package rag

import "errors"

var (
	// ErrInvalidArgument covers malformed query parameters (empty question,
	// chunk counts out of range). Rejected before any adapter call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRetrievalTimeout means an embedding or store call exceeded the
	// caller's deadline. Retryable by the caller; the pipeline itself never
	// retries.
	ErrRetrievalTimeout = errors.New("retrieval timed out")
)
