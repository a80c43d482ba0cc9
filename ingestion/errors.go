package ingestion

import "errors"

var (
	// ErrIndexRequired is returned when an index is not provided.
	ErrIndexRequired = errors.New("index required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmptyDocument is returned when a document yields no chunks.
	ErrEmptyDocument = errors.New("document has no text to chunk")

	// ErrInvalidChunkWindow is returned for a non-positive chunk size or
	// an overlap that is negative or not smaller than the size.
	ErrInvalidChunkWindow = errors.New("invalid chunk window")
)
