// Package vectorstore defines the persisted similarity index used by the
// indexer and the retrieval service.
package vectorstore

import "context"

// Document is the persisted unit: a chunk's text, its metadata, and its
// embedding. ID is assigned at indexing time and is stable only within one
// index build.
type Document struct {
	ID        string
	Text      string
	Metadata  map[string]string
	Embedding []float32
}

// Result is one ranked match from a similarity lookup. Higher Similarity
// means more relevant.
type Result struct {
	ID         string
	Text       string
	Metadata   map[string]string
	Similarity float32
}

// Store persists embeddings and answers nearest-neighbour queries.
// Implementations are safe for concurrent readers after Rebuild; Rebuild is
// an offline batch operation, never run concurrently with serving.
type Store interface {
	// Rebuild replaces the whole collection with the given documents.
	// There is no incremental merge; deleting the prior collection is
	// best-effort.
	Rebuild(ctx context.Context, docs []Document) error

	// Query returns up to k results, best first. An empty collection
	// yields an empty slice, not an error.
	Query(ctx context.Context, embedding []float32, k int) ([]Result, error)

	// Count reports the number of persisted documents.
	Count(ctx context.Context) (int, error)
}
