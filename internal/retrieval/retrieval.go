// Package retrieval embeds queries and looks them up against the persisted
// index. The embedder and store handles are initialized once and shared,
// read-only, across all queries.
package retrieval

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"

	"scholar-rag/internal/models"
	"scholar-rag/internal/vectorstore"
)

type Retriever struct {
	embedder *embeddings.EmbedderImpl
	store    vectorstore.Store
}

func New(embedder *embeddings.EmbedderImpl, store vectorstore.Store) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Retrieve returns at most k chunks ranked best-first by the store. An
// empty collection yields an empty slice, never an error. The similarity
// score is attached here and exists only at query time.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]models.RetrievedChunk, error) {
	queryEmbedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.store.Query(ctx, queryEmbedding, k)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	chunks := make([]models.RetrievedChunk, len(results))
	for i, res := range results {
		chunks[i] = models.RetrievedChunk{
			ID:         res.ID,
			Text:       res.Text,
			Metadata:   res.Metadata,
			Similarity: res.Similarity,
		}
	}
	return chunks, nil
}
