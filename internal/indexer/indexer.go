// Package indexer converts the chunk corpus into a persisted searchable
// index. Index builds are full rebuilds; there is no incremental merge.
package indexer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"scholar-rag/internal/embedding"
	"scholar-rag/internal/models"
	"scholar-rag/internal/vectorstore"
)

type Indexer struct {
	embedder  *embeddings.EmbedderImpl
	store     vectorstore.Store
	batchSize int
}

func New(embedder *embeddings.EmbedderImpl, store vectorstore.Store, batchSize int) *Indexer {
	return &Indexer{embedder: embedder, store: store, batchSize: batchSize}
}

// Build embeds every chunk and replaces the persisted collection. Document
// ids are "chunk_<i>" in corpus order and are stable only within this build.
func (ix *Indexer) Build(ctx context.Context, chunks []models.Chunk) error {
	log.Info().Int("chunks", len(chunks)).Msg("Building vector index")

	vectors, err := embedding.EmbedChunks(ctx, ix.embedder, chunks, ix.batchSize)
	if err != nil {
		return fmt.Errorf("embedding corpus: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding corpus: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	docs := make([]vectorstore.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = vectorstore.Document{
			ID:   "chunk_" + strconv.Itoa(i),
			Text: chunk.Text,
			Metadata: map[string]string{
				"paper_id":    chunk.PaperID,
				"paper_title": chunk.PaperTitle,
				"authors":     strings.Join(chunk.Authors, ", "),
				"section":     chunk.Section,
				"chunk_index": strconv.Itoa(chunk.ChunkIndex),
			},
			Embedding: vectors[i],
		}
	}

	if err := ix.store.Rebuild(ctx, docs); err != nil {
		return fmt.Errorf("rebuilding collection: %w", err)
	}
	log.Info().Int("documents", len(docs)).Msg("Index build complete")
	return nil
}
