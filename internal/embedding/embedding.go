package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"scholar-rag/internal/config"
	"scholar-rag/internal/models"
)

// DefaultBatchSize bounds one embedding call during index builds. Batch
// size affects throughput only; output order always matches input order.
const DefaultBatchSize = 64

// NewEmbedder builds the embedder for the configured provider. Indexing and
// retrieval must share one configuration: mixing embedding models
// invalidates similarity semantics.
func NewEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	switch cfg.Provider {
	case "ollama":
		return newOllamaEmbedder(cfg)
	case "openai":
		return newOpenAIEmbedder(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}

func newOpenAIEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.APIKey(), "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

func newOllamaEmbedder(cfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding LLM: %w", err)
	}
	return embeddings.NewEmbedder(llm)
}

// EmbedChunks embeds the whole chunk corpus in fixed-size batches, one
// vector per chunk in corpus order. Any batch failure aborts the build: a
// partial index is worse than a failed one.
func EmbedChunks(ctx context.Context, embedder *embeddings.EmbedderImpl, chunks []models.Chunk, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += batchSize {
		end := min(i+batchSize, len(texts))
		batch, err := embedder.EmbedDocuments(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch at %d: %w", i, err)
		}
		if len(batch) != end-i {
			return nil, fmt.Errorf("embedding batch at %d: got %d vectors for %d texts", i, len(batch), end-i)
		}
		vectors = append(vectors, batch...)
		log.Debug().Int("done", end).Int("total", len(texts)).Msg("Embedded batch")
	}
	return vectors, nil
}
