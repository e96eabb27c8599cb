package generator

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar-rag/internal/cache"
	"scholar-rag/internal/config"
	"scholar-rag/internal/sources"
)

func TestMockAnswer(t *testing.T) {
	gen := NewMock()

	result, err := gen.Answer(context.Background(), "What is lasso?")
	require.NoError(t, err)

	assert.Equal(t, KindGenerated, result.Kind)
	assert.Equal(t, "Mock expert answer for: What is lasso?", result.Answer)
	require.Len(t, result.Chunks, 1)

	// The canned chunk must resolve into a presentable citation.
	resolved := sources.FromChunks(result.Chunks)
	require.Len(t, resolved, 1)
	assert.Equal(t, "A Mock Paper on the Topic", resolved[0].PaperTitle)
	assert.Equal(t, "https://example.org/mock-paper", resolved[0].Link)
}

func TestFactoryUseMock(t *testing.T) {
	cfg := &config.Config{}
	cfg.RAG.UseMock = true

	// No retriever, no credentials: the mock path must not need either.
	gen, err := New(cfg, nil, cache.Load(filepath.Join(t.TempDir(), "cache.json")))
	require.NoError(t, err)
	assert.IsType(t, &Mock{}, gen)
}

func TestFactoryMissingCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.GenLLM.Provider = "openai"
	cfg.GenLLM.Model = "some-model"

	_, err := New(cfg, nil, cache.Load(filepath.Join(t.TempDir(), "cache.json")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing API key")
}
