package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "chromem", cfg.Store.Type)
	assert.Equal(t, "regression_papers", cfg.Store.Collection)
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.Equal(t, 300, cfg.RAG.MinTokens)
	assert.Equal(t, 800, cfg.RAG.MaxTokens)
	assert.Equal(t, 64, cfg.RAG.BatchSize)
	assert.Equal(t, 4096, cfg.RAG.FallbackMaxChars)
	assert.Equal(t, "OPENROUTER_API_KEY", cfg.GenLLM.KeyEnv)
	assert.False(t, cfg.RAG.UseMock)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
store:
  type: postgres
  database:
    url: postgres://db:5432/papers
rag:
  top_k: 3
  use_mock: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Type)
	assert.Equal(t, "postgres://db:5432/papers", cfg.Store.Database.URL)
	assert.Equal(t, 3, cfg.RAG.TopK)
	assert.True(t, cfg.RAG.UseMock)
	// Unset knobs still get defaults.
	assert.Equal(t, 800, cfg.RAG.MaxTokens)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAPIKeyPrefersConfigValue(t *testing.T) {
	t.Setenv("SCHOLAR_TEST_KEY", "from-env")

	cfg := LLMConfig{Key: "from-file", KeyEnv: "SCHOLAR_TEST_KEY"}
	assert.Equal(t, "from-file", cfg.APIKey())

	cfg.Key = ""
	assert.Equal(t, "from-env", cfg.APIKey())

	cfg.KeyEnv = ""
	assert.Equal(t, "", cfg.APIKey())
}
