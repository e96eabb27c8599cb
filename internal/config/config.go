package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LLMConfig holds connection details for one model endpoint. Provider is
// either "openai" (any OpenAI-compatible endpoint, e.g. OpenRouter) or
// "ollama". KeyEnv names the environment variable consulted when Key is
// blank, so secrets can stay out of the config file.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	KeyEnv   string `yaml:"key_env"`
	Model    string `yaml:"model"`
}

// DatabaseConfig configures the Postgres vector store backend.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

// StoreConfig selects the vector store backend.
type StoreConfig struct {
	Type       string         `yaml:"type"` // chromem or postgres
	Path       string         `yaml:"path"`
	Collection string         `yaml:"collection"`
	Database   DatabaseConfig `yaml:"database"`
}

// RAGConfig holds the retrieval and generation knobs.
type RAGConfig struct {
	TopK             int  `yaml:"top_k"`
	MinTokens        int  `yaml:"min_tokens"`
	MaxTokens        int  `yaml:"max_tokens"`
	BatchSize        int  `yaml:"batch_size"`
	FallbackMaxChars int  `yaml:"fallback_max_chars"`
	UseMock          bool `yaml:"use_mock"`
}

// PathsConfig locates the corpus artifacts and the answer cache.
type PathsConfig struct {
	MetadataFile string `yaml:"metadata_file"`
	ChunksFile   string `yaml:"chunks_file"`
	CacheFile    string `yaml:"cache_file"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	AllowOrigin string `yaml:"allow_origin"`
}

type Config struct {
	EmbedLLM LLMConfig    `yaml:"embed_llm"`
	GenLLM   LLMConfig    `yaml:"gen_llm"`
	Store    StoreConfig  `yaml:"store"`
	RAG      RAGConfig    `yaml:"rag"`
	Paths    PathsConfig  `yaml:"paths"`
	Server   ServerConfig `yaml:"server"`
}

// Load reads a config file and applies defaults. A missing file is not an
// error; the defaults alone describe a runnable local setup.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// APIKey resolves the credential for an endpoint, preferring the config
// value and falling back to the named environment variable.
func (c *LLMConfig) APIKey() string {
	if c.Key != "" {
		return c.Key
	}
	if c.KeyEnv != "" {
		return os.Getenv(c.KeyEnv)
	}
	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.EmbedLLM.Provider == "" {
		cfg.EmbedLLM.Provider = "ollama"
	}
	if cfg.EmbedLLM.BaseURL == "" && cfg.EmbedLLM.Provider == "ollama" {
		cfg.EmbedLLM.BaseURL = "http://localhost:11434"
	}
	if cfg.EmbedLLM.Model == "" {
		cfg.EmbedLLM.Model = "nomic-embed-text"
	}
	if cfg.GenLLM.Provider == "" {
		cfg.GenLLM.Provider = "openai"
	}
	if cfg.GenLLM.BaseURL == "" {
		cfg.GenLLM.BaseURL = "https://openrouter.ai/api"
	}
	if cfg.GenLLM.KeyEnv == "" {
		cfg.GenLLM.KeyEnv = "OPENROUTER_API_KEY"
	}
	if cfg.GenLLM.Model == "" {
		cfg.GenLLM.Model = "google/gemini-2.5-flash"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "chromem"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./data/chromem"
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = "regression_papers"
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 5
	}
	if cfg.RAG.MinTokens == 0 {
		cfg.RAG.MinTokens = 300
	}
	if cfg.RAG.MaxTokens == 0 {
		cfg.RAG.MaxTokens = 800
	}
	if cfg.RAG.BatchSize == 0 {
		cfg.RAG.BatchSize = 64
	}
	if cfg.RAG.FallbackMaxChars == 0 {
		cfg.RAG.FallbackMaxChars = 4096
	}
	if cfg.Paths.MetadataFile == "" {
		cfg.Paths.MetadataFile = "./data/metadata.json"
	}
	if cfg.Paths.ChunksFile == "" {
		cfg.Paths.ChunksFile = "./data/processed/paper_chunks.json"
	}
	if cfg.Paths.CacheFile == "" {
		cfg.Paths.CacheFile = "./cache/scholar_cache.json"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Server.AllowOrigin == "" {
		cfg.Server.AllowOrigin = "http://localhost:4200"
	}
}
