package generator

import (
	"scholar-rag/internal/cache"
	"scholar-rag/internal/config"
	"scholar-rag/internal/llmservice"
)

// New builds the configured generator. With UseMock set it returns the mock
// without touching credentials; otherwise a missing generation credential
// fails fast here. Both startup policies are configuration, not probing.
func New(cfg *config.Config, retriever Retriever, answerCache *cache.Store) (Generator, error) {
	if cfg.RAG.UseMock {
		return NewMock(), nil
	}
	llm, err := llmservice.New(&cfg.GenLLM)
	if err != nil {
		return nil, err
	}
	return NewScholarAI(retriever, llm, answerCache, cfg.RAG.TopK, cfg.RAG.FallbackMaxChars), nil
}
