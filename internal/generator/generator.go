// Package generator produces citation-grounded answers from retrieved
// evidence, with a deterministic extractive fallback when the model call
// fails.
package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"scholar-rag/internal/assembler"
	"scholar-rag/internal/cache"
	"scholar-rag/internal/models"
)

// Kind distinguishes how an answer was produced, so callers and tests can
// tell degraded responses from full ones without string-sniffing.
type Kind int

const (
	// KindGenerated is a model-produced answer.
	KindGenerated Kind = iota
	// KindFallback is an extractive concatenation after a model failure.
	KindFallback
	// KindNoEvidence is the sentinel for an empty retrieval.
	KindNoEvidence
)

func (k Kind) String() string {
	switch k {
	case KindGenerated:
		return "generated"
	case KindFallback:
		return "fallback"
	case KindNoEvidence:
		return "no_evidence"
	default:
		return "unknown"
	}
}

// Result is one terminal answer. Reason is set only for KindFallback.
type Result struct {
	Kind   Kind
	Answer string
	Chunks []models.RetrievedChunk
	Reason string
	Cached bool
}

// Retriever yields ranked chunks for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]models.RetrievedChunk, error)
}

// Completer runs one synchronous completion call.
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Generator answers questions. Implementations never surface AI-side
// failures as errors; a returned error means retrieval infrastructure
// failed before any answer could be formed.
type Generator interface {
	Answer(ctx context.Context, query string) (Result, error)
}

// ScholarAI is the real generator. The cache is consulted before the
// retriever or the model; repeated identical queries never re-invoke
// either.
type ScholarAI struct {
	retriever        Retriever
	llm              Completer
	cache            *cache.Store
	topK             int
	fallbackMaxChars int
}

func NewScholarAI(retriever Retriever, llm Completer, answerCache *cache.Store, topK, fallbackMaxChars int) *ScholarAI {
	if topK <= 0 {
		topK = 5
	}
	if fallbackMaxChars <= 0 {
		fallbackMaxChars = assembler.DefaultFallbackMaxChars
	}
	return &ScholarAI{
		retriever:        retriever,
		llm:              llm,
		cache:            answerCache,
		topK:             topK,
		fallbackMaxChars: fallbackMaxChars,
	}
}

func (s *ScholarAI) Answer(ctx context.Context, query string) (Result, error) {
	if entry, ok := s.cache.Get(query); ok {
		log.Debug().Msg("Using cached answer for query")
		return Result{Kind: KindGenerated, Answer: entry.Answer, Chunks: entry.Chunks, Cached: true}, nil
	}

	chunks, err := s.retriever.Retrieve(ctx, query, s.topK)
	if err != nil {
		return Result{}, err
	}
	if len(chunks) == 0 {
		// Not cached: queries yielding nothing retry fresh next call.
		return Result{Kind: KindNoEvidence, Answer: models.NoResultsAnswer}, nil
	}

	assembled := assembler.Assemble(chunks)
	prompt := BuildPrompt(query, assembled)

	result := Result{Kind: KindGenerated, Chunks: assembled}
	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Generation failed, falling back to extractive answer")
		answer = assembler.CombineBounded(assembled, s.fallbackMaxChars)
		result.Kind = KindFallback
		result.Reason = err.Error()
	}
	result.Answer = answer

	s.cache.Put(query, answer, assembled)
	return result, nil
}

// BuildPrompt numbers the assembled chunks [1]..[n] in post-assembly order
// and instructs the model to answer strictly from that evidence. Citation
// markers refer to positions in the numbered list, not to persistent ids.
func BuildPrompt(query string, chunks []models.RetrievedChunk) string {
	numbered := make([]string, len(chunks))
	for i, chunk := range chunks {
		numbered[i] = fmt.Sprintf("[%d] %s", i+1, chunk.Text)
	}
	return fmt.Sprintf(models.ExpertPromptTemplate, query, strings.Join(numbered, "\n\n"))
}
