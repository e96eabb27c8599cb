package generator

import (
	"context"

	"scholar-rag/internal/models"
)

// Mock is a no-op generator for running the service without credentials or
// an index. Selected by configuration, never by runtime probing.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Answer(ctx context.Context, query string) (Result, error) {
	return Result{
		Kind:   KindGenerated,
		Answer: "Mock expert answer for: " + query,
		Chunks: []models.RetrievedChunk{
			{
				Text: "Mock evidence chunk.",
				Metadata: map[string]string{
					"paper_title": "A Mock Paper on the Topic",
					"authors":     "Doe, J.",
					"section":     "overview",
					"link":        "https://example.org/mock-paper",
				},
			},
		},
	}, nil
}
