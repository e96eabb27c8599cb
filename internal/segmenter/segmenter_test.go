package segmenter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholar-rag/internal/models"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestChunkText(t *testing.T) {
	s := New(300, 800)

	tests := []struct {
		name       string
		wordCount  int
		wantChunks int
	}{
		{name: "empty text", wordCount: 0, wantChunks: 0},
		{name: "below minimum dropped", wordCount: 299, wantChunks: 0},
		{name: "exactly minimum", wordCount: 300, wantChunks: 1},
		{name: "one full window", wordCount: 800, wantChunks: 1},
		{name: "full window plus short tail dropped", wordCount: 900, wantChunks: 1},
		{name: "full window plus long tail kept", wordCount: 1100, wantChunks: 2},
		{name: "two windows remainder dropped", wordCount: 1700, wantChunks: 2},
		{name: "two windows plus tail", wordCount: 1900, wantChunks: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := s.ChunkText(words(tt.wordCount))
			require.Len(t, chunks, tt.wantChunks)

			// Every non-final chunk holds exactly the window size.
			for i, chunk := range chunks {
				n := len(strings.Fields(chunk))
				if i < len(chunks)-1 {
					assert.Equal(t, 800, n)
				} else {
					assert.LessOrEqual(t, n, 800)
					assert.GreaterOrEqual(t, n, min(tt.wordCount, 300))
				}
			}
		})
	}
}

func TestChunkTextPreservesWordOrder(t *testing.T) {
	s := New(2, 3)
	chunks := s.ChunkText("a b c d e")
	require.Equal(t, []string{"a b c", "d e"}, chunks)
}

func TestSplitSections(t *testing.T) {
	text := strings.Join([]string{
		"Some Paper Title",
		"preamble text",
		"Introduction",
		"intro line one",
		"intro line two",
		"Results and Discussion",
		"results show that the proposed estimator dominates the baseline in all settings",
		"Conclusion",
		"closing line",
	}, "\n")

	sections := SplitSections(text)
	require.Len(t, sections, 4)

	assert.Equal(t, "unknown", sections[0].Label)
	assert.Contains(t, sections[0].Text, "preamble text")

	assert.Equal(t, "introduction", sections[1].Label)
	assert.Contains(t, sections[1].Text, "intro line one")

	// Short header line starting with a vocabulary word opens a section.
	assert.Equal(t, "results and discussion", sections[2].Label)
	// The long body line starting with "results" stayed inside it.
	assert.Contains(t, sections[2].Text, "dominates the baseline")

	assert.Equal(t, "conclusion", sections[3].Label)
}

func TestSplitSectionsHeaderLengthCutoff(t *testing.T) {
	long := "results obtained in this study demonstrate quite a lot"
	require.GreaterOrEqual(t, len(long), 50)

	sections := SplitSections("Introduction\n" + long)
	require.Len(t, sections, 2)
	assert.Equal(t, "introduction", sections[1].Label)
	assert.Contains(t, sections[1].Text, long)
}

func TestSplitSectionsRepeatedHeaderResets(t *testing.T) {
	sections := SplitSections("Introduction\nfirst pass\nIntroduction\nsecond pass")
	require.Len(t, sections, 2)
	assert.Equal(t, "introduction", sections[1].Label)
	assert.NotContains(t, sections[1].Text, "first pass")
	assert.Contains(t, sections[1].Text, "second pass")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\nb\t c \n"))
	assert.Equal(t, "", CleanText(" \n\t "))
}

func TestChunkPaper(t *testing.T) {
	paper := models.Paper{
		ArxivID:    "1234.5678v1",
		Title:      "On Ridge Regression",
		Authors:    []string{"Doe, J.", "Roe, R."},
	}

	text := strings.Join([]string{
		"Introduction",
		words(850),
		"Methods",
		words(400),
		"References",
		words(500),
	}, "\n")

	s := New(300, 800)
	chunks := s.ChunkPaper(paper, text)
	require.Len(t, chunks, 2)

	assert.Equal(t, "introduction", chunks[0].Section)
	assert.Equal(t, "methods", chunks[1].Section)

	// References content never reaches the index.
	for _, chunk := range chunks {
		assert.NotEqual(t, "references", chunk.Section)
	}

	// chunk_index increments per paper across kept sections.
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.Equal(t, paper.ArxivID, chunk.PaperID)
		assert.Equal(t, paper.Title, chunk.PaperTitle)
		assert.Equal(t, paper.Authors, chunk.Authors)
	}
}

func TestChunkPaperShortSectionDropped(t *testing.T) {
	// A section that never reaches min_tokens yields no chunks at all.
	s := New(300, 800)
	chunks := s.ChunkPaper(models.Paper{ArxivID: "x"}, "Conclusion\n"+words(100))
	assert.Empty(t, chunks)
}
