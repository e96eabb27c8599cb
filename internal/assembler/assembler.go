// Package assembler prepares retrieved chunks for prompt construction:
// dedup, relevance ordering, and context concatenation.
package assembler

import (
	"sort"
	"strings"

	"scholar-rag/internal/models"
)

// DefaultFallbackMaxChars bounds the extractive fallback answer,
// proportional to the fallback's much smaller context window.
const DefaultFallbackMaxChars = 4096

// Dedupe collapses chunks with identical trimmed text, even across papers,
// keeping the first occurrence in input order.
func Dedupe(chunks []models.RetrievedChunk) []models.RetrievedChunk {
	seen := make(map[string]bool, len(chunks))
	out := make([]models.RetrievedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		text := strings.TrimSpace(chunk.Text)
		if seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, chunk)
	}
	return out
}

// SortByScore orders chunks descending by similarity score; a missing score
// is zero and ties keep their prior order.
func SortByScore(chunks []models.RetrievedChunk) []models.RetrievedChunk {
	out := make([]models.RetrievedChunk, len(chunks))
	copy(out, chunks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out
}

// Assemble is the primary path: dedup then relevance sort.
func Assemble(chunks []models.RetrievedChunk) []models.RetrievedChunk {
	return SortByScore(Dedupe(chunks))
}

// Combine joins chunk texts with single spaces. No truncation: the
// generation model is assumed to accept effectively unbounded context.
func Combine(chunks []models.RetrievedChunk) string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return strings.Join(texts, " ")
}

// CombineBounded concatenates chunk texts up to maxChars, truncating the
// overflowing chunk with a visible ellipsis. Used by the fallback path.
func CombineBounded(chunks []models.RetrievedChunk, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultFallbackMaxChars
	}
	var texts []string
	total := 0
	for _, chunk := range chunks {
		text := chunk.Text
		if total+len(text) > maxChars {
			remaining := maxChars - total
			if remaining > 0 {
				texts = append(texts, text[:remaining]+"...")
			}
			break
		}
		texts = append(texts, text)
		total += len(text)
	}
	return strings.Join(texts, " ")
}
