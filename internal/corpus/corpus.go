// Package corpus reads and writes the JSON artifacts shared between the
// ingestion and indexing steps: the per-paper metadata file and the flat
// chunk file.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"scholar-rag/internal/helper"
	"scholar-rag/internal/models"
)

// LoadPapers reads the paper metadata file produced by corpus acquisition.
func LoadPapers(path string) ([]models.Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var papers []models.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return papers, nil
}

// SaveChunks writes the processed chunk corpus, creating parent directories.
func SaveChunks(path string, chunks []models.Chunk) error {
	if err := helper.CreateFolder(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadChunks reads the processed chunk corpus.
func LoadChunks(path string) ([]models.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chunks: %w", err)
	}
	var chunks []models.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parsing chunks: %w", err)
	}
	return chunks, nil
}
