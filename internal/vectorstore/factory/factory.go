// Package factory constructs the configured vector store backend.
package factory

import (
	"fmt"

	"scholar-rag/internal/config"
	"scholar-rag/internal/vectorstore"
	"scholar-rag/internal/vectorstore/chromem"
	"scholar-rag/internal/vectorstore/postgres"
)

// New returns the store selected by cfg.Store.Type. The handle is expensive
// to initialize and is meant to be constructed once per process.
func New(cfg *config.Config) (vectorstore.Store, error) {
	switch cfg.Store.Type {
	case "chromem":
		return chromem.New(cfg.Store.Path, cfg.Store.Collection, false)
	case "postgres":
		return postgres.New(&cfg.Store.Database)
	default:
		return nil, fmt.Errorf("unknown vector store type: %q", cfg.Store.Type)
	}
}
