// Package chromem backs the vector store with an embedded chromem-go
// database persisted on disk.
package chromem

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"scholar-rag/internal/vectorstore"
)

const compress = false

// Store wraps a chromem-go collection. The database handle is opened once
// and shared across all queries.
type Store struct {
	db             *chromem.DB
	collection     *chromem.Collection
	collectionName string
}

// New opens (or creates) the persistent database at dbPath and binds the
// named collection. inMemory is for tests.
func New(dbPath, collectionName string, inMemory bool) (*Store, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	return &Store{
		db:             db,
		collection:     collection,
		collectionName: collectionName,
	}, nil
}

// Rebuild drops the prior collection if present, creates a fresh one, and
// adds all documents in one bulk call.
func (s *Store) Rebuild(ctx context.Context, docs []vectorstore.Document) error {
	if err := s.db.DeleteCollection(s.collectionName); err != nil {
		// Deletion is best-effort, not a precondition.
		log.Warn().Err(err).Str("collection", s.collectionName).Msg("Could not delete prior collection")
	}

	collection, err := s.db.CreateCollection(s.collectionName, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create collection: %v", err)
	}
	s.collection = collection

	if len(docs) == 0 {
		return nil
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:        doc.ID,
			Content:   doc.Text,
			Metadata:  doc.Metadata,
			Embedding: doc.Embedding,
		}
	}
	if err := s.collection.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

// Query performs a similarity search. k is clamped to the collection size
// because chromem rejects nResults above it.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]vectorstore.Result, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	out := make([]vectorstore.Result, len(results))
	for i, r := range results {
		out[i] = vectorstore.Result{
			ID:         r.ID,
			Text:       r.Content,
			Metadata:   r.Metadata,
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}
