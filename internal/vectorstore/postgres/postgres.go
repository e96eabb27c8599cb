// Package postgres backs the vector store with a Postgres/pgvector table
// via bun, for deployments where the index outlives a single host.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"scholar-rag/internal/config"
	"scholar-rag/internal/vectorstore"
)

// vectorSize matches the embedding model's output dimensions.
const vectorSize = 768

// ChunkRow is one indexed chunk. Distance is populated only by Query.
type ChunkRow struct {
	bun.BaseModel `bun:"table:paper_chunks,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement"`
	DocID         string    `bun:"doc_id,notnull"`
	Content       string    `bun:"content,notnull"`
	PaperID       string    `bun:"paper_id,notnull"`
	PaperTitle    string    `bun:"paper_title,notnull"`
	Authors       string    `bun:"authors"`
	Section       string    `bun:"section"`
	ChunkIndex    int       `bun:"chunk_index"`
	Embedding     []float32 `bun:"embedding,notnull,type:vector(768)"`
	Distance      float64   `bun:"distance,scanonly"`
}

type Store struct {
	db *bun.DB
}

// New connects to the database and prepares the bun handle.
func New(cfg *config.DatabaseConfig) (*Store, error) {
	dsn := cfg.URL + "?sslmode=disable"
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn), pgdriver.WithPassword(cfg.Password)))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Store{db: db}, nil
}

// Rebuild drops and recreates the chunk table, then bulk-inserts all rows.
func (s *Store) Rebuild(ctx context.Context, docs []vectorstore.Document) error {
	if _, err := s.db.NewDropTable().Model((*ChunkRow)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("dropping chunk table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*ChunkRow)(nil)).Exec(ctx); err != nil {
		return fmt.Errorf("creating chunk table: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	rows := make([]ChunkRow, len(docs))
	for i, doc := range docs {
		chunkIndex, _ := strconv.Atoi(doc.Metadata["chunk_index"])
		rows[i] = ChunkRow{
			DocID:      doc.ID,
			Content:    doc.Text,
			PaperID:    doc.Metadata["paper_id"],
			PaperTitle: doc.Metadata["paper_title"],
			Authors:    doc.Metadata["authors"],
			Section:    doc.Metadata["section"],
			ChunkIndex: chunkIndex,
			Embedding:  doc.Embedding,
		}
	}
	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("inserting chunks: %w", err)
	}
	return nil
}

// Query orders rows by pgvector distance. The distance is mapped to
// 1/(1+distance) so both store backends rank higher scores first.
func (s *Store) Query(ctx context.Context, embedding []float32, k int) ([]vectorstore.Result, error) {
	if k <= 0 {
		return nil, nil
	}
	var rows []ChunkRow
	err := s.db.NewSelect().
		Model(&rows).
		ColumnExpr("c.*").
		ColumnExpr("embedding <-> ? AS distance", embedding).
		OrderExpr("embedding <-> ?", embedding).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}

	out := make([]vectorstore.Result, len(rows))
	for i, row := range rows {
		out[i] = vectorstore.Result{
			ID:   row.DocID,
			Text: row.Content,
			Metadata: map[string]string{
				"paper_id":    row.PaperID,
				"paper_title": row.PaperTitle,
				"authors":     row.Authors,
				"section":     row.Section,
				"chunk_index": strconv.Itoa(row.ChunkIndex),
			},
			Similarity: float32(1 / (1 + row.Distance)),
		}
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.db.NewSelect().Model((*ChunkRow)(nil)).Count(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
