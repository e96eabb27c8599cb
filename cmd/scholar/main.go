package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scholar-rag/internal/cache"
	"scholar-rag/internal/config"
	"scholar-rag/internal/corpus"
	"scholar-rag/internal/embedding"
	"scholar-rag/internal/generator"
	"scholar-rag/internal/helper"
	"scholar-rag/internal/indexer"
	"scholar-rag/internal/models"
	"scholar-rag/internal/parser"
	"scholar-rag/internal/retrieval"
	"scholar-rag/internal/segmenter"
	"scholar-rag/internal/server"
	"scholar-rag/internal/sources"
	"scholar-rag/internal/vectorstore/factory"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	_ = godotenv.Load()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	ingest := flag.Bool("ingest", false, "Process downloaded papers into the chunk corpus")
	index := flag.Bool("index", false, "Embed the chunk corpus and rebuild the vector index")
	query := flag.String("query", "", "Ask a one-shot question")
	serve := flag.Bool("serve", false, "Run the HTTP service")
	dryRun := flag.Bool("dry-run", false, "Ingest only: print chunks, do not write the corpus file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	ctx := context.Background()

	switch {
	case *ingest:
		runIngest(cfg, *dryRun)
	case *index:
		runIndex(ctx, cfg)
	case *query != "":
		runQuery(ctx, cfg, *query)
	case *serve:
		runServe(cfg)
	default:
		log.Fatal().Msg("Provide one of -ingest, -index, -query or -serve")
	}
}

// runIngest turns downloaded papers into the chunk corpus. Missing or
// corrupt PDFs skip the paper and continue the batch.
func runIngest(cfg *config.Config, dryRun bool) {
	papers, err := corpus.LoadPapers(cfg.Paths.MetadataFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading paper metadata")
	}

	seg := segmenter.New(cfg.RAG.MinTokens, cfg.RAG.MaxTokens)
	var allChunks []models.Chunk

	for _, paper := range papers {
		if _, err := os.Stat(paper.PDFPath); err != nil {
			log.Warn().Str("paper", paper.ArxivID).Str("pdf", paper.PDFPath).Msg("PDF missing, skipping paper")
			continue
		}
		rawText, err := parser.ExtractText(paper.PDFPath)
		if err != nil {
			log.Error().Err(err).Str("paper", paper.ArxivID).Msg("Error extracting PDF, skipping paper")
			continue
		}
		chunks := seg.ChunkPaper(paper, rawText)
		log.Info().Str("paper", paper.ArxivID).Int("chunks", len(chunks)).Msg("Processed paper")
		allChunks = append(allChunks, chunks...)
	}

	if dryRun {
		helper.PrettyPrint(allChunks)
		return
	}
	if err := corpus.SaveChunks(cfg.Paths.ChunksFile, allChunks); err != nil {
		log.Fatal().Err(err).Msg("Error saving chunk corpus")
	}
	log.Info().Int("chunks", len(allChunks)).Str("path", cfg.Paths.ChunksFile).Msg("Saved chunk corpus")
}

// runIndex rebuilds the vector index from the chunk corpus. An embedding
// failure is fatal: a partial index is worse than a failed build.
func runIndex(ctx context.Context, cfg *config.Config) {
	chunks, err := corpus.LoadChunks(cfg.Paths.ChunksFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading chunk corpus")
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}
	store, err := factory.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector store")
	}

	ix := indexer.New(embedder, store, cfg.RAG.BatchSize)
	if err := ix.Build(ctx, chunks); err != nil {
		log.Fatal().Err(err).Msg("Error building index")
	}
}

func buildGenerator(cfg *config.Config) generator.Generator {
	var retriever generator.Retriever
	if !cfg.RAG.UseMock {
		embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing embedder")
		}
		store, err := factory.New(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating vector store")
		}
		retriever = retrieval.New(embedder, store)
	}

	answerCache := cache.Load(cfg.Paths.CacheFile)
	gen, err := generator.New(cfg, retriever, answerCache)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating generator")
	}
	return gen
}

func runQuery(ctx context.Context, cfg *config.Config, query string) {
	gen := buildGenerator(cfg)

	result, err := gen.Answer(ctx, query)
	if err != nil {
		log.Fatal().Err(err).Msg("Error answering query")
	}

	log.Info().Msg("Query: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", query)

	log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", result.Answer)
	if result.Kind == generator.KindFallback {
		log.Warn().Str("reason", result.Reason).Msg("Answer is an extractive fallback")
	}

	log.Info().Msg("Sources: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	for i, source := range sources.FromChunks(result.Chunks) {
		fmt.Printf("%d. %s\n", i+1, source.PaperTitle)
		if source.Authors != "" {
			fmt.Printf("   Authors: %s\n", source.Authors)
		}
		if source.Link != "" {
			fmt.Printf("   Link: %s\n", source.Link)
		}
		if source.Section != "" {
			fmt.Printf("   Section: %s\n", source.Section)
		}
	}
}

func runServe(cfg *config.Config) {
	gen := buildGenerator(cfg)
	srv := server.New(gen, cfg.Server.AllowOrigin)
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("HTTP server stopped")
	}
}
