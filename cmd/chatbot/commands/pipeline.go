// ABOUTME: Shared pipeline construction for the serve and chat commands
// ABOUTME: Builds the OpenAI client, splitter, and index, then ingests the corpus
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"github.com/heulosofia/chatbot/internal/chunker"
	"github.com/heulosofia/chatbot/internal/config"
	"github.com/heulosofia/chatbot/internal/index"
	"github.com/heulosofia/chatbot/internal/llm"
	"github.com/heulosofia/chatbot/internal/loader"
	"github.com/heulosofia/chatbot/internal/models"
)

// loadConfig reads .env (if present) and the application config.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load(configPath)
}

// pipeline is everything the serving commands need beyond the config.
type pipeline struct {
	client   *llm.Client
	index    *index.Index
	splitter *chunker.Splitter
	nextSeq  int // first sequence index available for uploads
}

// buildPipeline constructs the provider client and index, then ingests the
// knowledge base once, single-threaded, before any traffic is answered.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	splitter, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	ix := index.New(client, cfg.EmbedBatchSize)

	docs, err := loader.Load(cfg.DocsDir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("knowledge base directory %s does not exist, starting with an empty index", cfg.DocsDir)
		docs = nil
	} else if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}

	var chunks []models.Chunk
	for _, doc := range docs {
		chunks = append(chunks, splitter.Split(doc)...)
	}

	added, err := ix.Add(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("indexing knowledge base: %w", err)
	}
	log.Printf("ingested %d documents, indexed %d of %d chunks", len(docs), added, len(chunks))

	return &pipeline{client: client, index: ix, splitter: splitter, nextSeq: len(docs) + 1}, nil
}
