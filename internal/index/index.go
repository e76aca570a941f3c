// ABOUTME: In-memory vector index over document chunks
// ABOUTME: Batched embedding inserts, brute-force cosine similarity search
package index

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/heulosofia/chatbot/internal/llm"
	"github.com/heulosofia/chatbot/internal/models"
)

// DefaultBatchSize bounds one embedding request to stay inside provider
// request-size limits.
const DefaultBatchSize = 500

type entry struct {
	vector []float32
	chunk  models.Chunk
}

// Index stores (embedding, chunk) pairs in insertion order. It is append
// only and lives for the process lifetime; nothing is persisted.
type Index struct {
	embedder  llm.Embedder
	batchSize int

	mu      sync.RWMutex
	entries []entry
}

// New creates an empty index that embeds via the given provider.
func New(embedder llm.Embedder, batchSize int) *Index {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Index{embedder: embedder, batchSize: batchSize}
}

// Add embeds the chunks in batches and stores them. A failed batch is
// logged and skipped so the remaining batches still land; only caller
// cancellation stops the loop early. Returns how many chunks were indexed.
func (ix *Index) Add(ctx context.Context, chunks []models.Chunk) (int, error) {
	added := 0
	for start := 0; start < len(chunks); start += ix.batchSize {
		end := start + ix.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			log.Printf("index: embedding batch %d-%d: %v", start, end, err)
			if ctx.Err() != nil {
				return added, ctx.Err()
			}
			continue
		}
		if len(vectors) != len(batch) {
			log.Printf("index: embedding batch %d-%d: got %d vectors for %d chunks, skipping", start, end, len(vectors), len(batch))
			continue
		}

		ix.mu.Lock()
		for i, c := range batch {
			ix.entries = append(ix.entries, entry{vector: vectors[i], chunk: c})
		}
		ix.mu.Unlock()
		added += len(batch)
	}
	return added, nil
}

// Search embeds the query text and returns the k most similar chunks, best
// first. Ties keep insertion order.
func (ix *Index) Search(ctx context.Context, text string, k int) ([]models.SearchResult, error) {
	query, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	ix.mu.RLock()
	results := make([]models.SearchResult, len(ix.entries))
	for i, e := range ix.entries {
		results[i] = models.SearchResult{
			Chunk: e.chunk,
			Score: cosineSimilarity(query, e.vector),
		}
	}
	ix.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Len returns how many chunks are indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// cosineSimilarity between two vectors; 0 when dimensions differ or either
// vector is all zeros.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
