// ABOUTME: Tests for the in-memory vector index
// ABOUTME: Uses a stub embedder to verify ranking, ties, and batch behavior
package index

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/heulosofia/chatbot/internal/models"
)

// stubEmbedder returns canned vectors and can be made to fail per batch or
// return fewer vectors than inputs.
type stubEmbedder struct {
	vectors    map[string][]float32
	failBatch  map[int]bool // fail the nth EmbedBatch call
	shortBatch map[int]bool // drop the last vector of the nth EmbedBatch call
	batchCalls int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v, ok := s.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no stub vector for %q", text)
	}
	return v, nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	call := s.batchCalls
	s.batchCalls++
	if s.failBatch[call] {
		return nil, errors.New("stubbed provider failure")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", t)
		}
		out[i] = v
	}
	if s.shortBatch[call] && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func chunk(text string) models.Chunk {
	return models.Chunk{Text: text, Metadata: models.Metadata{Source: "docs/" + text + ".txt", SequenceIndex: 1}}
}

func TestSearchRanksBySimilarity(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"norte":    {1, 0, 0},
		"quase":    {0.9, 0.1, 0},
		"leste":    {0, 1, 0},
		"pergunta": {1, 0, 0},
	}}
	ix := New(emb, 0)

	added, err := ix.Add(context.Background(), []models.Chunk{chunk("leste"), chunk("quase"), chunk("norte")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added != 3 {
		t.Fatalf("added = %d, want 3", added)
	}

	results, err := ix.Search(context.Background(), "pergunta", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Chunk.Text != "norte" {
		t.Errorf("results[0] = %q, want norte", results[0].Chunk.Text)
	}
	if results[1].Chunk.Text != "quase" {
		t.Errorf("results[1] = %q, want quase", results[1].Chunk.Text)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %f <= %f", results[0].Score, results[1].Score)
	}
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	same := []float32{0, 1, 0}
	emb := &stubEmbedder{vectors: map[string][]float32{
		"primeiro": same,
		"segundo":  same,
		"terceiro": same,
		"consulta": {0, 1, 0},
	}}
	ix := New(emb, 0)

	_, err := ix.Add(context.Background(), []models.Chunk{chunk("primeiro"), chunk("segundo"), chunk("terceiro")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := ix.Search(context.Background(), "consulta", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"primeiro", "segundo", "terceiro"}
	for i, w := range want {
		if results[i].Chunk.Text != w {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Chunk.Text, w)
		}
	}
}

func TestSearchKLargerThanIndex(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{
		"um": {1, 0}, "q": {1, 0},
	}}
	ix := New(emb, 0)
	if _, err := ix.Add(context.Background(), []models.Chunk{chunk("um")}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := ix.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestAddFailedBatchDoesNotAbortRemaining(t *testing.T) {
	vectors := map[string][]float32{}
	var chunks []models.Chunk
	for i := 0; i < 6; i++ {
		text := fmt.Sprintf("chunk-%d", i)
		vectors[text] = []float32{float32(i), 1}
		chunks = append(chunks, chunk(text))
	}
	// Batch size 2 → 3 batches; fail the middle one.
	emb := &stubEmbedder{vectors: vectors, failBatch: map[int]bool{1: true}}
	ix := New(emb, 2)

	added, err := ix.Add(context.Background(), chunks)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added != 4 {
		t.Errorf("added = %d, want 4 (one batch of 2 skipped)", added)
	}
	if ix.Len() != 4 {
		t.Errorf("Len = %d, want 4", ix.Len())
	}
}

func TestAddSkipsBatchWithWrongVectorCount(t *testing.T) {
	vectors := map[string][]float32{}
	var chunks []models.Chunk
	for i := 0; i < 4; i++ {
		text := fmt.Sprintf("chunk-%d", i)
		vectors[text] = []float32{float32(i), 1}
		chunks = append(chunks, chunk(text))
	}
	// Batch size 2 → 2 batches; the first returns one vector for two inputs.
	emb := &stubEmbedder{vectors: vectors, shortBatch: map[int]bool{0: true}}
	ix := New(emb, 2)

	added, err := ix.Add(context.Background(), chunks)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2 (short batch skipped)", added)
	}
	if ix.Len() != 2 {
		t.Errorf("Len = %d, want 2", ix.Len())
	}
}

func TestAddStopsOnCancelledContext(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{"a": {1}}}
	ix := New(emb, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	emb.failBatch = map[int]bool{0: true, 1: true}

	_, err := ix.Add(ctx, []models.Chunk{chunk("a"), chunk("a")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	emb := &stubEmbedder{vectors: map[string][]float32{"q": {1, 0}}}
	ix := New(emb, 0)

	results, err := ix.Search(context.Background(), "q", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from empty index", len(results))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"dimension mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity = %f, want %f", got, tt.want)
			}
		})
	}
}
