// ABOUTME: Tests for the sliding-window document splitter
// ABOUTME: Verifies size bounds, determinism, boundary cuts, and parameter checks
package chunker

import (
	"strings"
	"testing"

	"github.com/heulosofia/chatbot/internal/models"
)

func TestNewRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"valid", 1000, 200, false},
		{"zero overlap", 100, 0, false},
		{"overlap equals size", 100, 100, true},
		{"overlap exceeds size", 100, 150, true},
		{"negative overlap", 100, -1, true},
		{"zero size", 0, 0, true},
		{"negative size", -5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%d, %d) error = %v, wantErr %v", tt.size, tt.overlap, err, tt.wantErr)
			}
		})
	}
}

func doc(text string) models.Document {
	return models.Document{Source: "docs/base.txt", SequenceIndex: 1, RawText: text}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s, err := New(1000, 200)
	if err != nil {
		t.Fatal(err)
	}

	chunks := s.Split(doc("A capital de Wonderland é Lumen City."))
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "A capital de Wonderland é Lumen City." {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	s, _ := New(100, 20)
	if chunks := s.Split(doc("")); chunks != nil {
		t.Errorf("got %d chunks for empty text, want none", len(chunks))
	}
	if chunks := s.Split(doc("   \n\n  ")); chunks != nil {
		t.Errorf("got %d chunks for whitespace text, want none", len(chunks))
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	s, _ := New(100, 20)
	text := strings.Repeat("heulosofia é a filosofia da felicidade. ", 50)

	chunks := s.Split(doc(text))
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c.Text)); n > 100 {
			t.Errorf("chunk %d has %d runes, want <= 100", i, n)
		}
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	s, _ := New(120, 30)
	text := strings.Repeat("Primeira frase. Segunda frase um pouco maior.\n\n", 30)
	d := doc(text)

	first := s.Split(d)
	second := s.Split(d)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitPrefersSentenceBoundary(t *testing.T) {
	s, _ := New(100, 10)
	// Two sentences, the first ending past the window midpoint.
	text := strings.Repeat("a", 70) + ". " + strings.Repeat("b", 80)

	chunks := s.Split(doc(text))
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(chunks))
	}
	if got := chunks[0].Text; got != strings.Repeat("a", 70)+"." {
		t.Errorf("chunk 0 = %q, want cut after the sentence", got)
	}
}

func TestSplitHardCutWithoutBoundaries(t *testing.T) {
	s, _ := New(50, 10)
	text := strings.Repeat("x", 120)

	chunks := s.Split(doc(text))
	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	if chunks[0].Text != strings.Repeat("x", 50) {
		t.Errorf("chunk 0 = %q, want a hard 50-rune cut", chunks[0].Text)
	}
	// Overlap: chunk 1 starts 10 runes before chunk 0 ended.
	if !strings.HasPrefix(chunks[1].Text, strings.Repeat("x", 10)) {
		t.Errorf("chunk 1 = %q, want 10 overlapping runes", chunks[1].Text)
	}
}

func TestSplitCoversAllContent(t *testing.T) {
	s, _ := New(80, 20)
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima mike november oscar papa quebec romeo sierra tango uniform victor whiskey xray yankee zulu"

	chunks := s.Split(doc(text))
	joined := ""
	for _, c := range chunks {
		joined += c.Text + " "
	}
	for _, word := range strings.Fields(text) {
		if !strings.Contains(joined, word) {
			t.Errorf("word %q missing from chunks", word)
		}
	}
}

func TestSplitPropagatesMetadata(t *testing.T) {
	s, _ := New(50, 10)
	d := models.Document{Source: "docs/base.pdf", SequenceIndex: 7, IsPDF: true, RawText: strings.Repeat("y", 200)}

	for i, c := range s.Split(d) {
		if c.Metadata.Source != "docs/base.pdf" || c.Metadata.SequenceIndex != 7 || !c.Metadata.IsPDF {
			t.Errorf("chunk %d metadata = %+v", i, c.Metadata)
		}
	}
}
