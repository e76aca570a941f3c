// ABOUTME: Splits documents into overlapping fixed-size text windows for embedding
// ABOUTME: Cuts preferentially at paragraph, newline, sentence, and word boundaries
package chunker

import (
	"fmt"
	"strings"

	"github.com/heulosofia/chatbot/internal/models"
)

// boundaries, in preference order. The final fallback is a hard cut.
var boundaries = [][]rune{
	[]rune("\n\n"),
	[]rune("\n"),
	[]rune(". "),
	[]rune(" "),
}

// Splitter cuts document text into chunks of at most Size runes, with
// Overlap runes shared between consecutive chunks of the same document.
type Splitter struct {
	size    int
	overlap int
}

// New validates the chunking parameters. Overlap must be strictly smaller
// than size or the window could never advance.
func New(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap cannot be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split produces the chunk sequence for one document. The output is
// deterministic: the same document and parameters always yield the same
// chunks. Every chunk carries the parent document's metadata.
func (s *Splitter) Split(doc models.Document) []models.Chunk {
	runes := []rune(doc.RawText)
	md := doc.Metadata()

	var chunks []models.Chunk
	start := 0
	for start < len(runes) {
		end := start + s.size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = s.cut(runes, start, end)
		}

		text := strings.TrimSpace(string(runes[start:end]))
		if text != "" {
			chunks = append(chunks, models.Chunk{Text: text, Metadata: md})
		}

		if end == len(runes) {
			break
		}
		next := end - s.overlap
		if next <= start {
			next = end // window must always advance
		}
		start = next
	}

	return chunks
}

// cut picks the window's end position: the last natural boundary in the
// second half of the window, or the hard limit when none is found.
func (s *Splitter) cut(runes []rune, start, limit int) int {
	minCut := start + s.size/2
	for _, sep := range boundaries {
		if idx := lastIndex(runes, sep, start, limit); idx >= minCut {
			return idx + len(sep)
		}
	}
	return limit
}

// lastIndex returns the position of the last occurrence of sep fully inside
// runes[start:limit], or -1.
func lastIndex(runes, sep []rune, start, limit int) int {
	for i := limit - len(sep); i >= start; i-- {
		match := true
		for j := range sep {
			if runes[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
