// ABOUTME: Chunk is the unit of retrieval: a bounded slice of a source document
// ABOUTME: Metadata ties each chunk back to the document it was cut from
package models

// Metadata identifies the source document a chunk came from.
type Metadata struct {
	Source        string `json:"source"`
	SequenceIndex int    `json:"sequence_index"`
	IsPDF         bool   `json:"is_pdf"`
}

// Chunk is a bounded-length piece of a document used for embedding and
// similarity search. Immutable once created.
type Chunk struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// SearchResult is a retrieved chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
