// ABOUTME: Document represents one source file loaded from the knowledge base
// ABOUTME: Produced by the loader and consumed by the chunker, then discarded
package models

// Document is a raw source file read during ingestion. It only lives long
// enough to be chunked; retrieval works on Chunks, never on Documents.
type Document struct {
	Source        string `json:"source"`
	SequenceIndex int    `json:"sequence_index"`
	RawText       string `json:"raw_text"`
	IsPDF         bool   `json:"is_pdf"`
}

// Metadata carries the parent Document's identity on every Chunk cut from it.
func (d Document) Metadata() Metadata {
	return Metadata{
		Source:        d.Source,
		SequenceIndex: d.SequenceIndex,
		IsPDF:         d.IsPDF,
	}
}
