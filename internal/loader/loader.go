// ABOUTME: Loads the knowledge base from a directory of .txt and .pdf files
// ABOUTME: Per-file failures are logged and absorbed, never fatal to ingestion
package loader

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/heulosofia/chatbot/internal/models"
)

// Load walks root in lexical order and returns one Document per .txt or
// .pdf file, with sequence indices strictly increasing from 1 across both
// kinds. Files with other extensions are skipped with a diagnostic. A file
// that cannot be read or parsed still yields a Document with empty RawText
// so the corpus shape stays stable.
func Load(root string) ([]models.Document, error) {
	var docs []models.Document
	seq := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Only a missing or unreadable root stops ingestion; anything
			// below it is logged and skipped.
			if path == root {
				return err
			}
			log.Printf("loader: walking %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".pdf":
		default:
			log.Printf("loader: skipping %s: unsupported extension", path)
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Printf("loader: reading %s: %v", path, readErr)
			data = nil
		}

		seq++
		doc, loadErr := FromBytes(path, data, seq)
		if loadErr != nil {
			// Emit the document anyway; retrieval just won't see its text.
			log.Printf("loader: %v", loadErr)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return docs, nil
}

// FromBytes builds a Document from an in-memory file, used both by the
// directory walk and by uploads. For PDFs an extraction failure returns the
// Document with empty RawText alongside the error.
func FromBytes(name string, data []byte, seq int) (models.Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return models.Document{
			Source:        name,
			SequenceIndex: seq,
			// Drop invalid UTF-8 instead of failing the file.
			RawText: strings.ToValidUTF8(string(data), ""),
		}, nil
	case ".pdf":
		doc := models.Document{
			Source:        name,
			SequenceIndex: seq,
			IsPDF:         true,
		}
		text, err := ExtractPDFText(data)
		if err != nil {
			return doc, fmt.Errorf("extracting %s: %w", name, err)
		}
		doc.RawText = text
		return doc, nil
	default:
		return models.Document{}, fmt.Errorf("unsupported file type: %s", name)
	}
}

// Supported reports whether the loader knows how to ingest the file.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".pdf":
		return true
	}
	return false
}
