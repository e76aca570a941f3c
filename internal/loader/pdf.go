// ABOUTME: PDF text extraction for the document loader
// ABOUTME: Thin wrapper over ledongthuc/pdf returning concatenated page text
package loader

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the plain text of a PDF given its raw bytes.
func ExtractPDFText(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files; treat that as an
	// extraction error like any other.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("creating pdf reader: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading pdf content: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("reading pdf content: %w", err)
	}
	return buf.String(), nil
}
