// Package source extracts plain text from uploaded draft-source
// documents so it can be fed into first-draft prompts.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Document is the extracted content of one source file.
type Document struct {
	Title string
	Text  string
}

// Extractor pulls plain text out of one file format.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Document, error)
}

// SupportedExtensions lists the file extensions drafting can read.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// Extract dispatches to the extractor for filename.
func Extract(r io.Reader, filename string) (*Document, error) {
	ex, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	return ex.Extract(r, filename)
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
