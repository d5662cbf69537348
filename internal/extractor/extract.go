// Package extractor turns an input document into the single block of text
// the statement parser reads. It never performs OCR: scanned statements
// must arrive as text already recognized by an OCR tool.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither text nor PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrNoText is returned when a document holds no readable text, which
	// for a PDF usually means it is an image-only scan.
	ErrNoText = errors.New("no readable text in document")
)

var pdfMagic = []byte("%PDF-")

// ExtractFile reads the document at path and returns its text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Extract(filepath.Base(path), data)
}

// Extract returns the text of an in-memory document. The name's extension
// selects the format; content sniffing covers PDFs uploaded under another
// name.
func Extract(name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".pdf" || bytes.HasPrefix(data, pdfMagic):
		return ExtractPDF(data)
	case ext == ".txt" || ext == "" || ext == ".text":
		return ExtractPlain(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ExtractPlain validates OCR output saved as a text file.
func ExtractPlain(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrNoText)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrNoText
	}
	return string(data), nil
}
