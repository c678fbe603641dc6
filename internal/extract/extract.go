// Package extract turns uploaded resume files into plain text plus
// structural hints for the formatting analyzer. PDF parsing is backed
// by pdfcpu; DOCX files are unpacked directly from their OOXML parts.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"atspro/internal/errors"
	"atspro/internal/types"
)

// Extractor converts raw file bytes into resume text.
type Extractor struct {
	logger *errors.Logger
}

// New creates an extractor. The logger may be nil for silent operation.
func New(logger *errors.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// SupportedExtensions lists the file extensions Extract accepts.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt", ".md"}
}

// Extract dispatches on the filename extension and returns the
// extracted text plus any structural hints the format reveals. Plain
// text formats carry no hints.
func (x *Extractor) Extract(filename string, data []byte) (string, *types.StructuralHints, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text  string
		hints *types.StructuralHints
		err   error
	)
	switch ext {
	case ".pdf":
		text, hints, err = x.extractPDF(data)
	case ".docx":
		text, hints, err = x.extractDOCX(data)
	case ".txt", ".md":
		text = string(data)
	default:
		return "", nil, errors.NewValidationError(
			errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported file format %q (supported: %s)", ext, strings.Join(SupportedExtensions(), ", ")),
			nil,
		).WithContext("filename", filename)
	}
	if err != nil {
		return "", nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil, errors.NewDocumentError(
			errors.ErrCodeEmptyInput,
			"could not extract any text from the document",
			nil,
		).WithContext("filename", filename)
	}

	if x.logger != nil {
		x.logger.Debug("document extracted",
			"filename", filename,
			"format", ext,
			"chars", len(text),
		)
	}
	return text, hints, nil
}
