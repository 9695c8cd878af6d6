package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/poiesic/lore/core"
)

// Extraction method tags for file-backed documents.
const (
	MethodPDFExtraction     = "pdf_extraction"
	MethodDocxExtraction    = "docx_extraction"
	MethodPPTExtraction     = "ppt_extraction"
	MethodEmailExtraction   = "email_extraction"
	MethodGenericExtraction = "generic_extraction"
)

// maxDocumentSize bounds how much of a document file is read.
const maxDocumentSize = 10 << 20 // 10MB

// DocumentExtractor reads file-backed documents. PDFs are parsed for their
// plain text; other formats are read as text with a per-format method tag.
type DocumentExtractor struct{}

var _ Extractor = (*DocumentExtractor)(nil)

// NewDocumentExtractor creates an extractor for document sources.
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// Extract reads the source file and returns its text content.
func (e *DocumentExtractor) Extract(_ context.Context, source *core.Source) Result {
	name := source.Name
	if name == "" {
		name = filepath.Base(source.FilePath)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(source.FilePath))
	}

	var (
		content string
		err     error
	)
	method := methodForExtension(ext)

	if ext == ".pdf" {
		content, err = extractPDFText(source.FilePath)
	} else {
		content, err = readFileText(source.FilePath)
	}
	if err != nil {
		return Fail(fmt.Errorf("extracting %s: %w", name, err))
	}

	info, statErr := os.Stat(source.FilePath)
	size := int64(0)
	if statErr == nil {
		size = info.Size()
	}

	return Succeed(content, method, map[string]string{
		"file_name": name,
		"file_type": ext,
		"file_size": strconv.FormatInt(size, 10),
	})
}

func methodForExtension(ext string) string {
	switch ext {
	case ".pdf":
		return MethodPDFExtraction
	case ".docx", ".doc":
		return MethodDocxExtraction
	case ".ppt", ".pptx":
		return MethodPPTExtraction
	case ".eml", ".msg":
		return MethodEmailExtraction
	default:
		return MethodGenericExtraction
	}
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	b, err := io.ReadAll(io.LimitReader(plain, maxDocumentSize))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readFileText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxDocumentSize+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxDocumentSize {
		return "", ErrContentTooLarge
	}
	return string(b), nil
}
