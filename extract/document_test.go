package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/lore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDocumentExtractor_PlainText(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "meeting notes content")

	extractor := NewDocumentExtractor()
	result := extractor.Extract(context.Background(), &core.Source{
		ID:       "s1",
		Type:     core.SourceTypeDocument,
		Name:     "notes.txt",
		FilePath: path,
	})

	require.True(t, result.Success)
	assert.Equal(t, "meeting notes content", result.Content)
	assert.Equal(t, MethodGenericExtraction, result.Method)
	assert.Equal(t, "notes.txt", result.Metadata["file_name"])
	assert.Equal(t, ".txt", result.Metadata["file_type"])
}

func TestDocumentExtractor_MissingFile(t *testing.T) {
	extractor := NewDocumentExtractor()
	result := extractor.Extract(context.Background(), &core.Source{
		ID:       "s1",
		Type:     core.SourceTypeDocument,
		Name:     "gone.txt",
		FilePath: filepath.Join(t.TempDir(), "gone.txt"),
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "gone.txt")
}

func TestDocumentExtractor_CorruptPDF(t *testing.T) {
	// Not a real PDF; the parser must fail, and the failure must surface as
	// a Result rather than an error or panic.
	path := writeTempFile(t, "broken.pdf", "this is not a pdf")

	extractor := NewDocumentExtractor()
	result := extractor.Extract(context.Background(), &core.Source{
		ID:       "s1",
		Type:     core.SourceTypeDocument,
		Name:     "broken.pdf",
		FilePath: path,
	})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestMethodForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{ext: ".pdf", want: MethodPDFExtraction},
		{ext: ".docx", want: MethodDocxExtraction},
		{ext: ".doc", want: MethodDocxExtraction},
		{ext: ".ppt", want: MethodPPTExtraction},
		{ext: ".pptx", want: MethodPPTExtraction},
		{ext: ".eml", want: MethodEmailExtraction},
		{ext: ".msg", want: MethodEmailExtraction},
		{ext: ".txt", want: MethodGenericExtraction},
		{ext: "", want: MethodGenericExtraction},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, methodForExtension(tt.ext), "extension %q", tt.ext)
	}
}
