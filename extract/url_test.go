package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/lore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLExtractor_Webpage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>t</title><script>ignore()</script></head>` +
			`<body><p>visible text</p><style>.x{}</style></body></html>`))
	}))
	defer server.Close()

	extractor := NewURLExtractor(server.Client(), nil)
	result := extractor.Extract(context.Background(), &core.Source{
		ID:   "s1",
		Type: core.SourceTypeURL,
		URL:  server.URL,
	})

	require.True(t, result.Success)
	assert.Equal(t, MethodWebScraping, result.Method)
	assert.Contains(t, result.Content, "visible text")
	assert.NotContains(t, result.Content, "ignore()")
	assert.Equal(t, "200", result.Metadata["status_code"])
}

func TestURLExtractor_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := NewURLExtractor(server.Client(), nil)
	result := extractor.Extract(context.Background(), &core.Source{ID: "s1", URL: server.URL})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "status 500")
}

func TestURLExtractor_UnreachableHost(t *testing.T) {
	extractor := NewURLExtractor(nil, nil)
	result := extractor.Extract(context.Background(), &core.Source{
		ID:  "s1",
		URL: "https://bad.invalid",
	})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestURLExtractor_YouTubeWithoutTranscriber(t *testing.T) {
	extractor := NewURLExtractor(nil, nil)
	result := extractor.Extract(context.Background(), &core.Source{
		ID:  "s1",
		URL: "https://www.youtube.com/watch?v=abc123",
	})

	require.False(t, result.Success)
	assert.Equal(t, ErrNoTranscriber.Error(), result.Error)
}

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "watch url", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short url", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "embed url", url: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "v url", url: "https://www.youtube.com/v/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url with extra params", url: "https://www.youtube.com/watch?v=abc&t=42", want: "abc"},
		{name: "unrecognized", url: "https://www.youtube.com/feed", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YouTubeVideoID(tt.url))
		})
	}
}

func TestHTMLText_MalformedInput(t *testing.T) {
	// The html parser is lenient; fragments still yield their text.
	got := htmlText("<p>unclosed paragraph")
	assert.Equal(t, "unclosed paragraph", got)
}
