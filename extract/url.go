package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/lore/core"
	"golang.org/x/net/html"
)

// Extraction method tags for web sources.
const (
	MethodWebScraping          = "web_scraping"
	MethodYouTubeTranscription = "youtube_transcription"
)

const (
	maxFetchSize       = 5 << 20 // 5MB
	defaultFetchWindow = 10 * time.Second
)

// youTubeIDPatterns match the URL shapes a video id can appear in.
var youTubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
}

// URLExtractor fetches web pages and extracts their visible text. YouTube
// URLs are routed to the transcription collaborator instead of being
// scraped.
type URLExtractor struct {
	client      *http.Client
	transcriber Transcriber
}

var _ Extractor = (*URLExtractor)(nil)

// NewURLExtractor creates an extractor for url sources. A nil client gets a
// default with a bounded timeout. The transcriber may be nil; YouTube
// sources then fail with ErrNoTranscriber.
func NewURLExtractor(client *http.Client, transcriber Transcriber) *URLExtractor {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchWindow}
	}
	return &URLExtractor{client: client, transcriber: transcriber}
}

// Extract fetches the source URL and returns its text content.
func (e *URLExtractor) Extract(ctx context.Context, source *core.Source) Result {
	if isYouTubeURL(source.URL) {
		return e.extractYouTube(ctx, source)
	}
	return e.extractWebpage(ctx, source)
}

func (e *URLExtractor) extractYouTube(ctx context.Context, source *core.Source) Result {
	if e.transcriber == nil {
		return Fail(ErrNoTranscriber)
	}

	videoID := YouTubeVideoID(source.URL)
	transcript, err := e.transcriber.TranscribeVideo(ctx, videoID)
	if err != nil {
		return Fail(fmt.Errorf("transcribing video %s: %w", videoID, err))
	}

	return Succeed(transcript.Text, MethodYouTubeTranscription, map[string]string{
		"url":                      source.URL,
		"video_id":                 videoID,
		"transcription_confidence": fmt.Sprintf("%.2f", transcript.Confidence),
	})
}

func (e *URLExtractor) extractWebpage(ctx context.Context, source *core.Source) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return Fail(fmt.Errorf("invalid url: %w", err))
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return Fail(fmt.Errorf("fetching %s: %w", source.URL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Fail(fmt.Errorf("fetching %s: status %d", source.URL, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		return Fail(fmt.Errorf("reading %s: %w", source.URL, err))
	}

	content := htmlText(string(body))

	return Succeed(content, MethodWebScraping, map[string]string{
		"url":            source.URL,
		"status_code":    strconv.Itoa(resp.StatusCode),
		"content_length": strconv.Itoa(len(content)),
	})
}

func isYouTubeURL(url string) bool {
	return strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be")
}

// YouTubeVideoID extracts the video id from a YouTube URL.
// Returns "unknown" when no pattern matches.
func YouTubeVideoID(url string) string {
	for _, pattern := range youTubeIDPatterns {
		if match := pattern.FindStringSubmatch(url); len(match) > 1 {
			return match[1]
		}
	}
	return "unknown"
}

// htmlText extracts the visible text of an HTML document, skipping script,
// style, and other non-content subtrees. Input that fails to parse is
// returned as-is; the html package is lenient, so this is rare.
func htmlText(raw string) string {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "head", "svg":
				return
			}
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return b.String()
}
