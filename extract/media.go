package extract

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/poiesic/lore/core"
)

// MethodMediaTranscription tags content produced by transcribing audio or
// video files.
const MethodMediaTranscription = "media_transcription"

// Transcript is the output of a transcription collaborator.
type Transcript struct {
	Text       string
	Confidence float64
	Duration   string
	Speakers   int
}

// Transcriber converts audio/video resources into text. Implementations are
// external collaborators (speech-to-text services, caption APIs); the
// pipeline tolerates arbitrary latency and failure from them.
type Transcriber interface {
	// TranscribeFile transcribes a local media file.
	TranscribeFile(ctx context.Context, path string) (*Transcript, error)

	// TranscribeVideo transcribes a hosted video by its id.
	TranscribeVideo(ctx context.Context, videoID string) (*Transcript, error)
}

// MediaExtractor routes audio/video sources through a Transcriber.
type MediaExtractor struct {
	transcriber Transcriber
}

var _ Extractor = (*MediaExtractor)(nil)

// NewMediaExtractor creates an extractor for media sources. The transcriber
// may be nil, in which case every media source fails with ErrNoTranscriber.
func NewMediaExtractor(transcriber Transcriber) *MediaExtractor {
	return &MediaExtractor{transcriber: transcriber}
}

// Extract transcribes the source's media file.
func (e *MediaExtractor) Extract(ctx context.Context, source *core.Source) Result {
	if e.transcriber == nil {
		return Fail(ErrNoTranscriber)
	}

	transcript, err := e.transcriber.TranscribeFile(ctx, source.FilePath)
	if err != nil {
		return Fail(fmt.Errorf("transcribing %s: %w", filepath.Base(source.FilePath), err))
	}

	return Succeed(transcript.Text, MethodMediaTranscription, map[string]string{
		"file_name":                filepath.Base(source.FilePath),
		"duration":                 transcript.Duration,
		"transcription_confidence": fmt.Sprintf("%.2f", transcript.Confidence),
		"speaker_count":            fmt.Sprintf("%d", transcript.Speakers),
	})
}
