package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/lore/extract"
)

// Transcriber is a test double for extract.Transcriber.
type Transcriber struct {
	// TranscribeFileFunc is called by TranscribeFile if set.
	TranscribeFileFunc func(ctx context.Context, path string) (*extract.Transcript, error)

	// TranscribeVideoFunc is called by TranscribeVideo if set.
	TranscribeVideoFunc func(ctx context.Context, videoID string) (*extract.Transcript, error)
}

// NewTranscriber creates a mock transcriber with canned transcripts.
func NewTranscriber() *Transcriber {
	return &Transcriber{}
}

// TranscribeFile returns the injected behavior's transcript or a canned one.
func (m *Transcriber) TranscribeFile(ctx context.Context, path string) (*extract.Transcript, error) {
	if m.TranscribeFileFunc != nil {
		return m.TranscribeFileFunc(ctx, path)
	}
	return &extract.Transcript{
		Text:       fmt.Sprintf("transcript of %s", path),
		Confidence: 0.95,
		Duration:   "00:05:30",
		Speakers:   2,
	}, nil
}

// TranscribeVideo returns the injected behavior's transcript or a canned one.
func (m *Transcriber) TranscribeVideo(ctx context.Context, videoID string) (*extract.Transcript, error) {
	if m.TranscribeVideoFunc != nil {
		return m.TranscribeVideoFunc(ctx, videoID)
	}
	return &extract.Transcript{
		Text:       fmt.Sprintf("transcript of video %s", videoID),
		Confidence: 0.92,
	}, nil
}
