package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/lore/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranscriber struct {
	transcript *Transcript
	err        error
}

func (s *stubTranscriber) TranscribeFile(context.Context, string) (*Transcript, error) {
	return s.transcript, s.err
}

func (s *stubTranscriber) TranscribeVideo(context.Context, string) (*Transcript, error) {
	return s.transcript, s.err
}

func TestMediaExtractor_Transcribes(t *testing.T) {
	extractor := NewMediaExtractor(&stubTranscriber{
		transcript: &Transcript{Text: "spoken words", Confidence: 0.9, Duration: "00:01:00", Speakers: 1},
	})

	result := extractor.Extract(context.Background(), &core.Source{
		ID:       "s1",
		Type:     core.SourceTypeMedia,
		FilePath: "/recordings/call.mp3",
	})

	require.True(t, result.Success)
	assert.Equal(t, "spoken words", result.Content)
	assert.Equal(t, MethodMediaTranscription, result.Method)
	assert.Equal(t, "call.mp3", result.Metadata["file_name"])
	assert.Equal(t, "0.90", result.Metadata["transcription_confidence"])
}

func TestMediaExtractor_TranscriberError(t *testing.T) {
	extractor := NewMediaExtractor(&stubTranscriber{err: errors.New("service unavailable")})

	result := extractor.Extract(context.Background(), &core.Source{
		ID:       "s1",
		Type:     core.SourceTypeMedia,
		FilePath: "/recordings/call.mp3",
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "service unavailable")
}

func TestMediaExtractor_NoTranscriber(t *testing.T) {
	extractor := NewMediaExtractor(nil)

	result := extractor.Extract(context.Background(), &core.Source{ID: "s1", FilePath: "/a.mp3"})

	require.False(t, result.Success)
	assert.Equal(t, ErrNoTranscriber.Error(), result.Error)
}
