package extract

import "errors"

var (
	// ErrUnsupportedType is reported when no extractor is registered for a
	// source's type.
	ErrUnsupportedType = errors.New("unsupported source type")

	// ErrNoTranscriber is reported when a media or YouTube source is
	// submitted but no transcription collaborator is configured.
	ErrNoTranscriber = errors.New("no transcriber configured")

	// ErrContentTooLarge is reported when a fetched resource exceeds the
	// extraction size limit.
	ErrContentTooLarge = errors.New("content exceeds extraction size limit")
)
