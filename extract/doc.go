// Package extract turns caller-submitted sources into raw text.
//
// A Registry dispatches each source to the Extractor registered for its
// type. Extractors report success and failure through the Result value type
// so the processing layer can treat extraction failures as retryable data,
// not faults. External collaborators (transcription services) are reached
// through the Transcriber interface.
package extract
