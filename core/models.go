package core

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// SourceType identifies what kind of content a source carries and which
// extractor is responsible for it.
type SourceType int

const (
	// SourceTypeDocument is a file-backed document (PDF, DOCX, PPT, email).
	SourceTypeDocument SourceType = iota + 1
	// SourceTypeMedia is an audio or video file requiring transcription.
	SourceTypeMedia
	// SourceTypeURL is a web page or YouTube video.
	SourceTypeURL
	// SourceTypeText is raw inline text.
	SourceTypeText
)

// String returns the wire name of the source type.
func (t SourceType) String() string {
	switch t {
	case SourceTypeDocument:
		return "document"
	case SourceTypeMedia:
		return "media"
	case SourceTypeURL:
		return "url"
	case SourceTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseSourceType parses a wire name into a SourceType.
// Returns ErrInvalidSourceType for unrecognized names.
func ParseSourceType(s string) (SourceType, error) {
	switch s {
	case "document", "file":
		return SourceTypeDocument, nil
	case "media", "audio", "video":
		return SourceTypeMedia, nil
	case "url", "youtube":
		return SourceTypeURL, nil
	case "text":
		return SourceTypeText, nil
	default:
		return 0, ErrInvalidSourceType
	}
}

// Source is one unit of caller-submitted input to be ingested.
// Exactly one of FilePath, URL, or Content is meaningful, depending on Type.
// A Source is immutable once submitted to the pipeline.
type Source struct {
	ID       string
	Type     SourceType
	Name     string
	FilePath string // document, media
	URL      string // url
	Content  string // text
}

// NormalizedDocument is cleaned extracted text plus derived metadata.
// Produced once per successful extraction; never mutated afterwards.
type NormalizedDocument struct {
	SourceID     string
	SourceName   string
	SourceType   SourceType
	Content      string
	WordCount    int
	CharCount    int
	Fingerprint  string // stable content digest, see FingerprintContent
	Language     string
	NormalizedAt time.Time
}

// Embedding is a vector representation of a normalized document.
type Embedding struct {
	Vector      []float32 `json:"vector"`
	Dimension   int       `json:"dimension"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generated_at"`
}

// EntryStatus is the lifecycle state of a stored knowledge entry.
type EntryStatus string

// EntryStatusActive marks a live entry. Entries are replaced on re-ingest
// and deleted on removal; there is no soft-delete state.
const EntryStatusActive EntryStatus = "active"

// EntryKey is the composite key a knowledge entry is stored under.
// The (Tenant, SourceID, Session) triple is unique within a store.
type EntryKey struct {
	Tenant   string
	SourceID string
	Session  string
}

// String renders the key in its canonical tenant_source_session form.
func (k EntryKey) String() string {
	return k.Tenant + "_" + k.SourceID + "_" + k.Session
}

// KnowledgeEntry is the persisted unit held by the knowledge store.
// Content is base64-encoded at rest; use DecodeContent to recover the text.
type KnowledgeEntry struct {
	SourceID   string            `json:"source_id"`
	SourceType SourceType        `json:"source_type"`
	Content    string            `json:"content"`
	Embedding  Embedding         `json:"embedding"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	WordCount  int               `json:"word_count"`
	CharCount  int               `json:"char_count"`
	Tenant     string            `json:"tenant"`
	Session    string            `json:"session"`
	StoredAt   time.Time         `json:"stored_at"`
	Status     EntryStatus       `json:"status"`
}

// Key returns the composite key this entry is stored under.
func (e *KnowledgeEntry) Key() EntryKey {
	return EntryKey{Tenant: e.Tenant, SourceID: e.SourceID, Session: e.Session}
}

// OutcomeStatus is the terminal status of one source's processing attempt.
type OutcomeStatus string

const (
	// OutcomeCompleted indicates the source made it through the full pipeline.
	OutcomeCompleted OutcomeStatus = "completed"
	// OutcomeFailed indicates the source did not complete processing.
	OutcomeFailed OutcomeStatus = "failed"
)

// ProcessingOutcome is the structured result for one source.
// It is a value returned to callers, never persisted.
type ProcessingOutcome struct {
	SourceID         string
	Status           OutcomeStatus
	StoreKey         string // populated on completion
	WordCount        int
	CharCount        int
	ExtractionMethod string
	Error            string // populated on failure
	RetryAvailable   bool
}

// Completed reports whether the outcome is a success.
func (o ProcessingOutcome) Completed() bool {
	return o.Status == OutcomeCompleted
}

// BatchResult aggregates the outcomes of one multi-source batch.
// Outcomes[i] always corresponds to the i-th submitted source.
type BatchResult struct {
	ProcessedCount  int
	SuccessfulCount int
	FailedCount     int
	Outcomes        []ProcessingOutcome
	CompletedAt     time.Time
}

// SearchResult pairs a stored entry with its similarity score.
type SearchResult struct {
	Entry *KnowledgeEntry
	Score float32
}

// TenantStats is the aggregate view of one tenant's stored entries.
type TenantStats struct {
	SourceCount int
	TotalWords  int
	TotalChars  int
	SourceTypes []string
	LastUpdated time.Time // zero when the tenant holds no entries
}

const fingerprintSize = 16

// FingerprintContent computes a stable hex digest of cleaned text using
// BLAKE2b. Identical content always yields an identical fingerprint, which
// the embedding contract relies on for idempotence.
func FingerprintContent(text string) string {
	h, _ := blake2b.New(fingerprintSize, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
