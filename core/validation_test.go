package core

import (
	"errors"
	"testing"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		source  *Source
		wantErr error
	}{
		{
			name: "valid text source",
			source: &Source{
				ID:      "s1",
				Type:    SourceTypeText,
				Name:    "pasted text",
				Content: "hello world",
			},
			wantErr: nil,
		},
		{
			name: "valid document source",
			source: &Source{
				ID:       "s2",
				Type:     SourceTypeDocument,
				Name:     "pitch.pdf",
				FilePath: "/tmp/pitch.pdf",
			},
			wantErr: nil,
		},
		{
			name: "valid media source",
			source: &Source{
				ID:       "s3",
				Type:     SourceTypeMedia,
				Name:     "call.mp3",
				FilePath: "/tmp/call.mp3",
			},
			wantErr: nil,
		},
		{
			name: "valid url source",
			source: &Source{
				ID:   "s4",
				Type: SourceTypeURL,
				Name: "homepage",
				URL:  "https://example.com",
			},
			wantErr: nil,
		},
		{
			name:    "nil source",
			source:  nil,
			wantErr: ErrInvalidSource,
		},
		{
			name: "missing id",
			source: &Source{
				Type:    SourceTypeText,
				Content: "hello",
			},
			wantErr: ErrMissingSourceID,
		},
		{
			name: "text source with empty content",
			source: &Source{
				ID:   "s5",
				Type: SourceTypeText,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "document source with no file path",
			source: &Source{
				ID:   "s6",
				Type: SourceTypeDocument,
				Name: "missing.pdf",
			},
			wantErr: ErrMissingFilePath,
		},
		{
			name: "url source with empty url",
			source: &Source{
				ID:   "s7",
				Type: SourceTypeURL,
			},
			wantErr: ErrInvalidURL,
		},
		{
			name: "url source with non-http scheme",
			source: &Source{
				ID:   "s8",
				Type: SourceTypeURL,
				URL:  "ftp://example.com/file",
			},
			wantErr: ErrInvalidURL,
		},
		{
			name: "url source without host",
			source: &Source{
				ID:   "s9",
				Type: SourceTypeURL,
				URL:  "https://",
			},
			wantErr: ErrInvalidURL,
		},
		{
			name: "unknown type",
			source: &Source{
				ID:   "s10",
				Type: SourceType(99),
			},
			wantErr: ErrInvalidSourceType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.source)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSource() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSource() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidSource) {
				t.Errorf("ValidateSource() error %v should wrap ErrInvalidSource", err)
			}
		})
	}
}

func TestValidateEntryKey(t *testing.T) {
	tests := []struct {
		name    string
		key     EntryKey
		wantErr bool
	}{
		{name: "complete key", key: EntryKey{Tenant: "r1", SourceID: "s1", Session: "sess1"}},
		{name: "missing tenant", key: EntryKey{SourceID: "s1", Session: "sess1"}, wantErr: true},
		{name: "missing source", key: EntryKey{Tenant: "r1", Session: "sess1"}, wantErr: true},
		{name: "missing session", key: EntryKey{Tenant: "r1", SourceID: "s1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Errorf("ValidateEntryKey() error = %v, want ErrInvalidKey", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateEntryKey() unexpected error: %v", err)
			}
		})
	}
}
