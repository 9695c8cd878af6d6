package core

import (
	"testing"
)

func TestFingerprintContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same fingerprint",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp1 := FingerprintContent(tt.content)
			fp2 := FingerprintContent(tt.content)

			if fp1 != fp2 {
				t.Errorf("FingerprintContent() produced different digests for same content: %s vs %s", fp1, fp2)
			}
			if len(fp1) != fingerprintSize*2 {
				t.Errorf("FingerprintContent() returned %d hex chars, want %d", len(fp1), fingerprintSize*2)
			}
		})
	}
}

func TestFingerprintContent_Different(t *testing.T) {
	fp1 := FingerprintContent("content1")
	fp2 := FingerprintContent("content2")

	if fp1 == fp2 {
		t.Errorf("FingerprintContent() produced same digest for different content")
	}
}

func TestEntryKeyString(t *testing.T) {
	key := EntryKey{Tenant: "r1", SourceID: "s1", Session: "sess1"}
	if got := key.String(); got != "r1_s1_sess1" {
		t.Errorf("EntryKey.String() = %q, want %q", got, "r1_s1_sess1")
	}
}

func TestParseSourceType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SourceType
		wantErr bool
	}{
		{name: "document", input: "document", want: SourceTypeDocument},
		{name: "file alias", input: "file", want: SourceTypeDocument},
		{name: "media", input: "media", want: SourceTypeMedia},
		{name: "audio alias", input: "audio", want: SourceTypeMedia},
		{name: "video alias", input: "video", want: SourceTypeMedia},
		{name: "url", input: "url", want: SourceTypeURL},
		{name: "youtube alias", input: "youtube", want: SourceTypeURL},
		{name: "text", input: "text", want: SourceTypeText},
		{name: "unknown", input: "carrier-pigeon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSourceType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSourceType(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSourceType(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSourceType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSourceTypeString_RoundTrip(t *testing.T) {
	for _, st := range []SourceType{SourceTypeDocument, SourceTypeMedia, SourceTypeURL, SourceTypeText} {
		parsed, err := ParseSourceType(st.String())
		if err != nil {
			t.Fatalf("ParseSourceType(%q) unexpected error: %v", st.String(), err)
		}
		if parsed != st {
			t.Errorf("round trip of %v produced %v", st, parsed)
		}
	}
}

func TestContentEncoding_RoundTrip(t *testing.T) {
	original := "ingested source content with unicode: héllo wörld"

	encoded := EncodeContent(original)
	if encoded == original {
		t.Errorf("EncodeContent() returned plaintext")
	}

	decoded, err := DecodeContent(encoded)
	if err != nil {
		t.Fatalf("DecodeContent() unexpected error: %v", err)
	}
	if decoded != original {
		t.Errorf("DecodeContent() = %q, want %q", decoded, original)
	}
}

func TestDecodeContent_Invalid(t *testing.T) {
	if _, err := DecodeContent("not valid base64!!!"); err == nil {
		t.Errorf("DecodeContent() expected error for invalid input")
	}
}
