package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/lore/core"
)

func TestMarshalEntryRoundTrip(t *testing.T) {
	original := &core.KnowledgeEntry{
		SourceID:   "src-1",
		SourceType: core.SourceTypeText,
		Content:    core.EncodeContent("the stored payload"),
		Embedding: core.Embedding{
			Vector:      []float32{0.1, 0.2, 0.3},
			Dimension:   3,
			Model:       "test-model",
			GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		Metadata:  map[string]string{"extraction_method": "direct_text"},
		WordCount: 3,
		CharCount: 18,
		Tenant:    "report-a",
		Session:   "sess-1",
		StoredAt:  time.Date(2025, 6, 1, 12, 0, 1, 0, time.UTC),
		Status:    core.EntryStatusActive,
	}

	data, err := MarshalEntry(original)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalEntry(data)
	require.NoError(t, err)

	assert.Equal(t, original, decoded)
}

func TestUnmarshalEntryCorrupt(t *testing.T) {
	_, err := UnmarshalEntry([]byte("{not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestComputeTenantStats(t *testing.T) {
	now := time.Now().UTC()
	earlier := now.Add(-time.Hour)

	entries := []*core.KnowledgeEntry{
		{
			SourceID:   "a",
			SourceType: core.SourceTypeText,
			WordCount:  10,
			CharCount:  50,
			StoredAt:   earlier,
		},
		{
			SourceID:   "b",
			SourceType: core.SourceTypeURL,
			WordCount:  20,
			CharCount:  120,
			StoredAt:   now,
		},
		{
			SourceID:   "c",
			SourceType: core.SourceTypeText,
			WordCount:  5,
			CharCount:  25,
			StoredAt:   earlier,
		},
	}

	stats := ComputeTenantStats(entries)

	assert.Equal(t, 3, stats.SourceCount)
	assert.Equal(t, 35, stats.TotalWords)
	assert.Equal(t, 195, stats.TotalChars)
	assert.Equal(t, []string{"text", "url"}, stats.SourceTypes)
	assert.Equal(t, now, stats.LastUpdated)
}

func TestComputeTenantStatsEmpty(t *testing.T) {
	stats := ComputeTenantStats(nil)

	assert.Equal(t, 0, stats.SourceCount)
	assert.Equal(t, 0, stats.TotalWords)
	assert.Equal(t, 0, stats.TotalChars)
	assert.Empty(t, stats.SourceTypes)
	assert.True(t, stats.LastUpdated.IsZero())
}
