package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/lore/core"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected core.Source
		wantErr  bool
	}{
		{
			name:     "text source",
			arg:      "text:hello world",
			expected: core.Source{ID: "src-1", Type: core.SourceTypeText, Name: "src-1", Content: "hello world"},
		},
		{
			name:     "document file",
			arg:      "file:/tmp/report.pdf",
			expected: core.Source{ID: "src-1", Type: core.SourceTypeDocument, Name: "/tmp/report.pdf", FilePath: "/tmp/report.pdf"},
		},
		{
			name:     "media file",
			arg:      "file:/tmp/interview.mp3",
			expected: core.Source{ID: "src-1", Type: core.SourceTypeMedia, Name: "/tmp/interview.mp3", FilePath: "/tmp/interview.mp3"},
		},
		{
			name:     "url source keeps scheme colon",
			arg:      "url:https://example.com/page",
			expected: core.Source{ID: "src-1", Type: core.SourceTypeURL, Name: "https://example.com/page", URL: "https://example.com/page"},
		},
		{
			name:    "unknown type",
			arg:     "ftp:whatever",
			wantErr: true,
		},
		{
			name:    "missing value",
			arg:     "text:",
			wantErr: true,
		},
		{
			name:    "no separator",
			arg:     "just-a-string",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := parseSource(tt.arg, 0)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, source)
		})
	}
}

func TestParseSourceIndexedIDs(t *testing.T) {
	first, err := parseSource("text:a", 0)
	require.NoError(t, err)
	second, err := parseSource("text:b", 1)
	require.NoError(t, err)

	assert.Equal(t, "src-1", first.ID)
	assert.Equal(t, "src-2", second.ID)
}

func TestIsMediaPath(t *testing.T) {
	assert.True(t, isMediaPath("/data/call.MP3"))
	assert.True(t, isMediaPath("clip.webm"))
	assert.False(t, isMediaPath("/data/report.pdf"))
	assert.False(t, isMediaPath("notes.txt"))
}

func TestIngestCommandRequiresFlags(t *testing.T) {
	app := &cli.App{
		Name: "lore",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.StringFlag{Name: "report", Required: true},
				},
			},
		},
	}

	err := app.Run([]string{"lore", "ingest", "text:hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "INFO"} {
			app := &cli.App{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "log-level", Value: level},
				},
				Before: setupLogger,
				Action: func(c *cli.Context) error { return nil },
			}
			assert.NoError(t, app.Run([]string{"lore"}), "level %s", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		app := &cli.App{
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "loud"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
		err := app.Run([]string{"lore"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
