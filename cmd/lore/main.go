// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/lore"
	"github.com/poiesic/lore/ai"
	"github.com/poiesic/lore/core"
	"github.com/poiesic/lore/reembed"
)

func main() {
	app := &cli.App{
		Name:  "lore",
		Usage: "Tenant-scoped knowledge ingestion and retrieval",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest sources into a tenant's knowledge store",
				ArgsUsage: "type:value [type:value ...]  (types: text, file, url)",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "report",
						Aliases:  []string{"r"},
						Usage:    "Tenant (report) identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "session",
						Aliases: []string{"s"},
						Usage:   "Session identifier (generated if omitted)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (omit to use the built-in deterministic embedder)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum additional attempts per failing source",
						Value: 2,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for concurrent sources",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show aggregate stats for a tenant",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "report",
						Aliases:  []string{"r"},
						Usage:    "Tenant (report) identifier",
						Required: true,
					},
				},
			},
			{
				Name:   "remove",
				Usage:  "Remove a previously ingested source",
				Action: removeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "report",
						Aliases:  []string{"r"},
						Usage:    "Tenant (report) identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "session",
						Aliases:  []string{"s"},
						Usage:    "Session identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "source",
						Usage:    "Source identifier to remove",
						Required: true,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate a tenant's stored embeddings with the configured model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "report",
						Aliases:  []string{"r"},
						Usage:    "Tenant (report) identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (omit to use the built-in deterministic embedder)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N entries",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per entry",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Find a tenant's entries similar to a query",
				ArgsUsage: "query",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "report",
						Aliases:  []string{"r"},
						Usage:    "Tenant (report) identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (omit to use the built-in deterministic embedder)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Minimum similarity score",
						Value: 0.0,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openService(c *cli.Context) (*lore.Service, error) {
	opts := []lore.ServiceOption{
		lore.WithMaxRetries(c.Int("max-retries")),
		lore.WithRetryDelay(c.Duration("retry-delay")),
	}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, lore.WithPoolSize(workers))
	}

	if host := c.String("embedding-host"); host != "" {
		model := c.String("embedding-model")
		if model == "" {
			return nil, fmt.Errorf("embedding-model is required with embedding-host")
		}
		aiConfig := ai.NewConfig(
			ai.WithEmbeddingHost(host),
			ai.WithEmbeddingModel(model),
		)
		if err := aiConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
		opts = append(opts, lore.WithAIConfig(aiConfig))
	}

	svc, err := lore.Open(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return svc, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one source is required")
	}

	sources := make([]core.Source, c.NArg())
	for i, arg := range c.Args().Slice() {
		source, err := parseSource(arg, i)
		if err != nil {
			return err
		}
		sources[i] = source
	}

	session := c.String("session")
	if session == "" {
		session = uuid.NewString()
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	result := svc.IngestBatch(context.Background(), sources, c.String("report"), session)

	fmt.Fprintf(os.Stderr, "Session: %s\n", session)
	fmt.Fprintf(os.Stderr, "Processed: %d  Successful: %d  Failed: %d\n",
		result.ProcessedCount, result.SuccessfulCount, result.FailedCount)
	for _, outcome := range result.Outcomes {
		if outcome.Completed() {
			fmt.Fprintf(os.Stderr, "  %s: completed (%d words, %s)\n",
				outcome.SourceID, outcome.WordCount, outcome.ExtractionMethod)
		} else {
			fmt.Fprintf(os.Stderr, "  %s: failed: %s (retry available: %t)\n",
				outcome.SourceID, outcome.Error, outcome.RetryAvailable)
		}
	}

	if result.FailedCount > 0 {
		return fmt.Errorf("%d of %d sources failed", result.FailedCount, result.ProcessedCount)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	stats, err := svc.Stats(context.Background(), c.String("report"))
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Sources:      %d\n", stats.SourceCount)
	fmt.Printf("Total words:  %d\n", stats.TotalWords)
	fmt.Printf("Total chars:  %d\n", stats.TotalChars)
	fmt.Printf("Source types: %s\n", strings.Join(stats.SourceTypes, ", "))
	if !stats.LastUpdated.IsZero() {
		fmt.Printf("Last updated: %s\n", stats.LastUpdated.Format(time.RFC3339))
	}
	return nil
}

func removeCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	removed, err := svc.Remove(context.Background(),
		c.String("source"), c.String("report"), c.String("session"))
	if err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	if removed {
		fmt.Println("removed")
	} else {
		fmt.Println("not found")
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	config := &reembed.Config{
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	reembedder, err := reembed.NewReembedder(svc.Store(), svc.Embedder(), config, os.Stderr)
	if err != nil {
		return err
	}

	stats, err := reembedder.Run(context.Background(), c.String("report"))
	if err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Reembedded %d of %d entries (failed: %d, skipped: %d) in %s\n",
		stats.Succeeded, stats.Total, stats.Failed, stats.Skipped, stats.Elapsed.Round(time.Millisecond))
	if stats.Failed > 0 {
		return fmt.Errorf("%d entries failed to reembed", stats.Failed)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one query argument is required")
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	results, err := svc.Search(context.Background(),
		c.String("report"), c.Args().First(),
		float32(c.Float64("min-similarity")), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	for _, result := range results {
		fmt.Printf("%.4f  %s (session %s, %d words)\n",
			result.Score, result.Entry.SourceID, result.Entry.Session, result.Entry.WordCount)
	}
	return nil
}

// parseSource parses one "type:value" argument into a Source descriptor.
// Types: text (inline content), file (document or media path), url.
func parseSource(arg string, index int) (core.Source, error) {
	kind, value, found := strings.Cut(arg, ":")
	if !found || value == "" {
		return core.Source{}, fmt.Errorf("invalid source %q: expected type:value", arg)
	}

	id := fmt.Sprintf("src-%d", index+1)
	switch kind {
	case "text":
		return core.Source{ID: id, Type: core.SourceTypeText, Name: id, Content: value}, nil
	case "file":
		sourceType := core.SourceTypeDocument
		if isMediaPath(value) {
			sourceType = core.SourceTypeMedia
		}
		return core.Source{ID: id, Type: sourceType, Name: value, FilePath: value}, nil
	case "url":
		return core.Source{ID: id, Type: core.SourceTypeURL, Name: value, URL: value}, nil
	default:
		return core.Source{}, fmt.Errorf("invalid source %q: unknown type %q", arg, kind)
	}
}

// isMediaPath reports whether a file path looks like audio or video.
func isMediaPath(path string) bool {
	lowered := strings.ToLower(path)
	for _, ext := range []string{".mp3", ".wav", ".m4a", ".flac", ".ogg", ".mp4", ".mov", ".avi", ".mkv", ".webm"} {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
