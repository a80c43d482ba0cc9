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
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	wellrag "github.com/SauravBhattacharjee25/hierarchical-rag-petroleum"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/ai"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/retrieval"
)

func main() {
	embeddingFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding dimensionality",
			Value: 768,
		},
	}

	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}

	app := &cli.App{
		Name:  "wellquery",
		Usage: "Hierarchical retrieval over petroleum well records",
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
				Name:   "ingest",
				Usage:  "Ingest one extracted document into a well",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "well",
						Aliases:  []string{"w"},
						Usage:    "Well name the document belongs to",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the extracted document text",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "modality",
						Usage: "Document modality (text, table, image)",
						Value: "text",
					},
				}, embeddingFlags...),
			},
			{
				Name:      "query",
				Usage:     "Retrieve the top chunks for a question, collapsed to the authoritative borehole",
				ArgsUsage: "<question>",
				Action:    queryCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"n"},
						Usage:   "Number of candidates to rank",
						Value:   5,
					},
					&cli.StringFlag{
						Name:  "modality",
						Usage: "Restrict candidates to one modality (text, table, image)",
					},
				}, embeddingFlags...),
			},
			{
				Name:   "stats",
				Usage:  "Show corpus statistics",
				Action: statsCommand,
				Flags:  append([]cli.Flag{dbFlag}, embeddingFlags...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*wellrag.Database, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
	)

	db, err := wellrag.Open(c.String("db"), wellrag.WithAIConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	modality, err := core.ParseModality(c.String("modality"))
	if err != nil {
		return err
	}

	filePath := c.String("file")
	text, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}

	// Classification keys off the bare filename, not the path.
	docID, chunks, err := pipeline.IngestDocument(ctx, c.String("well"), filepath.Base(filePath), modality, string(text))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %s into well %q: %d chunks (document %d)\n",
		filePath, c.String("well"), chunks, uint64(docID))
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	var opts []retrieval.QueryOption
	if m := c.String("modality"); m != "" {
		modality, err := core.ParseModality(m)
		if err != nil {
			return err
		}
		opts = append(opts, retrieval.WithModality(modality))
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.Query(ctx, question, c.Int("k"), opts...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Println(result.Summary())
	if result.Status != retrieval.StatusOK {
		return nil
	}

	for i, chunk := range result.Chunks {
		fmt.Printf("\n%d. [%.4f] %s / %s (%s, chars %d-%d, %s %s)\n",
			i+1, chunk.Score,
			chunk.Provenance.Well, chunk.Provenance.Filename,
			chunk.Provenance.Modality.String(),
			chunk.Provenance.Offsets.Start, chunk.Provenance.Offsets.End,
			chunk.Tag.Label(), chunk.Tag.Confidence.String())
		fmt.Println(chunk.Chunk.Text)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	stats := db.Stats()
	fmt.Printf("Wells:     %d\n", stats.Wells)
	fmt.Printf("Documents: %d\n", stats.Documents)
	fmt.Printf("Chunks:    %d\n", stats.Chunks)
	for modality, count := range stats.ChunksByModality {
		fmt.Printf("  %s: %d\n", modality.String(), count)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
