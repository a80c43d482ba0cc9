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


package wellrag

import (
	"context"
	"log/slog"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/ai"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/ai/openai"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/borehole"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/index"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/ingestion"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/retrieval"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/search"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/storage"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/storage/badger"
)

// Database wires the whole retrieval stack over one badger store: the
// hierarchy index (restored from the snapshot on open), the embedding
// provider, similarity search, and the borehole-aware retriever.
type Database struct {
	backend   *badger.Backend
	snapshots storage.SnapshotRepository
	index     *index.Index
	embedder  ai.Embedder
	searcher  *search.Searcher
	retriever *retrieval.Retriever
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
	inMemory bool
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects a pre-built embedder instead of constructing the
// OpenAI-compatible one from the AI config. The config's Dimension still
// sizes the index.
func WithEmbedder(embedder ai.Embedder) DatabaseOption {
	return func(o *databaseOptions) {
		o.embedder = embedder
	}
}

// WithInMemory opens the store fully in memory, with no files on disk.
// Nothing survives Close.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// Open opens (or creates) a database at the given path, restores the
// hierarchy index from the persisted snapshot, and wires the retrieval
// components.
func Open(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	snapshots, err := badger.NewSnapshotRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	ix, err := index.New(index.WithDimension(options.aiConfig.Dimension))
	if err != nil {
		snapshots.Close()
		backend.Close()
		return nil, err
	}

	records, err := snapshots.AllRecords(context.Background())
	if err != nil {
		snapshots.Close()
		backend.Close()
		return nil, err
	}
	if err := restoreIndex(ix, records); err != nil {
		snapshots.Close()
		backend.Close()
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			snapshots.Close()
			backend.Close()
			return nil, err
		}
	}

	searcher, err := search.NewSearcher(ix)
	if err != nil {
		snapshots.Close()
		backend.Close()
		return nil, err
	}

	classifier, err := borehole.NewClassifier()
	if err != nil {
		searcher.Release()
		snapshots.Close()
		backend.Close()
		return nil, err
	}

	retriever, err := retrieval.NewRetriever(searcher, classifier)
	if err != nil {
		searcher.Release()
		snapshots.Close()
		backend.Close()
		return nil, err
	}

	logger := slog.Default()
	if len(records) > 0 {
		logger.Info("index restored from snapshot", "chunks", ix.Len())
	}

	return &Database{
		backend:   backend,
		snapshots: snapshots,
		index:     ix,
		embedder:  embedder,
		searcher:  searcher,
		retriever: retriever,
		logger:    logger,
	}, nil
}

// restoreIndex replays snapshot records in stored order, rebuilding the
// Well -> Document -> Chunk hierarchy and the insertion ordinals.
func restoreIndex(ix *index.Index, records []*storage.ChunkRecord) error {
	docIDs := make(map[core.ID]core.ID)

	for _, record := range records {
		wellID, ok := ix.WellID(record.WellName)
		if !ok {
			var err error
			wellID, err = ix.AddWell(record.WellName)
			if err != nil {
				return err
			}
		}

		docID, ok := docIDs[record.DocumentId]
		if !ok {
			var err error
			docID, err = ix.AddDocument(wellID, record.Filename, record.Modality)
			if err != nil {
				return err
			}
			docIDs[record.DocumentId] = docID
		}

		chunk := &core.Chunk{
			Text:     record.Text,
			Vector:   record.Vector,
			Offsets:  record.Offsets,
			Modality: record.Modality,
		}
		if err := ix.AddChunks(docID, chunk); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the search pool and closes the snapshot repository and
// the underlying store.
func (db *Database) Close() error {
	db.searcher.Release()

	if err := db.snapshots.Close(); err != nil {
		db.logger.Error("error closing snapshot repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Index returns the hierarchy index.
func (db *Database) Index() *index.Index {
	return db.index
}

// Embedder returns the embedding provider.
func (db *Database) Embedder() ai.Embedder {
	return db.embedder
}

// Stats summarizes the indexed corpus.
func (db *Database) Stats() index.Stats {
	return db.index.Stats()
}

// NewIngestionPipeline creates an ingestion pipeline wired to the index,
// the embedder, and the persistent snapshot, so everything ingested is
// restored on the next Open.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	withSnapshot := append([]ingestion.Option{ingestion.WithSnapshot(db.snapshots)}, opts...)
	return ingestion.NewPipeline(db.index, db.embedder, withSnapshot...)
}

// Retrieve runs one retrieval pass for an already-embedded query vector.
func (db *Database) Retrieve(ctx context.Context, vector []float32, k int, opts ...retrieval.QueryOption) (*retrieval.Result, error) {
	return db.retriever.Retrieve(ctx, vector, k, opts...)
}

// Query embeds the question text and retrieves the top k chunks from the
// highest-priority borehole.
func (db *Database) Query(ctx context.Context, question string, k int, opts ...retrieval.QueryOption) (*retrieval.Result, error) {
	vector, err := db.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, err
	}
	return db.retriever.Retrieve(ctx, vector, k, opts...)
}
