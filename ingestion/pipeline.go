package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/ai"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/index"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/storage"
)

// Pipeline ingests source documents: chunk, embed, index, and
// optionally persist. One call handles one document; the well is
// created on first sight.
type Pipeline struct {
	index     *index.Index
	embedder  ai.Embedder
	chunker   *Chunker
	snapshots storage.SnapshotRepository
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunker overrides the default 800/250 chunk window.
func WithChunker(chunker *Chunker) Option {
	return func(p *Pipeline) error {
		if chunker == nil {
			chunker = DefaultChunker()
		}
		p.chunker = chunker
		return nil
	}
}

// WithSnapshot makes the pipeline append every ingested chunk to the
// given snapshot repository, so the index can be rebuilt on restart.
// No snapshot is written by default.
//
// The snapshot is appended after the chunks are indexed. If the append
// fails, IngestDocument returns the error but the already-indexed
// chunks stay queryable for the rest of the session; they will not
// survive a restart until the document is re-ingested.
func WithSnapshot(snapshots storage.SnapshotRepository) Option {
	return func(p *Pipeline) error {
		p.snapshots = snapshots
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline over the given index and
// embedder.
func NewPipeline(ix *index.Index, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		index:    ix,
		embedder: embedder,
		chunker:  DefaultChunker(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// IngestDocument ingests one source document's extracted text under the
// named well. The well is created if it doesn't exist yet. Returns the
// new document's ID and the number of chunks indexed.
func (p *Pipeline) IngestDocument(ctx context.Context, wellName, filename string, modality core.Modality, text string) (core.ID, int, error) {
	pieces := p.chunker.Split(text)
	if len(pieces) == 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	texts := make([]string, len(pieces))
	for i, piece := range pieces {
		texts[i] = piece.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, 0, err
	}
	if len(vectors) != len(pieces) {
		return 0, 0, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(pieces), len(vectors))
	}

	wellID, err := p.ensureWell(wellName)
	if err != nil {
		return 0, 0, err
	}

	docID, err := p.index.AddDocument(wellID, filename, modality)
	if err != nil {
		return 0, 0, err
	}

	chunks := make([]*core.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = &core.Chunk{
			Text:     piece.Text,
			Vector:   vectors[i],
			Offsets:  piece.Offsets,
			Modality: modality,
		}
	}

	if err := p.index.AddChunks(docID, chunks...); err != nil {
		return 0, 0, err
	}

	if p.snapshots != nil {
		records := make([]*storage.ChunkRecord, len(chunks))
		doc := &core.Document{Id: docID, Filename: filename, Modality: modality}
		for i, chunk := range chunks {
			records[i] = storage.RecordFromChunk(wellName, doc, chunk)
		}
		if err := p.snapshots.AppendRecords(ctx, records...); err != nil {
			// The chunks are already indexed; until the document is
			// re-ingested, the in-memory index holds more than the snapshot.
			p.logger.Error("snapshot append failed, indexed chunks will not survive restart",
				"well", wellName, "filename", filename, "chunks", len(records), "err", err)
			return 0, 0, err
		}
	}

	p.logger.Info("document ingested",
		"well", wellName, "filename", filename, "modality", modality.String(), "chunks", len(chunks))
	return docID, len(chunks), nil
}

// ensureWell returns the ID of the named well, creating it on first use.
func (p *Pipeline) ensureWell(wellName string) (core.ID, error) {
	if id, ok := p.index.WellID(wellName); ok {
		return id, nil
	}
	id, err := p.index.AddWell(wellName)
	if errors.Is(err, core.ErrDuplicateWell) {
		// Lost a race against a concurrent ingest of the same well.
		if existing, ok := p.index.WellID(wellName); ok {
			return existing, nil
		}
	}
	return id, err
}
