package index

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
)

// DefaultDimension is the embedding dimensionality used when none is configured.
const DefaultDimension = 768

// Entry pairs a chunk with its owning document and well, plus the
// precomputed vector norm used by cosine scoring.
type Entry struct {
	Chunk    *core.Chunk
	Document *core.Document
	Well     *core.Well
	Norm     float32
}

// Index is the authoritative in-memory Well -> Document -> Chunk structure.
// It is append-only and read-mostly: insertion is mutually exclusive with
// itself, reads never block each other, and iteration works on an atomic
// snapshot of the entry list. In-flight iterations may not observe a
// concurrently completing ingestion; new chunks become visible to
// iterations started after AddChunks returns.
type Index struct {
	mu        sync.RWMutex
	dimension int
	wells     map[string]*core.Well  // keyed by lowercase name
	wellsByID map[core.ID]*core.Well
	documents map[core.ID]*core.Document
	docWell   map[core.ID]*core.Well
	entries   []Entry // global insertion order
	logger    *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithDimension sets the embedding dimensionality the index enforces.
// Default is DefaultDimension.
func WithDimension(dim int) Option {
	return func(ix *Index) error {
		if dim < 1 {
			return fmt.Errorf("%w: dimension %d", core.ErrDimensionMismatch, dim)
		}
		ix.dimension = dim
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// New creates an empty index.
func New(opts ...Option) (*Index, error) {
	ix := &Index{
		dimension: DefaultDimension,
		wells:     make(map[string]*core.Well),
		wellsByID: make(map[core.ID]*core.Well),
		documents: make(map[core.ID]*core.Document),
		docWell:   make(map[core.ID]*core.Well),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(ix); err != nil {
			return nil, err
		}
	}

	return ix, nil
}

// AddWell registers a new well. Well names are unique case-insensitively.
func (ix *Index) AddWell(name string) (core.ID, error) {
	if err := core.ValidateWellName(name); err != nil {
		return 0, err
	}

	key := strings.ToLower(strings.TrimSpace(name))

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.wells[key]; ok {
		return 0, fmt.Errorf("%w: %q", core.ErrDuplicateWell, name)
	}

	well := &core.Well{
		Id:        core.IDFromContent(key),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	ix.wells[key] = well
	ix.wellsByID[well.Id] = well

	ix.logger.Debug("well added", "well", well.Name, "id", uint64(well.Id))
	return well.Id, nil
}

// AddDocument registers a new document under an existing well.
func (ix *Index) AddDocument(wellID core.ID, filename string, modality core.Modality) (core.ID, error) {
	if err := core.ValidateDocumentInput(filename, modality); err != nil {
		return 0, err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	well, ok := ix.wellsByID[wellID]
	if !ok {
		return 0, fmt.Errorf("%w: id %d", core.ErrUnknownWell, uint64(wellID))
	}

	// Content-based ID including the document's position within the well,
	// so reloading a snapshot in insertion order reproduces the same IDs.
	seed := fmt.Sprintf("%s/%s#%d", strings.ToLower(well.Name), filename, len(well.Documents))
	doc := &core.Document{
		Id:       core.IDFromContent(seed),
		WellId:   well.Id,
		Filename: filename,
		Modality: modality,
	}
	well.Documents = append(well.Documents, doc)
	ix.documents[doc.Id] = doc
	ix.docWell[doc.Id] = well

	ix.logger.Debug("document added", "well", well.Name, "filename", filename, "id", uint64(doc.Id))
	return doc.Id, nil
}

// AddChunks appends chunks to an existing document. Chunks are immutable
// after this call. The index assigns DocumentId and the global insertion
// ordinal, inherits the document's modality when the chunk carries none,
// and enforces the configured embedding dimensionality.
func (ix *Index) AddChunks(docID core.ID, chunks ...*core.Chunk) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	doc, ok := ix.documents[docID]
	if !ok {
		return fmt.Errorf("%w: id %d", core.ErrUnknownDocument, uint64(docID))
	}
	well := ix.docWell[docID]

	// Validate the whole batch before touching the index or the caller's
	// chunks, so a failed call leaves no partial insertion and no partial
	// mutation behind. Modality defaulting is checked against a copy here
	// and applied for real only once the batch is known good.
	for _, chunk := range chunks {
		effective := chunk
		if chunk != nil && chunk.Modality == 0 {
			inherited := *chunk
			inherited.Modality = doc.Modality
			effective = &inherited
		}
		if err := core.ValidateChunk(effective); err != nil {
			return err
		}
		if len(effective.Vector) != ix.dimension {
			return fmt.Errorf("%w: got %d, index configured for %d",
				core.ErrDimensionMismatch, len(effective.Vector), ix.dimension)
		}
	}

	for _, chunk := range chunks {
		if chunk.Modality == 0 {
			chunk.Modality = doc.Modality
		}
		chunk.DocumentId = doc.Id
		chunk.Ordinal = len(ix.entries)
		doc.Chunks = append(doc.Chunks, chunk)
		ix.entries = append(ix.entries, Entry{
			Chunk:    chunk,
			Document: doc,
			Well:     well,
			Norm:     vectorNorm(chunk.Vector),
		})
	}

	ix.logger.Debug("chunks added", "document", doc.Filename, "chunks", len(chunks), "total", len(ix.entries))
	return nil
}

// AllChunks returns a restartable sequence over every chunk in global
// insertion order. The sequence iterates a snapshot taken when AllChunks
// is called; entries themselves are immutable.
func (ix *Index) AllChunks() iter.Seq[Entry] {
	ix.mu.RLock()
	snapshot := ix.entries[:len(ix.entries):len(ix.entries)]
	ix.mu.RUnlock()

	return func(yield func(Entry) bool) {
		for _, entry := range snapshot {
			if !yield(entry) {
				return
			}
		}
	}
}

// Dimension returns the embedding dimensionality the index enforces.
func (ix *Index) Dimension() int {
	return ix.dimension
}

// Len returns the number of chunks in the index.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Stats summarizes the index contents.
type Stats struct {
	Wells            int
	Documents        int
	Chunks           int
	ChunksByModality map[core.Modality]int
}

// Stats returns counts of wells, documents and chunks, plus a per-modality
// chunk breakdown.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	stats := Stats{
		Wells:            len(ix.wells),
		Documents:        len(ix.documents),
		Chunks:           len(ix.entries),
		ChunksByModality: make(map[core.Modality]int),
	}
	for _, entry := range ix.entries {
		stats.ChunksByModality[entry.Chunk.Modality]++
	}
	return stats
}

// WellID returns the ID of the well with the given name, if present.
func (ix *Index) WellID(name string) (core.ID, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	well, ok := ix.wells[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, false
	}
	return well.Id, true
}

// vectorNorm computes the Euclidean norm of a vector.
func vectorNorm(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sum))
}
