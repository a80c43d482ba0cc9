package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/borehole"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/search"
)

// Status distinguishes the ways a retrieval can come back without usable
// results. Empty states are values, not errors.
type Status int

const (
	// StatusOK means ranked results are present.
	StatusOK Status = iota + 1

	// StatusEmptyCorpus means the index holds no chunks at all; nothing
	// has been ingested yet. A valid, expected state.
	StatusEmptyCorpus

	// StatusEmptyAfterFilter means candidates existed but filtering
	// (modality predicate or similarity floor) removed all of them.
	StatusEmptyAfterFilter
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmptyCorpus:
		return "empty corpus"
	case StatusEmptyAfterFilter:
		return "empty after filter"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Provenance locates a chunk within the source corpus, carrying enough
// context for a downstream answer generator to cite it.
type Provenance struct {
	Well     string
	Filename string
	Offsets  core.OffsetRange
	Modality core.Modality
}

// RankedChunk is one surviving result: the chunk, its similarity score,
// its borehole classification, and where it came from.
type RankedChunk struct {
	Chunk      *core.Chunk
	Score      float32
	Tag        core.BoreholeTag
	Provenance Provenance
}

// Result is the outcome of one retrieval pass. Chunks are ordered by
// descending similarity score and all belong to the selected borehole.
type Result struct {
	Status Status

	// Selected identifies the authoritative borehole. Zero value when
	// Status is not StatusOK.
	Selected core.BoreholeTag

	// Chunks are the surviving, annotated results.
	Chunks []RankedChunk

	// Dropped maps losing borehole labels to how many results they lost.
	Dropped map[string]int

	// Candidates is the number of scored results entering priority
	// resolution, before any were dropped.
	Candidates int
}

// Summary renders a one-line diagnostic account of the retrieval, e.g.
// "filtered from 3 to 1 results (Sidetrack 2, priority 3)".
func (r *Result) Summary() string {
	switch r.Status {
	case StatusEmptyCorpus:
		return "no data: corpus is empty"
	case StatusEmptyAfterFilter:
		return "no data: all candidates removed by filtering"
	}
	return fmt.Sprintf("filtered from %d to %d results (%s, priority %d)",
		r.Candidates, len(r.Chunks), r.Selected.Label(), r.Selected.Rank)
}

// Retriever is the end-to-end retrieval orchestrator: similarity search,
// borehole classification, priority resolution, provenance annotation.
type Retriever struct {
	searcher   *search.Searcher
	classifier *borehole.Classifier
	logger     *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever over the given searcher and classifier.
func NewRetriever(searcher *search.Searcher, classifier *borehole.Classifier, opts ...Option) (*Retriever, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}

	r := &Retriever{
		searcher:   searcher,
		classifier: classifier,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// QueryOption adjusts a single Retrieve call.
type QueryOption func(*query)

type query struct {
	modality core.Modality
	monitor  search.SearchMonitor
}

// WithModality restricts candidates to one modality before scoring,
// supporting "images only" / "text only" query modes. The restriction is
// a pure predicate over chunk modality; scoring is unchanged.
func WithModality(m core.Modality) QueryOption {
	return func(q *query) {
		q.modality = m
	}
}

// WithMonitor attaches search observation hooks to the call.
func WithMonitor(monitor search.SearchMonitor) QueryOption {
	return func(q *query) {
		q.monitor = monitor
	}
}

// Retrieve runs one end-to-end query: rank the top k chunks by cosine
// similarity to the query vector, classify each by borehole, collapse to
// the highest-priority borehole present, and annotate survivors with
// provenance. Repeating the same call against an unchanged index yields
// identical output.
func (r *Retriever) Retrieve(ctx context.Context, vector []float32, k int, opts ...QueryOption) (*Result, error) {
	var q query
	for _, opt := range opts {
		opt(&q)
	}

	var keep search.Filter
	if q.modality != 0 {
		if err := core.ValidateModality(q.modality); err != nil {
			return nil, err
		}
		keep = search.ModalityFilter(q.modality)
	}

	matches, err := r.searcher.SearchWithMonitor(ctx, vector, k, keep, q.monitor)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		status := StatusEmptyAfterFilter
		if r.searcher.Corpus().Len() == 0 {
			status = StatusEmptyCorpus
		}
		r.logger.Debug("retrieval yielded no candidates", "status", status.String())
		return &Result{Status: status, Dropped: map[string]int{}}, nil
	}

	// Classify every hit, keeping a handle on its hierarchy entry for
	// provenance after resolution.
	scored := make([]core.ScoredResult, len(matches))
	entries := make(map[*core.Chunk]int, len(matches))
	for i, match := range matches {
		scored[i] = core.ScoredResult{
			Chunk: match.Entry.Chunk,
			Score: match.Score,
			Tag:   r.classifier.ClassifyChunk(match.Entry.Document, match.Entry.Chunk),
		}
		entries[match.Entry.Chunk] = i
	}

	resolution := borehole.Resolve(scored)

	chunks := make([]RankedChunk, len(resolution.Results))
	for i, res := range resolution.Results {
		entry := matches[entries[res.Chunk]].Entry
		chunks[i] = RankedChunk{
			Chunk: res.Chunk,
			Score: res.Score,
			Tag:   res.Tag,
			Provenance: Provenance{
				Well:     entry.Well.Name,
				Filename: entry.Document.Filename,
				Offsets:  res.Chunk.Offsets,
				Modality: res.Chunk.Modality,
			},
		}
	}

	result := &Result{
		Status:     StatusOK,
		Selected:   resolution.Selected,
		Chunks:     chunks,
		Dropped:    resolution.Dropped,
		Candidates: len(matches),
	}

	r.logger.Debug("retrieval complete",
		"candidates", len(matches),
		"survivors", len(chunks),
		"borehole", resolution.Selected.Label(),
		"rank", resolution.Selected.Rank)

	return result, nil
}
