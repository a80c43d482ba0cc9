package search

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/index"
)

// DefaultTopK is the number of results returned when the caller passes k <= 0.
const DefaultTopK = 5

// Corpus is the read surface the searcher scans. *index.Index satisfies it;
// an approximate-nearest-neighbor structure can be dropped in behind the
// same interface without changing callers.
type Corpus interface {
	// AllChunks iterates every chunk in stable insertion order.
	AllChunks() iter.Seq[index.Entry]

	// Dimension returns the embedding dimensionality of stored vectors.
	Dimension() int

	// Len returns the number of stored chunks.
	Len() int
}

// Match is a chunk that scored against a query, with its hierarchy context.
type Match struct {
	Entry index.Entry
	Score float32
}

// Filter is a pure predicate over chunks, applied before scoring.
// Used for modality-restricted query modes.
type Filter func(*core.Chunk) bool

// ModalityFilter returns a Filter keeping only chunks of the given modality.
func ModalityFilter(m core.Modality) Filter {
	return func(chunk *core.Chunk) bool {
		return chunk.Modality == m
	}
}

// Searcher performs brute-force cosine similarity search over a corpus.
// The scan is linear in corpus size and sharded across a worker pool;
// results are deterministic regardless of pool size.
type Searcher struct {
	corpus   Corpus
	pool     *ants.Pool
	minScore float32
	hasFloor bool
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithPoolSize sets the worker pool size for the parallel scan.
// Default is runtime.NumCPU().
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithMinScore sets a similarity floor; matches scoring below it are
// discarded before ranking. No floor is applied by default.
func WithMinScore(minScore float32) Option {
	return func(s *Searcher) error {
		s.minScore = minScore
		s.hasFloor = true
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher over the given corpus.
func NewSearcher(corpus Corpus, opts ...Option) (*Searcher, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		corpus: corpus,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}

	return s, nil
}

// Corpus returns the corpus the searcher scans.
func (s *Searcher) Corpus() Corpus {
	return s.corpus
}

// Release releases the worker pool. The searcher should not be used after
// calling Release.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Search returns up to k chunks ranked by cosine similarity to the query
// vector, strictly descending by score with ties broken by insertion order.
// An empty corpus yields an empty result, not an error.
func (s *Searcher) Search(ctx context.Context, vector []float32, k int) ([]Match, error) {
	return s.SearchWithMonitor(ctx, vector, k, nil, nil)
}

// SearchFiltered behaves like Search but only scores chunks the keep
// predicate accepts. The predicate runs before scoring, so the scoring
// algorithm itself is unchanged.
func (s *Searcher) SearchFiltered(ctx context.Context, vector []float32, k int, keep Filter) ([]Match, error) {
	return s.SearchWithMonitor(ctx, vector, k, keep, nil)
}

// SearchWithMonitor performs a search with observation hooks for each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, vector []float32, k int, keep Filter, monitor SearchMonitor) ([]Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k <= 0 {
		k = DefaultTopK
	}

	if len(vector) != s.corpus.Dimension() {
		return nil, fmt.Errorf("%w: query has %d dimensions, corpus stores %d",
			core.ErrDimensionMismatch, len(vector), s.corpus.Dimension())
	}

	monitor.Start(len(vector), k)

	// Collect the candidate set under the filter predicate. The corpus
	// iterator is a snapshot, so concurrent ingestion cannot skew the scan.
	candidates := make([]index.Entry, 0, s.corpus.Len())
	for entry := range s.corpus.AllChunks() {
		if keep != nil && !keep(entry.Chunk) {
			continue
		}
		candidates = append(candidates, entry)
	}
	monitor.AfterCandidateScan(len(candidates))

	if len(candidates) == 0 {
		monitor.Finish(nil)
		return []Match{}, nil
	}

	scores := s.scoreAll(vector, candidates)
	matches := make([]Match, 0, len(candidates))
	for i, entry := range candidates {
		if s.hasFloor && scores[i] < s.minScore {
			continue
		}
		matches = append(matches, Match{Entry: entry, Score: scores[i]})
	}
	monitor.AfterScoring(len(matches))

	// Descending score; equal scores keep insertion order (earlier wins).
	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return a.Entry.Chunk.Ordinal - b.Entry.Chunk.Ordinal
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	s.logger.Debug("similarity search complete", "candidates", len(candidates), "hits", len(matches), "k", k)
	monitor.Finish(matches)
	return matches, nil
}

// scoreAll computes cosine similarity for every candidate, sharding the
// scan across the worker pool.
func (s *Searcher) scoreAll(vector []float32, candidates []index.Entry) []float32 {
	queryNorm := vectorNorm(vector)
	scores := make([]float32, len(candidates))

	shardSize := (len(candidates) + s.pool.Cap() - 1) / s.pool.Cap()
	if shardSize < 1 {
		shardSize = 1
	}

	var wg sync.WaitGroup
	for start := 0; start < len(candidates); start += shardSize {
		end := min(start+shardSize, len(candidates))
		wg.Add(1)
		task := func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				scores[i] = cosine(vector, queryNorm, candidates[i])
			}
		}
		// Run inline if the pool rejects the task; correctness does not
		// depend on where a shard executes.
		if err := s.pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	return scores
}

// cosine computes the cosine similarity between the query and an entry's
// chunk vector, using the entry's precomputed norm.
func cosine(query []float32, queryNorm float32, entry index.Entry) float32 {
	if queryNorm == 0 || entry.Norm == 0 {
		return 0
	}

	var dot float32
	vec := entry.Chunk.Vector
	n := min(len(query), len(vec))
	for i := 0; i < n; i++ {
		dot += query[i] * vec[i]
	}
	return dot / (queryNorm * entry.Norm)
}

// vectorNorm computes the Euclidean norm of a vector.
func vectorNorm(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sum))
}
