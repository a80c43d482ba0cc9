package borehole

import (
	"log/slog"
	"regexp"
	"strconv"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
)

// markerPattern matches sidetrack markers carrying an explicit numeral:
// "S2", "S-2", "s_2", "Sidetrack 2", "sidetrack-2", "side track 2",
// "sidetrack2". Matching is case-insensitive and the marker must start
// and end on a token boundary, where underscores also delimit tokens:
// "s2_final" matches, "GAS2" and "s2a" never do. The fuller "sidetrack"
// spelling is tried first at each position.
var markerPattern = regexp.MustCompile(`(?i)(?:\A|[^a-z0-9])(?:side[ _-]?track[ _-]?([0-9]+)|s[ _-]?([0-9]+))(?:[^a-z0-9]|\z)`)

// RankTable maps borehole identities to priority ranks. Higher ranks
// supersede lower ones when the resolver collapses a result set, which
// encodes the domain fact that later re-drills replace earlier holes.
type RankTable struct {
	// MainHole is the rank of the original, non-deviated borehole.
	MainHole int

	// Sidetracks maps sidetrack numerals to ranks. Numerals without an
	// entry default to numeral+1, so Sidetrack 1 = 2, Sidetrack 2 = 3,
	// and any sidetrack outranks the main hole. Populate this table to
	// support naming conventions where the numeral alone does not order
	// the holes.
	Sidetracks map[int]int
}

// DefaultRankTable returns the standard rank mapping:
// Main Hole = 1, Sidetrack(n) = n+1.
func DefaultRankTable() RankTable {
	return RankTable{MainHole: 1}
}

// SidetrackRank returns the rank for the given sidetrack numeral.
func (t RankTable) SidetrackRank(n int) int {
	if rank, ok := t.Sidetracks[n]; ok {
		return rank
	}
	return n + 1
}

// Classifier assigns a BoreholeTag to a chunk using only its owning
// document's filename and the chunk's text content. Tags are derived
// fresh on every call and never persisted, so the ruleset can evolve
// independently of ingested data.
type Classifier struct {
	ranks  RankTable
	logger *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithRankTable overrides the default rank mapping.
func WithRankTable(table RankTable) Option {
	return func(c *Classifier) error {
		c.ranks = table
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClassifier creates a classifier with the default rank table.
func NewClassifier(opts ...Option) (*Classifier, error) {
	c := &Classifier{
		ranks:  DefaultRankTable(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Classify infers the borehole identity for a chunk. The filename is
// checked first (High confidence), then the chunk text (Medium); when
// neither carries a sidetrack marker the chunk belongs to the main hole
// (Low confidence). A chunk mentioning several sidetracks resolves to
// the leftmost marker in scan order; no disambiguation is attempted.
func (c *Classifier) Classify(filename, text string) core.BoreholeTag {
	if n, ok := findMarker(filename); ok {
		return c.sidetrackTag(n, core.ConfidenceHigh)
	}
	if n, ok := findMarker(text); ok {
		return c.sidetrackTag(n, core.ConfidenceMedium)
	}
	return core.BoreholeTag{
		Kind:       core.KindMainHole,
		Rank:       c.ranks.MainHole,
		Confidence: core.ConfidenceLow,
	}
}

// ClassifyChunk classifies an indexed chunk via its document's filename
// and its own text.
func (c *Classifier) ClassifyChunk(doc *core.Document, chunk *core.Chunk) core.BoreholeTag {
	return c.Classify(doc.Filename, chunk.Text)
}

func (c *Classifier) sidetrackTag(n int, confidence core.Confidence) core.BoreholeTag {
	return core.BoreholeTag{
		Kind:       core.KindSidetrack,
		Number:     n,
		Rank:       c.ranks.SidetrackRank(n),
		Confidence: confidence,
	}
}

// findMarker returns the numeral of the leftmost sidetrack marker in s.
func findMarker(s string) (int, bool) {
	for _, m := range markerPattern.FindAllStringSubmatch(s, -1) {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 {
			// "S0" carries no usable generation; keep scanning.
			continue
		}
		return n, true
	}
	return 0, false
}
