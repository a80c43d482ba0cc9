package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so identical content
// always maps to the same identifier across process restarts.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Modality identifies the source modality a chunk was extracted from.
type Modality int

const (
	// ModalityText represents chunks extracted from running text.
	ModalityText Modality = iota + 1
	// ModalityTable represents chunks derived from tabular data.
	ModalityTable
	// ModalityImage represents chunks derived from images (OCR, captions).
	ModalityImage
)

// String returns the lowercase name of the modality.
func (m Modality) String() string {
	switch m {
	case ModalityText:
		return "text"
	case ModalityTable:
		return "table"
	case ModalityImage:
		return "image"
	default:
		return fmt.Sprintf("modality(%d)", int(m))
	}
}

// OffsetRange is a half-open [Start, End) character range into a
// document's extracted text.
type OffsetRange struct {
	Start int
	End   int
}

// Well identifies a physical drilling location. A well exclusively owns
// its documents; the index cascades ownership.
type Well struct {
	Id        ID
	Name      string
	CreatedAt time.Time
	Documents []*Document
}

// Document is one ingested source file belonging to a well.
// A document's borehole identity is not stored here; it is inferred
// per query from the filename and chunk text, so the same heuristic
// applies to legacy content that was never tagged.
type Document struct {
	Id       ID
	WellId   ID
	Filename string
	Modality Modality
	Chunks   []*Chunk
}

// Chunk is a bounded span of extracted text plus its embedding vector.
// Chunks are immutable once created and are the unit of retrieval.
type Chunk struct {
	DocumentId ID
	Ordinal    int // global insertion position, used for deterministic tie-breaks
	Text       string
	Vector     []float32
	Offsets    OffsetRange
	Modality   Modality
}

// BoreholeKind distinguishes the original hole from re-drilled sidetracks.
type BoreholeKind int

const (
	// KindMainHole is the original, non-deviated borehole.
	KindMainHole BoreholeKind = iota + 1
	// KindSidetrack is a borehole drilled as a deviation from an earlier one.
	KindSidetrack
)

// Confidence indicates how strong the evidence behind a classification is.
// Confidence never affects ranking, only diagnostics.
type Confidence int

const (
	// ConfidenceLow is the default for unmatched main-hole classifications.
	ConfidenceLow Confidence = iota + 1
	// ConfidenceMedium indicates a marker found in chunk text only.
	ConfidenceMedium
	// ConfidenceHigh indicates a marker found in the document filename.
	ConfidenceHigh
)

// String returns the lowercase name of the confidence level.
func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return fmt.Sprintf("confidence(%d)", int(c))
	}
}

// BoreholeTag is the per-query classification of a chunk's borehole
// identity. It is derived fresh on every retrieval pass and never
// persisted, since the classification ruleset may evolve independently
// of ingested data.
type BoreholeTag struct {
	Kind       BoreholeKind
	Number     int // sidetrack numeral; 0 for the main hole
	Rank       int // strictly ordered priority; higher supersedes lower
	Confidence Confidence
}

// Label returns the human-readable borehole name, e.g. "Main Hole" or
// "Sidetrack 2". Labels key the resolver's dropped-group counts.
func (t BoreholeTag) Label() string {
	if t.Kind == KindSidetrack {
		return fmt.Sprintf("Sidetrack %d", t.Number)
	}
	return "Main Hole"
}

// SameHole reports whether two tags identify the same physical borehole.
func (t BoreholeTag) SameHole(other BoreholeTag) bool {
	return t.Kind == other.Kind && t.Number == other.Number
}

// ScoredResult is a transient, per-query pairing of a chunk with its
// similarity score and borehole classification. Scores are comparable
// only within a single query's embedding space.
type ScoredResult struct {
	Chunk *Chunk
	Score float32
	Tag   BoreholeTag
}
