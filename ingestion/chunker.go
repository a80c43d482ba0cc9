package ingestion

import (
	"fmt"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
)

const (
	// DefaultChunkSize is the window length in characters.
	DefaultChunkSize = 800

	// DefaultChunkOverlap is how many characters consecutive windows share.
	DefaultChunkOverlap = 250
)

// Piece is one windowed span of source text destined to become a chunk.
// Offsets are character (rune) positions into the source text.
type Piece struct {
	Text    string
	Offsets core.OffsetRange
}

// Chunker splits extracted text into fixed-length windows with overlap.
// Windows are measured in runes so multi-byte text chunks cleanly.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker with the given window size and overlap.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidChunkWindow, size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d for size %d", ErrInvalidChunkWindow, overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// DefaultChunker returns a chunker with the standard 800/250 window.
func DefaultChunker() *Chunker {
	c, _ := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	return c
}

// Split windows the text. Empty or whitespace-free-empty input yields no
// pieces. The final window is short rather than padded.
func (c *Chunker) Split(text string) []Piece {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	pieces := make([]Piece, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := min(start+c.size, len(runes))
		pieces = append(pieces, Piece{
			Text:    string(runes[start:end]),
			Offsets: core.OffsetRange{Start: start, End: end},
		})
		if end == len(runes) {
			break
		}
	}
	return pieces
}
