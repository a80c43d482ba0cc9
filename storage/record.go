package storage

import (
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
)

// ChunkRecord is the flat persisted form of one indexed chunk. A saved
// index is an ordered sequence of these records; replaying them in
// stored order rebuilds the Well -> Document -> Chunk hierarchy exactly,
// including the insertion ordinals similarity search relies on.
type ChunkRecord struct {
	WellName   string
	DocumentId core.ID
	Filename   string
	Modality   core.Modality
	Text       string
	Vector     []float32
	Offsets    core.OffsetRange
}

// RecordFromChunk builds the persisted form of a chunk and its hierarchy
// context.
func RecordFromChunk(wellName string, doc *core.Document, chunk *core.Chunk) *ChunkRecord {
	return &ChunkRecord{
		WellName:   wellName,
		DocumentId: doc.Id,
		Filename:   doc.Filename,
		Modality:   chunk.Modality,
		Text:       chunk.Text,
		Vector:     chunk.Vector,
		Offsets:    chunk.Offsets,
	}
}
