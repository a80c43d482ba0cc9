package storage

import (
	"testing"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRecordRoundTrip(t *testing.T) {
	record := &ChunkRecord{
		WellName:   "NSKT-01",
		DocumentId: core.IDFromContent("nskt-01/s2_final.pdf#0"),
		Filename:   "s2_final.pdf",
		Modality:   core.ModalityText,
		Text:       "TVD 2450m at section B, sidetrack 2",
		Vector:     []float32{0.12, -0.5, 0.98, 0},
		Offsets:    core.OffsetRange{Start: 800, End: 1600},
	}

	data := MarshalChunkRecord(record)
	require.NotEmpty(t, data)

	got, err := UnmarshalChunkRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestChunkRecordRoundTrip_EmptyVector(t *testing.T) {
	record := &ChunkRecord{
		WellName: "NSKT-01",
		Filename: "report.pdf",
		Modality: core.ModalityImage,
		Text:     "casing diagram",
	}

	got, err := UnmarshalChunkRecord(MarshalChunkRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record.Text, got.Text)
	assert.Empty(t, got.Vector)
}

func TestUnmarshalChunkRecord_Truncated(t *testing.T) {
	record := &ChunkRecord{
		WellName: "NSKT-01",
		Filename: "report.pdf",
		Modality: core.ModalityText,
		Text:     "TVD 2306m",
		Vector:   []float32{1, 0, 0},
	}
	data := MarshalChunkRecord(record)

	_, err := UnmarshalChunkRecord(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestChunkRecordSkip(t *testing.T) {
	first := &ChunkRecord{
		WellName: "NSKT-01",
		Filename: "a.pdf",
		Modality: core.ModalityText,
		Text:     "first",
		Vector:   []float32{1, 0},
	}
	second := &ChunkRecord{
		WellName: "NSKT-01",
		Filename: "b.pdf",
		Modality: core.ModalityText,
		Text:     "second",
		Vector:   []float32{0, 1},
	}

	data := append(MarshalChunkRecord(first), MarshalChunkRecord(second)...)

	n, err := ChunkRecordMUS.Skip(data)
	require.NoError(t, err)

	got, _, err := ChunkRecordMUS.Unmarshal(data[n:])
	require.NoError(t, err)
	assert.Equal(t, "second", got.Text)
}

func TestRecordFromChunk(t *testing.T) {
	doc := &core.Document{
		Id:       core.IDFromContent("nskt-01/report.pdf#0"),
		Filename: "report.pdf",
		Modality: core.ModalityText,
	}
	chunk := &core.Chunk{
		Text:     "TVD 2306m",
		Vector:   []float32{1, 0, 0},
		Offsets:  core.OffsetRange{Start: 0, End: 9},
		Modality: core.ModalityText,
	}

	record := RecordFromChunk("NSKT-01", doc, chunk)
	assert.Equal(t, "NSKT-01", record.WellName)
	assert.Equal(t, doc.Id, record.DocumentId)
	assert.Equal(t, "report.pdf", record.Filename)
	assert.Equal(t, chunk.Text, record.Text)
	assert.Equal(t, chunk.Offsets, record.Offsets)
}
