package ingestion

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/ai/mock"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/index"
	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/storage"
)

const testDimension = 8

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *index.Index) {
	t.Helper()

	ix, err := index.New(index.WithDimension(testDimension))
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.Dimension = testDimension

	p, err := NewPipeline(ix, embedder, opts...)
	require.NoError(t, err)
	return p, ix
}

// memorySnapshot is an in-memory storage.SnapshotRepository for tests.
type memorySnapshot struct {
	mu      sync.Mutex
	records []*storage.ChunkRecord
}

func (m *memorySnapshot) AppendRecords(_ context.Context, records ...*storage.ChunkRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return nil
}

func (m *memorySnapshot) AllRecords(_ context.Context) ([]*storage.ChunkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*storage.ChunkRecord(nil), m.records...), nil
}

func (m *memorySnapshot) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func (m *memorySnapshot) Close() error { return nil }

func TestNewPipeline(t *testing.T) {
	ix, err := index.New(index.WithDimension(testDimension))
	require.NoError(t, err)

	t.Run("requires index", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewPipeline(ix, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("minimal construction", func(t *testing.T) {
		p, err := NewPipeline(ix, mock.NewMockEmbedder())
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestIngestDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes well, document and chunks", func(t *testing.T) {
		p, ix := newTestPipeline(t)

		docID, n, err := p.IngestDocument(ctx, "Volve 15/9-F-1", "main.pdf", core.ModalityText, "TVD of the main hole is 2100m")
		require.NoError(t, err)
		assert.NotZero(t, docID)
		assert.Equal(t, 1, n)

		stats := ix.Stats()
		assert.Equal(t, 1, stats.Wells)
		assert.Equal(t, 1, stats.Documents)
		assert.Equal(t, 1, stats.Chunks)
		assert.Equal(t, 1, stats.ChunksByModality[core.ModalityText])
	})

	t.Run("reuses existing well", func(t *testing.T) {
		p, ix := newTestPipeline(t)

		_, _, err := p.IngestDocument(ctx, "Volve 15/9-F-1", "main.pdf", core.ModalityText, "first report")
		require.NoError(t, err)
		// Well names match case-insensitively.
		_, _, err = p.IngestDocument(ctx, "VOLVE 15/9-F-1", "s1_update.pdf", core.ModalityText, "second report")
		require.NoError(t, err)

		stats := ix.Stats()
		assert.Equal(t, 1, stats.Wells)
		assert.Equal(t, 2, stats.Documents)
	})

	t.Run("empty text", func(t *testing.T) {
		p, _ := newTestPipeline(t)

		_, _, err := p.IngestDocument(ctx, "Volve 15/9-F-1", "blank.pdf", core.ModalityText, "")
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("embedder failure aborts before indexing", func(t *testing.T) {
		p, ix := newTestPipeline(t)
		embedErr := errors.New("embedding host unreachable")
		p.embedder = &mock.MockEmbedder{
			Dimension: testDimension,
			EmbedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
				return nil, embedErr
			},
		}

		_, _, err := p.IngestDocument(ctx, "Volve 15/9-F-1", "main.pdf", core.ModalityText, "some text")
		assert.ErrorIs(t, err, embedErr)
		assert.Equal(t, 0, ix.Len())
	})

	t.Run("embedding count mismatch", func(t *testing.T) {
		p, _ := newTestPipeline(t)
		p.embedder = &mock.MockEmbedder{
			Dimension: testDimension,
			EmbedTextsFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
				return [][]float32{}, nil
			},
		}

		_, _, err := p.IngestDocument(ctx, "Volve 15/9-F-1", "main.pdf", core.ModalityText, "some text")
		assert.ErrorContains(t, err, "embedding result mismatch")
	})
}

func TestIngestDocument_ChunkWindowing(t *testing.T) {
	chunker, err := NewChunker(10, 4)
	require.NoError(t, err)

	p, ix := newTestPipeline(t, WithChunker(chunker))

	text := "abcdefghijklmnopqrstuvwx" // 24 runes, 4 windows at size 10 step 6
	_, n, err := p.IngestDocument(context.Background(), "Volve 15/9-F-1", "main.pdf", core.ModalityText, text)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	var ordinals []int
	for entry := range ix.AllChunks() {
		ordinals = append(ordinals, entry.Chunk.Ordinal)
		assert.Len(t, entry.Chunk.Vector, testDimension)
		assert.Equal(t, "main.pdf", entry.Document.Filename)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, ordinals)
}

func TestIngestDocument_SnapshotAppend(t *testing.T) {
	snap := &memorySnapshot{}
	p, _ := newTestPipeline(t, WithSnapshot(snap))

	ctx := context.Background()
	_, n, err := p.IngestDocument(ctx, "Volve 15/9-F-1", "s2_final.pdf", core.ModalityTable, "TVD of sidetrack 2 is 2306m")
	require.NoError(t, err)

	records, err := snap.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, n)

	assert.Equal(t, "Volve 15/9-F-1", records[0].WellName)
	assert.Equal(t, "s2_final.pdf", records[0].Filename)
	assert.Equal(t, core.ModalityTable, records[0].Modality)
	assert.Equal(t, "TVD of sidetrack 2 is 2306m", records[0].Text)
	assert.Len(t, records[0].Vector, testDimension)
}

// failingSnapshot rejects every append.
type failingSnapshot struct {
	memorySnapshot
	err error
}

func (f *failingSnapshot) AppendRecords(_ context.Context, _ ...*storage.ChunkRecord) error {
	return f.err
}

func TestIngestDocument_SnapshotAppendFailure(t *testing.T) {
	appendErr := errors.New("disk full")
	snap := &failingSnapshot{err: appendErr}
	p, ix := newTestPipeline(t, WithSnapshot(snap))

	_, _, err := p.IngestDocument(context.Background(), "Volve 15/9-F-1", "main.pdf", core.ModalityText, "report")
	assert.ErrorIs(t, err, appendErr)

	// The chunks were indexed before the append failed; they stay
	// queryable this session but are not persisted.
	assert.Equal(t, 1, ix.Len())
	count, err := snap.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIngestDocument_NoSnapshotByDefault(t *testing.T) {
	p, ix := newTestPipeline(t)
	require.Nil(t, p.snapshots)

	_, _, err := p.IngestDocument(context.Background(), "Volve 15/9-F-1", "main.pdf", core.ModalityText, "report")
	require.NoError(t, err)
	assert.Equal(t, 1, ix.Len())
}
