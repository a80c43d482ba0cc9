package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunker(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		c, err := NewChunker(800, 250)
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("zero size", func(t *testing.T) {
		_, err := NewChunker(0, 0)
		assert.ErrorIs(t, err, ErrInvalidChunkWindow)
	})

	t.Run("negative overlap", func(t *testing.T) {
		_, err := NewChunker(100, -1)
		assert.ErrorIs(t, err, ErrInvalidChunkWindow)
	})

	t.Run("overlap not smaller than size", func(t *testing.T) {
		_, err := NewChunker(100, 100)
		assert.ErrorIs(t, err, ErrInvalidChunkWindow)
	})
}

func TestSplit_WindowsAndOffsets(t *testing.T) {
	c, err := NewChunker(10, 4)
	require.NoError(t, err)

	text := "abcdefghijklmnopqrstuvwx" // 24 runes
	pieces := c.Split(text)
	require.Len(t, pieces, 4)

	assert.Equal(t, "abcdefghij", pieces[0].Text)
	assert.Equal(t, 0, pieces[0].Offsets.Start)
	assert.Equal(t, 10, pieces[0].Offsets.End)

	// Each window starts size-overlap after the previous one.
	assert.Equal(t, "ghijklmnop", pieces[1].Text)
	assert.Equal(t, 6, pieces[1].Offsets.Start)

	assert.Equal(t, "mnopqrstuv", pieces[2].Text)
	assert.Equal(t, 12, pieces[2].Offsets.Start)

	// The tail window is short, never padded.
	assert.Equal(t, "stuvwx", pieces[3].Text)
	assert.Equal(t, 18, pieces[3].Offsets.Start)
	assert.Equal(t, 24, pieces[3].Offsets.End)
}

func TestSplit_ShortAndEmptyInput(t *testing.T) {
	c, err := NewChunker(800, 250)
	require.NoError(t, err)

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, c.Split(""))
	})

	t.Run("text shorter than window", func(t *testing.T) {
		pieces := c.Split("TVD 2306m")
		require.Len(t, pieces, 1)
		assert.Equal(t, "TVD 2306m", pieces[0].Text)
		assert.Equal(t, 9, pieces[0].Offsets.End)
	})

	t.Run("text exactly one window", func(t *testing.T) {
		text := strings.Repeat("x", 800)
		pieces := c.Split(text)
		require.Len(t, pieces, 1)
		assert.Equal(t, 800, pieces[0].Offsets.End)
	})
}

func TestSplit_RuneOffsets(t *testing.T) {
	c, err := NewChunker(4, 2)
	require.NoError(t, err)

	// Multi-byte runes: offsets count characters, not bytes.
	pieces := c.Split("øvelse på")
	require.NotEmpty(t, pieces)
	assert.Equal(t, "øvel", pieces[0].Text)
	assert.Equal(t, 4, pieces[0].Offsets.End)
	assert.Equal(t, 2, pieces[1].Offsets.Start)
}

func TestSplit_CoversWholeText(t *testing.T) {
	c, err := NewChunker(50, 10)
	require.NoError(t, err)

	text := strings.Repeat("well report data ", 40)
	pieces := c.Split(text)
	require.NotEmpty(t, pieces)

	assert.Equal(t, 0, pieces[0].Offsets.Start)
	assert.Equal(t, len([]rune(text)), pieces[len(pieces)-1].Offsets.End)
	for i := 1; i < len(pieces); i++ {
		// No gaps: every window starts inside the previous one.
		assert.LessOrEqual(t, pieces[i].Offsets.Start, pieces[i-1].Offsets.End)
	}
}
