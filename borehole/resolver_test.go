package borehole

import (
	"testing"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(text string, score float32, tag core.BoreholeTag) core.ScoredResult {
	return core.ScoredResult{
		Chunk: &core.Chunk{Text: text},
		Score: score,
		Tag:   tag,
	}
}

func mainHole() core.BoreholeTag {
	return core.BoreholeTag{Kind: core.KindMainHole, Rank: 1, Confidence: core.ConfidenceLow}
}

func sidetrack(n int, confidence core.Confidence) core.BoreholeTag {
	return core.BoreholeTag{Kind: core.KindSidetrack, Number: n, Rank: n + 1, Confidence: confidence}
}

func TestResolve_HighestRankWins(t *testing.T) {
	input := []core.ScoredResult{
		scored("TVD 2306m", 0.95, mainHole()),
		scored("TVD 2400m", 0.90, sidetrack(1, core.ConfidenceHigh)),
		scored("TVD 2450m", 0.85, sidetrack(2, core.ConfidenceHigh)),
	}

	res := Resolve(input)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "TVD 2450m", res.Results[0].Chunk.Text)
	assert.Equal(t, core.KindSidetrack, res.Selected.Kind)
	assert.Equal(t, 2, res.Selected.Number)
	assert.Equal(t, 3, res.Selected.Rank)
	assert.Equal(t, map[string]int{"Main Hole": 1, "Sidetrack 1": 1}, res.Dropped)
}

func TestResolve_PreservesScoreOrder(t *testing.T) {
	input := []core.ScoredResult{
		scored("first", 0.9, sidetrack(2, core.ConfidenceHigh)),
		scored("dropped", 0.8, mainHole()),
		scored("second", 0.7, sidetrack(2, core.ConfidenceMedium)),
		scored("third", 0.6, sidetrack(2, core.ConfidenceHigh)),
	}

	res := Resolve(input)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "first", res.Results[0].Chunk.Text)
	assert.Equal(t, "second", res.Results[1].Chunk.Text)
	assert.Equal(t, "third", res.Results[2].Chunk.Text)
	assert.Equal(t, 1, res.DroppedTotal())
}

func TestResolve_AllMainHole(t *testing.T) {
	input := []core.ScoredResult{
		scored("a", 0.9, mainHole()),
		scored("b", 0.8, mainHole()),
	}

	res := Resolve(input)
	assert.Equal(t, core.KindMainHole, res.Selected.Kind)
	assert.Equal(t, 1, res.Selected.Rank)
	assert.Len(t, res.Results, 2)
	assert.Empty(t, res.Dropped)
}

func TestResolve_EmptyInput(t *testing.T) {
	res := Resolve(nil)
	assert.True(t, res.Empty())
	assert.Zero(t, res.Selected)
	assert.Empty(t, res.Dropped)
	assert.Equal(t, "no results", res.Summary())
}

func TestResolve_SingleResult(t *testing.T) {
	res := Resolve([]core.ScoredResult{scored("only", 0.5, sidetrack(1, core.ConfidenceMedium))})
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Sidetrack 1", res.Selected.Label())
	assert.Empty(t, res.Dropped)
}

func TestResolve_NoResultBelowMaxRank(t *testing.T) {
	input := []core.ScoredResult{
		scored("m1", 0.99, mainHole()),
		scored("s1a", 0.98, sidetrack(1, core.ConfidenceHigh)),
		scored("s3", 0.10, sidetrack(3, core.ConfidenceMedium)),
		scored("s1b", 0.97, sidetrack(1, core.ConfidenceHigh)),
	}

	res := Resolve(input)
	maxRank := 0
	for _, r := range input {
		if r.Tag.Rank > maxRank {
			maxRank = r.Tag.Rank
		}
	}
	for _, r := range res.Results {
		assert.Equal(t, maxRank, r.Tag.Rank)
	}
}

func TestResolve_MonotonicUnderHigherRank(t *testing.T) {
	base := []core.ScoredResult{
		scored("a", 0.9, mainHole()),
		scored("b", 0.8, mainHole()),
	}
	before := Resolve(base)
	assert.Equal(t, core.KindMainHole, before.Selected.Kind)

	after := Resolve(append(base, scored("s2", 0.1, sidetrack(2, core.ConfidenceHigh))))
	assert.Equal(t, core.KindSidetrack, after.Selected.Kind)
	assert.LessOrEqual(t, len(after.Results), len(before.Results))
}

func TestResolve_EqualRankTieBreak(t *testing.T) {
	// A custom rank table can map two numerals to the same rank; the
	// higher numeral must win deterministically.
	s1 := core.BoreholeTag{Kind: core.KindSidetrack, Number: 1, Rank: 4}
	s2 := core.BoreholeTag{Kind: core.KindSidetrack, Number: 2, Rank: 4}
	main := core.BoreholeTag{Kind: core.KindMainHole, Rank: 4}

	res := Resolve([]core.ScoredResult{
		scored("s1", 0.9, s1),
		scored("s2", 0.8, s2),
		scored("main", 0.7, main),
	})
	assert.Equal(t, 2, res.Selected.Number)

	// Main hole loses a rank tie against any sidetrack.
	res = Resolve([]core.ScoredResult{
		scored("main", 0.9, main),
		scored("s1", 0.8, s1),
	})
	assert.Equal(t, core.KindSidetrack, res.Selected.Kind)
}

func TestResolution_Summary(t *testing.T) {
	res := Resolve([]core.ScoredResult{
		scored("m", 0.95, mainHole()),
		scored("s1", 0.90, sidetrack(1, core.ConfidenceHigh)),
		scored("s2a", 0.85, sidetrack(2, core.ConfidenceHigh)),
		scored("s2b", 0.80, sidetrack(2, core.ConfidenceMedium)),
	})

	assert.Equal(t, "selected Sidetrack 2 (priority 3): 2 results; dropped Main Hole: 1, Sidetrack 1: 1", res.Summary())
}
