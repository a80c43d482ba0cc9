package borehole

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SauravBhattacharjee25/hierarchical-rag-petroleum/core"
)

// Resolution is the outcome of collapsing a scored result set to one
// authoritative borehole. Results keeps the relative order produced by
// similarity search; Dropped records how many results each losing
// borehole contributed, purely for observability.
type Resolution struct {
	// Selected identifies the winning borehole. Zero value when the
	// input was empty. Confidence is taken from the winning group's
	// first member; members may differ in confidence but never in
	// kind, numeral or rank.
	Selected core.BoreholeTag

	// Results are the winning group's results in descending score order.
	Results []core.ScoredResult

	// Dropped maps losing borehole labels to the number of results
	// they lost, e.g. {"Main Hole": 1, "Sidetrack 1": 1}.
	Dropped map[string]int
}

// Empty reports whether the resolution carries no results.
func (r Resolution) Empty() bool {
	return len(r.Results) == 0
}

// DroppedTotal returns the number of results removed by the resolution.
func (r Resolution) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// Summary renders a human-readable account of the resolution, e.g.
// "selected Sidetrack 2 (priority 3): 5 results; dropped Main Hole: 1, Sidetrack 1: 1".
func (r Resolution) Summary() string {
	if r.Empty() {
		return "no results"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "selected %s (priority %d): %d results",
		r.Selected.Label(), r.Selected.Rank, len(r.Results))

	if len(r.Dropped) > 0 {
		b.WriteString("; dropped ")
		labels := make([]string, 0, len(r.Dropped))
		for label := range r.Dropped {
			labels = append(labels, label)
		}
		slices.Sort(labels)
		for i, label := range labels {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %d", label, r.Dropped[label])
		}
	}

	return b.String()
}

// Resolve collapses classified, scored results down to the single
// highest-priority borehole present. Results are grouped by borehole
// identity, the group with the maximum rank wins, and the winning
// group's results keep their input order. An empty input yields an
// empty resolution, not an error; an all-main-hole input selects the
// main hole and drops nothing.
func Resolve(results []core.ScoredResult) Resolution {
	if len(results) == 0 {
		return Resolution{Dropped: map[string]int{}}
	}

	type group struct {
		tag   core.BoreholeTag
		items []core.ScoredResult
	}

	groups := make(map[string]*group)
	for _, result := range results {
		label := result.Tag.Label()
		g, ok := groups[label]
		if !ok {
			g = &group{tag: result.Tag}
			groups[label] = g
		}
		g.items = append(g.items, result)
	}

	var winner *group
	for _, g := range groups {
		if winner == nil || supersedes(g.tag, winner.tag) {
			winner = g
		}
	}

	dropped := make(map[string]int)
	for label, g := range groups {
		if label != winner.tag.Label() {
			dropped[label] = len(g.items)
		}
	}

	return Resolution{
		Selected: winner.tag,
		Results:  winner.items,
		Dropped:  dropped,
	}
}

// supersedes reports whether borehole a outranks borehole b. Rank
// decides; with the default table ranks derive uniquely from identity,
// but a custom RankTable can assign two identities the same rank, so
// equal ranks fall back to the higher sidetrack numeral (main hole
// last) to keep the selection deterministic.
func supersedes(a, b core.BoreholeTag) bool {
	if a.Rank != b.Rank {
		return a.Rank > b.Rank
	}
	if a.Number != b.Number {
		return a.Number > b.Number
	}
	return a.Kind == core.KindSidetrack && b.Kind == core.KindMainHole
}
