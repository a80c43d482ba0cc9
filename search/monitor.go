package search

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps during a scan.
type SearchMonitor interface {
	Start(dimension, k int)
	AfterCandidateScan(candidates int)
	AfterScoring(hits int)
	Finish(matches []Match)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ int)           {}
func (n *noopMonitor) AfterCandidateScan(_ int) {}
func (n *noopMonitor) AfterScoring(_ int)       {}
func (n *noopMonitor) Finish(_ []Match)         {}
