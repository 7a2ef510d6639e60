package listing

import "sync"

// RefreshGuard hands out monotonically increasing tokens so that when
// overlapping refreshes of the same derived value race, only the completion
// carrying the newest token is allowed to commit. A superseded completion is
// discarded instead of overwriting fresher state.
type RefreshGuard struct {
	mu        sync.Mutex
	issued    uint64
	committed uint64
}

// Begin issues a token for a new refresh attempt.
func (g *RefreshGuard) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// Commit reports whether the completion holding token may publish its result.
// Only the newest issued token may commit: a completion superseded by a later
// Begin is rejected even when it finishes first.
func (g *RefreshGuard) Commit(token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token < g.issued || token <= g.committed {
		return false
	}
	g.committed = token
	return true
}
