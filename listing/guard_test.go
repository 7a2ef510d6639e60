package listing

import "testing"

func TestRefreshGuardDiscardsStaleCompletion(t *testing.T) {
	var g RefreshGuard

	first := g.Begin()
	second := g.Begin()

	// The newer request finishes first and commits.
	if !g.Commit(second) {
		t.Fatal("newest completion must be allowed to commit")
	}

	// The slower, superseded response must be discarded.
	if g.Commit(first) {
		t.Fatal("stale completion overwrote fresher state")
	}
}

func TestRefreshGuardDiscardsSupersededCompletionThatLandsFirst(t *testing.T) {
	var g RefreshGuard

	first := g.Begin()
	second := g.Begin()

	// The superseded request finishes first; it must not publish even
	// briefly while the newer one is still in flight.
	if g.Commit(first) {
		t.Fatal("superseded completion committed ahead of the newest request")
	}

	if !g.Commit(second) {
		t.Fatal("newest completion must still be allowed to commit")
	}
}

func TestRefreshGuardInOrderCompletions(t *testing.T) {
	var g RefreshGuard
	for i := 0; i < 5; i++ {
		token := g.Begin()
		if !g.Commit(token) {
			t.Fatalf("in-order completion %d rejected", i)
		}
	}
}
