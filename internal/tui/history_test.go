package tui

import "testing"

func TestBoundedStackEvictsOldest(t *testing.T) {
	var s boundedStack[int]
	for i := 1; i <= navHistoryCap+1; i++ {
		s.push(i)
	}
	if s.depth() != navHistoryCap {
		t.Fatalf("depth = %d, want %d", s.depth(), navHistoryCap)
	}

	// Newest first; the very first push fell off the bottom.
	for want := navHistoryCap + 1; want >= 2; want-- {
		v, ok := s.pop()
		if !ok || v != want {
			t.Fatalf("pop = %d, %v, want %d", v, ok, want)
		}
	}
	if _, ok := s.pop(); ok {
		t.Fatal("pop on a drained stack should fail")
	}
	if !s.empty() {
		t.Fatal("drained stack should report empty")
	}
}
