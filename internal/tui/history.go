package tui

// navHistoryCap bounds how many "back" steps the browser and the workflow
// board remember. Pushing beyond the cap drops the oldest entry so long
// sessions can't grow the stack without bound.
const navHistoryCap = 10

// boundedStack is a LIFO that keeps at most navHistoryCap entries.
type boundedStack[T any] struct {
	entries []T
}

func (s *boundedStack[T]) push(v T) {
	s.entries = append(s.entries, v)
	if len(s.entries) > navHistoryCap {
		s.entries = s.entries[len(s.entries)-navHistoryCap:]
	}
}

func (s *boundedStack[T]) pop() (T, bool) {
	var zero T
	if len(s.entries) == 0 {
		return zero, false
	}
	v := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return v, true
}

func (s *boundedStack[T]) depth() int { return len(s.entries) }

func (s *boundedStack[T]) empty() bool { return len(s.entries) == 0 }
