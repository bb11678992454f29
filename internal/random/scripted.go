package random

import (
	"fmt"
	"sync"
)

// Scripted is a Roller that replays a fixed sequence of draws. Each draw is
// clamped into the requested range. It panics when the script runs out so a
// test never silently rolls more than it expects.
type Scripted struct {
	mu    sync.Mutex
	draws []int
	next  int
	calls [][2]int
}

// NewScripted creates a Scripted roller returning draws in order
func NewScripted(draws ...int) *Scripted {
	return &Scripted{draws: draws}
}

// Between returns the next scripted draw clamped to [min, max]
func (s *Scripted) Between(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.draws) {
		panic(fmt.Sprintf("random: scripted roller exhausted after %d draws (asked for [%d, %d])", len(s.draws), min, max))
	}
	v := s.draws[s.next]
	s.next++
	s.calls = append(s.calls, [2]int{min, max})
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Calls returns the [min, max] ranges requested so far
func (s *Scripted) Calls() [][2]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][2]int, len(s.calls))
	copy(out, s.calls)
	return out
}

// Remaining returns how many scripted draws are left
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.draws) - s.next
}
