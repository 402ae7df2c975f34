package dice

import "sync"

// Scripted is a Source that replays queued die faces before deferring to a
// fallback source. Queued faces are 1-based, as they appear on a die.
//
// Scripted values are only consumed by six-sided requests so that deck
// shuffles drawing from the same source do not swallow them.
type Scripted struct {
	mu       sync.Mutex
	faces    []int
	fallback Source
}

// NewScripted returns a scripted source over fallback. A nil fallback uses a
// zero-seeded source.
func NewScripted(fallback Source, faces ...int) *Scripted {
	if fallback == nil {
		fallback = NewSource(0)
	}
	return &Scripted{faces: append([]int(nil), faces...), fallback: fallback}
}

// Push appends faces to the queue.
func (s *Scripted) Push(faces ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faces = append(s.faces, faces...)
}

// Pending returns the number of queued faces.
func (s *Scripted) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.faces)
}

// Intn implements Source.
func (s *Scripted) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == Sides && len(s.faces) > 0 {
		face := s.faces[0]
		s.faces = s.faces[1:]
		switch {
		case face < 1:
			face = 1
		case face > n:
			face = n
		}
		return face - 1
	}
	return s.fallback.Intn(n)
}
