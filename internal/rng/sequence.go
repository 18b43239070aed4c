package rng

// Sequence replays a fixed list of draws, wrapping around at the end.
// Values are returned as given, without checking the requested range.
type Sequence struct {
	values []int
	pos    int
	draws  int
}

// NewSequence creates a cyclic Source over values. It panics on an empty list.
func NewSequence(values ...int) *Sequence {
	if len(values) == 0 {
		panic("rng: empty sequence")
	}
	return &Sequence{values: append([]int(nil), values...)}
}

// IntRange returns the next value of the sequence.
func (s *Sequence) IntRange(_, _ int) int {
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	s.draws++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.draws
}
