package dice

// Scripted is a deterministic Source that replays a fixed sequence of draws,
// wrapping around once exhausted. It is meant for tests and replays.
type Scripted struct {
	values []uint32
	next   int
}

// NewScripted returns a Source that yields values in order.
func NewScripted(values ...uint32) *Scripted {
	if len(values) == 0 {
		values = []uint32{0}
	}
	return &Scripted{values: values}
}

// Uint32 returns the next scripted draw.
func (s *Scripted) Uint32() uint32 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Draws reports how many values have been consumed since the last wrap.
func (s *Scripted) Draws() int { return s.next }
