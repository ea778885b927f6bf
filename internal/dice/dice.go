package dice

import "fmt"

// Source produces uniformly distributed unsigned integers on demand.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Uint32() uint32
}

// Face is the state of a special die.
type Face uint8

const (
	Eel Face = iota
	Escalator
)

// FaceFromValue maps a raw draw onto a die face. Any value outside the two
// faces is an internal consistency fault.
func FaceFromValue(v uint32) Face {
	switch v {
	case 0:
		return Eel
	case 1:
		return Escalator
	default:
		panic(fmt.Sprintf("special die value %d out of range", v))
	}
}

func (f Face) String() string {
	if f == Escalator {
		return "escalator"
	}
	return "eel"
}

// SpecialDie is a two-faced die showing either an eel or an escalator.
type SpecialDie struct {
	face Face
}

// Roll flips the die.
func (d *SpecialDie) Roll(src Source) {
	d.face = FaceFromValue(src.Uint32() % 2)
}

// Face returns the side currently showing.
func (d *SpecialDie) Face() Face { return d.face }

// NumberDie is a numeric die covering start..start+sides-1.
type NumberDie struct {
	start  uint32
	sides  uint32
	value  uint32
	legacy bool
}

// NewSixSided returns a standard 1..6 die.
func NewSixSided() NumberDie {
	return NumberDie{start: 1, sides: 6, value: 1}
}

// Roll draws a new value. A legacy die masks the draw with sides+start, which
// yields 0..7 for a six-sided die instead of a uniform 1..6.
func (d *NumberDie) Roll(src Source) {
	if d.legacy {
		d.value = src.Uint32() & (d.sides + d.start)
		return
	}
	d.value = d.start + uniform(src, d.sides)
}

// Value returns the current face value.
func (d *NumberDie) Value() uint32 { return d.value }

// uniform returns a value in [0, n) without modulo bias.
func uniform(src Source, n uint32) uint32 {
	rem := (0 - n) % n // 2^32 mod n
	v := src.Uint32()
	for v > ^uint32(0)-rem {
		v = src.Uint32()
	}
	return v % n
}

// Kind discriminates the outcome of a compound roll.
type Kind uint8

const (
	Number Kind = iota
	Eels
	Escalators
)

func (k Kind) String() string {
	switch k {
	case Eels:
		return "eels"
	case Escalators:
		return "escalator"
	default:
		return "number"
	}
}

// RollResult is the outcome derived from the three dice.
type RollResult struct {
	Kind  Kind
	Value uint32
}

func (r RollResult) String() string {
	return fmt.Sprintf("%s(%d)", r.Kind, r.Value)
}

// Set is one numeric die plus two special dice.
type Set struct {
	number NumberDie
	first  SpecialDie
	second SpecialDie
}

// Option configures a Set.
type Option func(*Set)

// WithLegacyMask masks the numeric draw with sides+start instead of rolling uniformly.
func WithLegacyMask() Option {
	return func(s *Set) { s.number.legacy = true }
}

// NewSet builds a fresh dice set. Both special dice start on Eel.
func NewSet(opts ...Option) *Set {
	s := &Set{number: NewSixSided()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RollAll rerolls every die from src.
func (s *Set) RollAll(src Source) {
	s.number.Roll(src)
	s.first.Roll(src)
	s.second.Roll(src)
}

// Result projects the current die states onto a RollResult.
func (s *Set) Result() RollResult {
	return Derive(s.first.face, s.second.face, s.number.value)
}

// Derive computes a RollResult from raw die states.
func Derive(first, second Face, value uint32) RollResult {
	switch {
	case first == Eel && second == Eel:
		return RollResult{Kind: Eels, Value: value}
	case first == Escalator && second == Escalator:
		return RollResult{Kind: Escalators, Value: value}
	default:
		return RollResult{Kind: Number, Value: value}
	}
}
