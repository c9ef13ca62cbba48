// Package semiring defines the algebraic abstraction every FST weight is
// drawn from: a set with ⊕ (Plus), ⊗ (Times), a 0 and a 1, plus a small set
// of capability flags (left/right-distributive, weakly-divisible,
// idempotent, path, commutative) that algorithms in compose/determinize/
// rmepsilon query before running.
//
// Weight is intentionally a plain (non-generic) interface: every concrete
// weight type implements Plus/Times/etc. on itself and returns the same
// concrete type boxed back into Weight. Go's generics don't give a clean way
// to express "Plus(W) W where W is the implementing type" without forcing
// every caller of this package to carry the weight type as a parameter, so
// gofst uses small interfaces with dynamic dispatch instead.
package semiring

import "fmt"

// DivideSide selects which side of a weakly-divisible division to perform.
type DivideSide uint8

const (
	DivideLeft DivideSide = iota
	DivideRight
	DivideAny
)

func (s DivideSide) String() string {
	switch s {
	case DivideLeft:
		return "DivideLeft"
	case DivideRight:
		return "DivideRight"
	case DivideAny:
		return "DivideAny"
	default:
		return fmt.Sprintf("DivideSide(%d)", uint8(s))
	}
}

// Properties is a bitset of the algebraic guarantees a Semiring makes.
type Properties uint16

const (
	LeftSemiring Properties = 1 << iota
	RightSemiring
	Commutative
	Idempotent
	Path
	WeaklyDivisible
	HasReverse
	HasQuantize
)

func (p Properties) Has(flag Properties) bool { return p&flag == flag }

// Weight is a single element of a semiring. Every concrete weight type
// (TropicalWeight, LogWeight, ...) implements this interface; Plus/Times
// return the same concrete type, boxed.
type Weight interface {
	fmt.Stringer

	// Semiring returns the Semiring this value belongs to.
	Semiring() Semiring

	// Plus returns w ⊕ other. Panics if other is not the same concrete
	// type (a programming error — weights never mix semirings).
	Plus(other Weight) Weight

	// Times returns w ⊗ other.
	Times(other Weight) Weight

	// IsZero reports whether w == Semiring().Zero().
	IsZero() bool

	// IsOne reports whether w == Semiring().One().
	IsOne() bool

	// ApproxEqual reports whether w and other are equal to within delta
	// (semirings over discrete sets, e.g. Boolean, ignore delta).
	ApproxEqual(other Weight, delta float64) bool

	// Hash returns a hash consistent with ApproxEqual at delta 0: equal
	// weights (under exact equality) always hash equal.
	Hash() uint64
}

// Semiring is the algebra a family of Weight values belongs to.
type Semiring interface {
	fmt.Stringer

	Zero() Weight
	One() Weight
	Properties() Properties
}

// WeaklyDivisibleSemiring is implemented by semirings where every non-zero
// element has a left/right multiplicative inverse with respect to products
// already present. Divide returns a *Error when the requested quotient is
// undefined (e.g. dividing by zero).
type WeaklyDivisibleSemiring interface {
	Semiring
	Divide(a, b Weight, side DivideSide) (Weight, error)
}

// QuantizableSemiring coerces a weight to the representative of its
// delta-equivalence class, needed to terminate determinization on
// floating-point semirings.
type QuantizableSemiring interface {
	Semiring
	Quantize(w Weight, delta float64) Weight
}

// ReversibleSemiring supplies a reverse-weight type used by `reverse` and
// shortest-distance in reverse mode. ReverseWeight lives in the
// (possibly different) semiring returned by ReverseSemiring; ReverseBack
// must round-trip: ReverseBack(Reverse(w)) == w.
type ReversibleSemiring interface {
	Semiring
	ReverseSemiring() Semiring
	Reverse(w Weight) Weight
	ReverseBack(w Weight) Weight
}

const KDelta = 1.0 / 1024.0
