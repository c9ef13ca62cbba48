package semiring

import (
	"math"
	"strconv"
)

// TropicalWeight is the (min, +) semiring: Plus is min, Times is +, Zero is
// +Inf, One is 0. It is idempotent and path (every Plus picks one of its
// operands), the default weight for shortest-path style FSTs.
type TropicalWeight float64

type tropicalSemiring struct{}

// Tropical is the singleton Semiring for TropicalWeight.
var Tropical Semiring = tropicalSemiring{}

func (tropicalSemiring) Zero() Weight      { return TropicalWeight(math.Inf(1)) }
func (tropicalSemiring) One() Weight       { return TropicalWeight(0) }
func (tropicalSemiring) String() string    { return "tropical" }
func (tropicalSemiring) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path | WeaklyDivisible | HasQuantize | HasReverse
}

func (w TropicalWeight) Semiring() Semiring { return Tropical }
func (w TropicalWeight) String() string     { return strconv.FormatFloat(float64(w), 'g', -1, 64) }

func (w TropicalWeight) Plus(other Weight) Weight {
	o := other.(TropicalWeight)
	if w < o {
		return w
	}
	return o
}

func (w TropicalWeight) Times(other Weight) Weight {
	o := other.(TropicalWeight)
	if math.IsInf(float64(w), 1) || math.IsInf(float64(o), 1) {
		return TropicalWeight(math.Inf(1))
	}
	return w + o
}

func (w TropicalWeight) IsZero() bool { return math.IsInf(float64(w), 1) }
func (w TropicalWeight) IsOne() bool  { return float64(w) == 0 }

func (w TropicalWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(TropicalWeight)
	if w.IsZero() && o.IsZero() {
		return true
	}
	return math.Abs(float64(w)-float64(o)) <= delta
}

func (w TropicalWeight) Hash() uint64 {
	if w.IsZero() {
		return math.MaxUint64
	}
	return math.Float64bits(float64(w))
}

// Divide implements WeaklyDivisibleSemiring: a ⊘ b = a - b in (min,+).
func (tropicalSemiring) Divide(a, b Weight, _ DivideSide) (Weight, error) {
	aw, bw := a.(TropicalWeight), b.(TropicalWeight)
	if bw.IsZero() {
		return nil, errNotDivisible("tropical", "division by zero weight")
	}
	if aw.IsZero() {
		return TropicalWeight(math.Inf(1)), nil
	}
	return TropicalWeight(float64(aw) - float64(bw)), nil
}

// Tropical is commutative, so its reverse weight is itself.
func (tropicalSemiring) ReverseSemiring() Semiring { return Tropical }

func (tropicalSemiring) Reverse(w Weight) Weight { return w }

func (tropicalSemiring) ReverseBack(w Weight) Weight { return w }

// Quantize rounds w to the nearest multiple of delta, the delta-bucketing
// used to terminate determinization under float drift.
func (tropicalSemiring) Quantize(w Weight, delta float64) Weight {
	tw := w.(TropicalWeight)
	if tw.IsZero() || delta <= 0 {
		return tw
	}
	return TropicalWeight(math.Round(float64(tw)/delta) * delta)
}
