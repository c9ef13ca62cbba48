package semiring

import "strconv"

// IntegerWeight is the ordinary (+, ×) semiring over the integers: Zero is
// 0, One is 1. Not weakly divisible (integer division is lossy), not
// idempotent. Mostly useful for counting path multiplicities.
type IntegerWeight int64

type integerSemiring struct{}

var Integer Semiring = integerSemiring{}

func (integerSemiring) Zero() Weight   { return IntegerWeight(0) }
func (integerSemiring) One() Weight    { return IntegerWeight(1) }
func (integerSemiring) String() string { return "integer" }
func (integerSemiring) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative
}

func (w IntegerWeight) Semiring() Semiring { return Integer }
func (w IntegerWeight) String() string     { return strconv.FormatInt(int64(w), 10) }

func (w IntegerWeight) Plus(other Weight) Weight  { return w + other.(IntegerWeight) }
func (w IntegerWeight) Times(other Weight) Weight { return w * other.(IntegerWeight) }
func (w IntegerWeight) IsZero() bool              { return w == 0 }
func (w IntegerWeight) IsOne() bool               { return w == 1 }

func (w IntegerWeight) ApproxEqual(other Weight, _ float64) bool {
	return w == other.(IntegerWeight)
}

func (w IntegerWeight) Hash() uint64 { return uint64(w) }
