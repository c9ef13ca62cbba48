package semiring

// BooleanWeight is the Boolean semiring: Plus is logical OR, Times is
// logical AND, Zero is false, One is true. Idempotent and path: every
// Plus/OR of two booleans yields one of its own operands' values.
type BooleanWeight bool

type booleanSemiring struct{}

var Boolean Semiring = booleanSemiring{}

func (booleanSemiring) Zero() Weight   { return BooleanWeight(false) }
func (booleanSemiring) One() Weight    { return BooleanWeight(true) }
func (booleanSemiring) String() string { return "boolean" }
func (booleanSemiring) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

func (w BooleanWeight) Semiring() Semiring { return Boolean }
func (w BooleanWeight) String() string {
	if w {
		return "T"
	}
	return "F"
}

func (w BooleanWeight) Plus(other Weight) Weight  { return w || other.(BooleanWeight) }
func (w BooleanWeight) Times(other Weight) Weight { return w && other.(BooleanWeight) }
func (w BooleanWeight) IsZero() bool              { return !bool(w) }
func (w BooleanWeight) IsOne() bool               { return bool(w) }

func (w BooleanWeight) ApproxEqual(other Weight, _ float64) bool {
	return w == other.(BooleanWeight)
}

func (w BooleanWeight) Hash() uint64 {
	if w {
		return 1
	}
	return 0
}
