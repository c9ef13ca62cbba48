package semiring

import (
	"math"
	"strconv"
)

// LogWeight is the (-log, +) "log" semiring: Plus is -log(e^-a + e^-b),
// Times is +, Zero is +Inf, One is 0. Unlike Tropical it is not idempotent:
// it accumulates probability mass exactly (in log space) instead of taking
// a min, which is what makes it suitable for summing path weights rather
// than just finding the best one.
type LogWeight float64

type logSemiring struct{}

var Log Semiring = logSemiring{}

func (logSemiring) Zero() Weight   { return LogWeight(math.Inf(1)) }
func (logSemiring) One() Weight    { return LogWeight(0) }
func (logSemiring) String() string { return "log" }
func (logSemiring) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | WeaklyDivisible | HasQuantize | HasReverse
}

func (w LogWeight) Semiring() Semiring { return Log }
func (w LogWeight) String() string     { return strconv.FormatFloat(float64(w), 'g', -1, 64) }

func (w LogWeight) Plus(other Weight) Weight {
	o := other.(LogWeight)
	if w.IsZero() {
		return o
	}
	if o.IsZero() {
		return w
	}
	// -log(e^-a + e^-b) = min(a,b) - log(1 + e^-|a-b|)
	lo, hi := float64(w), float64(o)
	if hi < lo {
		lo, hi = hi, lo
	}
	return LogWeight(lo - math.Log1p(math.Exp(lo-hi)))
}

func (w LogWeight) Times(other Weight) Weight {
	o := other.(LogWeight)
	if w.IsZero() || o.IsZero() {
		return LogWeight(math.Inf(1))
	}
	return w + o
}

func (w LogWeight) IsZero() bool { return math.IsInf(float64(w), 1) }
func (w LogWeight) IsOne() bool  { return float64(w) == 0 }

func (w LogWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(LogWeight)
	if w.IsZero() && o.IsZero() {
		return true
	}
	return math.Abs(float64(w)-float64(o)) <= delta
}

func (w LogWeight) Hash() uint64 {
	if w.IsZero() {
		return math.MaxUint64
	}
	return math.Float64bits(float64(w))
}

// Log is commutative, so its reverse weight is itself.
func (logSemiring) ReverseSemiring() Semiring { return Log }

func (logSemiring) Reverse(w Weight) Weight { return w }

func (logSemiring) ReverseBack(w Weight) Weight { return w }

func (logSemiring) Divide(a, b Weight, _ DivideSide) (Weight, error) {
	aw, bw := a.(LogWeight), b.(LogWeight)
	if bw.IsZero() {
		return nil, errNotDivisible("log", "division by zero weight")
	}
	if aw.IsZero() {
		return LogWeight(math.Inf(1)), nil
	}
	return LogWeight(float64(aw) - float64(bw)), nil
}

func (logSemiring) Quantize(w Weight, delta float64) Weight {
	lw := w.(LogWeight)
	if lw.IsZero() || delta <= 0 {
		return lw
	}
	return LogWeight(math.Round(float64(lw)/delta) * delta)
}
