package semiring

// GallicWeight pairs a StringWeight with an arbitrary weight W, forming the
// product semiring String×W used to reduce transducer determinization to
// acceptor determinization: an arc's output label sequence is folded
// into the String component so the determinization subset construction only
// ever needs to compare and merge states on a single weight value.
//
// Only the plain product form is implemented (Plus and Times both act
// componentwise). OpenFst additionally defines "restrict" and "min" Gallic
// variants that special-case mismatched string components during Plus; this
// module does not need them: determinization only requires reducing a
// transducer to an acceptor before running DeterminizeFsaOp, not
// re-expanding the result, and the product form is sufficient for that.
type GallicWeight struct {
	Str StringWeight
	W   Weight
}

type gallicSemiring struct {
	inner Semiring
}

// NewGallicSemiring builds the Gallic semiring String×inner.
func NewGallicSemiring(inner Semiring) Semiring {
	return gallicSemiring{inner: inner}
}

func (g gallicSemiring) Zero() Weight {
	return GallicWeight{Str: StringInfinity(), W: g.inner.Zero()}
}

func (g gallicSemiring) One() Weight {
	return GallicWeight{Str: StringOf(), W: g.inner.One()}
}

func (g gallicSemiring) String() string { return "gallic_" + g.inner.String() }

func (g gallicSemiring) Properties() Properties {
	p := String.Properties() & g.inner.Properties()
	return p & (LeftSemiring | RightSemiring | Commutative | Idempotent | Path)
}

func (w GallicWeight) Semiring() Semiring { return gallicSemiring{inner: w.W.Semiring()} }

func (w GallicWeight) String() string {
	return w.Str.String() + "/" + w.W.String()
}

func (w GallicWeight) Plus(other Weight) Weight {
	o := other.(GallicWeight)
	return GallicWeight{
		Str: w.Str.Plus(o.Str).(StringWeight),
		W:   w.W.Plus(o.W),
	}
}

func (w GallicWeight) Times(other Weight) Weight {
	o := other.(GallicWeight)
	return GallicWeight{
		Str: w.Str.Times(o.Str).(StringWeight),
		W:   w.W.Times(o.W),
	}
}

func (w GallicWeight) IsZero() bool { return w.Str.IsZero() || w.W.IsZero() }
func (w GallicWeight) IsOne() bool  { return w.Str.IsOne() && w.W.IsOne() }

func (w GallicWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(GallicWeight)
	return w.Str.ApproxEqual(o.Str, delta) && w.W.ApproxEqual(o.W, delta)
}

func (w GallicWeight) Hash() uint64 {
	h := w.Str.Hash()
	h ^= w.W.Hash() + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	return h
}

// Divide divides componentwise, requiring the inner semiring to itself be
// weakly divisible.
func (g gallicSemiring) Divide(a, b Weight, side DivideSide) (Weight, error) {
	aw, bw := a.(GallicWeight), b.(GallicWeight)
	inner, ok := g.inner.(WeaklyDivisibleSemiring)
	if !ok {
		return nil, errNotDivisible(g.String(), "inner semiring is not weakly divisible")
	}
	strQ, err := String.(WeaklyDivisibleSemiring).Divide(aw.Str, bw.Str, side)
	if err != nil {
		return nil, err
	}
	wQ, err := inner.Divide(aw.W, bw.W, side)
	if err != nil {
		return nil, err
	}
	return GallicWeight{Str: strQ.(StringWeight), W: wQ}, nil
}
