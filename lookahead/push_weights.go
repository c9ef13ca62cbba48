package lookahead

import (
	"github.com/garvys-org/gofst/compose"
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// WeightBound supplies an upper bound on the weight still to come out of
// paths on which a label remains reachable from a state. Computing a tight
// bound needs per-state shortest-distance data, which this module does not
// provide itself. Callers that have such data
// (e.g. a shortest-distance pass run externally) implement WeightBound
// over it; IdentityWeightBound is the safe default that performs no
// pushing at all, so PushWeightsFilter degenerates to a correctness-
// preserving pass-through when none is supplied.
type WeightBound interface {
	Bound(s fst.StateId) (semiring.Weight, error)
}

// IdentityWeightBound always reports One, the bound under which
// PushWeightsFilter divides nothing out of any transition weight.
type IdentityWeightBound struct{ One semiring.Weight }

func (b IdentityWeightBound) Bound(fst.StateId) (semiring.Weight, error) { return b.One, nil }

// WeightFilterState pairs an inner FilterState with the actual Weight
// PushWeightsFilter has pulled toward the source so far. It specializes
// compose.PairFilterState (whose Aux field is a plain uint64) for
// a filter automaton that needs the concrete Weight value back on every
// SetState to keep dividing correctly.
type WeightFilterState struct {
	Inner compose.FilterState
	W     semiring.Weight
}

func (s WeightFilterState) Hash() uint64 {
	return s.Inner.Hash()*1099511628211 ^ s.W.Hash()
}

// Equal is exact (delta 0) to stay consistent with Hash: the state table
// requires Equal states to hash equal.
func (s WeightFilterState) Equal(other compose.FilterState) bool {
	o, ok := other.(WeightFilterState)
	return ok && s.Inner.Equal(o.Inner) && s.W.ApproxEqual(o.W, 0)
}

func (s WeightFilterState) IsNoState() bool { return s.Inner.IsNoState() }

// PushWeightsFilter wraps inner, consulting bound for the lookahead-covered
// operand's next state and dividing that estimate out of the matched
// transition's weight so it is pulled toward the source of the path,
// carrying the divided-out remainder forward in FilterState until
// FilterFinal folds it back into the composed final weight. With
// IdentityWeightBound (bound always One) every
// division is by the identity and no weight moves — exercised by
// ComposeFstOp exactly like any other filter, just never altering weights.
type PushWeightsFilter struct {
	inner  compose.Filter
	bound  WeightBound
	onFst1 bool
	sr     semiring.Semiring

	pending semiring.Weight
}

// NewPushWeightsFilter wraps inner. sr is the weight semiring (from either
// operand; both share one in a well-formed composition).
func NewPushWeightsFilter(inner compose.Filter, bound WeightBound, onFst1 bool, sr semiring.Semiring) *PushWeightsFilter {
	return &PushWeightsFilter{inner: inner, bound: bound, onFst1: onFst1, sr: sr}
}

func (f *PushWeightsFilter) Start() compose.FilterState {
	return WeightFilterState{Inner: f.inner.Start(), W: f.sr.One()}
}

func (f *PushWeightsFilter) SetState(s1, s2 fst.StateId, fs compose.FilterState) error {
	wfs := fs.(WeightFilterState)
	f.pending = wfs.W
	return f.inner.SetState(s1, s2, wfs.Inner)
}

func (f *PushWeightsFilter) FilterTr(tr1, tr2 *fst.Tr) (compose.FilterState, error) {
	innerFs, err := f.inner.FilterTr(tr1, tr2)
	if err != nil || innerFs.IsNoState() {
		return WeightFilterState{Inner: innerFs, W: f.sr.One()}, err
	}

	next := tr2.Nextstate
	if f.onFst1 {
		next = tr1.Nextstate
	}
	bound, err := f.bound.Bound(next)
	if err != nil {
		return nil, err
	}

	divisible, ok := f.sr.(semiring.WeaklyDivisibleSemiring)
	if !ok || bound.IsOne() || bound.IsZero() {
		return WeightFilterState{Inner: innerFs, W: f.sr.One()}, nil
	}

	// Pull bound toward the source: divide it out of this transition's
	// weight now, and remember it so a later FilterFinal call along this
	// path can multiply it back into the composed final weight.
	if f.onFst1 {
		pushed, derr := divisible.Divide(tr1.Weight, bound, semiring.DivideRight)
		if derr != nil {
			return nil, derr
		}
		tr1.Weight = pushed
	} else {
		pushed, derr := divisible.Divide(tr2.Weight, bound, semiring.DivideLeft)
		if derr != nil {
			return nil, derr
		}
		tr2.Weight = pushed
	}
	return WeightFilterState{Inner: innerFs, W: bound}, nil
}

func (f *PushWeightsFilter) FilterFinal(w1, w2 *semiring.Weight) error {
	if err := f.inner.FilterFinal(w1, w2); err != nil {
		return err
	}
	if f.pending == nil || f.pending.IsOne() {
		return nil
	}
	if f.onFst1 {
		*w1 = (*w1).Times(f.pending)
	} else {
		*w2 = (*w2).Times(f.pending)
	}
	return nil
}

func (f *PushWeightsFilter) Matcher1() matcher.Matcher { return f.inner.Matcher1() }
func (f *PushWeightsFilter) Matcher2() matcher.Matcher { return f.inner.Matcher2() }

var _ compose.Filter = (*PushWeightsFilter)(nil)
