package determinize

import (
	"fmt"
	"sort"
	"sync"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/semiring"
	"github.com/garvys-org/gofst/statetable"
)

// Op is the determinization algorithm proper (the acceptor case): given a
// weighted acceptor, a CommonDivisor, and a state-tuple table, it computes
// the start state, outgoing transitions, and final weight of any
// determinized state id. The twins property is not checked: on a cyclic
// operand over a semiring without the path property the subset
// construction may keep producing new subsets and never terminate.
type Op struct {
	f       fst.Fst
	table   *statetable.StateTable
	divisor CommonDivisor
	delta   float64

	// outDist is shortest-distance bookkeeping threaded alongside state
	// interning, preserved for a later minimization pass. Guarded by mu:
	// a shared LazyFst may drive ComputeTrs from several goroutines.
	mu      sync.Mutex
	outDist map[fst.StateId]semiring.Weight
}

// NewOp validates f (must be an acceptor, ilabel == olabel on every Tr)
// and its semiring (must be left-distributive) and returns a ready Op.
func NewOp(f fst.Fst, divisor CommonDivisor) (*Op, error) {
	sr := f.Semiring()
	if !sr.Properties().Has(semiring.LeftSemiring) {
		return nil, gofsterr.New(gofsterr.LeftSemiringRequired, "determinize: semiring is not left-distributive")
	}
	if !isAcceptor(f) {
		return nil, gofsterr.New(gofsterr.NotAcceptor, "determinize: operand is not an acceptor (reduce to Gallic first)")
	}
	if divisor == nil {
		divisor = DefaultCommonDivisor{}
	}
	return &Op{
		f:       f,
		table:   statetable.New(),
		divisor: divisor,
		delta:   semiring.KDelta,
		outDist: make(map[fst.StateId]semiring.Weight),
	}, nil
}

func isAcceptor(f fst.Fst) bool {
	if f.Properties().Has(fst.Acceptor) {
		return true
	}
	if f.Properties().Has(fst.NotAcceptor) {
		return false
	}
	n := int(f.NumStates())
	for s := 0; s < n; s++ {
		trs, err := f.GetTrs(fst.StateId(s))
		if err != nil {
			return false
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if tr.Ilabel != tr.Olabel {
				return false
			}
		}
	}
	return true
}

// ComputeStart interns the subset {(start, 1)} and returns its id.
func (op *Op) ComputeStart() (fst.StateId, bool, error) {
	start, ok := op.f.Start()
	if !ok {
		return 0, false, nil
	}
	one := op.f.Semiring().One()
	subset := NewSubset([]Element{{State: start, Weight: one}})
	id := fst.StateId(op.table.FindId(StateTuple{Subset: subset, Fs: TrivialFilterState{}}))
	op.mu.Lock()
	op.outDist[id] = one
	op.mu.Unlock()
	return id, true, nil
}

// ComputeTrs groups s's subset's outgoing operand transitions by label,
// normalizes each label's successor subset, and emits one composed
// transition per label.
func (op *Op) ComputeTrs(s fst.StateId) (fst.TrsVec, error) {
	tuple, ok := op.table.FindTuple(uint32(s)).(StateTuple)
	if !ok {
		return fst.TrsVec{}, fmt.Errorf("determinize: state %d has no interned tuple", s)
	}

	byLabel := make(map[fst.Label][]Element)
	var labels []fst.Label
	for _, elt := range tuple.Subset.Elements {
		trs, err := op.f.GetTrs(elt.State)
		if err != nil {
			return fst.TrsVec{}, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			w := elt.Weight.Times(tr.Weight)
			if _, seen := byLabel[tr.Ilabel]; !seen {
				labels = append(labels, tr.Ilabel)
			}
			byLabel[tr.Ilabel] = append(byLabel[tr.Ilabel], Element{State: tr.Nextstate, Weight: w})
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	sr := op.f.Semiring()
	quantizer, canQuantize := sr.(semiring.QuantizableSemiring)
	divisible, isDivisible := sr.(semiring.WeaklyDivisibleSemiring)

	var out []fst.Tr
	for _, label := range labels {
		combined := NewSubset(byLabel[label])
		if len(combined.Elements) == 0 {
			continue
		}

		weights := make([]semiring.Weight, len(combined.Elements))
		for i, e := range combined.Elements {
			weights[i] = e.Weight
		}
		d := op.divisor.Divide(weights, sr.Zero())
		if d.IsZero() {
			continue
		}

		normalized := make([]Element, len(combined.Elements))
		for i, e := range combined.Elements {
			residual := e.Weight
			if isDivisible && !d.IsOne() {
				q, err := divisible.Divide(e.Weight, d, semiring.DivideLeft)
				if err != nil {
					return fst.TrsVec{}, gofsterr.Wrap(gofsterr.SemiringNotDivisible, "determinize: residual weight not divisible by common divisor", err)
				}
				residual = q
			} else if !isDivisible && !d.IsOne() {
				return fst.TrsVec{}, gofsterr.New(gofsterr.SemiringNotDivisible, "determinize: semiring is not weakly divisible")
			}
			if canQuantize {
				residual = quantizer.Quantize(residual, op.delta)
			}
			normalized[i] = Element{State: e.State, Weight: residual}
		}
		nextSubset := Subset{Elements: normalized}

		nextID := fst.StateId(op.table.FindId(StateTuple{Subset: nextSubset, Fs: TrivialFilterState{}}))
		op.mu.Lock()
		if prev, ok := op.outDist[nextID]; ok {
			op.outDist[nextID] = prev.Plus(op.outDist[s].Times(d))
		} else {
			op.outDist[nextID] = op.outDist[s].Times(d)
		}
		op.mu.Unlock()

		out = append(out, fst.Tr{Ilabel: label, Olabel: label, Weight: d, Nextstate: nextID})
	}
	return fst.NewTrsVec(out), nil
}

// ComputeFinalWeight is ⊕ of (elt.weight ⊗ operand.final(elt.state)) over
// the subset; (nil, false, nil) if the sum is zero.
func (op *Op) ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool, error) {
	tuple, ok := op.table.FindTuple(uint32(s)).(StateTuple)
	if !ok {
		return nil, false, fmt.Errorf("determinize: state %d has no interned tuple", s)
	}

	sr := op.f.Semiring()
	final := sr.Zero()
	for _, elt := range tuple.Subset.Elements {
		w, has, err := op.f.FinalWeight(elt.State)
		if err != nil {
			return nil, false, err
		}
		if !has {
			continue
		}
		final = final.Plus(elt.Weight.Times(w))
	}
	if final.IsZero() {
		return nil, false, nil
	}
	return final, true, nil
}

// OutDist returns a snapshot of the shortest-distance bookkeeping
// accumulated so far, keyed by determinized state id.
func (op *Op) OutDist() map[fst.StateId]semiring.Weight {
	op.mu.Lock()
	defer op.mu.Unlock()
	out := make(map[fst.StateId]semiring.Weight, len(op.outDist))
	for s, w := range op.outDist {
		out[s] = w
	}
	return out
}
