// Package determinize implements the weighted subset construction that
// turns a weighted acceptor into an equivalent input-deterministic one:
// DeterminizeFsaOp groups each subset's outgoing transitions by
// label, normalizes the label-partitioned successor subset through a
// pluggable CommonDivisor, and interns the normalized subset as a fresh
// state via the statetable package, exactly as compose interns composed
// state tuples.
package determinize

import (
	"sort"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
	"github.com/garvys-org/gofst/statetable"
)

// Element pairs an operand state with its residual weight inside one
// subset of the weighted subset construction.
type Element struct {
	State  fst.StateId
	Weight semiring.Weight
}

// Subset is a normalized WeightedSubset: sorted by State, duplicate states
// combined by ⊕, zero-weight elements dropped. Two Subsets built this way
// compare equal (via Equal) iff they describe the same set of (state,
// weight) pairs.
type Subset struct {
	Elements []Element
}

// NewSubset builds a normalized Subset from raw (state, weight) pairs,
// combining duplicate states by ⊕ and sorting by state.
func NewSubset(raw []Element) Subset {
	if len(raw) == 0 {
		return Subset{}
	}
	byState := make(map[fst.StateId]semiring.Weight, len(raw))
	order := make([]fst.StateId, 0, len(raw))
	for _, e := range raw {
		if w, ok := byState[e.State]; ok {
			byState[e.State] = w.Plus(e.Weight)
		} else {
			byState[e.State] = e.Weight
			order = append(order, e.State)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]Element, 0, len(order))
	for _, s := range order {
		w := byState[s]
		if w.IsZero() {
			continue
		}
		out = append(out, Element{State: s, Weight: w})
	}
	return Subset{Elements: out}
}

// Hash is consistent with Equal at delta 0 — safe for statetable's bucket
// chaining since subset weights are quantized before interning.
func (s Subset) Hash() uint64 {
	var h uint64 = 1469598103934665603
	for _, e := range s.Elements {
		h ^= uint64(e.State)
		h *= 1099511628211
		h ^= e.Weight.Hash()
		h *= 1099511628211
	}
	return h
}

// Equal compares two normalized subsets pairwise in state order.
func (s Subset) Equal(other Subset) bool {
	if len(s.Elements) != len(other.Elements) {
		return false
	}
	for i := range s.Elements {
		if s.Elements[i].State != other.Elements[i].State {
			return false
		}
		if !s.Elements[i].Weight.ApproxEqual(other.Elements[i].Weight, 0) {
			return false
		}
	}
	return true
}

// FilterState is the automaton state determinize's own state identity
// carries alongside a Subset. The
// acceptor case (Functional/NonFunctional) never needs more than one
// value; Disambiguate and the Gallic-reduced transducer variants reuse the
// same slot for future bookkeeping without changing StateTuple's shape.
type FilterState interface {
	Hash() uint64
	Equal(other FilterState) bool
}

// TrivialFilterState is the sole FilterState DeterminizeFsaOp produces.
type TrivialFilterState struct{}

func (TrivialFilterState) Hash() uint64 { return 0 }
func (TrivialFilterState) Equal(other FilterState) bool {
	_, ok := other.(TrivialFilterState)
	return ok
}

// StateTuple is the composite state identity interned by
// statetable.StateTable: a normalized Subset plus a FilterState.
type StateTuple struct {
	Subset Subset
	Fs     FilterState
}

func (t StateTuple) Hash() uint64 {
	return t.Subset.Hash()*1099511628211 ^ t.Fs.Hash()
}

func (t StateTuple) Equal(other statetable.Tuple) bool {
	o, ok := other.(StateTuple)
	return ok && t.Fs.Equal(o.Fs) && t.Subset.Equal(o.Subset)
}

var _ statetable.Tuple = StateTuple{}
