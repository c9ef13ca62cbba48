package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// Filter coordinates which (tr1, tr2) pairs emerging from the two matchers
// may be joined during composition, and carries its own FilterState that
// becomes part of the composed state identity — ensuring every path in the
// composed Fst corresponds to exactly one pair of paths in the operands,
// even when both operands have epsilons.
type Filter interface {
	Start() FilterState

	// SetState positions the filter at composed state (s1, s2, fs); it may
	// precompute per-state facts such as "every outgoing transition is an
	// epsilon".
	SetState(s1, s2 fst.StateId, fs FilterState) error

	// FilterTr decides whether tr1/tr2 may be joined, returning the next
	// FilterState, or a FilterState whose IsNoState is true to reject. It
	// takes pointers because PushLabels rewrites a label in place.
	FilterTr(tr1, tr2 *fst.Tr) (FilterState, error)

	// FilterFinal adjusts the pair of final weights for the composed
	// state; the default for every variant in this package is the
	// identity (w1 ⊗ w2 is computed by the caller).
	FilterFinal(w1, w2 *semiring.Weight) error

	Matcher1() matcher.Matcher
	Matcher2() matcher.Matcher
}

// FilterBuilder constructs a fresh Filter sharing the builder's matchers.
// ComposeFstOp builds a new filter for every composed-state expansion so
// that SetState's per-state caching never leaks between calls — a fresh
// traversal object per operation rather than mutated shared state.
type FilterBuilder interface {
	Build() (Filter, error)
	Fst1() fst.Fst
	Fst2() fst.Fst
}
