package fst

import "github.com/garvys-org/gofst/semiring"

// Fst is the read-only view every algorithm in this module consumes:
// compose, determinize, and rmepsilon never see more than this surface,
// regardless of whether the concrete Fst is a VectorFst or a lazily
// computed one built by the lazy package.
type Fst interface {
	// Semiring identifies the weight arithmetic transitions and final
	// weights use. Every algorithm that needs a Zero/One value (building
	// an epsilon loop, seeding a shortest-distance accumulator) gets it
	// from here rather than from some arbitrarily chosen existing weight.
	Semiring() semiring.Semiring

	// Start returns the start state, or (NoStateId, false) if the Fst has
	// none.
	Start() (StateId, bool)

	// FinalWeight returns the final weight of s, or (nil, false) if s is
	// not final. Returns an error if s is out of range.
	FinalWeight(s StateId) (semiring.Weight, bool, error)

	// GetTrs returns the (immutable, shareable) transitions leaving s.
	// Returns an error if s is out of range.
	GetTrs(s StateId) (TrsVec, error)

	NumTrs(s StateId) (int, error)
	NumInputEpsilons(s StateId) (int, error)
	NumOutputEpsilons(s StateId) (int, error)

	// NumStates returns the number of known states. For a lazily computed
	// Fst this is a lower bound that grows as more states are forced.
	NumStates() StateId

	Properties() Properties

	InputSymbols() *SymbolTable
	OutputSymbols() *SymbolTable
}

// MutableFst adds state and transition mutation to Fst. On a VectorFst
// every mutation (AddState, SetStart, SetFinal, AddTr, DeleteTrs, SetTrs)
// clears the whole properties bitset back to unknown; no bit is
// recomputed incrementally.
type MutableFst interface {
	Fst

	AddState() StateId
	SetStart(s StateId)
	SetFinal(s StateId, w semiring.Weight)
	AddTr(s StateId, tr Tr)

	DeleteTrs(s StateId)
	SetTrs(s StateId, trs []Tr)

	SetProperties(p Properties)
	SetInputSymbols(syms *SymbolTable)
	SetOutputSymbols(syms *SymbolTable)
}
