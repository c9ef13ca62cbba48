package lazy

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

// CacheStatus is the tri-valued result every FstCache getter returns:
// distinguishing "never computed" from "computed, and the answer is
// absent" (no start state, a non-final state) matters because the latter
// must not be recomputed on every subsequent read.
type CacheStatus uint8

const (
	NotComputed CacheStatus = iota
	ComputedNone
	ComputedSome
)

// FstCache is persistent memoization of a LazyFst's start state, per-state
// transition lists, and per-state final weights. Implementations:
// SimpleCache (unbounded, map-backed) and GCCache (size-bounded,
// reference-counted eviction).
type FstCache interface {
	GetStart() (fst.StateId, CacheStatus)
	InsertStart(s fst.StateId, has bool)

	GetTrs(s fst.StateId) (fst.TrsVec, CacheStatus)
	InsertTrs(s fst.StateId, trs fst.TrsVec)

	GetFinalWeight(s fst.StateId) (semiring.Weight, CacheStatus)
	InsertFinalWeight(s fst.StateId, w semiring.Weight, has bool)

	// NumKnownStates is a lower bound on the Fst's state count: whenever
	// a transition list or final weight is inserted for s, s+1 becomes a
	// lower bound.
	NumKnownStates() fst.StateId

	NumInputEpsilons(s fst.StateId) (int, bool)
	NumOutputEpsilons(s fst.StateId) (int, bool)
}
