// Package statetable provides bidirectional interning of hashable tuples
// into dense StateIds, the identity substrate ComposeStateTuple and
// DeterminizeStateTuple are built on.
//
// Go's map key types must be comparable, and DeterminizeStateTuple's
// WeightedSubset holds a slice, which is not. So this package asks tuples
// for a Hash()/Equal() pair instead of relying on Go's own equality, and
// resolves hash collisions with a bucket chain.
package statetable

import (
	"sync"

	"github.com/garvys-org/gofst/internal/conv"
)

// Tuple is any value that can be interned by a StateTable: it must hash
// consistently with Equal (two Equal tuples always produce the same Hash).
type Tuple interface {
	Hash() uint64
	Equal(other Tuple) bool
}

type entry struct {
	tuple Tuple
	id    uint32
}

// StateTable interns Tuple values into dense, zero-based StateIds. Safe for
// concurrent use: composition and determinization may be driven from
// multiple goroutines sharing one LazyFst.
type StateTable struct {
	mu      sync.Mutex
	buckets map[uint64][]entry
	byId    []Tuple
}

// New returns an empty StateTable.
func New() *StateTable {
	return &StateTable{buckets: make(map[uint64][]entry)}
}

// FindId returns the id for tuple, interning it on first sight. Two calls
// with Equal tuples always return the same id; two calls with non-Equal
// tuples never collide on return value, even if they hash equal.
func (t *StateTable) FindId(tuple Tuple) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := tuple.Hash()
	for _, e := range t.buckets[h] {
		if e.tuple.Equal(tuple) {
			return e.id
		}
	}

	id := conv.IntToUint32(len(t.byId))
	t.byId = append(t.byId, tuple)
	t.buckets[h] = append(t.buckets[h], entry{tuple: tuple, id: id})
	return id
}

// FindTuple returns the tuple interned under id. Panics if id was never
// assigned — callers only ever pass ids they previously received from
// FindId or from a composed/determinized Fst's own state space.
func (t *StateTable) FindTuple(id uint32) Tuple {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.byId[id]
}

// Len returns the number of distinct tuples interned so far.
func (t *StateTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byId)
}
