package lazy

import (
	"sync"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

type simpleState struct {
	hasTrs   bool
	trs      fst.TrsVec
	hasFinal bool
	isFinal  bool
	final    semiring.Weight
}

// SimpleCache is the size-unbounded FstCache variant: a plain mutex-guarded
// map from state id to its cached trs/final-weight, no eviction.
type SimpleCache struct {
	mu          sync.RWMutex
	states      map[fst.StateId]*simpleState
	hasStart    bool
	startStatus CacheStatus
	start       fst.StateId
	numKnown    fst.StateId
}

// NewSimpleCache returns an empty, unbounded cache.
func NewSimpleCache() *SimpleCache {
	return &SimpleCache{states: make(map[fst.StateId]*simpleState)}
}

func (c *SimpleCache) entry(s fst.StateId) *simpleState {
	st, ok := c.states[s]
	if !ok {
		st = &simpleState{}
		c.states[s] = st
	}
	return st
}

func (c *SimpleCache) bumpKnown(s fst.StateId) {
	if s+1 > c.numKnown {
		c.numKnown = s + 1
	}
}

func (c *SimpleCache) GetStart() (fst.StateId, CacheStatus) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.start, c.startStatus
}

func (c *SimpleCache) InsertStart(s fst.StateId, has bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = s
	if has {
		c.startStatus = ComputedSome
	} else {
		c.startStatus = ComputedNone
	}
}

func (c *SimpleCache) GetTrs(s fst.StateId) (fst.TrsVec, CacheStatus) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.states[s]
	if !ok || !st.hasTrs {
		return fst.TrsVec{}, NotComputed
	}
	return st.trs, ComputedSome
}

func (c *SimpleCache) InsertTrs(s fst.StateId, trs fst.TrsVec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.entry(s)
	st.hasTrs = true
	st.trs = trs
	c.bumpKnown(s)
	// Destinations are known states too: drive-forward iteration advances
	// through them before they are themselves expanded.
	for i := 0; i < trs.Len(); i++ {
		c.bumpKnown(trs.At(i).Nextstate)
	}
}

func (c *SimpleCache) GetFinalWeight(s fst.StateId) (semiring.Weight, CacheStatus) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.states[s]
	if !ok || !st.hasFinal {
		return nil, NotComputed
	}
	if !st.isFinal {
		return nil, ComputedNone
	}
	return st.final, ComputedSome
}

func (c *SimpleCache) InsertFinalWeight(s fst.StateId, w semiring.Weight, has bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.entry(s)
	st.hasFinal = true
	st.isFinal = has
	st.final = w
	c.bumpKnown(s)
}

func (c *SimpleCache) NumKnownStates() fst.StateId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.numKnown
}

func (c *SimpleCache) NumInputEpsilons(s fst.StateId) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.states[s]
	if !ok || !st.hasTrs {
		return 0, false
	}
	return st.trs.NumInputEpsilons(), true
}

func (c *SimpleCache) NumOutputEpsilons(s fst.StateId) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st, ok := c.states[s]
	if !ok || !st.hasTrs {
		return 0, false
	}
	return st.trs.NumOutputEpsilons(), true
}

var _ FstCache = (*SimpleCache)(nil)
