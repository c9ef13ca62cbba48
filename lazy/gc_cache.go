package lazy

import (
	"sync"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/semiring"
)

type cacheFlags uint8

const (
	// flagInit marks a state whose transition list has been populated;
	// only populated states count toward the byte budget and only they are
	// eviction candidates.
	flagInit cacheFlags = 1 << iota
	// flagRecent marks a state touched since the last GC pass; the first
	// eviction pass skips it, so states still in active use by the
	// caller's current traversal are spared until the second pass.
	flagRecent
)

// perStateOverhead approximates the fixed Go-runtime cost of a cacheState
// entry (map bucket, struct header, slice header) independent of its
// transition count.
const perStateOverhead = 64

// perTrBytes approximates one fst.Tr's resident size.
const perTrBytes = 32

type cacheState struct {
	flags    cacheFlags
	refcount int

	hasTrs bool
	trs    fst.TrsVec

	hasFinal bool
	isFinal  bool
	final    semiring.Weight

	numIEps int
	numOEps int
}

func (s *cacheState) bytes() int {
	return perStateOverhead + s.trs.Len()*perTrBytes
}

// GCCache is the size-bounded FstCache variant: entries are
// reference-counted (Pin/Unpin) so a caller driving a traversal can protect
// states still reachable from its frontier, and eviction runs in two
// passes — first only cold (unpinned, not recently touched) entries, then,
// if that didn't free enough below the target (two thirds of the limit),
// recently-touched-but-unpinned entries too. If both passes still leave
// the cache above target, the limit and target double until the remaining
// pinned bytes fit; failure is reported only when the target bottoms out
// at zero. Each sweep walks the id-keyed store directly instead of
// materializing a snapshot slice of ids first.
type GCCache struct {
	mu     sync.Mutex
	cfg    CacheConfig
	states map[fst.StateId]*cacheState
	bytes  int

	hasStart    bool
	startStatus CacheStatus
	start       fst.StateId
	numKnown    fst.StateId

	lastErr error
}

// NewGCCache returns a GCCache enforcing cfg's byte budget.
func NewGCCache(cfg CacheConfig) *GCCache {
	return &GCCache{cfg: cfg, states: make(map[fst.StateId]*cacheState)}
}

func (c *GCCache) entryLocked(s fst.StateId) *cacheState {
	st, ok := c.states[s]
	if !ok {
		st = &cacheState{}
		c.states[s] = st
	}
	st.flags |= flagRecent
	return st
}

func (c *GCCache) bumpKnownLocked(s fst.StateId) {
	if s+1 > c.numKnown {
		c.numKnown = s + 1
	}
}

// Pin increments s's refcount, protecting it from eviction until a matching
// Unpin. Used by a traversal to hold its current frontier in cache across a
// GC pass triggered by inserting a sibling state.
func (c *GCCache) Pin(s fst.StateId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.entryLocked(s)
	st.refcount++
}

// Unpin decrements s's refcount. A no-op if s isn't cached or is already
// unpinned.
func (c *GCCache) Unpin(s fst.StateId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.states[s]; ok && st.refcount > 0 {
		st.refcount--
	}
}

func (c *GCCache) GetStart() (fst.StateId, CacheStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start, c.startStatus
}

func (c *GCCache) InsertStart(s fst.StateId, has bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = s
	if has {
		c.startStatus = ComputedSome
	} else {
		c.startStatus = ComputedNone
	}
}

func (c *GCCache) GetTrs(s fst.StateId) (fst.TrsVec, CacheStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[s]
	if !ok || !st.hasTrs {
		return fst.TrsVec{}, NotComputed
	}
	st.flags |= flagRecent
	return st.trs, ComputedSome
}

func (c *GCCache) InsertTrs(s fst.StateId, trs fst.TrsVec) {
	c.mu.Lock()
	st := c.entryLocked(s)
	if st.flags&flagInit != 0 {
		c.bytes -= st.bytes()
	}
	st.hasTrs = true
	st.trs = trs
	st.flags |= flagInit
	c.bytes += st.bytes()
	c.bumpKnownLocked(s)
	for i := 0; i < trs.Len(); i++ {
		c.bumpKnownLocked(trs.At(i).Nextstate)
	}
	c.maybeGCLocked(s)
	c.mu.Unlock()
}

func (c *GCCache) GetFinalWeight(s fst.StateId) (semiring.Weight, CacheStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[s]
	if !ok || !st.hasFinal {
		return nil, NotComputed
	}
	st.flags |= flagRecent
	if !st.isFinal {
		return nil, ComputedNone
	}
	return st.final, ComputedSome
}

func (c *GCCache) InsertFinalWeight(s fst.StateId, w semiring.Weight, has bool) {
	c.mu.Lock()
	st := c.entryLocked(s)
	st.hasFinal = true
	st.isFinal = has
	st.final = w
	c.bumpKnownLocked(s)
	c.mu.Unlock()
}

func (c *GCCache) NumKnownStates() fst.StateId {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.numKnown
}

func (c *GCCache) NumInputEpsilons(s fst.StateId) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[s]
	if !ok || !st.hasTrs {
		return 0, false
	}
	return st.trs.NumInputEpsilons(), true
}

func (c *GCCache) NumOutputEpsilons(s fst.StateId) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[s]
	if !ok || !st.hasTrs {
		return 0, false
	}
	return st.trs.NumOutputEpsilons(), true
}

// maybeGCLocked runs eviction if the cache is over budget. Called with mu
// held. Never evicts current (the state whose insert just triggered this
// pass), since the caller is mid-materialization of it.
func (c *GCCache) maybeGCLocked(current fst.StateId) {
	if c.cfg.Limit <= 0 || c.bytes <= c.cfg.Limit {
		return
	}

	target := c.cfg.Limit * 2 / 3
	for pass := 0; pass < 2 && c.bytes > target; pass++ {
		includeRecent := pass == 1
		for id, st := range c.states {
			if c.bytes <= target {
				break
			}
			if id == current || st.refcount > 0 || st.flags&flagInit == 0 {
				continue
			}
			if st.flags&flagRecent != 0 && !includeRecent {
				continue
			}
			c.bytes -= st.bytes()
			delete(c.states, id)
		}
		if pass == 0 {
			for _, st := range c.states {
				st.flags &^= flagRecent
			}
		}
	}

	// Whatever survived both passes is pinned or mid-expansion; widen the
	// budget so the next insert doesn't immediately re-trigger a sweep
	// that cannot free anything.
	for c.bytes > target {
		if target <= 0 {
			c.lastErr = gofsterr.New(gofsterr.GcFailure, "lazy: GCCache could not free enough entries under its byte budget")
			return
		}
		target *= 2
		c.cfg.Limit *= 2
	}
	c.lastErr = nil
}

// Err reports the last GC pass's failure, if any: the cache remains usable
// (a failed GC just leaves the cache over its configured budget) but a
// caller that wants to surface gofsterr.GcFailure upstream can check this
// after driving a LazyFst traversal.
func (c *GCCache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

var _ FstCache = (*GCCache)(nil)
