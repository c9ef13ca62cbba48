package lazy

import (
	"sync"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

// LazyFst wraps an Op and an FstCache into a full fst.Fst: every read
// checks the cache first and, on a miss, calls into the Op and memoizes
// the result before returning it, so a composed or determinized Fst never
// does more work than the states actually visited by its caller need.
type LazyFst struct {
	op    Op
	cache FstCache
	sr    semiring.Semiring

	isyms *fst.SymbolTable
	osyms *fst.SymbolTable
	props fst.Properties

	mu      sync.Mutex
	lastErr error
}

// NewLazyFst wraps op with cache under semiring sr.
func NewLazyFst(op Op, cache FstCache, sr semiring.Semiring) *LazyFst {
	return &LazyFst{op: op, cache: cache, sr: sr}
}

// NewLazyFstWithDefaultCache is NewLazyFst with a fresh unbounded
// SimpleCache.
func NewLazyFstWithDefaultCache(op Op, sr semiring.Semiring) *LazyFst {
	return NewLazyFst(op, NewSimpleCache(), sr)
}

func (l *LazyFst) setErr(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	if l.lastErr == nil {
		l.lastErr = err
	}
	l.mu.Unlock()
}

// Err returns the first error any lazily-triggered computation hit, if
// any. fst.Fst's read methods (Start, GetTrs, FinalWeight) can't return
// errors for every call site that needs one (Start and NumStates are
// infallible in the interface); callers driving a LazyFst to completion
// should check Err afterward.
func (l *LazyFst) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

func (l *LazyFst) Semiring() semiring.Semiring { return l.sr }

func (l *LazyFst) Start() (fst.StateId, bool) {
	if s, status := l.cache.GetStart(); status != NotComputed {
		return s, status == ComputedSome
	}
	s, has, err := l.op.ComputeStart()
	if err != nil {
		l.setErr(err)
		l.cache.InsertStart(fst.NoStateId, false)
		return fst.NoStateId, false
	}
	l.cache.InsertStart(s, has)
	return s, has
}

func (l *LazyFst) trs(s fst.StateId) (fst.TrsVec, error) {
	if trs, status := l.cache.GetTrs(s); status != NotComputed {
		return trs, nil
	}
	trs, err := l.op.ComputeTrs(s)
	if err != nil {
		l.setErr(err)
		return fst.TrsVec{}, err
	}
	l.cache.InsertTrs(s, trs)
	return trs, nil
}

func (l *LazyFst) GetTrs(s fst.StateId) (fst.TrsVec, error) {
	return l.trs(s)
}

func (l *LazyFst) NumTrs(s fst.StateId) (int, error) {
	trs, err := l.trs(s)
	if err != nil {
		return 0, err
	}
	return trs.Len(), nil
}

func (l *LazyFst) NumInputEpsilons(s fst.StateId) (int, error) {
	if n, ok := l.cache.NumInputEpsilons(s); ok {
		return n, nil
	}
	trs, err := l.trs(s)
	if err != nil {
		return 0, err
	}
	return trs.NumInputEpsilons(), nil
}

func (l *LazyFst) NumOutputEpsilons(s fst.StateId) (int, error) {
	if n, ok := l.cache.NumOutputEpsilons(s); ok {
		return n, nil
	}
	trs, err := l.trs(s)
	if err != nil {
		return 0, err
	}
	return trs.NumOutputEpsilons(), nil
}

func (l *LazyFst) FinalWeight(s fst.StateId) (semiring.Weight, bool, error) {
	if w, status := l.cache.GetFinalWeight(s); status != NotComputed {
		return w, status == ComputedSome, nil
	}
	w, has, err := l.op.ComputeFinalWeight(s)
	if err != nil {
		l.setErr(err)
		return nil, false, err
	}
	l.cache.InsertFinalWeight(s, w, has)
	return w, has, nil
}

// NumStates returns the cache's current lower bound on the state count: a
// LazyFst never knows its true state count until every reachable state has
// been forced.
func (l *LazyFst) NumStates() fst.StateId { return l.cache.NumKnownStates() }

func (l *LazyFst) Properties() fst.Properties { return l.props }

// SetProperties records properties the caller can establish without a
// full traversal; Materialize copies them onto its result.
func (l *LazyFst) SetProperties(p fst.Properties) { l.props = p }

func (l *LazyFst) InputSymbols() *fst.SymbolTable { return l.isyms }

func (l *LazyFst) OutputSymbols() *fst.SymbolTable { return l.osyms }

func (l *LazyFst) SetInputSymbols(syms *fst.SymbolTable)  { l.isyms = syms }
func (l *LazyFst) SetOutputSymbols(syms *fst.SymbolTable) { l.osyms = syms }

// States is the drive-forward state iteration: starting from id 0, it
// forces each state's transitions (which may grow the known-state bound)
// and advances while the id stays below it, returning every id visited.
// Well-defined only while no other goroutine is concurrently forcing new
// states; a concurrent reader sees some prefix of the id sequence.
func (l *LazyFst) States() []fst.StateId {
	start, ok := l.Start()
	if !ok {
		return nil
	}
	// Seed the known-state bound: InsertStart alone doesn't establish one.
	if _, err := l.trs(start); err != nil {
		return nil
	}
	var out []fst.StateId
	for s := fst.StateId(0); s < l.cache.NumKnownStates(); s++ {
		if _, err := l.trs(s); err != nil {
			break
		}
		out = append(out, s)
	}
	return out
}

// Materialize eagerly drives this LazyFst to completion (BFS from its
// start state, the same worklist shape compose.ComposeWithConfig and
// determinize.DeterminizeWithConfig use) and returns the result as a plain
// VectorFst.
func (l *LazyFst) Materialize() (*fst.VectorFst, error) {
	out := fst.NewVectorFst(l.sr)
	if l.isyms != nil {
		out.SetInputSymbols(l.isyms.Copy())
	}
	if l.osyms != nil {
		out.SetOutputSymbols(l.osyms.Copy())
	}

	start, hasStart := l.Start()
	if err := l.Err(); err != nil {
		return nil, err
	}
	if !hasStart {
		return out, nil
	}

	ensureState := func(id fst.StateId) {
		for out.NumStates() <= id {
			out.AddState()
		}
	}

	ensureState(start)
	out.SetStart(start)

	visited := make(map[fst.StateId]bool)
	queue := []fst.StateId{start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if visited[s] {
			continue
		}
		visited[s] = true
		ensureState(s)

		trs, err := l.GetTrs(s)
		if err != nil {
			return nil, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			ensureState(tr.Nextstate)
			out.AddTr(s, tr)
			if !visited[tr.Nextstate] {
				queue = append(queue, tr.Nextstate)
			}
		}

		w, isFinal, err := l.FinalWeight(s)
		if err != nil {
			return nil, err
		}
		if isFinal {
			out.SetFinal(s, w)
		}
	}

	out.SetProperties(l.props)
	return out, nil
}

var _ fst.Fst = (*LazyFst)(nil)
