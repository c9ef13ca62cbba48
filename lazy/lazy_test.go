package lazy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/lazy"
	"github.com/garvys-org/gofst/semiring"
)

// countingOp is a tiny 3-state linear chain (0 -1-> 1 -2-> 2, 2 final) that
// counts how many times each ComputeX method actually ran, so tests can
// assert the cache prevents recomputation.
type countingOp struct {
	startCalls           int
	trsCalls, finalCalls map[fst.StateId]int
}

func newCountingOp() *countingOp {
	return &countingOp{
		trsCalls:   map[fst.StateId]int{},
		finalCalls: map[fst.StateId]int{},
	}
}

func (o *countingOp) ComputeStart() (fst.StateId, bool, error) {
	o.startCalls++
	return 0, true, nil
}

func (o *countingOp) ComputeTrs(s fst.StateId) (fst.TrsVec, error) {
	o.trsCalls[s]++
	switch s {
	case 0:
		return fst.NewTrsVec([]fst.Tr{{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), Nextstate: 1}}), nil
	case 1:
		return fst.NewTrsVec([]fst.Tr{{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(1), Nextstate: 2}}), nil
	default:
		return fst.TrsVec{}, nil
	}
}

func (o *countingOp) ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool, error) {
	o.finalCalls[s]++
	if s == 2 {
		return semiring.Tropical.One(), true, nil
	}
	return nil, false, nil
}

// S: repeated reads of the same state hit the Op exactly once (testable
// property #5, cache idempotence).
func TestLazyFstCachesComputations(t *testing.T) {
	op := newCountingOp()
	l := lazy.NewLazyFstWithDefaultCache(op, semiring.Tropical)

	for i := 0; i < 5; i++ {
		start, ok := l.Start()
		require.True(t, ok)
		assert.Equal(t, fst.StateId(0), start)
	}
	assert.Equal(t, 1, op.startCalls)

	for i := 0; i < 5; i++ {
		_, err := l.GetTrs(0)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, op.trsCalls[0])

	for i := 0; i < 5; i++ {
		_, _, err := l.FinalWeight(2)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, op.finalCalls[2])
}

func TestLazyFstMaterializeMatchesOp(t *testing.T) {
	op := newCountingOp()
	l := lazy.NewLazyFstWithDefaultCache(op, semiring.Tropical)

	out, err := l.Materialize()
	require.NoError(t, err)
	require.NoError(t, l.Err())

	start, ok := out.Start()
	require.True(t, ok)
	assert.Equal(t, fst.StateId(0), start)

	trs, err := out.GetTrs(start)
	require.NoError(t, err)
	require.Equal(t, 1, trs.Len())
	assert.Equal(t, fst.Label(1), trs.At(0).Ilabel)

	_, isFinal, err := out.FinalWeight(2)
	require.NoError(t, err)
	assert.True(t, isFinal)
}

// S6: a GCCache under byte pressure still returns correct answers for
// states forced again after eviction (it recomputes through the Op rather
// than silently losing data).
func TestGCCacheEvictsAndRecomputesCorrectly(t *testing.T) {
	op := newCountingOp()
	cache := lazy.NewGCCache(lazy.DefaultCacheConfig().WithLimit(1))
	l := lazy.NewLazyFst(op, cache, semiring.Tropical)

	out, err := l.Materialize()
	require.NoError(t, err)

	start, ok := out.Start()
	require.True(t, ok)
	trs, err := out.GetTrs(start)
	require.NoError(t, err)
	require.Equal(t, 1, trs.Len())

	// Every ComputeTrs call must have run at least once; under a 1-byte
	// budget the cache may have evicted and recomputed some of them, but
	// the op is deterministic so the materialized result is still exact.
	assert.GreaterOrEqual(t, op.trsCalls[0], 1)
}

func TestLazyFstStatesDrivesForward(t *testing.T) {
	op := newCountingOp()
	l := lazy.NewLazyFstWithDefaultCache(op, semiring.Tropical)

	states := l.States()
	assert.Equal(t, []fst.StateId{0, 1, 2}, states)
	require.NoError(t, l.Err())
}

func TestSimpleCacheReportsNotComputedBeforeInsert(t *testing.T) {
	c := lazy.NewSimpleCache()
	_, status := c.GetTrs(0)
	assert.Equal(t, lazy.NotComputed, status)

	c.InsertTrs(0, fst.TrsVec{})
	_, status = c.GetTrs(0)
	assert.Equal(t, lazy.ComputedSome, status)

	assert.Equal(t, fst.StateId(1), c.NumKnownStates())
}

func TestGCCachePinProtectsFromEviction(t *testing.T) {
	c := lazy.NewGCCache(lazy.DefaultCacheConfig().WithLimit(1 << 20))
	c.Pin(0)
	c.InsertTrs(0, fst.NewTrsVec([]fst.Tr{{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), Nextstate: 1}}))

	trs, status := c.GetTrs(0)
	require.Equal(t, lazy.ComputedSome, status)
	assert.Equal(t, 1, trs.Len())

	c.Unpin(0)
}
