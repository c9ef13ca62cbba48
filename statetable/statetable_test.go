package statetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/statetable"
)

// pairTuple is a minimal (a, b int) tuple, standing in for
// ComposeStateTuple/DeterminizeStateTuple in this package's own tests.
type pairTuple struct{ a, b int }

func (p pairTuple) Hash() uint64 {
	return uint64(p.a)<<32 | uint64(uint32(p.b))
}

func (p pairTuple) Equal(other statetable.Tuple) bool {
	o, ok := other.(pairTuple)
	return ok && o == p
}

func TestFindIdInterns(t *testing.T) {
	st := statetable.New()

	id1 := st.FindId(pairTuple{1, 2})
	id2 := st.FindId(pairTuple{1, 2})
	assert.Equal(t, id1, id2)

	id3 := st.FindId(pairTuple{1, 3})
	assert.NotEqual(t, id1, id3)
	assert.Equal(t, 2, st.Len())
}

func TestFindIdAssignsDenseIds(t *testing.T) {
	st := statetable.New()
	for i := 0; i < 5; i++ {
		id := st.FindId(pairTuple{i, 0})
		assert.Equal(t, uint32(i), id)
	}
}

func TestFindTupleRoundtrips(t *testing.T) {
	st := statetable.New()
	want := pairTuple{7, 9}
	id := st.FindId(want)

	got := st.FindTuple(id)
	require.Equal(t, want, got)
}

// collidingTuple always hashes to the same bucket, to exercise the chain.
type collidingTuple struct{ v int }

func (collidingTuple) Hash() uint64 { return 42 }
func (c collidingTuple) Equal(other statetable.Tuple) bool {
	o, ok := other.(collidingTuple)
	return ok && o == c
}

func TestHashCollisionsAreDisambiguated(t *testing.T) {
	st := statetable.New()
	id1 := st.FindId(collidingTuple{1})
	id2 := st.FindId(collidingTuple{2})
	id1Again := st.FindId(collidingTuple{1})

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, id1, id1Again)
}
