package rmepsilon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/rmepsilon"
	"github.com/garvys-org/gofst/semiring"
)

// 0 -eps/w2-> 1 -a/w3-> 2 (final, w1). Removing the epsilon should leave a
// single direct transition 0 -a/(2+3)-> 2, final weight 1 on 2 untouched,
// and 0 itself non-final.
func TestRmEpsilonReplacesSimpleChain(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	s2 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(2), Nextstate: s1})
	f.AddTr(s1, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(3), Nextstate: s2})
	f.SetFinal(s2, semiring.TropicalWeight(1))

	out, err := rmepsilon.RmEpsilon(f)
	require.NoError(t, err)

	start, ok := out.Start()
	require.True(t, ok)
	trs, err := out.GetTrs(start)
	require.NoError(t, err)
	require.Equal(t, 1, trs.Len())
	tr := trs.At(0)
	assert.Equal(t, fst.Label(1), tr.Ilabel)
	assert.Equal(t, semiring.TropicalWeight(5), tr.Weight) // 2 + 3 under tropical times (+)

	_, isFinal, err := out.FinalWeight(start)
	require.NoError(t, err)
	assert.False(t, isFinal)
}

// Two parallel epsilon paths to the same non-epsilon transition dedup into
// one transition with the ⊕-combined (min, for tropical) weight.
func TestRmEpsilonMergesParallelEpsilonPaths(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	s2 := f.AddState()
	s3 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(1), Nextstate: s1})
	f.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(4), Nextstate: s2})
	f.AddTr(s1, fst.Tr{Ilabel: 5, Olabel: 5, Weight: semiring.TropicalWeight(1), Nextstate: s3})
	f.AddTr(s2, fst.Tr{Ilabel: 5, Olabel: 5, Weight: semiring.TropicalWeight(1), Nextstate: s3})
	f.SetFinal(s3, semiring.Tropical.One())

	out, err := rmepsilon.RmEpsilon(f)
	require.NoError(t, err)

	start, ok := out.Start()
	require.True(t, ok)
	trs, err := out.GetTrs(start)
	require.NoError(t, err)
	require.Equal(t, 1, trs.Len())
	assert.Equal(t, semiring.TropicalWeight(2), trs.At(0).Weight) // min(1+1, 4+1)
}

// A state that's final purely through an epsilon path contributes to its
// source's final weight instead of needing an explicit final-sink state.
func TestRmEpsilonPullsFinalWeightThroughEpsilon(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(2), Nextstate: s1})
	f.SetFinal(s1, semiring.TropicalWeight(3))

	out, err := rmepsilon.RmEpsilon(f)
	require.NoError(t, err)

	start, ok := out.Start()
	require.True(t, ok)
	w, isFinal, err := out.FinalWeight(start)
	require.NoError(t, err)
	require.True(t, isFinal)
	assert.Equal(t, semiring.TropicalWeight(5), w)
}

func TestRmEpsilonIdempotentEpsilonCycleConverges(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.Tropical.One(), Nextstate: s1})
	f.AddTr(s1, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.Tropical.One(), Nextstate: s0})
	f.AddTr(s1, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), Nextstate: s1})
	f.SetFinal(s1, semiring.Tropical.One())

	_, err := rmepsilon.RmEpsilon(f)
	// Tropical's idempotent min-plus relaxation stabilizes even around this
	// cycle (no path strictly improves after the first loop), so this
	// should succeed rather than report EpsilonCycle; kept as a regression
	// check that idempotent cycles don't false-positive.
	require.NoError(t, err)
}
