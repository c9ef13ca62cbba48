package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/compose"
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

// chain builds a linear transducer 0 -(pairs[0])-> 1 -(pairs[1])-> 2 ... ,
// finalizing the last state with weight one.
func chain(t *testing.T, pairs [][3]int) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst(semiring.Tropical)
	s := f.AddState()
	f.SetStart(s)
	for _, p := range pairs {
		next := f.AddState()
		f.AddTr(s, fst.Tr{
			Ilabel:    fst.Label(p[0]),
			Olabel:    fst.Label(p[1]),
			Weight:    semiring.TropicalWeight(p[2]),
			Nextstate: next,
		})
		s = next
	}
	f.SetFinal(s, semiring.Tropical.One())
	return f
}

func TestComposeLinearTransducers(t *testing.T) {
	// fst1: a:x/2 -> b:y/3
	fst1 := chain(t, [][3]int{{1, 10, 2}, {2, 20, 3}})
	// fst2: x:p/5 -> y:q/7
	fst2 := chain(t, [][3]int{{10, 100, 5}, {20, 200, 7}})

	out, err := compose.Compose(fst1, fst2)
	require.NoError(t, err)

	start, ok := out.Start()
	require.True(t, ok)

	trs, err := out.GetTrs(start)
	require.NoError(t, err)
	require.Equal(t, 1, trs.Len())
	tr := trs.At(0)
	assert.Equal(t, fst.Label(1), tr.Ilabel)
	assert.Equal(t, fst.Label(100), tr.Olabel)
	assert.Equal(t, semiring.TropicalWeight(7), tr.Weight)

	trs2, err := out.GetTrs(tr.Nextstate)
	require.NoError(t, err)
	require.Equal(t, 1, trs2.Len())
	tr2 := trs2.At(0)
	assert.Equal(t, fst.Label(2), tr2.Ilabel)
	assert.Equal(t, fst.Label(200), tr2.Olabel)
	assert.Equal(t, semiring.TropicalWeight(10), tr2.Weight)

	w, isFinal, err := out.FinalWeight(tr2.Nextstate)
	require.NoError(t, err)
	require.True(t, isFinal)
	assert.True(t, w.IsOne())
}

func TestComposeRejectsMismatchedLabels(t *testing.T) {
	fst1 := chain(t, [][3]int{{1, 10, 1}})
	fst2 := chain(t, [][3]int{{99, 1, 1}}) // fst2's input label never matches fst1's output

	out, err := compose.Compose(fst1, fst2)
	require.NoError(t, err)

	_, hasStart := out.Start()
	assert.False(t, hasStart, "connect trims the dead start state since it cannot reach any final state")
	assert.Equal(t, fst.StateId(0), out.NumStates())
}

func TestComposeNoSpuriousDuplicatePaths(t *testing.T) {
	// fst1 has an epsilon transition before the real label; the Sequence
	// filter used by default must not let this epsilon combine with more
	// than one epsilon-matching path on the fst2 side.
	f1 := fst.NewVectorFst(semiring.Tropical)
	s0 := f1.AddState()
	s1 := f1.AddState()
	s2 := f1.AddState()
	f1.SetStart(s0)
	f1.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.Tropical.One(), Nextstate: s1})
	f1.AddTr(s1, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: s2})
	f1.SetFinal(s2, semiring.Tropical.One())

	f2 := chain(t, [][3]int{{1, 2, 0}})

	out, err := compose.Compose(f1, f2)
	require.NoError(t, err)

	count := 0
	var walk func(s fst.StateId, seen map[fst.StateId]bool)
	walk = func(s fst.StateId, seen map[fst.StateId]bool) {
		if seen[s] {
			return
		}
		seen[s] = true
		trs, err := out.GetTrs(s)
		require.NoError(t, err)
		count += trs.Len()
		for i := 0; i < trs.Len(); i++ {
			walk(trs.At(i).Nextstate, seen)
		}
	}
	start, ok := out.Start()
	require.True(t, ok)
	walk(start, map[fst.StateId]bool{})

	assert.Equal(t, 2, count, "exactly one epsilon transition and one labeled transition, no duplication")
}

func TestComposeWithConfigNullFilterRejectsEpsilons(t *testing.T) {
	f1 := fst.NewVectorFst(semiring.Tropical)
	s0 := f1.AddState()
	s1 := f1.AddState()
	f1.SetStart(s0)
	f1.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.Tropical.One(), Nextstate: s1})
	f1.SetFinal(s1, semiring.Tropical.One())

	f2 := fst.NewVectorFst(semiring.Tropical)
	t0 := f2.AddState()
	f2.SetStart(t0)
	f2.SetFinal(t0, semiring.Tropical.One())

	cfg := compose.Config{Filter: compose.NullFilterSelect, Connect: true}
	out, err := compose.ComposeWithConfig(f1, f2, cfg)
	require.NoError(t, err)
	assert.Equal(t, fst.StateId(0), out.NumStates(), "NullFilter never lets one operand's epsilon advance while the other stays put")
}
