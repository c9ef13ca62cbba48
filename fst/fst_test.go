package fst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

func linearAcceptor(t *testing.T) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	s2 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2), Nextstate: s1})
	f.AddTr(s1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(3), Nextstate: s2})
	f.SetFinal(s2, semiring.TropicalWeight(0))
	return f
}

func TestVectorFstBasics(t *testing.T) {
	f := linearAcceptor(t)

	start, ok := f.Start()
	require.True(t, ok)
	assert.Equal(t, fst.StateId(0), start)

	trs, err := f.GetTrs(start)
	require.NoError(t, err)
	require.Equal(t, 1, trs.Len())
	assert.Equal(t, fst.Label(1), trs.At(0).Ilabel)

	w, hasFinal, err := f.FinalWeight(2)
	require.NoError(t, err)
	require.True(t, hasFinal)
	assert.True(t, w.IsOne())

	_, _, err = f.FinalWeight(99)
	assert.Error(t, err)
}

func TestSetFinalZeroClearsFinal(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s := f.AddState()
	f.SetFinal(s, semiring.TropicalWeight(1))
	_, hasFinal, err := f.FinalWeight(s)
	require.NoError(t, err)
	assert.True(t, hasFinal)

	f.SetFinal(s, semiring.Tropical.Zero())
	_, hasFinal, err = f.FinalWeight(s)
	require.NoError(t, err)
	assert.False(t, hasFinal)
}

func TestSymbolTable(t *testing.T) {
	st := fst.NewSymbolTable("test")
	a := st.AddSymbol("a")
	b := st.AddSymbol("b")
	assert.NotEqual(t, a, b)

	again := st.AddSymbol("a")
	assert.Equal(t, a, again)

	sym, ok := st.Find(a)
	require.True(t, ok)
	assert.Equal(t, "a", sym)

	eps, ok := st.Find(fst.EpsLabel)
	require.True(t, ok)
	assert.Equal(t, "<eps>", eps)

	cp := st.Copy()
	cp.AddSymbol("c")
	assert.Equal(t, st.NumSymbols()+1, cp.NumSymbols())
}

func TestComputeProperties(t *testing.T) {
	f := linearAcceptor(t)
	props, err := fst.ComputeProperties(f)
	require.NoError(t, err)

	assert.True(t, props.Has(fst.Acceptor))
	assert.True(t, props.Has(fst.NoEpsilons))
	assert.True(t, props.Has(fst.Acyclic))
	assert.True(t, props.Has(fst.Accessible))
	assert.True(t, props.Has(fst.Coaccessible))
	assert.True(t, props.Has(fst.Weighted))
}

func TestComputePropertiesDetectsCycle(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: s1})
	f.AddTr(s1, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: s0})
	f.SetFinal(s1, semiring.Tropical.One())

	props, err := fst.ComputeProperties(f)
	require.NoError(t, err)
	assert.True(t, props.Has(fst.Cyclic))
	assert.True(t, props.Has(fst.InitialCyclic))
}

func TestComputePropertiesDetectsNondeterminism(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2), Nextstate: s1})
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(3), Nextstate: s1})
	f.SetFinal(s1, semiring.Tropical.One())

	props, err := fst.ComputeProperties(f)
	require.NoError(t, err)
	assert.True(t, props.Has(fst.NotIDeterministic))
}
