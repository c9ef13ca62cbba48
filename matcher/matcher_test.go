package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

func sortedFst(t *testing.T) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), Nextstate: s1})
	f.AddTr(s0, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(2), Nextstate: s1})
	f.AddTr(s0, fst.Tr{Ilabel: 2, Olabel: 3, Weight: semiring.TropicalWeight(3), Nextstate: s1})
	f.SetStart(s0)
	f.SetFinal(s1, semiring.Tropical.One())
	f.SetProperties(fst.ILabelSorted)
	return f
}

func TestSortedMatcherRejectsUnsortedOperand(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	f.SetProperties(fst.NotILabelSorted)
	_, err := matcher.NewSortedMatcher(f, matcher.MatchInput)
	assert.Error(t, err)
}

func TestSortedMatcherIterMatchesLabel(t *testing.T) {
	f := sortedFst(t)
	m, err := matcher.NewSortedMatcher(f, matcher.MatchInput)
	require.NoError(t, err)

	items, err := m.Iter(0, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.False(t, it.IsEpsLoop)
		assert.Equal(t, fst.Label(2), it.Tr.Ilabel)
	}
}

func TestSortedMatcherEpsRequestYieldsLoop(t *testing.T) {
	f := sortedFst(t)
	m, err := matcher.NewSortedMatcher(f, matcher.MatchInput)
	require.NoError(t, err)

	items, err := m.Iter(0, fst.EpsLabel)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsEpsLoop)
}

func TestGenericMatcherFallsBackToLinearScan(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	// Deliberately unsorted: ilabel 2 appears before ilabel 1.
	f.AddTr(s0, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(1), Nextstate: s1})
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2), Nextstate: s1})
	f.SetProperties(fst.NotILabelSorted)

	m := matcher.NewGenericMatcher(f, matcher.MatchInput)
	items, err := m.Iter(0, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, fst.Label(1), items[0].Tr.Ilabel)
}

func TestGenericMatcherReportsRequestedMatchType(t *testing.T) {
	f := sortedFst(t)
	m := matcher.NewGenericMatcher(f, matcher.MatchInput)
	assert.Equal(t, matcher.MatchInput, m.MatchType())
}
