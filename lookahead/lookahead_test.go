package lookahead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garvys-org/gofst/compose"
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/lazy"
	"github.com/garvys-org/gofst/lookahead"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

func TestIntervalSetNormalizeMergesOverlaps(t *testing.T) {
	var s lookahead.IntervalSet
	s.Push(lookahead.Interval{Begin: 5, End: 7})
	s.Push(lookahead.Interval{Begin: 1, End: 3})
	s.Push(lookahead.Interval{Begin: 2, End: 5})
	s.Normalize()

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Member(1))
	assert.True(t, s.Member(4))
	assert.True(t, s.Member(6))
	assert.False(t, s.Member(0))
	assert.False(t, s.Member(7))
}

func TestIntervalSetUnionKeepsDisjointRanges(t *testing.T) {
	var a, b lookahead.IntervalSet
	a.Push(lookahead.Interval{Begin: 1, End: 2})
	a.Normalize()
	b.Push(lookahead.Interval{Begin: 4, End: 6})
	b.Normalize()

	a.Union(b)
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Member(1))
	assert.False(t, a.Member(3))
	assert.True(t, a.Member(5))
}

// 0 -1-> 1 -2-> 2 (final): label 1 is readable only from 0, label 2 from
// both 0 and 1, and a final state is reachable from everywhere.
func chainAcceptor(t *testing.T) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	s2 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: s1})
	f.AddTr(s1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.Tropical.One(), Nextstate: s2})
	f.SetFinal(s2, semiring.Tropical.One())
	return f
}

func TestLabelReachableDataAnswersPathQueries(t *testing.T) {
	data, err := lookahead.ComputeLabelReachableData(chainAcceptor(t), true)
	require.NoError(t, err)

	ok, err := data.ReachLabel(0, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = data.ReachLabel(0, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = data.ReachLabel(1, 1)
	require.NoError(t, err)
	assert.False(t, ok, "label 1 lies strictly before state 1 on every path")

	ok, err = data.ReachLabel(1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = data.ReachFinal(0)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = data.ReachFinal(2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLabelReachableDataUnknownLabelUnreachable(t *testing.T) {
	data, err := lookahead.ComputeLabelReachableData(chainAcceptor(t), true)
	require.NoError(t, err)

	ok, err := data.ReachLabel(0, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestComputeLabelReachableDataRejectsFinalOnEpsilonCycle(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.Tropical.One(), Nextstate: s1})
	f.AddTr(s1, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.Tropical.One(), Nextstate: s0})
	f.SetFinal(s0, semiring.Tropical.One())

	_, err := lookahead.ComputeLabelReachableData(f, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, gofsterr.New(gofsterr.CycleOnFinal, ""))
}

func TestLookaheadMatcherFlagsAndDeadStates(t *testing.T) {
	f := chainAcceptor(t)
	// State 3 is a dead end: no outgoing transitions, not final.
	dead := f.AddState()
	f.AddTr(0, fst.Tr{Ilabel: 7, Olabel: 7, Weight: semiring.Tropical.One(), Nextstate: dead})

	data, err := lookahead.ComputeLabelReachableData(f, true)
	require.NoError(t, err)

	la := lookahead.NewMatcher(matcher.NewGenericMatcher(f, matcher.MatchInput), data)
	assert.True(t, la.Flags().Has(matcher.InputLookaheadMatcher))
	assert.False(t, la.Dead(0))
	assert.True(t, la.Dead(dead))
}

// S5-style pruning: fst2's only accepting continuation after its first
// transition is label 2, so the fst1 branch emitting label 9 leads into a
// dead fst2 state and must not survive lookahead-filtered composition,
// while the plain Sequence composition emits it and only loses it to the
// connect trim. Either way the final language is the same.
func TestLookaheadComposeFilterPrunesDeadBranches(t *testing.T) {
	f1 := fst.NewVectorFst(semiring.Tropical)
	a0 := f1.AddState()
	a1 := f1.AddState()
	a2 := f1.AddState()
	a3 := f1.AddState()
	f1.SetStart(a0)
	f1.AddTr(a0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: a1})
	f1.AddTr(a1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.Tropical.One(), Nextstate: a2})
	f1.AddTr(a1, fst.Tr{Ilabel: 3, Olabel: 9, Weight: semiring.Tropical.One(), Nextstate: a3})
	f1.SetFinal(a2, semiring.Tropical.One())
	f1.SetFinal(a3, semiring.Tropical.One())

	f2 := fst.NewVectorFst(semiring.Tropical)
	b0 := f2.AddState()
	b1 := f2.AddState()
	b2 := f2.AddState()
	bDead := f2.AddState()
	f2.SetStart(b0)
	f2.AddTr(b0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: b1})
	f2.AddTr(b1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.Tropical.One(), Nextstate: b2})
	f2.AddTr(b1, fst.Tr{Ilabel: 9, Olabel: 9, Weight: semiring.Tropical.One(), Nextstate: bDead})
	f2.SetFinal(b2, semiring.Tropical.One())

	data, err := lookahead.ComputeLabelReachableData(f2, true)
	require.NoError(t, err)

	builder := lookahead.NewComposeFilterBuilder(
		compose.NewSequenceFilterBuilder(f1, f2, nil, nil), data, false)
	op, err := compose.NewOp(builder)
	require.NoError(t, err)

	lf := lazy.NewLazyFstWithDefaultCache(op, semiring.Tropical)
	pruned, err := lf.Materialize()
	require.NoError(t, err)

	// No transition of the pruned result enters the dead pairing.
	for s := fst.StateId(0); s < pruned.NumStates(); s++ {
		trs, err := pruned.GetTrs(s)
		require.NoError(t, err)
		for i := 0; i < trs.Len(); i++ {
			assert.NotEqual(t, fst.Label(9), trs.At(i).Olabel,
				"transition into the dead fst2 branch survived lookahead pruning")
		}
	}

	// Language unchanged versus the unfiltered composition.
	plain, err := compose.Compose(f1, f2)
	require.NoError(t, err)
	plainStart, ok := plain.Start()
	require.True(t, ok)
	trs, err := plain.GetTrs(plainStart)
	require.NoError(t, err)
	require.Equal(t, 1, trs.Len())
	assert.Equal(t, fst.Label(1), trs.At(0).Ilabel)
}

func TestLookaheadComposeMatchesPlainComposeLanguage(t *testing.T) {
	f1 := chainAcceptor(t)
	f2 := chainAcceptor(t)

	la, err := lookahead.Compose(f1, f2)
	require.NoError(t, err)
	plain, err := compose.Compose(f1, f2)
	require.NoError(t, err)

	require.Equal(t, plain.NumStates(), la.NumStates())
	for s := fst.StateId(0); s < plain.NumStates(); s++ {
		want, err := plain.GetTrs(s)
		require.NoError(t, err)
		got, err := la.GetTrs(s)
		require.NoError(t, err)
		require.Equal(t, want.Len(), got.Len())
	}
}

func TestPushWeightsFilterIdentityBoundIsPassThrough(t *testing.T) {
	f1 := chainAcceptor(t)
	f2 := chainAcceptor(t)

	inner, err := compose.NewSequenceFilterBuilder(f1, f2, nil, nil).Build()
	require.NoError(t, err)
	pw := lookahead.NewPushWeightsFilter(inner, lookahead.IdentityWeightBound{One: semiring.Tropical.One()}, false, semiring.Tropical)

	require.NoError(t, pw.SetState(0, 0, pw.Start()))
	tr1 := fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2), Nextstate: 1}
	tr2 := fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(3), Nextstate: 1}
	fs, err := pw.FilterTr(&tr1, &tr2)
	require.NoError(t, err)
	require.False(t, fs.IsNoState())
	assert.Equal(t, semiring.TropicalWeight(2), tr1.Weight)
	assert.Equal(t, semiring.TropicalWeight(3), tr2.Weight)
}

func TestPushLabelsFilterSubstitutesUniquePrefix(t *testing.T) {
	// fst2's state 1 has exactly one non-epsilon continuation, label 2:
	// pushing rewrites the paired transition's input label to 2.
	f1 := chainAcceptor(t)
	f2 := chainAcceptor(t)

	data, err := lookahead.ComputeLabelReachableData(f2, true)
	require.NoError(t, err)

	inner, err := compose.NewSequenceFilterBuilder(f1, f2, nil, nil).Build()
	require.NoError(t, err)
	la := lookahead.NewMatcher(matcher.NewGenericMatcher(f2, matcher.MatchInput), data)
	pl := lookahead.NewPushLabelsFilter(inner, la, false)

	require.NoError(t, pl.SetState(0, 0, pl.Start()))
	tr1 := fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: 1}
	tr2 := fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.Tropical.One(), Nextstate: 1}
	fs, err := pl.FilterTr(&tr1, &tr2)
	require.NoError(t, err)
	require.False(t, fs.IsNoState())
	assert.Equal(t, fst.Label(2), tr2.Ilabel)
}

func TestMultiEpsilonMatcherTreatsExtraLabelsAsEpsilon(t *testing.T) {
	f := fst.NewVectorFst(semiring.Tropical)
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 5, Olabel: 5, Weight: semiring.Tropical.One(), Nextstate: s1})
	f.SetFinal(s1, semiring.Tropical.One())

	m := lookahead.NewMultiEpsilonMatcher(matcher.NewGenericMatcher(f, matcher.MatchInput), 5)

	items, err := m.Iter(0, fst.EpsLabel)
	require.NoError(t, err)

	var sawExtra bool
	for _, it := range items {
		if !it.IsEpsLoop && it.Tr.Ilabel == 5 {
			sawExtra = true
		}
	}
	assert.True(t, sawExtra, "label 5 should be yielded on an epsilon request")
}
