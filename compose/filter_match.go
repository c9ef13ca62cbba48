package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// MatchFilter requires epsilons on both operands to be matched in
// lockstep, failing on spurious coincidences that Sequence/AltSequence
// would otherwise admit.
type MatchFilter struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher

	s1, s2           fst.StateId
	fs               IntegerFilterState
	alleps1, alleps2 bool
	noeps1, noeps2   bool
	set              bool
}

type MatchFilterBuilder struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher
}

func NewMatchFilterBuilder(fst1, fst2 fst.Fst, m1, m2 matcher.Matcher) *MatchFilterBuilder {
	if m1 == nil {
		m1 = matcher.NewGenericMatcher(fst1, matcher.MatchOutput)
	}
	if m2 == nil {
		m2 = matcher.NewGenericMatcher(fst2, matcher.MatchInput)
	}
	return &MatchFilterBuilder{fst1: fst1, fst2: fst2, m1: m1, m2: m2}
}

func (b *MatchFilterBuilder) Fst1() fst.Fst { return b.fst1 }
func (b *MatchFilterBuilder) Fst2() fst.Fst { return b.fst2 }

func (b *MatchFilterBuilder) Build() (Filter, error) {
	return &MatchFilter{
		fst1: b.fst1, fst2: b.fst2, m1: b.m1, m2: b.m2,
		fs: NoIntegerFilterState,
	}, nil
}

func (f *MatchFilter) Start() FilterState { return NewIntegerFilterState(0) }

func (f *MatchFilter) SetState(s1, s2 fst.StateId, fs FilterState) error {
	ifs := fs.(IntegerFilterState)
	if f.set && f.s1 == s1 && f.s2 == s2 && f.fs == ifs {
		return nil
	}
	f.s1, f.s2, f.fs, f.set = s1, s2, ifs, true

	na1, err := f.fst1.NumTrs(s1)
	if err != nil {
		return err
	}
	na2, err := f.fst2.NumTrs(s2)
	if err != nil {
		return err
	}
	ne1, err := f.fst1.NumOutputEpsilons(s1)
	if err != nil {
		return err
	}
	ne2, err := f.fst2.NumInputEpsilons(s2)
	if err != nil {
		return err
	}
	_, fin1, err := f.fst1.FinalWeight(s1)
	if err != nil {
		return err
	}
	_, fin2, err := f.fst2.FinalWeight(s2)
	if err != nil {
		return err
	}
	f.alleps1 = na1 == ne1 && !fin1
	f.alleps2 = na2 == ne2 && !fin2
	f.noeps1 = ne1 == 0
	f.noeps2 = ne2 == 0
	return nil
}

func (f *MatchFilter) FilterTr(tr1, tr2 *fst.Tr) (FilterState, error) {
	switch {
	case tr2.Ilabel == fst.NoLabel:
		// epsilon in fst1
		if f.fs == NewIntegerFilterState(0) {
			switch {
			case f.noeps2:
				return NewIntegerFilterState(0), nil
			case f.alleps2:
				return NoIntegerFilterState, nil
			default:
				return NewIntegerFilterState(1), nil
			}
		}
		if f.fs == NewIntegerFilterState(1) {
			return NewIntegerFilterState(1), nil
		}
		return NoIntegerFilterState, nil
	case tr1.Olabel == fst.NoLabel:
		// epsilon in fst2
		if f.fs == NewIntegerFilterState(0) {
			switch {
			case f.noeps1:
				return NewIntegerFilterState(0), nil
			case f.alleps1:
				return NoIntegerFilterState, nil
			default:
				return NewIntegerFilterState(2), nil
			}
		}
		if f.fs == NewIntegerFilterState(2) {
			return NewIntegerFilterState(2), nil
		}
		return NoIntegerFilterState, nil
	case tr1.Olabel == fst.EpsLabel:
		// epsilon in both
		if f.fs == NewIntegerFilterState(0) {
			return NewIntegerFilterState(0), nil
		}
		return NoIntegerFilterState, nil
	default:
		return NewIntegerFilterState(0), nil
	}
}

func (f *MatchFilter) FilterFinal(w1, w2 *semiring.Weight) error { return nil }

func (f *MatchFilter) Matcher1() matcher.Matcher { return f.m1 }
func (f *MatchFilter) Matcher2() matcher.Matcher { return f.m2 }

var (
	_ Filter        = (*MatchFilter)(nil)
	_ FilterBuilder = (*MatchFilterBuilder)(nil)
)
