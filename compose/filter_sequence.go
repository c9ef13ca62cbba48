package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// SequenceFilter requires epsilons on fst1's output side to be read before
// epsilons on fst2's input side.
type SequenceFilter struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher

	s1, s2  fst.StateId
	fs      IntegerFilterState
	alleps1 bool
	noeps1  bool
	set     bool
}

type SequenceFilterBuilder struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher
}

func NewSequenceFilterBuilder(fst1, fst2 fst.Fst, m1, m2 matcher.Matcher) *SequenceFilterBuilder {
	if m1 == nil {
		m1 = matcher.NewGenericMatcher(fst1, matcher.MatchOutput)
	}
	if m2 == nil {
		m2 = matcher.NewGenericMatcher(fst2, matcher.MatchInput)
	}
	return &SequenceFilterBuilder{fst1: fst1, fst2: fst2, m1: m1, m2: m2}
}

func (b *SequenceFilterBuilder) Fst1() fst.Fst { return b.fst1 }
func (b *SequenceFilterBuilder) Fst2() fst.Fst { return b.fst2 }

func (b *SequenceFilterBuilder) Build() (Filter, error) {
	return &SequenceFilter{
		fst1: b.fst1, fst2: b.fst2, m1: b.m1, m2: b.m2,
		fs: NoIntegerFilterState,
	}, nil
}

func (f *SequenceFilter) Start() FilterState { return NewIntegerFilterState(0) }

func (f *SequenceFilter) SetState(s1, s2 fst.StateId, fs FilterState) error {
	ifs := fs.(IntegerFilterState)
	if f.set && f.s1 == s1 && f.s2 == s2 && f.fs == ifs {
		return nil
	}
	f.s1, f.s2, f.fs, f.set = s1, s2, ifs, true

	na1, err := f.fst1.NumTrs(s1)
	if err != nil {
		return err
	}
	ne1, err := f.fst1.NumOutputEpsilons(s1)
	if err != nil {
		return err
	}
	_, fin1, err := f.fst1.FinalWeight(s1)
	if err != nil {
		return err
	}
	f.alleps1 = na1 == ne1 && !fin1
	f.noeps1 = ne1 == 0
	return nil
}

func (f *SequenceFilter) FilterTr(tr1, tr2 *fst.Tr) (FilterState, error) {
	switch {
	case tr1.Olabel == fst.NoLabel:
		if f.alleps1 {
			return NoIntegerFilterState, nil
		} else if f.noeps1 {
			return NewIntegerFilterState(0), nil
		}
		return NewIntegerFilterState(1), nil
	case tr2.Ilabel == fst.NoLabel:
		if f.fs != NewIntegerFilterState(0) {
			return NoIntegerFilterState, nil
		}
		return NewIntegerFilterState(0), nil
	default:
		if tr1.Olabel == fst.EpsLabel {
			return NoIntegerFilterState, nil
		}
		return NewIntegerFilterState(0), nil
	}
}

func (f *SequenceFilter) FilterFinal(w1, w2 *semiring.Weight) error { return nil }

func (f *SequenceFilter) Matcher1() matcher.Matcher { return f.m1 }
func (f *SequenceFilter) Matcher2() matcher.Matcher { return f.m2 }

var (
	_ Filter        = (*SequenceFilter)(nil)
	_ FilterBuilder = (*SequenceFilterBuilder)(nil)
)
