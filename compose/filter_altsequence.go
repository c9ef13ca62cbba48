package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// AltSequenceFilter is Sequence's dual: epsilons on fst2's input side must
// be read before epsilons on fst1's output side.
type AltSequenceFilter struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher

	s1, s2  fst.StateId
	fs      IntegerFilterState
	alleps2 bool
	noeps2  bool
	set     bool
}

type AltSequenceFilterBuilder struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher
}

func NewAltSequenceFilterBuilder(fst1, fst2 fst.Fst, m1, m2 matcher.Matcher) *AltSequenceFilterBuilder {
	if m1 == nil {
		m1 = matcher.NewGenericMatcher(fst1, matcher.MatchOutput)
	}
	if m2 == nil {
		m2 = matcher.NewGenericMatcher(fst2, matcher.MatchInput)
	}
	return &AltSequenceFilterBuilder{fst1: fst1, fst2: fst2, m1: m1, m2: m2}
}

func (b *AltSequenceFilterBuilder) Fst1() fst.Fst { return b.fst1 }
func (b *AltSequenceFilterBuilder) Fst2() fst.Fst { return b.fst2 }

func (b *AltSequenceFilterBuilder) Build() (Filter, error) {
	return &AltSequenceFilter{
		fst1: b.fst1, fst2: b.fst2, m1: b.m1, m2: b.m2,
		fs: NoIntegerFilterState,
	}, nil
}

func (f *AltSequenceFilter) Start() FilterState { return NewIntegerFilterState(0) }

func (f *AltSequenceFilter) SetState(s1, s2 fst.StateId, fs FilterState) error {
	ifs := fs.(IntegerFilterState)
	if f.set && f.s1 == s1 && f.s2 == s2 && f.fs == ifs {
		return nil
	}
	f.s1, f.s2, f.fs, f.set = s1, s2, ifs, true

	na2, err := f.fst2.NumTrs(s2)
	if err != nil {
		return err
	}
	ne2, err := f.fst2.NumInputEpsilons(s2)
	if err != nil {
		return err
	}
	_, fin2, err := f.fst2.FinalWeight(s2)
	if err != nil {
		return err
	}
	f.alleps2 = na2 == ne2 && !fin2
	f.noeps2 = ne2 == 0
	return nil
}

func (f *AltSequenceFilter) FilterTr(tr1, tr2 *fst.Tr) (FilterState, error) {
	switch {
	case tr2.Ilabel == fst.NoLabel:
		if f.alleps2 {
			return NoIntegerFilterState, nil
		} else if f.noeps2 {
			return NewIntegerFilterState(0), nil
		}
		return NewIntegerFilterState(1), nil
	case tr1.Olabel == fst.NoLabel:
		if f.fs == NewIntegerFilterState(1) {
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

func (f *AltSequenceFilter) FilterFinal(w1, w2 *semiring.Weight) error { return nil }

func (f *AltSequenceFilter) Matcher1() matcher.Matcher { return f.m1 }
func (f *AltSequenceFilter) Matcher2() matcher.Matcher { return f.m2 }

var (
	_ Filter        = (*AltSequenceFilter)(nil)
	_ FilterBuilder = (*AltSequenceFilterBuilder)(nil)
)
