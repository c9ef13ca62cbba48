package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// NullFilter rejects every pair in which either operand stays put on the
// synthetic epsilon self-loop, so an epsilon transition on one side is
// joined only with an epsilon transition on the other side.
type NullFilter struct {
	m1, m2 matcher.Matcher
}

type NullFilterBuilder struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher
}

// NewNullFilterBuilder builds the filter family over fst1/fst2, defaulting
// to generic matchers (fst1 on output labels, fst2 on input labels) when m1
// or m2 is nil.
func NewNullFilterBuilder(fst1, fst2 fst.Fst, m1, m2 matcher.Matcher) *NullFilterBuilder {
	if m1 == nil {
		m1 = matcher.NewGenericMatcher(fst1, matcher.MatchOutput)
	}
	if m2 == nil {
		m2 = matcher.NewGenericMatcher(fst2, matcher.MatchInput)
	}
	return &NullFilterBuilder{fst1: fst1, fst2: fst2, m1: m1, m2: m2}
}

func (b *NullFilterBuilder) Fst1() fst.Fst { return b.fst1 }
func (b *NullFilterBuilder) Fst2() fst.Fst { return b.fst2 }

func (b *NullFilterBuilder) Build() (Filter, error) {
	return &NullFilter{m1: b.m1, m2: b.m2}, nil
}

func (f *NullFilter) Start() FilterState { return TrivialValid }

func (f *NullFilter) SetState(s1, s2 fst.StateId, fs FilterState) error { return nil }

func (f *NullFilter) FilterTr(tr1, tr2 *fst.Tr) (FilterState, error) {
	if tr1.Olabel == fst.NoLabel || tr2.Ilabel == fst.NoLabel {
		return TrivialNoState, nil
	}
	return TrivialValid, nil
}

func (f *NullFilter) FilterFinal(w1, w2 *semiring.Weight) error { return nil }

func (f *NullFilter) Matcher1() matcher.Matcher { return f.m1 }
func (f *NullFilter) Matcher2() matcher.Matcher { return f.m2 }

var (
	_ Filter        = (*NullFilter)(nil)
	_ FilterBuilder = (*NullFilterBuilder)(nil)
)
