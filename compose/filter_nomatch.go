package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// NoMatchFilter rejects only pairs where both labels are epsilon (the
// genuine epsilon:epsilon coincidence); every other pair, including the
// synthetic self-loop pairs, is allowed.
type NoMatchFilter struct {
	m1, m2 matcher.Matcher
}

type NoMatchFilterBuilder struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher
}

func NewNoMatchFilterBuilder(fst1, fst2 fst.Fst, m1, m2 matcher.Matcher) *NoMatchFilterBuilder {
	if m1 == nil {
		m1 = matcher.NewGenericMatcher(fst1, matcher.MatchOutput)
	}
	if m2 == nil {
		m2 = matcher.NewGenericMatcher(fst2, matcher.MatchInput)
	}
	return &NoMatchFilterBuilder{fst1: fst1, fst2: fst2, m1: m1, m2: m2}
}

func (b *NoMatchFilterBuilder) Fst1() fst.Fst { return b.fst1 }
func (b *NoMatchFilterBuilder) Fst2() fst.Fst { return b.fst2 }

func (b *NoMatchFilterBuilder) Build() (Filter, error) {
	return &NoMatchFilter{m1: b.m1, m2: b.m2}, nil
}

func (f *NoMatchFilter) Start() FilterState { return TrivialValid }

func (f *NoMatchFilter) SetState(s1, s2 fst.StateId, fs FilterState) error { return nil }

func (f *NoMatchFilter) FilterTr(tr1, tr2 *fst.Tr) (FilterState, error) {
	if tr1.Olabel == fst.EpsLabel && tr2.Ilabel == fst.EpsLabel {
		return TrivialNoState, nil
	}
	return TrivialValid, nil
}

func (f *NoMatchFilter) FilterFinal(w1, w2 *semiring.Weight) error { return nil }

func (f *NoMatchFilter) Matcher1() matcher.Matcher { return f.m1 }
func (f *NoMatchFilter) Matcher2() matcher.Matcher { return f.m2 }

var (
	_ Filter        = (*NoMatchFilter)(nil)
	_ FilterBuilder = (*NoMatchFilterBuilder)(nil)
)
