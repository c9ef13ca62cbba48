package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// TrivialFilter allows every (tr1, tr2) pair unconditionally; useful only when the
// caller has already guaranteed no spurious epsilon duplication is
// possible (e.g. at most one operand has epsilons).
type TrivialFilter struct {
	m1, m2 matcher.Matcher
}

type TrivialFilterBuilder struct {
	fst1, fst2 fst.Fst
	m1, m2     matcher.Matcher
}

func NewTrivialFilterBuilder(fst1, fst2 fst.Fst, m1, m2 matcher.Matcher) *TrivialFilterBuilder {
	if m1 == nil {
		m1 = matcher.NewGenericMatcher(fst1, matcher.MatchOutput)
	}
	if m2 == nil {
		m2 = matcher.NewGenericMatcher(fst2, matcher.MatchInput)
	}
	return &TrivialFilterBuilder{fst1: fst1, fst2: fst2, m1: m1, m2: m2}
}

func (b *TrivialFilterBuilder) Fst1() fst.Fst { return b.fst1 }
func (b *TrivialFilterBuilder) Fst2() fst.Fst { return b.fst2 }

func (b *TrivialFilterBuilder) Build() (Filter, error) {
	return &TrivialFilter{m1: b.m1, m2: b.m2}, nil
}

func (f *TrivialFilter) Start() FilterState { return TrivialValid }

func (f *TrivialFilter) SetState(s1, s2 fst.StateId, fs FilterState) error { return nil }

func (f *TrivialFilter) FilterTr(tr1, tr2 *fst.Tr) (FilterState, error) {
	return TrivialValid, nil
}

func (f *TrivialFilter) FilterFinal(w1, w2 *semiring.Weight) error { return nil }

func (f *TrivialFilter) Matcher1() matcher.Matcher { return f.m1 }
func (f *TrivialFilter) Matcher2() matcher.Matcher { return f.m2 }

var (
	_ Filter        = (*TrivialFilter)(nil)
	_ FilterBuilder = (*TrivialFilterBuilder)(nil)
)
