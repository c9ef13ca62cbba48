package lookahead

import (
	"github.com/garvys-org/gofst/compose"
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

const noPushedLabel uint64 = uint64(fst.NoLabel)

// PushLabelsFilter wraps inner, substituting the label on one operand's
// transition with the unique single-transition prefix available from the
// lookahead-covered operand's current state, when such a prefix exists —
// letting the other operand's matcher consume it a step early instead of
// waiting for an intervening epsilon hop.
// "Unique prefix" here means: the lookahead-covered state has exactly one
// non-epsilon outgoing transition and its label is reachable per the
// lookahead Matcher. A pushed label is recorded in compose.PairFilterState
// (Aux holds the label, or fst.NoLabel when nothing is pending) so a later
// MultiEpsilonMatcher on the other side can consume it as epsilon-like.
type PushLabelsFilter struct {
	inner  compose.Filter
	la     *Matcher
	onFst1 bool
}

// NewPushLabelsFilter wraps inner with la, a lookahead Matcher over the
// operand whose labels get pushed (fst1 if onFst1, else fst2).
func NewPushLabelsFilter(inner compose.Filter, la *Matcher, onFst1 bool) *PushLabelsFilter {
	return &PushLabelsFilter{inner: inner, la: la, onFst1: onFst1}
}

func (f *PushLabelsFilter) Start() compose.FilterState {
	return compose.PairFilterState{Inner: f.inner.Start(), Aux: noPushedLabel}
}

func (f *PushLabelsFilter) SetState(s1, s2 fst.StateId, fs compose.FilterState) error {
	pfs := fs.(compose.PairFilterState)
	return f.inner.SetState(s1, s2, pfs.Inner)
}

// uniquePrefix returns the sole non-epsilon transition leaving s on the
// lookahead-covered operand, if there is exactly one and its label is
// reachable, else (zero Tr, false).
func (f *PushLabelsFilter) uniquePrefix(s fst.StateId) (fst.Tr, bool, error) {
	trs, err := f.la.Fst().GetTrs(s)
	if err != nil {
		return fst.Tr{}, false, err
	}
	var only fst.Tr
	count := 0
	for i := 0; i < trs.Len(); i++ {
		tr := trs.At(i)
		label := tr.Ilabel
		if f.la.MatchType() == matcher.MatchOutput {
			label = tr.Olabel
		}
		if label == fst.EpsLabel {
			continue
		}
		count++
		if count > 1 {
			return fst.Tr{}, false, nil
		}
		only = tr
	}
	if count != 1 {
		return fst.Tr{}, false, nil
	}
	label := only.Ilabel
	if f.la.MatchType() == matcher.MatchOutput {
		label = only.Olabel
	}
	ok, err := f.la.Reachable(s, label)
	if err != nil || !ok {
		return fst.Tr{}, false, err
	}
	return only, true, nil
}

func (f *PushLabelsFilter) FilterTr(tr1, tr2 *fst.Tr) (compose.FilterState, error) {
	innerFs, err := f.inner.FilterTr(tr1, tr2)
	if err != nil || innerFs.IsNoState() {
		return compose.PairFilterState{Inner: innerFs, Aux: noPushedLabel}, err
	}

	next := tr2.Nextstate
	if f.onFst1 {
		next = tr1.Nextstate
	}
	prefix, ok, err := f.uniquePrefix(next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return compose.PairFilterState{Inner: innerFs, Aux: noPushedLabel}, nil
	}

	pushedLabel := prefix.Ilabel
	if f.la.MatchType() == matcher.MatchOutput {
		pushedLabel = prefix.Olabel
	}
	if f.onFst1 {
		tr1.Olabel = pushedLabel
	} else {
		tr2.Ilabel = pushedLabel
	}
	return compose.PairFilterState{Inner: innerFs, Aux: uint64(pushedLabel)}, nil
}

func (f *PushLabelsFilter) FilterFinal(w1, w2 *semiring.Weight) error {
	return f.inner.FilterFinal(w1, w2)
}

func (f *PushLabelsFilter) Matcher1() matcher.Matcher { return f.inner.Matcher1() }
func (f *PushLabelsFilter) Matcher2() matcher.Matcher { return f.inner.Matcher2() }

var _ compose.Filter = (*PushLabelsFilter)(nil)
