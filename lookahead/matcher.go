package lookahead

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/matcher"
)

// Matcher wraps a base matcher plus LabelReachableData, answering "is this
// label reachable from this state" and "is state s a dead end" without
// enumerating a path. It delegates every ordinary Matcher method to base
// and adds the lookahead-only queries ComposeFilter consumes.
type Matcher struct {
	base matcher.Matcher
	data *LabelReachableData
}

// NewMatcher wraps base with the reachability summary data, computed over
// the same operand base matches against.
func NewMatcher(base matcher.Matcher, data *LabelReachableData) *Matcher {
	return &Matcher{base: base, data: data}
}

func (m *Matcher) Fst() fst.Fst                         { return m.base.Fst() }
func (m *Matcher) MatchType() matcher.MatchType         { return m.base.MatchType() }
func (m *Matcher) Priority(s fst.StateId) (int, error)  { return m.base.Priority(s) }
func (m *Matcher) Iter(s fst.StateId, l fst.Label) ([]matcher.Item, error) {
	return m.base.Iter(s, l)
}

func (m *Matcher) Flags() matcher.Flags {
	f := m.base.Flags()
	if m.data.ReachInput {
		f |= matcher.InputLookaheadMatcher
	} else {
		f |= matcher.OutputLookaheadMatcher
	}
	return f | matcher.LookaheadEpsilons
}

// Reachable reports whether label can be read on some path leaving s.
func (m *Matcher) Reachable(s fst.StateId, label fst.Label) (bool, error) {
	return m.data.ReachLabel(s, label)
}

// ReachFinal reports whether a final state is reachable from s.
func (m *Matcher) ReachFinal(s fst.StateId) (bool, error) {
	return m.data.ReachFinal(s)
}

// Dead reports whether s can reach nothing at all — no label, no final
// state. A pair that transitions into a Dead state can never contribute to
// a successful composed path and is safe for a ComposeFilter to reject.
func (m *Matcher) Dead(s fst.StateId) bool {
	if int(s) >= len(m.data.IntervalSets) {
		return false
	}
	return m.data.IntervalSets[s].Len() == 0
}

var _ matcher.Matcher = (*Matcher)(nil)

// MultiEpsilonMatcher wraps another matcher with a set of extra
// "epsilon-like" labels: requesting EpsLabel (or fst.NoLabel) also yields
// every transition whose matched label is one of extra, letting a
// label-pushing filter consume a pushed label on the other operand as if
// it were epsilon.
type MultiEpsilonMatcher struct {
	base  matcher.Matcher
	extra map[fst.Label]bool
}

// NewMultiEpsilonMatcher wraps base, treating every label in extraEps as
// epsilon-like in addition to fst.EpsLabel.
func NewMultiEpsilonMatcher(base matcher.Matcher, extraEps ...fst.Label) *MultiEpsilonMatcher {
	m := &MultiEpsilonMatcher{base: base, extra: make(map[fst.Label]bool, len(extraEps))}
	for _, l := range extraEps {
		m.extra[l] = true
	}
	return m
}

func (m *MultiEpsilonMatcher) Fst() fst.Fst                        { return m.base.Fst() }
func (m *MultiEpsilonMatcher) MatchType() matcher.MatchType        { return m.base.MatchType() }
func (m *MultiEpsilonMatcher) Priority(s fst.StateId) (int, error) { return m.base.Priority(s) }
func (m *MultiEpsilonMatcher) Flags() matcher.Flags                { return m.base.Flags() }

func (m *MultiEpsilonMatcher) Iter(s fst.StateId, label fst.Label) ([]matcher.Item, error) {
	if label != fst.EpsLabel && label != fst.NoLabel && !m.extra[label] {
		return m.base.Iter(s, label)
	}

	baseLabel := label
	if m.extra[label] {
		baseLabel = fst.NoLabel
	}
	items, err := m.base.Iter(s, baseLabel)
	if err != nil {
		return nil, err
	}
	if len(m.extra) == 0 {
		return items, nil
	}

	trs, err := m.base.Fst().GetTrs(s)
	if err != nil {
		return nil, err
	}
	matchOutput := m.base.MatchType() == matcher.MatchOutput
	for i := 0; i < trs.Len(); i++ {
		tr := trs.At(i)
		l := tr.Ilabel
		if matchOutput {
			l = tr.Olabel
		}
		if m.extra[l] {
			items = append(items, matcher.Item{Tr: tr})
		}
	}
	return items, nil
}

var _ matcher.Matcher = (*MultiEpsilonMatcher)(nil)
