package matcher

import "github.com/garvys-org/gofst/fst"

// GenericMatcher dispatches to a SortedMatcher when the operand carries the
// matching sorted property, and otherwise falls back to a linear scan.
type GenericMatcher struct {
	f         fst.Fst
	matchType MatchType
	sorted    *SortedMatcher
}

// NewGenericMatcher builds a GenericMatcher over f for matchType. Unlike
// NewSortedMatcher, this never fails on an unsorted operand — the whole
// point of the generic matcher is to still work in that case.
func NewGenericMatcher(f fst.Fst, matchType MatchType) *GenericMatcher {
	sorted, err := NewSortedMatcher(f, matchType)
	if err != nil {
		sorted = nil
	}
	return &GenericMatcher{f: f, matchType: matchType, sorted: sorted}
}

func (m *GenericMatcher) Fst() fst.Fst { return m.f }

func (m *GenericMatcher) label(tr fst.Tr) fst.Label {
	if m.matchType == MatchInput {
		return tr.Ilabel
	}
	return tr.Olabel
}

// MatchType reports the requested side unconditionally: the linear-scan
// fallback can match any side regardless of the operand's sortedness.
func (m *GenericMatcher) MatchType() MatchType {
	return m.matchType
}

func (m *GenericMatcher) Priority(s fst.StateId) (int, error) {
	return m.f.NumTrs(s)
}

func (m *GenericMatcher) Flags() Flags { return 0 }

func (m *GenericMatcher) Iter(s fst.StateId, label fst.Label) ([]Item, error) {
	if m.sorted != nil && m.sorted.MatchType() == m.matchType {
		return m.sorted.Iter(s, label)
	}

	trs, err := m.f.GetTrs(s)
	if err != nil {
		return nil, err
	}

	currentLoop := label == fst.EpsLabel
	matchLabel := label
	if label == fst.NoLabel {
		matchLabel = fst.EpsLabel
	}

	var items []Item
	if currentLoop {
		items = append(items, Item{IsEpsLoop: true})
	}
	for i := 0; i < trs.Len(); i++ {
		tr := trs.At(i)
		if m.label(tr) == matchLabel {
			items = append(items, Item{Tr: tr})
		}
	}
	return items, nil
}

var _ Matcher = (*GenericMatcher)(nil)
