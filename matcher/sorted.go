package matcher

import (
	"fmt"
	"sort"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
)

// SortedMatcher assumes its operand is sorted on the match side; Iter binary
// searches for the lower bound of the requested label and yields successors
// while the label keeps matching. Construction fails with OperandNotSorted
// when the operand's properties assert it is not sorted on the match side;
// when sortedness is unknown construction succeeds and MatchType reports
// MatchUnknown.
type SortedMatcher struct {
	f         fst.Fst
	matchType MatchType
}

// NewSortedMatcher builds a SortedMatcher over f for matchType.
func NewSortedMatcher(f fst.Fst, matchType MatchType) (*SortedMatcher, error) {
	props := f.Properties()
	var notSortedBit fst.Properties
	switch matchType {
	case MatchInput:
		notSortedBit = fst.NotILabelSorted
	case MatchOutput:
		notSortedBit = fst.NotOLabelSorted
	default:
		return nil, fmt.Errorf("matcher: SortedMatcher requires MatchInput or MatchOutput, got %s", matchType)
	}
	if props.Has(notSortedBit) {
		return nil, gofsterr.New(gofsterr.OperandNotSorted, fmt.Sprintf("matcher: operand is not sorted on %s", matchType))
	}
	return &SortedMatcher{f: f, matchType: matchType}, nil
}

func (m *SortedMatcher) Fst() fst.Fst { return m.f }

func (m *SortedMatcher) label(tr fst.Tr) fst.Label {
	if m.matchType == MatchInput {
		return tr.Ilabel
	}
	return tr.Olabel
}

func (m *SortedMatcher) MatchType() MatchType {
	props := m.f.Properties()
	var sortedBit, notSortedBit fst.Properties
	if m.matchType == MatchInput {
		sortedBit, notSortedBit = fst.ILabelSorted, fst.NotILabelSorted
	} else {
		sortedBit, notSortedBit = fst.OLabelSorted, fst.NotOLabelSorted
	}
	switch {
	case props.Has(sortedBit):
		return m.matchType
	case props.Has(notSortedBit):
		return MatchNone
	default:
		return MatchUnknown
	}
}

func (m *SortedMatcher) Priority(s fst.StateId) (int, error) {
	return m.f.NumTrs(s)
}

func (m *SortedMatcher) Flags() Flags { return 0 }

func (m *SortedMatcher) Iter(s fst.StateId, label fst.Label) ([]Item, error) {
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

	pos := sort.Search(trs.Len(), func(i int) bool {
		return m.label(trs.At(i)) >= matchLabel
	})
	for i := pos; i < trs.Len(); i++ {
		tr := trs.At(i)
		if m.label(tr) != matchLabel {
			break
		}
		items = append(items, Item{Tr: tr})
	}
	return items, nil
}

var _ Matcher = (*SortedMatcher)(nil)
