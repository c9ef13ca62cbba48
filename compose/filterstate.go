package compose

// FilterState is the internal automaton state of a ComposeFilter; its value
// becomes part of the composed state's own identity (the `fs` field of
// ComposeStateTuple), so it must hash and compare the way any other
// interned tuple component does. IsNoState reports the distinguished
// "reject this pair" sentinel every filter variant needs, independent of
// how many ordinary states it otherwise carries.
type FilterState interface {
	Hash() uint64
	Equal(other FilterState) bool
	IsNoState() bool
}

// IntegerFilterState is the {0,1} or {0,1,2} filter state used by Sequence,
// AltSequence, and Match. NoState is modeled as -1, mirroring NO_STATE_ID's
// role as a sentinel distinct from every valid small integer.
type IntegerFilterState int64

const NoIntegerFilterState IntegerFilterState = -1

func NewIntegerFilterState(v int) IntegerFilterState { return IntegerFilterState(v) }

func (s IntegerFilterState) Hash() uint64 { return uint64(s) }
func (s IntegerFilterState) Equal(other FilterState) bool {
	o, ok := other.(IntegerFilterState)
	return ok && o == s
}
func (s IntegerFilterState) IsNoState() bool { return s == NoIntegerFilterState }

// TrivialFilterState has exactly one valid value, used by Null, Trivial and
// NoMatch, whose filter automaton has no real state of its own.
type TrivialFilterState bool

const (
	TrivialNoState TrivialFilterState = false
	TrivialValid   TrivialFilterState = true
)

func (s TrivialFilterState) Hash() uint64 {
	if s {
		return 1
	}
	return 0
}
func (s TrivialFilterState) Equal(other FilterState) bool {
	o, ok := other.(TrivialFilterState)
	return ok && o == s
}
func (s TrivialFilterState) IsNoState() bool { return !bool(s) }

// PairFilterState composes an inner filter state with an extra component
// (a weight or a label), used by the lookahead package's PushWeights and
// PushLabels wrappers.
type PairFilterState struct {
	Inner FilterState
	Aux   uint64
}

func (s PairFilterState) Hash() uint64 {
	return s.Inner.Hash()*1099511628211 ^ s.Aux
}
func (s PairFilterState) Equal(other FilterState) bool {
	o, ok := other.(PairFilterState)
	return ok && o.Aux == s.Aux && o.Inner.Equal(s.Inner)
}
func (s PairFilterState) IsNoState() bool { return s.Inner.IsNoState() }
