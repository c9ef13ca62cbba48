package compose

import (
	"fmt"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
	"github.com/garvys-org/gofst/statetable"
)

// Op is the composition algorithm proper: given a FilterBuilder (which
// already knows both operands and their matchers), it computes the start
// state, outgoing transitions, and final weight of any composed state id.
type Op struct {
	builder   FilterBuilder
	table     *statetable.StateTable
	matchType matcher.MatchType
}

// NewOp validates the matcher pair's capabilities and returns a ready Op.
// Fails with ComposeIncompatibleSides if the matchers can't agree on a
// common effective match type.
func NewOp(builder FilterBuilder) (*Op, error) {
	filter, err := builder.Build()
	if err != nil {
		return nil, err
	}
	mt, err := resolveMatchType(filter.Matcher1(), filter.Matcher2())
	if err != nil {
		return nil, err
	}
	return &Op{builder: builder, table: statetable.New(), matchType: mt}, nil
}

func resolveMatchType(m1, m2 matcher.Matcher) (matcher.MatchType, error) {
	if m1.Flags().Has(matcher.RequireMatch) && m1.MatchType() != matcher.MatchOutput {
		return 0, gofsterr.New(gofsterr.ComposeIncompatibleSides, "1st argument cannot perform required matching (sort?)")
	}
	if m2.Flags().Has(matcher.RequireMatch) && m2.MatchType() != matcher.MatchInput {
		return 0, gofsterr.New(gofsterr.ComposeIncompatibleSides, "2nd argument cannot perform required matching (sort?)")
	}

	t1, t2 := m1.MatchType(), m2.MatchType()
	switch {
	case t1 == matcher.MatchOutput && t2 == matcher.MatchInput:
		return matcher.MatchBoth, nil
	case t1 == matcher.MatchOutput:
		return matcher.MatchOutput, nil
	case t2 == matcher.MatchInput:
		return matcher.MatchInput, nil
	default:
		return 0, gofsterr.New(gofsterr.ComposeIncompatibleSides,
			"1st argument cannot match on output labels and 2nd argument cannot match on input labels (sort?)")
	}
}

// ComputeStart returns the interned id of (fst1.start, fst2.start,
// filter.start()), or (0, false, nil) if either operand has no start.
func (op *Op) ComputeStart() (fst.StateId, bool, error) {
	filter, err := op.builder.Build()
	if err != nil {
		return 0, false, err
	}
	s1, ok := op.builder.Fst1().Start()
	if !ok {
		return 0, false, nil
	}
	s2, ok := op.builder.Fst2().Start()
	if !ok {
		return 0, false, nil
	}
	tuple := StateTuple{Fs: filter.Start(), S1: s1, S2: s2}
	return fst.StateId(op.table.FindId(tuple)), true, nil
}

const requirePriority = -1

func (op *Op) matchInput(s1, s2 fst.StateId, filter Filter) (bool, error) {
	switch op.matchType {
	case matcher.MatchInput:
		return true, nil
	case matcher.MatchOutput:
		return false, nil
	default:
		p1, err := filter.Matcher1().Priority(s1)
		if err != nil {
			return false, err
		}
		p2, err := filter.Matcher2().Priority(s2)
		if err != nil {
			return false, err
		}
		if p1 == requirePriority && p2 == requirePriority {
			return false, gofsterr.New(gofsterr.RequirePriorityConflict, "both operands require match priority at the same composed state")
		}
		if p1 == requirePriority {
			return false, nil
		}
		if p2 == requirePriority {
			return true, nil
		}
		return p1 <= p2, nil
	}
}

// ComputeTrs computes the outgoing composed transitions of state s.
func (op *Op) ComputeTrs(s fst.StateId) (fst.TrsVec, error) {
	tuple, ok := op.table.FindTuple(uint32(s)).(StateTuple)
	if !ok {
		return fst.TrsVec{}, fmt.Errorf("compose: state %d has no interned tuple", s)
	}

	filter, err := op.builder.Build()
	if err != nil {
		return fst.TrsVec{}, err
	}
	if err := filter.SetState(tuple.S1, tuple.S2, tuple.Fs); err != nil {
		return fst.TrsVec{}, err
	}

	matchInput, err := op.matchInput(tuple.S1, tuple.S2, filter)
	if err != nil {
		return fst.TrsVec{}, err
	}

	var trs []fst.Tr
	if matchInput {
		trs, err = op.orderedExpand(tuple.S2, tuple.S1, true, filter, true)
	} else {
		trs, err = op.orderedExpand(tuple.S1, tuple.S2, false, filter, false)
	}
	if err != nil {
		return fst.TrsVec{}, err
	}
	return fst.NewTrsVec(trs), nil
}

// orderedExpand drives the matched side's operand transitions (plus the
// synthetic epsilon loop) through the matcher on sa, producing every
// composed transition leaving (sa "other side", sb "driving side").
// fst1Drives tells add_tr how to order (s1, s2) when interning the
// destination tuple, since sa/sb swap roles depending on matchInput.
func (op *Op) orderedExpand(sa, sb fst.StateId, matchInput bool, filter Filter, fst1Drives bool) ([]fst.Tr, error) {
	var loop fst.Tr
	if matchInput {
		loop = fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.NoLabel, Weight: op.one(), Nextstate: sb}
	} else {
		loop = fst.Tr{Ilabel: fst.NoLabel, Olabel: fst.EpsLabel, Weight: op.one(), Nextstate: sb}
	}

	var drivingFst fst.Fst
	if fst1Drives {
		drivingFst = op.builder.Fst1()
	} else {
		drivingFst = op.builder.Fst2()
	}

	var out []fst.Tr
	emit, err := op.matchTr(sa, loop, matchInput, filter, fst1Drives)
	if err != nil {
		return nil, err
	}
	out = append(out, emit...)

	drivingTrs, err := drivingFst.GetTrs(sb)
	if err != nil {
		return nil, err
	}
	for i := 0; i < drivingTrs.Len(); i++ {
		emit, err := op.matchTr(sa, drivingTrs.At(i), matchInput, filter, fst1Drives)
		if err != nil {
			return nil, err
		}
		out = append(out, emit...)
	}
	return out, nil
}

func (op *Op) one() semiring.Weight {
	return op.builder.Fst1().Semiring().One()
}

func (op *Op) matchTr(sa fst.StateId, tr fst.Tr, matchInput bool, filter Filter, fst1Drives bool) ([]fst.Tr, error) {
	var label fst.Label
	if matchInput {
		label = tr.Olabel
	} else {
		label = tr.Ilabel
	}

	// The matcher on the non-driving operand enumerates the candidates:
	// when fst1 drives, sa is an fst2 state and Matcher2 matches it.
	var items []matcher.Item
	var err error
	if fst1Drives {
		items, err = filter.Matcher2().Iter(sa, label)
	} else {
		items, err = filter.Matcher1().Iter(sa, label)
	}
	if err != nil {
		return nil, err
	}

	var out []fst.Tr
	for _, item := range items {
		matched := op.itemToTr(item, sa, matchInput)

		var arc1, arc2 fst.Tr
		if matchInput {
			arc1, arc2 = tr, matched
		} else {
			arc1, arc2 = matched, tr
		}

		fs, err := filter.FilterTr(&arc1, &arc2)
		if err != nil {
			return nil, err
		}
		if fs.IsNoState() {
			continue
		}
		out = append(out, op.addTr(arc1, arc2, fs))
	}
	return out, nil
}

// itemToTr turns a matcher.Item (possibly the synthetic epsilon loop) into
// a concrete Tr that stays at state sa when it is the loop.
func (op *Op) itemToTr(item matcher.Item, sa fst.StateId, matchInput bool) fst.Tr {
	if item.IsEpsLoop {
		if matchInput {
			return fst.Tr{Ilabel: fst.NoLabel, Olabel: fst.EpsLabel, Weight: op.one(), Nextstate: sa}
		}
		return fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.NoLabel, Weight: op.one(), Nextstate: sa}
	}
	return item.Tr
}

func (op *Op) addTr(arc1, arc2 fst.Tr, fs FilterState) fst.Tr {
	tuple := StateTuple{Fs: fs, S1: arc1.Nextstate, S2: arc2.Nextstate}
	id := op.table.FindId(tuple)
	return fst.Tr{
		Ilabel:    arc1.Ilabel,
		Olabel:    arc2.Olabel,
		Weight:    arc1.Weight.Times(arc2.Weight),
		Nextstate: fst.StateId(id),
	}
}

// ComputeFinalWeight returns w1 ⊗ w2 (after the filter's adjustment), or
// (nil, false, nil) if either operand isn't final at this tuple's states.
func (op *Op) ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool, error) {
	tuple, ok := op.table.FindTuple(uint32(s)).(StateTuple)
	if !ok {
		return nil, false, fmt.Errorf("compose: state %d has no interned tuple", s)
	}

	filter, err := op.builder.Build()
	if err != nil {
		return nil, false, err
	}

	w1, has1, err := op.builder.Fst1().FinalWeight(tuple.S1)
	if err != nil {
		return nil, false, err
	}
	if !has1 {
		return nil, false, nil
	}
	w2, has2, err := op.builder.Fst2().FinalWeight(tuple.S2)
	if err != nil {
		return nil, false, err
	}
	if !has2 {
		return nil, false, nil
	}

	if err := filter.SetState(tuple.S1, tuple.S2, tuple.Fs); err != nil {
		return nil, false, err
	}
	if err := filter.FilterFinal(&w1, &w2); err != nil {
		return nil, false, err
	}

	final := w1.Times(w2)
	if final.IsZero() {
		return nil, false, nil
	}
	return final, true, nil
}
