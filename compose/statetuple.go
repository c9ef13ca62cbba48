package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/statetable"
)

// StateTuple is a composed state's identity: the pair of operand states
// plus the filter state that got them there. Interned by statetable.
type StateTuple struct {
	Fs FilterState
	S1 fst.StateId
	S2 fst.StateId
}

func (t StateTuple) Hash() uint64 {
	h := t.Fs.Hash()
	h = h*1099511628211 ^ uint64(t.S1)
	h = h*1099511628211 ^ uint64(t.S2)
	return h
}

func (t StateTuple) Equal(other statetable.Tuple) bool {
	o, ok := other.(StateTuple)
	if !ok {
		return false
	}
	return t.S1 == o.S1 && t.S2 == o.S2 && t.Fs.Equal(o.Fs)
}

var _ statetable.Tuple = StateTuple{}
