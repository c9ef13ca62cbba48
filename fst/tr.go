package fst

import "github.com/garvys-org/gofst/semiring"

// StateId uniquely identifies a state of an Fst. This is a 32-bit unsigned
// integer for compact representation.
type StateId uint32

// NoStateId is the sentinel returned where no state exists (an Fst with no
// start state, a matcher lookup that found nothing).
const NoStateId StateId = 0xFFFFFFFF

// Label identifies a single input or output symbol. This is a 32-bit
// unsigned integer; EpsLabel (0) consumes no symbol and NoLabel is the
// "not a real label" sentinel used by matchers to request every epsilon
// transition leaving a state.
type Label uint32

const (
	EpsLabel Label = 0
	NoLabel  Label = 0xFFFFFFFF
)

// Tr is one transition: an input label, an output label, a weight, and a
// destination state. Acceptors hold Ilabel == Olabel on every Tr.
type Tr struct {
	Ilabel    Label
	Olabel    Label
	Weight    semiring.Weight
	Nextstate StateId
}

// IsEpsilon reports whether both labels are EpsLabel.
func (t Tr) IsEpsilon() bool { return t.Ilabel == EpsLabel && t.Olabel == EpsLabel }

// TrsVec is a shareable, immutable slice of transitions. Once handed out by
// Fst.GetTrs it must not be mutated; Go slices already share their backing
// array by value on copy, so TrsVec needs no reference count of its own:
// the garbage collector retains the backing array for as long as any
// TrsVec still points into it.
type TrsVec struct {
	trs []Tr
}

// NewTrsVec wraps trs. The caller must not mutate trs after this call.
func NewTrsVec(trs []Tr) TrsVec { return TrsVec{trs: trs} }

func (v TrsVec) Len() int    { return len(v.trs) }
func (v TrsVec) At(i int) Tr { return v.trs[i] }
func (v TrsVec) Slice() []Tr { return v.trs }

// NumInputEpsilons counts transitions with Ilabel == EpsLabel.
func (v TrsVec) NumInputEpsilons() int {
	n := 0
	for _, t := range v.trs {
		if t.Ilabel == EpsLabel {
			n++
		}
	}
	return n
}

// NumOutputEpsilons counts transitions with Olabel == EpsLabel.
func (v TrsVec) NumOutputEpsilons() int {
	n := 0
	for _, t := range v.trs {
		if t.Olabel == EpsLabel {
			n++
		}
	}
	return n
}
