package fst

import (
	"fmt"

	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/semiring"
)

type vectorState struct {
	trs      []Tr
	final    semiring.Weight
	hasFinal bool
}

// VectorFst is the canonical concrete, eagerly materialized Fst: every
// state's transitions live in an ordinary Go slice. It is the container
// callers build by hand and the one a lazy Fst's compute step materializes
// into, playing the role VectorFst plays in OpenFst.
type VectorFst struct {
	sr       semiring.Semiring
	states   []vectorState
	start    StateId
	hasStart bool
	props    Properties
	isyms    *SymbolTable
	osyms    *SymbolTable
}

// NewVectorFst creates an empty mutable Fst over sr.
func NewVectorFst(sr semiring.Semiring) *VectorFst {
	return &VectorFst{sr: sr, start: NoStateId}
}

func (f *VectorFst) Semiring() semiring.Semiring { return f.sr }

func (f *VectorFst) Start() (StateId, bool) { return f.start, f.hasStart }

func (f *VectorFst) checkState(s StateId) error {
	if int(s) >= len(f.states) {
		return gofsterr.New(gofsterr.OutOfRange, fmt.Sprintf("fst: state %d out of range (have %d states)", s, len(f.states)))
	}
	return nil
}

func (f *VectorFst) FinalWeight(s StateId) (semiring.Weight, bool, error) {
	if err := f.checkState(s); err != nil {
		return nil, false, err
	}
	st := f.states[s]
	return st.final, st.hasFinal, nil
}

func (f *VectorFst) GetTrs(s StateId) (TrsVec, error) {
	if err := f.checkState(s); err != nil {
		return TrsVec{}, err
	}
	return NewTrsVec(f.states[s].trs), nil
}

func (f *VectorFst) NumTrs(s StateId) (int, error) {
	if err := f.checkState(s); err != nil {
		return 0, err
	}
	return len(f.states[s].trs), nil
}

func (f *VectorFst) NumInputEpsilons(s StateId) (int, error) {
	trs, err := f.GetTrs(s)
	if err != nil {
		return 0, err
	}
	return trs.NumInputEpsilons(), nil
}

func (f *VectorFst) NumOutputEpsilons(s StateId) (int, error) {
	trs, err := f.GetTrs(s)
	if err != nil {
		return 0, err
	}
	return trs.NumOutputEpsilons(), nil
}

func (f *VectorFst) NumStates() StateId { return StateId(len(f.states)) }

func (f *VectorFst) Properties() Properties { return f.props }

func (f *VectorFst) InputSymbols() *SymbolTable  { return f.isyms }
func (f *VectorFst) OutputSymbols() *SymbolTable { return f.osyms }

func (f *VectorFst) AddState() StateId {
	f.states = append(f.states, vectorState{})
	f.props = 0
	return StateId(len(f.states) - 1)
}

func (f *VectorFst) SetStart(s StateId) {
	f.start = s
	f.hasStart = true
	f.props = 0
}

func (f *VectorFst) SetFinal(s StateId, w semiring.Weight) {
	f.props = 0
	if w == nil || w.IsZero() {
		f.states[s].hasFinal = false
		f.states[s].final = nil
		return
	}
	f.states[s].final = w
	f.states[s].hasFinal = true
}

func (f *VectorFst) AddTr(s StateId, tr Tr) {
	f.states[s].trs = append(f.states[s].trs, tr)
	f.props = 0
}

func (f *VectorFst) DeleteTrs(s StateId) {
	f.states[s].trs = nil
	f.props = 0
}

func (f *VectorFst) SetTrs(s StateId, trs []Tr) {
	f.states[s].trs = trs
	f.props = 0
}

func (f *VectorFst) SetProperties(p Properties) { f.props = p }

func (f *VectorFst) SetInputSymbols(syms *SymbolTable)  { f.isyms = syms }
func (f *VectorFst) SetOutputSymbols(syms *SymbolTable) { f.osyms = syms }

var (
	_ Fst        = (*VectorFst)(nil)
	_ MutableFst = (*VectorFst)(nil)
)
