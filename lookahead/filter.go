package lookahead

import (
	"github.com/garvys-org/gofst/compose"
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/lazy"
	"github.com/garvys-org/gofst/matcher"
	"github.com/garvys-org/gofst/semiring"
)

// rejectState is the ComposeFilter sentinel returned by every wrapper in
// this package when it decides to reject a pair the inner filter already
// accepted. It never needs to compare equal to anything: a rejected pair
// is dropped by ComposeFstOp.matchTr before any tuple referencing this
// value is interned (see compose/op.go's `if fs.IsNoState() { continue }`).
type rejectState struct{}

func (rejectState) Hash() uint64                          { return 0 }
func (rejectState) Equal(other compose.FilterState) bool  { _, ok := other.(rejectState); return ok }
func (rejectState) IsNoState() bool                       { return true }

// ComposeFilter wraps another ComposeFilter, additionally consulting a
// lookahead Matcher over one operand to reject pairs whose destination on
// that operand is Dead — cannot reach any label or final state — before
// composition ever expands them. This is a
// conservative instance of the filter: it only prunes branches that are
// provably dead, so it never rejects a pair the unfiltered composition
// would have needed (testable property "Lookahead never admits more").
type ComposeFilter struct {
	inner  compose.Filter
	la     *Matcher
	onFst1 bool // true: la covers fst1, check tr1.Nextstate; false: covers fst2, check tr2.Nextstate
}

// NewComposeFilter wraps inner with la, a lookahead Matcher already built
// over whichever operand (fst1 if onFst1, else fst2) inner composes.
func NewComposeFilter(inner compose.Filter, la *Matcher, onFst1 bool) *ComposeFilter {
	return &ComposeFilter{inner: inner, la: la, onFst1: onFst1}
}

func (f *ComposeFilter) Start() compose.FilterState { return f.inner.Start() }

func (f *ComposeFilter) SetState(s1, s2 fst.StateId, fs compose.FilterState) error {
	return f.inner.SetState(s1, s2, fs)
}

func (f *ComposeFilter) FilterTr(tr1, tr2 *fst.Tr) (compose.FilterState, error) {
	fs, err := f.inner.FilterTr(tr1, tr2)
	if err != nil || fs.IsNoState() {
		return fs, err
	}

	next := tr2.Nextstate
	if f.onFst1 {
		next = tr1.Nextstate
	}
	if f.la.Dead(next) {
		return rejectState{}, nil
	}
	return fs, nil
}

func (f *ComposeFilter) FilterFinal(w1, w2 *semiring.Weight) error {
	return f.inner.FilterFinal(w1, w2)
}

func (f *ComposeFilter) Matcher1() matcher.Matcher { return f.inner.Matcher1() }
func (f *ComposeFilter) Matcher2() matcher.Matcher { return f.inner.Matcher2() }

var _ compose.Filter = (*ComposeFilter)(nil)

// ComposeFilterBuilder builds a ComposeFilter wrapping inner's filters, each
// backed by a fresh Matcher over the lookahead-covered operand's base
// matcher. data must already be computed over that operand.
type ComposeFilterBuilder struct {
	inner  compose.FilterBuilder
	data   *LabelReachableData
	onFst1 bool
}

// NewComposeFilterBuilder wraps inner; data is the LabelReachableData
// computed over fst1 (onFst1 true) or fst2 (onFst1 false).
func NewComposeFilterBuilder(inner compose.FilterBuilder, data *LabelReachableData, onFst1 bool) *ComposeFilterBuilder {
	return &ComposeFilterBuilder{inner: inner, data: data, onFst1: onFst1}
}

func (b *ComposeFilterBuilder) Fst1() fst.Fst { return b.inner.Fst1() }
func (b *ComposeFilterBuilder) Fst2() fst.Fst { return b.inner.Fst2() }

func (b *ComposeFilterBuilder) Build() (compose.Filter, error) {
	inner, err := b.inner.Build()
	if err != nil {
		return nil, err
	}
	base := inner.Matcher2()
	if b.onFst1 {
		base = inner.Matcher1()
	}
	la := NewMatcher(base, b.data)
	return NewComposeFilter(inner, la, b.onFst1), nil
}

var _ compose.FilterBuilder = (*ComposeFilterBuilder)(nil)

// Compose materializes fst1 ∘ fst2 with lookahead pruning over fst2: a
// Sequence-filtered composition whose pairs are additionally rejected when
// they lead into an fst2 state that can reach no label and no final state.
// This is the lookahead-filtered entry point; it lives here rather than
// behind a compose.FilterSelect value because the reachability
// precomputation belongs to this package.
func Compose(fst1, fst2 fst.Fst) (*fst.VectorFst, error) {
	data, err := ComputeLabelReachableData(fst2, true)
	if err != nil {
		return nil, err
	}
	builder := NewComposeFilterBuilder(
		compose.NewSequenceFilterBuilder(fst1, fst2, nil, nil), data, false)
	op, err := compose.NewOp(builder)
	if err != nil {
		return nil, err
	}

	lf := lazy.NewLazyFstWithDefaultCache(op, fst1.Semiring())
	if isyms := fst1.InputSymbols(); isyms != nil {
		lf.SetInputSymbols(isyms.Copy())
	}
	if osyms := fst2.OutputSymbols(); osyms != nil {
		lf.SetOutputSymbols(osyms.Copy())
	}
	raw, err := lf.Materialize()
	if err != nil {
		return nil, err
	}

	out, err := fst.Connect(raw)
	if err != nil {
		return nil, err
	}
	props, err := fst.ComputeProperties(out)
	if err != nil {
		return nil, err
	}
	out.SetProperties(props)
	return out, nil
}
