package compose

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/lazy"
	"github.com/garvys-org/gofst/matcher"
)

// FilterSelect picks which ComposeFilter family Compose drives the
// expansion with. Auto resolves to a Match filter when both operands'
// properties assert no epsilons on the joined sides (fst1 output, fst2
// input), and to the always-safe Sequence filter otherwise.
type FilterSelect uint8

const (
	AutoFilter FilterSelect = iota
	NullFilterSelect
	TrivialFilterSelect
	SequenceFilterSelect
	AltSequenceFilterSelect
	MatchFilterSelect
	NoMatchFilterSelect
)

// Config configures Compose. The zero value (AutoFilter, Connect: false)
// is not what most callers want; use DefaultConfig. Matcher1/Matcher2
// override the default generic matchers (fst1 on output labels, fst2 on
// input labels) when non-nil — a caller that has sorted an operand hands
// in a SortedMatcher here. Lookahead-filtered composition lives in the
// lookahead package (it needs reachability data this package can't
// compute), not behind a FilterSelect value.
type Config struct {
	Filter   FilterSelect
	Connect  bool
	Matcher1 matcher.Matcher
	Matcher2 matcher.Matcher
}

func DefaultConfig() Config {
	return Config{Filter: AutoFilter, Connect: true}
}

func (c Config) WithFilter(f FilterSelect) Config { c.Filter = f; return c }

func (c Config) WithConnect(v bool) Config { c.Connect = v; return c }

func newBuilder(cfg Config, fst1, fst2 fst.Fst) FilterBuilder {
	m1, m2 := cfg.Matcher1, cfg.Matcher2
	switch cfg.Filter {
	case NullFilterSelect:
		return NewNullFilterBuilder(fst1, fst2, m1, m2)
	case TrivialFilterSelect:
		return NewTrivialFilterBuilder(fst1, fst2, m1, m2)
	case AltSequenceFilterSelect:
		return NewAltSequenceFilterBuilder(fst1, fst2, m1, m2)
	case MatchFilterSelect:
		return NewMatchFilterBuilder(fst1, fst2, m1, m2)
	case NoMatchFilterSelect:
		return NewNoMatchFilterBuilder(fst1, fst2, m1, m2)
	case SequenceFilterSelect:
		return NewSequenceFilterBuilder(fst1, fst2, m1, m2)
	default:
		// Auto: epsilon-free operands can afford the stricter Match
		// filter; anything else falls back to Sequence.
		if fst1.Properties().Has(fst.NoOEpsilons) && fst2.Properties().Has(fst.NoIEpsilons) {
			return NewMatchFilterBuilder(fst1, fst2, m1, m2)
		}
		return NewSequenceFilterBuilder(fst1, fst2, m1, m2)
	}
}

// Compose runs ComposeWithConfig with DefaultConfig.
func Compose(fst1, fst2 fst.Fst) (*fst.VectorFst, error) {
	return ComposeWithConfig(fst1, fst2, DefaultConfig())
}

// ComposeWithConfig builds the intersection of fst1's output language and
// fst2's input language, materializing the result eagerly: it drives Op's
// ComputeStart/ComputeTrs/ComputeFinalWeight over a worklist until every
// reachable composed state has been expanded, the same traversal a
// fully-lazy consumer (the lazy package's LazyFst) performs on demand one
// state at a time. Composition errors (incompatible matcher sides,
// both matchers reporting the require-match priority) surface immediately.
func ComposeWithConfig(fst1, fst2 fst.Fst, cfg Config) (*fst.VectorFst, error) {
	builder := newBuilder(cfg, fst1, fst2)
	op, err := NewOp(builder)
	if err != nil {
		return nil, err
	}

	out := fst.NewVectorFst(fst1.Semiring())
	if isyms := fst1.InputSymbols(); isyms != nil {
		out.SetInputSymbols(isyms.Copy())
	}
	if osyms := fst2.OutputSymbols(); osyms != nil {
		out.SetOutputSymbols(osyms.Copy())
	}

	startTuple, hasStart, err := op.ComputeStart()
	if err != nil {
		return nil, err
	}
	if !hasStart {
		return out, nil
	}

	// The composed-state id space (interned by Op's StateTable) is dense
	// starting at 0, same as VectorFst's own state ids, so a tuple id
	// doubles as the output state id: allocate output states on first
	// sight in tuple order.
	ensureState := func(id fst.StateId) {
		for out.NumStates() <= id {
			out.AddState()
		}
	}

	ensureState(startTuple)
	out.SetStart(startTuple)

	visited := make(map[fst.StateId]bool)
	queue := []fst.StateId{startTuple}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if visited[s] {
			continue
		}
		visited[s] = true
		ensureState(s)

		trs, err := op.ComputeTrs(s)
		if err != nil {
			return nil, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			ensureState(tr.Nextstate)
			out.AddTr(s, tr)
			if !visited[tr.Nextstate] {
				queue = append(queue, tr.Nextstate)
			}
		}

		w, isFinal, err := op.ComputeFinalWeight(s)
		if err != nil {
			return nil, err
		}
		if isFinal {
			out.SetFinal(s, w)
		}
	}

	result := out
	if cfg.Connect {
		result, err = fst.Connect(out)
		if err != nil {
			return nil, err
		}
	}

	props, err := fst.ComputeProperties(result)
	if err != nil {
		return nil, err
	}
	result.SetProperties(props)
	return result, nil
}

// ComposeLazy builds the same Op as ComposeWithConfig but wraps it in a
// lazy.LazyFst with an unbounded SimpleCache instead of eagerly
// materializing every reachable state: useful when a caller only ever
// walks a small fraction of the composed language (e.g. a single decode
// path through a speech-recognition search graph).
func ComposeLazy(fst1, fst2 fst.Fst, cfg Config) (*lazy.LazyFst, error) {
	builder := newBuilder(cfg, fst1, fst2)
	op, err := NewOp(builder)
	if err != nil {
		return nil, err
	}
	out := lazy.NewLazyFstWithDefaultCache(op, fst1.Semiring())
	if isyms := fst1.InputSymbols(); isyms != nil {
		out.SetInputSymbols(isyms.Copy())
	}
	if osyms := fst2.OutputSymbols(); osyms != nil {
		out.SetOutputSymbols(osyms.Copy())
	}
	return out, nil
}
