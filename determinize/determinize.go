package determinize

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/lazy"
	"github.com/garvys-org/gofst/semiring"
)

// Kind selects which disambiguation behavior Determinize enforces.
type Kind uint8

const (
	// Functional assumes the input is functional (every input string has
	// at most one accepting path) and does not check it.
	Functional Kind = iota
	// NonFunctional allows multiple accepting paths per input string;
	// their weights are combined by ⊕ at each subset, same traversal as
	// Functional (the Op itself doesn't distinguish the two — the
	// difference is in what the caller promises about the input).
	NonFunctional
	// Disambiguate requires the semiring to have the Path property so
	// that combining accepting paths by ⊕ always keeps exactly one.
	Disambiguate
)

// Config configures Determinize, following the plain struct + Default +
// With* fluent-setter idiom used by compose.Config and lazy.CacheConfig.
type Config struct {
	Kind    Kind
	Divisor CommonDivisor
	Delta   float64
	Connect bool
}

// DefaultConfig returns Functional determinization with the default
// ⊕-based common divisor, standard KDelta quantization, and a connect
// post-pass.
func DefaultConfig() Config {
	return Config{Kind: Functional, Divisor: DefaultCommonDivisor{}, Delta: semiring.KDelta, Connect: true}
}

func (c Config) WithKind(k Kind) Config { c.Kind = k; return c }

func (c Config) WithDivisor(d CommonDivisor) Config { c.Divisor = d; return c }

func (c Config) WithDelta(d float64) Config { c.Delta = d; return c }

func (c Config) WithConnect(v bool) Config { c.Connect = v; return c }

// Determinize runs DeterminizeWithConfig with DefaultConfig.
func Determinize(f fst.Fst) (*fst.VectorFst, error) {
	return DeterminizeWithConfig(f, DefaultConfig())
}

// DeterminizeWithConfig materializes the determinized equivalent of f.
// Transducers (ilabel != olabel on some Tr) are reduced to an acceptor
// over a Gallic semiring first: each transition's output label is
// folded into a GallicWeight's String component and the transition's own
// olabel is replaced by its ilabel, leaving the returned Fst's transitions carrying
// GallicWeight weights pending an external factor-weight pass to re-expand
// the bundled output strings back into single-label transitions.
func DeterminizeWithConfig(f fst.Fst, cfg Config) (*fst.VectorFst, error) {
	if cfg.Kind == Disambiguate && !f.Semiring().Properties().Has(semiring.Path) {
		return nil, gofsterr.New(gofsterr.PathRequired, "determinize: Disambiguate requires the path property")
	}

	operand := f
	if !isAcceptor(f) {
		reduced, err := reduceToGallicAcceptor(f)
		if err != nil {
			return nil, err
		}
		operand = reduced
	}

	op, err := NewOp(operand, cfg.Divisor)
	if err != nil {
		return nil, err
	}
	if cfg.Delta > 0 {
		op.delta = cfg.Delta
	}

	out := fst.NewVectorFst(operand.Semiring())
	if isyms := f.InputSymbols(); isyms != nil {
		out.SetInputSymbols(isyms.Copy())
	}

	startID, hasStart, err := op.ComputeStart()
	if err != nil {
		return nil, err
	}
	if !hasStart {
		return out, nil
	}

	ensureState := func(id fst.StateId) {
		for out.NumStates() <= id {
			out.AddState()
		}
	}

	ensureState(startID)
	out.SetStart(startID)

	visited := make(map[fst.StateId]bool)
	queue := []fst.StateId{startID}
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

// DeterminizeLazy builds the same Op as DeterminizeWithConfig but returns
// it wrapped in a lazy.LazyFst instead of eagerly materializing every
// subset state. Note operand reduction (the Gallic-acceptor step for
// transducers) still runs eagerly over f, since it's a one-pass relabeling
// rather than part of the subset construction itself.
func DeterminizeLazy(f fst.Fst, cfg Config) (*lazy.LazyFst, error) {
	if cfg.Kind == Disambiguate && !f.Semiring().Properties().Has(semiring.Path) {
		return nil, gofsterr.New(gofsterr.PathRequired, "determinize: Disambiguate requires the path property")
	}

	operand := f
	if !isAcceptor(f) {
		reduced, err := reduceToGallicAcceptor(f)
		if err != nil {
			return nil, err
		}
		operand = reduced
	}

	op, err := NewOp(operand, cfg.Divisor)
	if err != nil {
		return nil, err
	}
	if cfg.Delta > 0 {
		op.delta = cfg.Delta
	}

	out := lazy.NewLazyFstWithDefaultCache(op, operand.Semiring())
	if isyms := f.InputSymbols(); isyms != nil {
		out.SetInputSymbols(isyms.Copy())
	}
	return out, nil
}

// reduceToGallicAcceptor builds the Gallic-weighted acceptor over f's
// input labels: olabel folds into the Gallic weight's StringWeight
// component and the transition's own olabel is replaced by its ilabel so every
// transition reads ilabel == olabel on the reduced operand.
func reduceToGallicAcceptor(f fst.Fst) (*fst.VectorFst, error) {
	gsr := semiring.NewGallicSemiring(f.Semiring())
	out := fst.NewVectorFst(gsr)

	n := int(f.NumStates())
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if start, ok := f.Start(); ok {
		out.SetStart(start)
	}

	for s := 0; s < n; s++ {
		trs, err := f.GetTrs(fst.StateId(s))
		if err != nil {
			return nil, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			var str semiring.StringWeight
			if tr.Olabel == fst.EpsLabel {
				str = semiring.StringOf()
			} else {
				str = semiring.StringOf(uint32(tr.Olabel))
			}
			gw := semiring.GallicWeight{Str: str, W: tr.Weight}
			out.AddTr(fst.StateId(s), fst.Tr{
				Ilabel:    tr.Ilabel,
				Olabel:    tr.Ilabel,
				Weight:    gw,
				Nextstate: tr.Nextstate,
			})
		}

		w, hasFinal, err := f.FinalWeight(fst.StateId(s))
		if err != nil {
			return nil, err
		}
		if hasFinal {
			out.SetFinal(fst.StateId(s), semiring.GallicWeight{Str: semiring.StringOf(), W: w})
		}
	}

	return out, nil
}
