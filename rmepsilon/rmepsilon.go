package rmepsilon

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/semiring"
)

// Config configures RmEpsilon, following the plain struct + Default +
// With* fluent-setter idiom used by compose.Config/determinize.Config.
type Config struct {
	Connect bool
}

func DefaultConfig() Config {
	return Config{Connect: true}
}

func (c Config) WithConnect(v bool) Config { c.Connect = v; return c }

// RmEpsilon runs RmEpsilonWithConfig with DefaultConfig.
func RmEpsilon(f fst.Fst) (*fst.VectorFst, error) {
	return RmEpsilonWithConfig(f, DefaultConfig())
}

// trKey is the dedup key for one emitted transition out of a single
// source state: two transitions agreeing on (ilabel, olabel, nextstate)
// are redundant paths to the same place and their weights should combine
// by ⊕ instead of both appearing.
type trKey struct {
	ilabel, olabel fst.Label
	nextstate      fst.StateId
}

// RmEpsilonWithConfig materializes f with every epsilon transition
// removed: each source state keeps its non-epsilon transitions, scaled and
// merged with the ones reachable by an epsilon path, and gains (d(s,t) ⊗
// final(t)) contributions to its own final weight for every epsilon-
// reachable final t. Requires a right-distributive (or commutative)
// semiring, since the shortest-distance relaxation multiplies a residual
// on the right of each epsilon weight.
func RmEpsilonWithConfig(f fst.Fst, cfg Config) (*fst.VectorFst, error) {
	sr := f.Semiring()
	props := sr.Properties()
	if !props.Has(semiring.RightSemiring) && !props.Has(semiring.Commutative) {
		return nil, gofsterr.New(gofsterr.RightSemiringRequired, "rmepsilon: requires a right (or commutative) semiring")
	}

	n := int(f.NumStates())
	out := fst.NewVectorFst(sr)
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if start, ok := f.Start(); ok {
		out.SetStart(start)
	}
	if isyms := f.InputSymbols(); isyms != nil {
		out.SetInputSymbols(isyms.Copy())
	}
	if osyms := f.OutputSymbols(); osyms != nil {
		out.SetOutputSymbols(osyms.Copy())
	}

	needsExpansion := make([]bool, n)
	if start, ok := f.Start(); ok {
		needsExpansion[start] = true
	}
	for s := 0; s < n; s++ {
		trs, err := f.GetTrs(fst.StateId(s))
		if err != nil {
			return nil, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if !tr.IsEpsilon() {
				needsExpansion[tr.Nextstate] = true
			}
		}
	}

	zero := sr.Zero()
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		if !needsExpansion[s] {
			continue
		}

		d, err := epsilonShortestDistance(f, sr, sid)
		if err != nil {
			return nil, err
		}

		// Sliding hash: merged[key] indexes into merged, scoped to this
		// source state's expansion round only, so dedup never conflates
		// transitions contributed by two different source states.
		merged := make(map[trKey]int)
		var emitted []fst.Tr

		finalAcc := zero
		hasFinal := false

		for t, dist := range d {
			trs, err := f.GetTrs(t)
			if err != nil {
				return nil, err
			}
			for i := 0; i < trs.Len(); i++ {
				tr := trs.At(i)
				if tr.IsEpsilon() {
					continue
				}
				w := dist.Times(tr.Weight)
				key := trKey{ilabel: tr.Ilabel, olabel: tr.Olabel, nextstate: tr.Nextstate}
				if idx, ok := merged[key]; ok {
					emitted[idx].Weight = emitted[idx].Weight.Plus(w)
				} else {
					merged[key] = len(emitted)
					emitted = append(emitted, fst.Tr{Ilabel: tr.Ilabel, Olabel: tr.Olabel, Weight: w, Nextstate: tr.Nextstate})
				}
			}

			fw, isFinal, err := f.FinalWeight(t)
			if err != nil {
				return nil, err
			}
			if isFinal {
				finalAcc = finalAcc.Plus(dist.Times(fw))
				hasFinal = true
			}
		}

		for _, tr := range emitted {
			out.AddTr(sid, tr)
		}
		if hasFinal {
			out.SetFinal(sid, finalAcc)
		}
	}

	result := out
	var err error
	if cfg.Connect {
		result, err = fst.Connect(out)
		if err != nil {
			return nil, err
		}
	}

	propsOut, err := fst.ComputeProperties(result)
	if err != nil {
		return nil, err
	}
	result.SetProperties(propsOut)
	return result, nil
}
