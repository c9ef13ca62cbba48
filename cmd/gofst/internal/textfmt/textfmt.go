// Package textfmt reads and writes the OpenFst plain-text Fst format used
// by the gofst command-line tool. It is the thinnest possible adapter
// between that line-oriented format and fst.VectorFst; the library core
// itself never depends on any serialization.
//
// Each line of a transition is "src dst ilabel olabel [weight]"; a line with
// one or two fields ("state [weight]") marks state as final. The source
// state of the first non-comment line, transition or final alike, is the
// start state, matching OpenFst's own convention.
package textfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

// ParseWeight parses the text representation of a weight in sr. Every
// concrete semiring in this module prints its weight with Weight.String,
// so the formats accepted here are the inverse of that.
func ParseWeight(sr semiring.Semiring, s string) (semiring.Weight, error) {
	switch sr {
	case semiring.Boolean:
		switch s {
		case "T", "true", "1":
			return semiring.BooleanWeight(true), nil
		case "F", "false", "0":
			return semiring.BooleanWeight(false), nil
		}
		return nil, fmt.Errorf("textfmt: invalid boolean weight %q", s)
	case semiring.Integer:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("textfmt: invalid integer weight %q: %w", s, err)
		}
		return semiring.IntegerWeight(n), nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("textfmt: invalid weight %q: %w", s, err)
		}
		switch sr {
		case semiring.Log:
			return semiring.LogWeight(f), nil
		case semiring.Probability:
			return semiring.ProbabilityWeight(f), nil
		default:
			return semiring.TropicalWeight(f), nil
		}
	}
}

// Read parses the text Fst format from r into a fresh VectorFst over sr.
func Read(r io.Reader, sr semiring.Semiring) (*fst.VectorFst, error) {
	f := fst.NewVectorFst(sr)
	states := map[uint64]fst.StateId{}

	stateOf := func(id uint64) fst.StateId {
		if s, ok := states[id]; ok {
			return s
		}
		s := f.AddState()
		states[id] = s
		return s
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	sawStart := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		src, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("textfmt: line %d: invalid state id %q", lineNo, fields[0])
		}
		srcState := stateOf(src)
		if !sawStart {
			f.SetStart(srcState)
			sawStart = true
		}

		switch len(fields) {
		case 1:
			// Bare "state" line: final with weight One.
			if err := setFinal(f, sr, srcState, sr.One()); err != nil {
				return nil, err
			}
		case 2:
			w, err := ParseWeight(sr, fields[1])
			if err != nil {
				return nil, fmt.Errorf("textfmt: line %d: %w", lineNo, err)
			}
			if err := setFinal(f, sr, srcState, w); err != nil {
				return nil, err
			}
		case 4, 5:
			dst, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("textfmt: line %d: invalid dest state %q", lineNo, fields[1])
			}
			il, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("textfmt: line %d: invalid ilabel %q", lineNo, fields[2])
			}
			ol, err := strconv.ParseUint(fields[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("textfmt: line %d: invalid olabel %q", lineNo, fields[3])
			}
			w := sr.One()
			if len(fields) == 5 {
				w, err = ParseWeight(sr, fields[4])
				if err != nil {
					return nil, fmt.Errorf("textfmt: line %d: %w", lineNo, err)
				}
			}
			dstState := stateOf(dst)
			f.AddTr(srcState, fst.Tr{
				Ilabel:    fst.Label(il),
				Olabel:    fst.Label(ol),
				Weight:    w,
				Nextstate: dstState,
			})
		default:
			return nil, fmt.Errorf("textfmt: line %d: expected 1, 2, 4 or 5 fields, got %d", lineNo, len(fields))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

func setFinal(f *fst.VectorFst, sr semiring.Semiring, s fst.StateId, w semiring.Weight) error {
	if w.Semiring() != sr {
		return fmt.Errorf("textfmt: weight semiring mismatch")
	}
	f.SetFinal(s, w)
	return nil
}

// Write prints f in the text Fst format to w: one line per transition, then
// one line per final state.
func Write(w io.Writer, f fst.Fst) error {
	bw := bufio.NewWriter(w)
	for s := fst.StateId(0); s < f.NumStates(); s++ {
		trs, err := f.GetTrs(s)
		if err != nil {
			return err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if _, err := fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%s\n", s, tr.Nextstate, tr.Ilabel, tr.Olabel, tr.Weight.String()); err != nil {
				return err
			}
		}
	}
	for s := fst.StateId(0); s < f.NumStates(); s++ {
		fw, ok, err := f.FinalWeight(s)
		if err != nil {
			return err
		}
		if ok {
			if _, err := fmt.Fprintf(bw, "%d\t%s\n", s, fw.String()); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
