package lookahead

import (
	"fmt"

	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/internal/conv"
)

// LabelReachableData is the precomputed reachability summary for one
// operand: for every original state, which labels (remapped to dense
// indices via Label2Index) can be read on a path from that state, plus
// whether a final state is reachable (tracked as the distinguished
// FinalLabel index).
type LabelReachableData struct {
	ReachInput   bool
	FinalLabel   fst.Label
	Label2Index  map[fst.Label]fst.Label
	IntervalSets []IntervalSet
}

// ComputeLabelReachableData builds the reachability data for operand f,
// indexing by input labels when reachInput is true, output labels
// otherwise. f must be acyclic once any epsilon-only cycles are condensed
// to a single node each — a genuine cycle through a final state is
// rejected with gofsterr.CycleOnFinal, since lookahead-composed operands
// must have no such cycle.
func ComputeLabelReachableData(f fst.Fst, reachInput bool) (*LabelReachableData, error) {
	n := int(f.NumStates())

	transformed, label2state, err := transformFst(f, reachInput)
	if err != nil {
		return nil, err
	}

	isets, state2index, err := stateReachable(transformed)
	if err != nil {
		return nil, err
	}

	data := &LabelReachableData{
		ReachInput:  reachInput,
		FinalLabel:  fst.NoLabel,
		Label2Index: make(map[fst.Label]fst.Label, len(label2state)),
	}
	data.IntervalSets = make([]IntervalSet, n)
	for s := 0; s < n; s++ {
		data.IntervalSets[s] = isets[s]
	}
	for label, st := range label2state {
		idx := fst.Label(state2index[st])
		data.Label2Index[label] = idx
		if label == fst.NoLabel {
			data.FinalLabel = idx
		}
	}
	return data, nil
}

// ReachLabel reports whether label can be read on some path leaving s.
// label must already have been passed through Relabel if the caller is
// relabeling its operand ahead of time; this package's matcher queries
// the original label directly since it never relabels the underlying Fst.
func (d *LabelReachableData) ReachLabel(s fst.StateId, label fst.Label) (bool, error) {
	if label == fst.EpsLabel {
		return false, nil
	}
	idx, ok := d.Label2Index[label]
	if !ok {
		return false, nil
	}
	if int(s) >= len(d.IntervalSets) {
		return false, gofsterr.New(gofsterr.OutOfRange, fmt.Sprintf("lookahead: state %d out of range", s))
	}
	return d.IntervalSets[s].Member(int(idx)), nil
}

// ReachFinal reports whether a final state is reachable (via epsilons,
// per transformFst's redirection) from s.
func (d *LabelReachableData) ReachFinal(s fst.StateId) (bool, error) {
	if int(s) >= len(d.IntervalSets) {
		return false, gofsterr.New(gofsterr.OutOfRange, fmt.Sprintf("lookahead: state %d out of range", s))
	}
	if d.FinalLabel == fst.NoLabel {
		return false, nil
	}
	return d.IntervalSets[s].Member(int(d.FinalLabel)), nil
}

// Relabel maps an original label to its dense reachability index,
// allocating the next index on first sight. EpsLabel always maps to
// itself. Used when a caller wants to relabel an operand's transitions
// ahead of a lookahead-matched composition (not required for the
// matcher/filter wrappers in this package, which query IntervalSets
// directly instead).
func (d *LabelReachableData) Relabel(label fst.Label) fst.Label {
	if label == fst.EpsLabel {
		return fst.EpsLabel
	}
	if idx, ok := d.Label2Index[label]; ok {
		return idx
	}
	idx := fst.Label(conv.IntToUint32(len(d.Label2Index) + 1))
	d.Label2Index[label] = idx
	return idx
}

// transformFst redirects every labeled transition (on the reach-input or
// reach-output side) to a fresh label-specific sink state, redirects every
// final state through a fresh NoLabel-specific sink, and adds a
// super-initial state feeding every state that had zero in-degree.
func transformFst(f fst.Fst, reachInput bool) (*fst.VectorFst, map[fst.Label]fst.StateId, error) {
	n := int(f.NumStates())
	out := fst.NewVectorFst(f.Semiring())
	for i := 0; i < n; i++ {
		out.AddState()
	}

	indeg := make([]int, n)
	label2state := make(map[fst.Label]fst.StateId)
	newSinkState := func() fst.StateId {
		s := out.AddState()
		indeg = append(indeg, 0)
		return s
	}

	for s := 0; s < n; s++ {
		trs, err := f.GetTrs(fst.StateId(s))
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			label := tr.Olabel
			if reachInput {
				label = tr.Ilabel
			}

			nextstate := tr.Nextstate
			if label != fst.EpsLabel {
				ns, ok := label2state[label]
				if !ok {
					ns = newSinkState()
					label2state[label] = ns
				}
				nextstate = ns
			}
			indeg[nextstate]++
			out.AddTr(fst.StateId(s), fst.Tr{Ilabel: tr.Ilabel, Olabel: tr.Olabel, Weight: tr.Weight, Nextstate: nextstate})
		}

		w, hasFinal, err := f.FinalWeight(fst.StateId(s))
		if err != nil {
			return nil, nil, err
		}
		if hasFinal && !w.IsZero() {
			ns, ok := label2state[fst.NoLabel]
			if !ok {
				ns = newSinkState()
				label2state[fst.NoLabel] = ns
			}
			out.AddTr(fst.StateId(s), fst.Tr{Ilabel: fst.NoLabel, Olabel: fst.NoLabel, Weight: w, Nextstate: ns})
			indeg[ns]++
		}
	}

	for s := n; s < int(out.NumStates()); s++ {
		out.SetFinal(fst.StateId(s), f.Semiring().One())
	}

	start := newSinkState()
	out.SetStart(start)
	for s := 0; s < int(start); s++ {
		if indeg[s] == 0 {
			out.AddTr(start, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: f.Semiring().One(), Nextstate: fst.StateId(s)})
		}
	}

	return out, label2state, nil
}

// stateReachable computes, for every state of f, the set of "final sink"
// indices reachable from it. f may be cyclic (through epsilons only, since
// transformFst's label-specific sinks have no outgoing transitions); every
// cycle is condensed to a single node before the interval-tree DFS, and a
// cycle that itself contains a final state is rejected — such a state
// cannot be assigned one consistent reachability index.
func stateReachable(f fst.Fst) (isets []IntervalSet, state2index []int, err error) {
	n := int(f.NumStates())
	scc := fst.ComputeSCC(f)

	nComp := 0
	for _, c := range scc {
		if c+1 > nComp {
			nComp = c + 1
		}
	}

	compSize := make([]int, nComp)
	compFinal := make([]bool, nComp)
	for s := 0; s < n; s++ {
		compSize[scc[s]]++
		w, hasFinal, ferr := f.FinalWeight(fst.StateId(s))
		if ferr != nil {
			return nil, nil, ferr
		}
		if hasFinal && !w.IsZero() {
			compFinal[scc[s]] = true
		}
	}

	adjSet := make([]map[int]bool, nComp)
	for i := range adjSet {
		adjSet[i] = make(map[int]bool)
	}
	for s := 0; s < n; s++ {
		trs, terr := f.GetTrs(fst.StateId(s))
		if terr != nil {
			return nil, nil, terr
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			// A NoLabel arc is transformFst's final-state redirect; its
			// source sitting on a cycle means an original final state
			// inside a non-trivial SCC, which cannot be assigned one
			// consistent reachability index.
			if tr.Ilabel == fst.NoLabel && compSize[scc[s]] > 1 {
				return nil, nil, gofsterr.New(gofsterr.CycleOnFinal, "lookahead: final state contained in a cycle")
			}
			ns := int(tr.Nextstate)
			if scc[s] != scc[ns] {
				adjSet[scc[s]][scc[ns]] = true
			}
		}
	}
	adj := make([][]int, nComp)
	for c, set := range adjSet {
		for child := range set {
			adj[c] = append(adj[c], child)
		}
	}

	v := &intervalVisitor{
		adj:         adj,
		finalOf:     compFinal,
		isets:       make([]IntervalSet, nComp),
		state2index: make([]int, nComp),
		visited:     make([]bool, nComp),
	}
	for i := range v.state2index {
		v.state2index[i] = -1
	}
	v.index = 1
	for c := 0; c < nComp; c++ {
		if !v.visited[c] {
			v.visit(c)
		}
	}

	isets = make([]IntervalSet, n)
	state2index = make([]int, n)
	for s := 0; s < n; s++ {
		isets[s] = v.isets[scc[s]]
		state2index[s] = v.state2index[scc[s]]
	}
	return isets, state2index, nil
}

// intervalVisitor is a postorder DFS over the (guaranteed acyclic)
// condensation graph: each final node gets a unique index, and every
// node's IntervalSet is the union of its own index (if final) with every
// descendant's IntervalSet, reachable via either a DFS-tree edge or a
// forward/cross edge (the graph has no back edges, so any node already
// visited when s examines it is already fully finished). This is a plain
// union accumulation rather than a nested-interval compression trick; it
// answers the same membership queries, just with less compact intervals
// in degenerate cases.
type intervalVisitor struct {
	adj         [][]int
	finalOf     []bool
	isets       []IntervalSet
	state2index []int
	visited     []bool
	index       int
}

func (v *intervalVisitor) visit(s int) {
	v.visited[s] = true

	if v.finalOf[s] {
		idx := v.index
		v.index++
		v.isets[s].Push(Interval{Begin: idx, End: idx + 1})
		v.state2index[s] = idx
	}

	for _, c := range v.adj[s] {
		if !v.visited[c] {
			v.visit(c)
		}
		v.isets[s].Union(v.isets[c])
	}

	v.isets[s].Normalize()
}
