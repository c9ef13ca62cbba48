package fst

// Connect returns a copy of f containing only the states that are both
// accessible (reachable from the start state) and coaccessible (can reach
// a final state), renumbered densely starting at 0. Shares its
// reachability pass with ComputeProperties rather than re-deriving
// accessibility from scratch.
func Connect(f Fst) (*VectorFst, error) {
	n := int(f.NumStates())
	access, coaccess, _, err := computeConnectivity(f, n)
	if err != nil {
		return nil, err
	}

	newID := make([]StateId, n)
	next := StateId(0)
	for s := 0; s < n; s++ {
		if access[s] && coaccess[s] {
			newID[s] = next
			next++
		} else {
			newID[s] = NoStateId
		}
	}

	out := NewVectorFst(f.Semiring())
	for i := StateId(0); i < next; i++ {
		out.AddState()
	}

	for s := 0; s < n; s++ {
		if newID[s] == NoStateId {
			continue
		}
		trs, err := f.GetTrs(StateId(s))
		if err != nil {
			return nil, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if newID[tr.Nextstate] == NoStateId {
				continue
			}
			tr.Nextstate = newID[tr.Nextstate]
			out.AddTr(newID[s], tr)
		}
		w, ok, err := f.FinalWeight(StateId(s))
		if err != nil {
			return nil, err
		}
		if ok {
			out.SetFinal(newID[s], w)
		}
	}

	if start, ok := f.Start(); ok && newID[start] != NoStateId {
		out.SetStart(newID[start])
	}

	if isyms := f.InputSymbols(); isyms != nil {
		out.SetInputSymbols(isyms.Copy())
	}
	if osyms := f.OutputSymbols(); osyms != nil {
		out.SetOutputSymbols(osyms.Copy())
	}

	return out, nil
}
