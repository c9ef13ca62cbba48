package fst

// ComputeProperties recomputes every property bit of f from scratch by
// walking its states and transitions: a single pass collecting per-state facts
// (sortedness, determinism, epsilons, weighted-ness) plus an SCC pass
// (accessibility, coaccessibility, cyclicity) over the whole state graph.
func ComputeProperties(f Fst) (Properties, error) {
	n := int(f.NumStates())
	props := Properties(0)

	access, coaccess, sccOf, err := computeConnectivity(f, n)
	if err != nil {
		return 0, err
	}

	props = assertProp(props, Accessible)
	for _, a := range access {
		if !a {
			props = assertProp(props, NotAccessible)
			break
		}
	}

	props = assertProp(props, Coaccessible)
	for _, c := range coaccess {
		if !c {
			props = assertProp(props, NotCoaccessible)
			break
		}
	}

	nscc := 0
	for _, id := range sccOf {
		if id+1 > nscc {
			nscc = id + 1
		}
	}

	props = assertProp(props, Acyclic)
	props = assertProp(props, InitialAcyclic)
	if nscc < n {
		props = assertProp(props, Cyclic)
		if start, ok := f.Start(); ok {
			for s := range sccOf {
				if sccOf[s] == sccOf[start] && StateId(s) != start {
					props = assertProp(props, InitialCyclic)
					break
				}
			}
		}
	}

	props = assertProp(props, Acceptor)
	props = assertProp(props, NoEpsilons)
	props = assertProp(props, NoIEpsilons)
	props = assertProp(props, NoOEpsilons)
	props = assertProp(props, ILabelSorted)
	props = assertProp(props, OLabelSorted)
	props = assertProp(props, Unweighted)
	props = assertProp(props, TopSorted)
	props = assertProp(props, String)
	props = assertProp(props, IDeterministic)
	props = assertProp(props, ODeterministic)
	props = assertProp(props, UnweightedCycles)

	start, hasStart := f.Start()

	nfinal := 0
	for s := 0; s < n; s++ {
		state := StateId(s)
		trs, err := f.GetTrs(state)
		if err != nil {
			return 0, err
		}

		ilabels := map[Label]bool{}
		olabels := map[Label]bool{}
		havePrev := false
		var prev Tr

		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)

			if ilabels[tr.Ilabel] {
				props = assertProp(props, NotIDeterministic)
			}
			if olabels[tr.Olabel] {
				props = assertProp(props, NotODeterministic)
			}
			if tr.Ilabel != tr.Olabel {
				props = assertProp(props, NotAcceptor)
			}
			if tr.Ilabel == EpsLabel && tr.Olabel == EpsLabel {
				props = assertProp(props, Epsilons)
			}
			if tr.Ilabel == EpsLabel {
				props = assertProp(props, IEpsilons)
			}
			if tr.Olabel == EpsLabel {
				props = assertProp(props, OEpsilons)
			}

			if havePrev {
				if tr.Ilabel < prev.Ilabel {
					props = assertProp(props, NotILabelSorted)
				}
				if tr.Olabel < prev.Olabel {
					props = assertProp(props, NotOLabelSorted)
				}
			}

			if !tr.Weight.IsOne() && !tr.Weight.IsZero() {
				props = assertProp(props, Weighted)
				if sccOf[s] == sccOf[int(tr.Nextstate)] {
					props = assertProp(props, WeightedCycles)
				}
			}

			if int(tr.Nextstate) <= s {
				props = assertProp(props, NotTopSorted)
			}
			if int(tr.Nextstate) == s {
				props = assertProp(props, Cyclic)
				if hasStart && StateId(s) == start {
					props = assertProp(props, InitialCyclic)
				}
			}
			if int(tr.Nextstate) != s+1 {
				props = assertProp(props, NotString)
			}

			prev = tr
			havePrev = true
			ilabels[tr.Ilabel] = true
			olabels[tr.Olabel] = true
		}

		if nfinal > 0 {
			props = assertProp(props, NotString)
		}
		final, hasFinal, err := f.FinalWeight(state)
		if err != nil {
			return 0, err
		}
		if hasFinal {
			if !final.IsOne() {
				props = assertProp(props, Weighted)
			}
			nfinal++
		} else if trs.Len() != 1 {
			props = assertProp(props, NotString)
		}
	}

	if hasStart && start != 0 {
		props = assertProp(props, NotString)
	}

	return props, nil
}

// computeConnectivity returns, for each state, whether it is reachable from
// the start state (accessible), whether a final state is reachable from it
// (coaccessible), and its SCC index (Tarjan's algorithm, iterative to avoid
// stack depth limits on large Fsts).
func computeConnectivity(f Fst, n int) (access, coaccess []bool, sccOf []int, err error) {
	access = make([]bool, n)
	if start, ok := f.Start(); ok {
		stack := []StateId{start}
		access[start] = true
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			trs, terr := f.GetTrs(s)
			if terr != nil {
				return nil, nil, nil, terr
			}
			for i := 0; i < trs.Len(); i++ {
				ns := trs.At(i).Nextstate
				if !access[ns] {
					access[ns] = true
					stack = append(stack, ns)
				}
			}
		}
	}

	rev := make([][]StateId, n)
	isFinal := make([]bool, n)
	for s := 0; s < n; s++ {
		_, hasFinal, ferr := f.FinalWeight(StateId(s))
		if ferr != nil {
			return nil, nil, nil, ferr
		}
		isFinal[s] = hasFinal
		trs, terr := f.GetTrs(StateId(s))
		if terr != nil {
			return nil, nil, nil, terr
		}
		for i := 0; i < trs.Len(); i++ {
			ns := trs.At(i).Nextstate
			rev[ns] = append(rev[ns], StateId(s))
		}
	}
	coaccess = make([]bool, n)
	stack := make([]StateId, 0, n)
	for s := 0; s < n; s++ {
		if isFinal[s] {
			coaccess[s] = true
			stack = append(stack, StateId(s))
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range rev[s] {
			if !coaccess[p] {
				coaccess[p] = true
				stack = append(stack, p)
			}
		}
	}

	sccOf = tarjanSCC(f, n)
	return access, coaccess, sccOf, nil
}

// ComputeSCC assigns every state an SCC index; two states share an index iff
// they are mutually reachable. Exported for callers outside this package
// (the lookahead package's cyclic-operand condensation) that need the raw
// partition without paying for a full ComputeProperties pass.
func ComputeSCC(f Fst) []int {
	return tarjanSCC(f, int(f.NumStates()))
}

// tarjanSCC assigns every state an SCC index; two states share an index iff
// mutually reachable. Iterative to avoid recursion depth issues.
func tarjanSCC(f Fst, n int) []int {
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	visited := make([]bool, n)
	sccOf := make([]int, n)
	for i := range sccOf {
		sccOf[i] = -1
	}

	var stack []StateId
	nextIndex := 0
	nextSCC := 0

	type frame struct {
		s     StateId
		trs   TrsVec
		i     int
		child StateId
	}

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var work []*frame
		trs, _ := f.GetTrs(StateId(start))
		visited[start] = true
		index[start] = nextIndex
		low[start] = nextIndex
		nextIndex++
		stack = append(stack, StateId(start))
		onStack[start] = true
		work = append(work, &frame{s: StateId(start), trs: trs, i: 0})

		for len(work) > 0 {
			fr := work[len(work)-1]
			if fr.i < fr.trs.Len() {
				ns := fr.trs.At(fr.i).Nextstate
				fr.i++
				if !visited[ns] {
					visited[ns] = true
					index[ns] = nextIndex
					low[ns] = nextIndex
					nextIndex++
					stack = append(stack, ns)
					onStack[ns] = true
					nsTrs, _ := f.GetTrs(ns)
					work = append(work, &frame{s: ns, trs: nsTrs, i: 0})
				} else if onStack[ns] {
					if index[ns] < low[fr.s] {
						low[fr.s] = index[ns]
					}
				}
				continue
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1]
				if low[fr.s] < low[parent.s] {
					low[parent.s] = low[fr.s]
				}
			}

			if low[fr.s] == index[fr.s] {
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					sccOf[top] = nextSCC
					if top == fr.s {
						break
					}
				}
				nextSCC++
			}
		}
	}

	return sccOf
}
