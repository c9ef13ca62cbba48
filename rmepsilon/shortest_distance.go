// Package rmepsilon replaces epsilon closures with direct transitions:
// for every state with a non-epsilon incoming transition (or the
// start state), it runs single-source shortest-distance over the subgraph
// of epsilon transitions reachable from that state, then re-emits every
// non-epsilon transition leaving a reached state scaled by the epsilon
// path weight that reached it.
package rmepsilon

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/gofsterr"
	"github.com/garvys-org/gofst/internal/sparse"
	"github.com/garvys-org/gofst/semiring"
)

// relaxationFactor bounds the generic shortest-distance relaxation loop: an
// epsilon subgraph with n states and m epsilon transitions that's acyclic
// converges in O(n+m) pops, so this bound is generous enough to only ever
// trigger on an actual epsilon cycle.
const relaxationFactor = 64

// epsilonShortestDistance runs the standard queue-based generic
// single-source shortest-distance relaxation (Mohri) restricted to
// epsilon transitions (Ilabel == Olabel == fst.EpsLabel) starting at s.
// Returns d, where d[t] is the ⊕-sum over every epsilon path from s to t
// (d[s] itself is One, the empty path). Requires a right-distributive
// semiring: the relaxation multiplies a running residual on the right of
// each transition weight.
func epsilonShortestDistance(f fst.Fst, sr semiring.Semiring, s fst.StateId) (map[fst.StateId]semiring.Weight, error) {
	zero := sr.Zero()
	one := sr.One()

	d := map[fst.StateId]semiring.Weight{s: one}
	r := map[fst.StateId]semiring.Weight{s: one}
	inQueue := sparse.NewSparseSet(uint32(f.NumStates()))
	inQueue.Insert(uint32(s))
	queue := []fst.StateId{s}

	steps := 0

	for len(queue) > 0 {
		steps++
		if steps > relaxationFactor*(len(d)+1) {
			return nil, gofsterr.New(gofsterr.EpsilonCycle, "rmepsilon: epsilon subgraph did not converge, likely an unweighted epsilon cycle")
		}

		q := queue[0]
		queue = queue[1:]
		inQueue.Remove(uint32(q))

		residual := r[q]
		r[q] = zero

		trs, err := f.GetTrs(q)
		if err != nil {
			return nil, err
		}
		for i := 0; i < trs.Len(); i++ {
			tr := trs.At(i)
			if !tr.IsEpsilon() {
				continue
			}
			contrib := residual.Times(tr.Weight)

			cur, ok := d[tr.Nextstate]
			if !ok {
				cur = zero
			}
			next := cur.Plus(contrib)
			if !next.ApproxEqual(cur, semiring.KDelta) {
				d[tr.Nextstate] = next
				curR, ok := r[tr.Nextstate]
				if !ok {
					curR = zero
				}
				r[tr.Nextstate] = curR.Plus(contrib)
				if !inQueue.Contains(uint32(tr.Nextstate)) {
					queue = append(queue, tr.Nextstate)
					inQueue.Insert(uint32(tr.Nextstate))
				}
			}
		}
	}

	return d, nil
}
