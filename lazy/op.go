// Package lazy provides the Fst facade every on-demand algorithm in this
// module is exposed through: an Op (which knows how to compute the
// start state, a state's outgoing transitions, and a state's final weight)
// plus an FstCache (which memoizes those computations) combine into a
// LazyFst — states are materialized on first access, exactly the way
// compose and determinize already structure ComputeStart/ComputeTrs/
// ComputeFinalWeight on their own Op types. Neither compose.Op nor
// determinize.Op needs any adapter to satisfy Op below: Go's structural
// interfaces already match their method sets.
package lazy

import (
	"github.com/garvys-org/gofst/fst"
	"github.com/garvys-org/gofst/semiring"
)

// Op knows how to compute any state of a lazily-built Fst. compose.Op and
// determinize.Op both already implement this.
type Op interface {
	ComputeStart() (fst.StateId, bool, error)
	ComputeTrs(s fst.StateId) (fst.TrsVec, error)
	ComputeFinalWeight(s fst.StateId) (semiring.Weight, bool, error)
}
