package determinize

import "github.com/garvys-org/gofst/semiring"

// CommonDivisor normalizes a label's successor subset before interning:
// given the residual weights contributed to one label-partitioned
// successor subset, it returns the divisor d every residual is divided by;
// the subset's own outgoing transition carries weight d.
type CommonDivisor interface {
	Divide(weights []semiring.Weight, zero semiring.Weight) semiring.Weight
}

// DefaultCommonDivisor is ⊕ of all residuals. Correct for every concrete
// semiring in this module's set used directly (Tropical, Log, Probability,
// Boolean, Integer — ⊕ there is min/logsumexp/+/or/gcd-like respectively,
// always a valid common divisor), and for the Gallic reduction used for
// transducer determinization: GallicWeight.Plus acts componentwise, so ⊕
// over Gallic weights already computes the longest common prefix of the
// output strings paired with the ⊕ of the weights, with no special case
// needed here.
type DefaultCommonDivisor struct{}

func (DefaultCommonDivisor) Divide(weights []semiring.Weight, zero semiring.Weight) semiring.Weight {
	d := zero
	for _, w := range weights {
		d = d.Plus(w)
	}
	return d
}
