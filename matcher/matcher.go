// Package matcher enumerates the transitions of a state that match a
// requested label under a given match side (input or output labels),
// synthesizing a virtual epsilon self-loop when the request is for
// EpsLabel. ComposeFstOp drives a pair of matchers, one per operand, to
// discover which (tr1, tr2) pairs may be joined.
package matcher

import "github.com/garvys-org/gofst/fst"

// MatchType selects which side of a transition a Matcher indexes by.
type MatchType uint8

const (
	MatchInput MatchType = iota
	MatchOutput
	MatchBoth
	MatchNone
	MatchUnknown
)

func (m MatchType) String() string {
	switch m {
	case MatchInput:
		return "MatchInput"
	case MatchOutput:
		return "MatchOutput"
	case MatchBoth:
		return "MatchBoth"
	case MatchNone:
		return "MatchNone"
	default:
		return "MatchUnknown"
	}
}

// Flags are capability bits a Matcher reports about itself.
type Flags uint16

const (
	RequireMatch Flags = 1 << iota
	InputLookaheadMatcher
	OutputLookaheadMatcher
	LookaheadWeight
	LookaheadPrefix
	LookaheadEpsilons
	LookaheadNonEpsilonPrefix
)

func (f Flags) Has(flag Flags) bool { return f&flag == flag }

// Item is one thing a Matcher's Iter yields: either a concrete transition,
// or the synthetic epsilon self-loop standing in for "the current state
// stays put", which filters treat uniformly with consuming transitions.
type Item struct {
	IsEpsLoop bool
	Tr        fst.Tr
}

// Matcher enumerates the transitions leaving a state that match a
// requested label on a fixed side.
type Matcher interface {
	// MatchType reports the side this matcher actually matches on, which
	// may differ from what was requested at construction (MatchNone if
	// the operand's sortedness can't support it, MatchUnknown if the
	// operand's sortedness is simply not known).
	MatchType() MatchType

	// Iter returns every Item of state s whose matched label equals
	// label. label == fst.NoLabel requests the epsilon self-loop plus
	// every transition whose matched label is fst.EpsLabel.
	Iter(s fst.StateId, label fst.Label) ([]Item, error)

	// Priority is a monotone score ComposeFstOp uses to decide which
	// operand to drive at a composed state: the operand with the lower
	// score drives, and a score of -1 forces this operand to be the
	// matched side instead.
	Priority(s fst.StateId) (int, error)

	Flags() Flags

	Fst() fst.Fst
}
