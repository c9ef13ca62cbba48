// Package lookahead implements label-reachability precomputation over an
// Fst operand plus the matcher and compose-filter wrappers that consume
// it: a lookahead matcher can answer "is this label reachable from this
// state" without enumerating a path, letting the compose filters above it
// prune joint states that can never lead to a successful pair of paths.
package lookahead

import "sort"

// Interval is a half-open range [Begin, End) of label indices.
type Interval struct {
	Begin int
	End   int
}

// IntervalSet is a normalized (sorted, merged, non-overlapping) set of
// label-index intervals, used as the reachability summary attached to
// every state of the reachability-transformed Fst. Construction pushes raw
// intervals and calls Normalize once per finished state.
type IntervalSet struct {
	intervals []Interval
}

// Push appends a raw interval; call Normalize before relying on Member or
// Union to see a consistent set.
func (s *IntervalSet) Push(iv Interval) {
	s.intervals = append(s.intervals, iv)
}

// Normalize sorts by Begin and merges any overlapping or adjacent
// intervals in place.
func (s *IntervalSet) Normalize() {
	if len(s.intervals) < 2 {
		return
	}
	sort.Slice(s.intervals, func(i, j int) bool { return s.intervals[i].Begin < s.intervals[j].Begin })
	out := s.intervals[:1]
	for _, iv := range s.intervals[1:] {
		last := &out[len(out)-1]
		if iv.Begin <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	s.intervals = out
}

// Union merges other's intervals into s and renormalizes.
func (s *IntervalSet) Union(other IntervalSet) {
	s.intervals = append(s.intervals, other.intervals...)
	s.Normalize()
}

// Member reports whether x falls inside any interval. s must already be
// normalized (Member binary searches on Begin).
func (s IntervalSet) Member(x int) bool {
	i := sort.Search(len(s.intervals), func(i int) bool { return s.intervals[i].Begin > x })
	if i == 0 {
		return false
	}
	return x < s.intervals[i-1].End
}

func (s IntervalSet) Len() int { return len(s.intervals) }

// Clone returns an independent copy; callers that union a shared interval
// set into a per-state accumulator must not alias the original slice.
func (s IntervalSet) Clone() IntervalSet {
	cp := make([]Interval, len(s.intervals))
	copy(cp, s.intervals)
	return IntervalSet{intervals: cp}
}
