package automaton

import "golang.org/x/exp/slices"

// collectMatches runs Scan and accumulates every reported match into a
// slice that grows geometrically (append already does this; an explicit
// initial capacity of 16 avoids a couple of early reallocations for the
// common case of a handful of matches per invocation).
func (a *Automaton) collectMatches(text []byte) ([]Match, error) {
	if !a.compiled {
		return nil, ErrNotCompiled
	}

	matches := make([]Match, 0, 16)
	_, err := a.Scan(text, func(m Match) bool {
		matches = append(matches, m)
		return true
	})
	return matches, err
}

// planForward sorts matches ascending by start, ties broken by the order
// Scan produced them in (deepest terminal first at a shared end position),
// using a stable sort as required. Used by the allocating replacement
// mode.
func planForward(matches []Match) []Match {
	slices.SortStableFunc(matches, func(a, b Match) int {
		return a.Start - b.Start
	})
	return matches
}

// planReverse sorts matches descending by start, for the in-place
// replacement mode's right-to-left application order.
func planReverse(matches []Match) []Match {
	slices.SortStableFunc(matches, func(a, b Match) int {
		return b.Start - a.Start
	})
	return matches
}

// selectLeftmost applies the leftmost-wins overlap resolution to a
// forward-sorted match slice: among matches whose ranges overlap, the one
// with the smallest start is kept and any match starting before the
// cursor has advanced past the kept match's end is discarded.
func selectLeftmost(sorted []Match) []Match {
	kept := sorted[:0:0]
	textPos := 0
	for _, m := range sorted {
		if m.Start < textPos {
			continue
		}
		kept = append(kept, m)
		textPos = m.EndInclusive + 1
	}
	return kept
}
