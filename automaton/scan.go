package automaton

// Match is one occurrence reported by Scan: a pattern ending at EndInclusive
// that starts at Start, with EndInclusive-Start+1 == pattern length. node is
// an internal arena index into the automaton that produced the match and is
// only meaningful in combination with the automaton it came from.
type Match struct {
	Start        int
	EndInclusive int
	node         int32
}

// ScanCallback is invoked once per match found by Scan, in the order the
// output chain produces them (deepest terminal first at a given text
// position, then its chained ancestors). Returning false stops the scan;
// the returned count still includes the match that triggered the stop.
type ScanCallback func(m Match) (cont bool)

// Scan performs the single linear Aho-Corasick pass over text, invoking cb
// once per occurrence. It requires a compiled automaton. The returned count
// is the number of matches reported before cb returned false or the input
// was exhausted.
func (a *Automaton) Scan(text []byte, cb ScanCallback) (int, error) {
	if !a.compiled {
		return 0, ErrNotCompiled
	}

	var state int32
	count := 0

	for i, b := range text {
		for state != 0 && a.nodes[state].children[b] == noRef {
			state = a.nodes[state].failure
		}
		if c := a.nodes[state].children[b]; c != noRef {
			state = c
		} else {
			state = 0
		}

		emit := func(t int32) bool {
			n := &a.nodes[t]
			m := Match{Start: i + 1 - n.patternLen, EndInclusive: i, node: t}
			count++
			return cb(m)
		}

		stop := false
		if a.nodes[state].terminal {
			stop = !emit(state)
		}
		for t := a.nodes[state].output; !stop && t != noRef; t = a.nodes[t].output {
			stop = !emit(t)
		}
		if stop {
			return count, nil
		}
	}

	return count, nil
}
