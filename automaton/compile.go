package automaton

// Compile builds the failure and output links over the registered
// patterns by a breadth-first traversal of the trie, per the standard
// Aho-Corasick construction. It is idempotent-guarded: a second call
// without an intervening Register or Reset returns ErrAlreadyCompiled and
// leaves the automaton untouched.
func (a *Automaton) Compile() error {
	if a.compiled {
		return ErrAlreadyCompiled
	}

	queue := make([]int32, 0, len(a.nodes))

	root := &a.nodes[0]
	for b := 0; b < 256; b++ {
		c := root.children[b]
		if c == noRef {
			continue
		}
		a.nodes[c].failure = 0
		queue = append(queue, c)
	}

	// Nodes dequeued here are never the root: root's direct children had
	// their failure set to root above, and only they (and their
	// descendants) are ever enqueued. That keeps the walk below free of
	// the self-referential edge case of computing root's own children.
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for b := 0; b < 256; b++ {
			v := a.nodes[u].children[b]
			if v == noRef {
				continue
			}

			f := a.nodes[u].failure
			for f != 0 && a.nodes[f].children[b] == noRef {
				f = a.nodes[f].failure
			}

			vFailure := a.nodes[f].children[b]
			if vFailure == noRef {
				vFailure = 0
			}
			a.nodes[v].failure = vFailure

			if a.nodes[vFailure].terminal {
				a.nodes[v].output = vFailure
			} else {
				a.nodes[v].output = a.nodes[vFailure].output
			}

			queue = append(queue, v)
		}
	}

	a.compiled = true
	return nil
}
