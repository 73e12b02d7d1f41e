package automaton

// ReplacementCallback produces the dynamic replacement for a match. It
// receives the matched pattern bytes, the user-data handle bound at
// registration (nil if none), and the invocation's opaque context. A
// returned length of 0 signals "delete the match"; a nil slice is treated
// as empty, not as an error.
type ReplacementCallback func(pattern []byte, userData any, ctx any) []byte

// ReplaceAlloc scans text, resolves every kept match's replacement from
// its static binding, and returns a freshly allocated output buffer. If no
// pattern occurs, the output is a copy of text (property: no-match
// identity).
func (a *Automaton) ReplaceAlloc(text []byte) ([]byte, int, error) {
	return a.replace(text, nil, nil)
}

// ReplaceWithCallback is like ReplaceAlloc, but resolves each collected
// match's replacement dynamically via cb instead of the node's static
// binding. cb runs once for every match Scan collects, in sorted order,
// including matches the leftmost-wins filter goes on to discard - a
// caller using cb for side effects such as counting occurrences or
// advancing a nonce sequence sees one call per raw match, not one call
// per surviving match. Callers must not rely on cb being skipped for
// matches leftmost-wins later discards.
func (a *Automaton) ReplaceWithCallback(text []byte, cb ReplacementCallback, ctx any) ([]byte, int, error) {
	if cb == nil {
		return a.replace(text, nil, nil)
	}
	return a.replace(text, cb, ctx)
}

func (a *Automaton) replace(text []byte, cb ReplacementCallback, ctx any) ([]byte, int, error) {
	if !a.compiled {
		return nil, 0, ErrNotCompiled
	}

	matches, err := a.collectMatches(text)
	if err != nil {
		return nil, 0, err
	}
	if len(matches) == 0 {
		out := make([]byte, len(text))
		copy(out, text)
		return out, 0, nil
	}

	sorted := planForward(matches)

	// Cached dynamic replacement, aligned by index with sorted; evaluated
	// for every collected match regardless of whether leftmost-wins below
	// ends up keeping it (see the ReplaceWithCallback doc comment).
	var dynamic [][]byte
	if cb != nil {
		dynamic = make([][]byte, len(sorted))
		for i, m := range sorted {
			dynamic[i] = normalizeCallbackResult(cb(a.Pattern(m), a.UserData(m), ctx))
		}
	}

	total := len(text)
	textPos := 0
	for i, m := range sorted {
		if m.Start < textPos {
			continue
		}
		total += a.replacementLen(m, dynamic, i, cb != nil) - a.PatternLen(m)
		textPos = m.EndInclusive + 1
	}
	if total < 0 {
		total = 0
	}

	out := make([]byte, 0, total)
	textPos = 0
	count := 0
	for i, m := range sorted {
		if m.Start < textPos {
			continue
		}
		out = append(out, text[textPos:m.Start]...)
		if cb != nil {
			out = append(out, dynamic[i]...)
		} else if repl, ok := a.StaticReplacement(m); ok {
			out = append(out, repl...)
		}
		textPos = m.EndInclusive + 1
		count++
	}
	out = append(out, text[textPos:]...)

	return out, count, nil
}

func (a *Automaton) replacementLen(m Match, dynamic [][]byte, idx int, useCallback bool) int {
	if useCallback {
		return len(dynamic[idx])
	}
	if repl, ok := a.StaticReplacement(m); ok {
		return len(repl)
	}
	return 0
}

func normalizeCallbackResult(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
