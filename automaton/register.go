package automaton

// Register adds a pattern with an optional static replacement. A nil
// replacement means "no static binding" (the terminal still matches, but
// ReplaceAlloc without a callback would need a callback to know what to
// substitute; RegisterEx covers the dynamic case).
//
// Registering the same pattern twice overwrites the terminal's binding
// (last-writer-wins), per the data model's observable side effects.
func (a *Automaton) Register(pattern, replacement []byte) error {
	return a.RegisterEx(pattern, replacement, nil)
}

// RegisterEx adds a pattern with a static replacement, an opaque user-data
// handle, or both. The engine never inspects userData; it is handed back
// verbatim to a replacement callback at match time.
//
// Pattern and replacement bytes are referenced, not copied: the caller
// must keep them alive for the automaton's lifetime (data model invariant
// 5, pattern storage is byte-identity stable).
func (a *Automaton) RegisterEx(pattern, replacement []byte, userData any) error {
	if len(pattern) == 0 {
		return ErrEmptyPattern
	}

	cur := int32(0)
	for _, b := range pattern {
		next := a.nodes[cur].children[b]
		if next == noRef {
			if len(a.nodes) >= a.capacity {
				return ErrFull
			}
			id := len(a.nodes)
			a.nodes = append(a.nodes, newNode(id))
			next = int32(id)
			a.nodes[cur].children[b] = next
		}
		cur = next
	}

	n := &a.nodes[cur]
	if !n.terminal {
		a.terminals++
	}
	n.terminal = true
	n.pattern = pattern
	n.patternLen = len(pattern)
	n.replacement = replacement
	n.hasReplace = replacement != nil
	n.userData = userData

	a.compiled = false
	return nil
}
