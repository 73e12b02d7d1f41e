package replacer

import (
	"io"

	"github.com/carterpeel/go-corelib/ios"
)

// SimpleReader wraps r in a single-pattern streaming byte replacer, via
// the external github.com/carterpeel/go-corelib/ios package gosed's own
// tests exercise for the same purpose. It exists as a narrow escape hatch
// for the common single-rule case where a caller wants to stream a large
// input through a replacement without materialising it fully in memory;
// the core automaton has no streaming mode of its own (Scan and Replace*
// both require the whole input up front), so SimpleReader never touches a
// compiled automaton at all — it is a standalone single-pattern utility
// layered next to it.
func SimpleReader(r io.Reader, search, replace []byte) io.Reader {
	return ios.NewBytesReplacingReader(r, search, replace)
}
