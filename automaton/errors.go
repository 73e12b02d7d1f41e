package automaton

import "errors"

// Sentinel errors returned by the automaton. No panics, no in-band
// exceptions; callers compare with errors.Is.
var (
	// ErrEmptyPattern is returned by Register/RegisterEx for a zero-length pattern.
	ErrEmptyPattern = errors.New("automaton: empty pattern")

	// ErrFull is returned when a new node would exceed the arena's fixed capacity.
	ErrFull = errors.New("automaton: node arena is full")

	// ErrAlreadyCompiled is returned by a second Compile call without an
	// intervening Register or Reset.
	ErrAlreadyCompiled = errors.New("automaton: already compiled")

	// ErrNotCompiled is returned by Scan/Replace* when called before Compile.
	ErrNotCompiled = errors.New("automaton: not compiled")
)
