package replacer

import (
	"fmt"

	units "github.com/docker/go-units"
)

// formatBytesSize renders a byte count the way gosed's own tests size
// their generated corpus, via github.com/docker/go-units (units.GiB in
// gosed_test.go); here it formats the automaton's estimated memory
// footprint instead of a test fixture size.
func formatBytesSize(n int64) string {
	return units.BytesSize(float64(n))
}

// Report is a one-line human-readable summary of an Engine's automaton,
// suitable for the CLI's "stats" subcommand.
func (e *Engine) Report() string {
	s := e.Stats()
	return fmt.Sprintf(
		"nodes=%d patterns=%d memory=%s capacity=%d compiled=%t",
		s.Nodes, s.Patterns, formatBytesSize(s.Bytes), s.Capacity, s.Compiled,
	)
}
