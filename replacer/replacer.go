// Package replacer is the host-facing convenience layer around package
// automaton: it is the part of this repository that plays the role
// carterpeel/gosed's root package and cli/ subcommand play together —
// NewReplacer, repeatable NewStringMapping calls, and a Replace /
// ReplaceChained pair distinguishing sequential from concurrency-bounded
// application — generalized from gosed's single-pattern, file-at-a-time
// design to a single automaton compiled once and applied to many files.
package replacer

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/zenthangplus/goccm"

	"substeng/automaton"
)

// Engine owns a single automaton built up by AddMapping calls and
// compiled once via Compile, then reused across any number of
// ReplaceBytes/ReplaceFile/ReplaceFiles invocations, per the engine's
// "compile once, reuse across many invocations" contract.
type Engine struct {
	automaton *automaton.Automaton
	compiled  bool
}

// NewEngine mirrors gosed's NewReplacer, but builds a multi-pattern
// automaton instead of opening a single file descriptor: capacity is the
// automaton's fixed node-arena size (0 selects automaton.DefaultCapacity).
func NewEngine(capacity int) *Engine {
	return &Engine{automaton: automaton.New(capacity)}
}

// AddMapping registers one (old, new) string pair, the direct analogue of
// gosed's (*Replacer).NewStringMapping. Multiple calls accumulate rules
// on the same underlying automaton; call Compile once after the last one.
func (e *Engine) AddMapping(old, new string) error {
	if err := e.automaton.Register([]byte(old), []byte(new)); err != nil {
		return fmt.Errorf("replacer: add mapping %q -> %q: %w", old, new, err)
	}
	e.compiled = false
	return nil
}

// Compile finalises the automaton. It must be called once, after every
// AddMapping call and before any Replace* call.
func (e *Engine) Compile() error {
	if err := e.automaton.Compile(); err != nil {
		return fmt.Errorf("replacer: compile: %w", err)
	}
	e.compiled = true
	return nil
}

// ReplaceBytes applies every registered mapping to text in one pass and
// returns the result and the number of substitutions applied, the
// in-memory analogue of gosed's file-based Replace.
func (e *Engine) ReplaceBytes(text []byte) ([]byte, int, error) {
	if !e.compiled {
		return nil, 0, automaton.ErrNotCompiled
	}
	out, count, err := e.automaton.ReplaceAlloc(text)
	if err != nil {
		return nil, 0, fmt.Errorf("replacer: replace: %w", err)
	}
	return out, count, nil
}

// ReplaceFile reads path fully, applies every mapping, and writes the
// result either back to path (inPlace) or to path+".out". It returns the
// number of substitutions applied. A failed read or rewrite leaves the
// original file untouched, since the rewrite is computed entirely in
// memory before any write happens. The write itself is not atomic: with
// inPlace, a write that fails part-way can leave path truncated or
// partially written.
func (e *Engine) ReplaceFile(path string, inPlace bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("replacer: read %s: %w", path, err)
	}

	out, count, err := e.ReplaceBytes(data)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("replacer: rewrite failed, leaving file untouched")
		return 0, err
	}

	dest := path + ".out"
	if inPlace {
		dest = path
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return 0, fmt.Errorf("replacer: write %s: %w", dest, err)
	}

	logrus.WithFields(logrus.Fields{"path": path, "dest": dest, "count": count}).Info("replacer: rewrote file")
	return count, nil
}

// ReplaceFiles applies ReplaceFile to every path, bounding the number of
// files processed concurrently with concurrency (the "ReplaceChained"
// analogue of gosed's cli.go, which distinguishes a purely sequential
// Replace from a concurrency-bounded ReplaceChained driven by goccm). A
// concurrency of 0 or 1 behaves like gosed's sequential Replace.
func (e *Engine) ReplaceFiles(paths []string, concurrency int, inPlace bool) (total int, errs []error) {
	if concurrency <= 1 {
		for _, p := range paths {
			n, err := e.ReplaceFile(p, inPlace)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			total += n
		}
		return total, errs
	}

	type result struct {
		n   int
		err error
	}
	results := make([]result, len(paths))

	c := goccm.New(concurrency)
	for i, p := range paths {
		i, p := i, p
		c.Wait()
		go func() {
			defer c.Done()
			n, err := e.ReplaceFile(p, inPlace)
			results[i] = result{n: n, err: err}
		}()
	}
	c.WaitAllDone()

	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		total += r.n
	}
	return total, errs
}

// Stats exposes the underlying automaton's statistics, as summarised by
// Report.
func (e *Engine) Stats() automaton.Stats {
	return e.automaton.Stats()
}

// Automaton exposes the underlying compiled automaton for callers that
// need ReplaceWithCallback or ReplaceInPlace directly (ruleset-driven
// template resolution, for instance).
func (e *Engine) Automaton() *automaton.Automaton {
	return e.automaton
}
