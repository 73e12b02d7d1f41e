// Package ruleset loads (pattern, replacement-template, user-data) triples
// from a YAML rule file and compiles them into an automaton.Automaton, the
// way zalando/skipper's config package loads its own YAML-backed settings
// via gopkg.in/yaml.v2. The core automaton package has no notion of a rule
// file on disk; this package exists purely to make that engine usable from
// the command line.
package ruleset

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"substeng/automaton"
	"substeng/template"
)

// Rule is one line of the rule file. Exactly one of Replacement or
// Template should be set; Template is compiled once at Load time and
// bound to the node as user-data so the replacement callback can resolve
// it dynamically per invocation.
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement,omitempty"`
	Template    string `yaml:"template,omitempty"`
}

type fileFormat struct {
	Capacity int    `yaml:"capacity,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Ruleset pairs a compiled automaton with the information needed to
// reload it: the raw rules and capacity used to build it.
type Ruleset struct {
	Automaton *automaton.Automaton
	rules     []Rule
	capacity  int
	path      string
}

// Load reads path, registers every rule, and compiles the automaton.
func Load(path string) (*Ruleset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read %s: %w", path, err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(raw, &ff); err != nil {
		return nil, fmt.Errorf("ruleset: parse %s: %w", path, err)
	}

	rs := &Ruleset{
		rules:    ff.Rules,
		capacity: ff.Capacity,
		path:     path,
	}
	rs.Automaton = automaton.New(ff.Capacity)
	if err := rs.apply(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"rules": len(ff.Rules),
	}).Info("ruleset: loaded")

	return rs, nil
}

func (rs *Ruleset) apply() error {
	for _, r := range rs.rules {
		if err := registerRule(rs.Automaton, r); err != nil {
			return fmt.Errorf("ruleset: register %q: %w", r.Pattern, err)
		}
	}
	return rs.Automaton.Compile()
}

// binding is the user-data bound to every node Ruleset registers. Both
// static and templated rules go through RegisterEx with a binding, so
// that a single ReplaceWithCallback call can serve a rule file mixing
// both kinds (a static node's replacement is never consulted directly).
type binding struct {
	static   []byte
	template *template.Template
}

func registerRule(a *automaton.Automaton, r Rule) error {
	b := &binding{static: []byte(r.Replacement)}
	if r.Template != "" {
		b.template = template.Compile(r.Template)
	}
	return a.RegisterEx([]byte(r.Pattern), nil, b)
}

// Reload re-reads the rule file from disk so external edits take effect,
// then clears the existing automaton (Reset) and registers and compiles
// the freshly read rules without re-allocating the arena. A capacity in
// the re-read file is not applied; the arena keeps its original capacity.
func (rs *Ruleset) Reload() error {
	raw, err := os.ReadFile(rs.path)
	if err != nil {
		return fmt.Errorf("ruleset: reload %s: %w", rs.path, err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(raw, &ff); err != nil {
		return fmt.Errorf("ruleset: parse %s: %w", rs.path, err)
	}

	rs.Automaton.Reset()
	rs.rules = ff.Rules
	if err := rs.apply(); err != nil {
		return err
	}

	logrus.WithField("path", rs.path).Info("ruleset: reloaded")
	return nil
}

// Callback returns an automaton.ReplacementCallback that resolves a
// node's bound binding against ctx: a templated rule is executed against
// ctx, a static rule returns its fixed bytes unchanged. This lets a
// single rule file mix static and templated rules and still be applied
// with one ReplaceWithCallback call.
func Callback() automaton.ReplacementCallback {
	return func(pattern []byte, userData any, ctx any) []byte {
		b, ok := userData.(*binding)
		if !ok || b == nil {
			return nil
		}
		if b.template != nil {
			m, _ := ctx.(map[string]string)
			return b.template.Execute(m)
		}
		return b.static
	}
}
