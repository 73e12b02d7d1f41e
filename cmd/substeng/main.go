// Command substeng is the CLI host for package automaton, generalizing
// gosed/cli/cli.go's NewReplacer -> NewStringMapping -> Replace shape from
// a single pattern applied to a single file into a whole rule file
// compiled once and applied to any number of files.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	units "github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/zenthangplus/goccm"

	"substeng/automaton"
	"substeng/ruleset"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	rulesPath := os.Args[1]
	cmd := os.Args[2]
	args := os.Args[3:]

	rs, err := ruleset.Load(rulesPath)
	if err != nil {
		logrus.WithError(err).Fatal("substeng: failed to load rules")
	}

	switch cmd {
	case "apply":
		runApply(rs, args)
	case "search":
		runSearch(rs, args)
	case "stats":
		runStats(rs)
	case "bench":
		runBench(rs, args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: substeng <rules.yaml> <apply|search|stats|bench> [args...]")
	fmt.Fprintln(os.Stderr, "  apply [-i] [-j N] <file>...   rewrite files using the loaded rules")
	fmt.Fprintln(os.Stderr, "  search <file>                 print every matched occurrence")
	fmt.Fprintln(os.Stderr, "  stats                          print automaton node/pattern/memory stats")
	fmt.Fprintln(os.Stderr, "  bench [-n N] <file>            report throughput over N repetitions")
}

func runApply(rs *ruleset.Ruleset, args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	inPlace := fs.Bool("i", false, "rewrite files in place instead of writing <file>.out")
	concurrency := fs.Int("j", 1, "max files rewritten concurrently")
	_ = fs.Parse(args)

	ctx := envContext()
	paths := fs.Args()
	counts := make([]int, len(paths))

	rewrite := func(path string) int {
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Error("substeng: read failed, leaving file untouched")
			return 0
		}

		out, count, err := rs.Automaton.ReplaceWithCallback(data, ruleset.Callback(), ctx)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Error("substeng: rewrite failed, leaving file untouched")
			return 0
		}

		dest := path + ".out"
		if *inPlace {
			dest = path
		}
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			logrus.WithError(err).WithField("path", dest).Error("substeng: write failed")
			return 0
		}

		logrus.WithFields(logrus.Fields{"path": path, "dest": dest, "count": count}).Info("substeng: rewrote file")
		return count
	}

	if *concurrency <= 1 {
		for i, path := range paths {
			counts[i] = rewrite(path)
		}
	} else {
		c := goccm.New(*concurrency)
		for i, path := range paths {
			i, path := i, path
			c.Wait()
			go func() {
				defer c.Done()
				counts[i] = rewrite(path)
			}()
		}
		c.WaitAllDone()
	}

	var total int
	for _, n := range counts {
		total += n
	}
	fmt.Printf("applied %d substitutions across %d file(s)\n", total, len(paths))
}

func runSearch(rs *ruleset.Ruleset, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: substeng <rules.yaml> search <file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		logrus.WithError(err).Fatal("substeng: read failed")
	}

	count, err := rs.Automaton.Scan(data, func(m automaton.Match) bool {
		fmt.Printf("%d-%d: %q\n", m.Start, m.EndInclusive, rs.Automaton.Pattern(m))
		return true
	})
	if err != nil {
		logrus.WithError(err).Fatal("substeng: search failed")
	}
	fmt.Printf("%d match(es)\n", count)
}

func runStats(rs *ruleset.Ruleset) {
	s := rs.Automaton.Stats()
	fmt.Printf("nodes=%d patterns=%d memory=%s capacity=%d compiled=%t\n",
		s.Nodes, s.Patterns, units.BytesSize(float64(s.Bytes)), s.Capacity, s.Compiled)
}

func runBench(rs *ruleset.Ruleset, args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	reps := fs.Int("n", 100, "number of repetitions")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: substeng <rules.yaml> bench [-n N] <file>")
		os.Exit(2)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logrus.WithError(err).Fatal("substeng: read failed")
	}

	ctx := envContext()
	start := time.Now()
	var total int
	for i := 0; i < *reps; i++ {
		_, count, err := rs.Automaton.ReplaceWithCallback(data, ruleset.Callback(), ctx)
		if err != nil {
			logrus.WithError(err).Fatal("substeng: bench iteration failed")
		}
		total += count
	}
	elapsed := time.Since(start)

	throughput := float64(len(data)*(*reps)) / elapsed.Seconds()
	fmt.Printf("%d reps, %d bytes each, %d total substitutions, %s elapsed, %.2f bytes/s\n",
		*reps, len(data), total, elapsed, throughput)
}

func envContext() map[string]string {
	ctx := map[string]string{}
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				ctx[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return ctx
}
