package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"substeng/automaton"
)

func buildRules(t *testing.T, rules map[string]string) *automaton.Automaton {
	t.Helper()
	a := automaton.New(0)
	for pat, repl := range rules {
		require.NoError(t, a.Register([]byte(pat), []byte(repl)))
	}
	require.NoError(t, a.Compile())
	return a
}

// End-to-end scenarios covering the common rewrite shapes: independent
// patterns, overlapping patterns, repeated occurrences, and deletion.
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		title  string
		rules  map[string]string
		input  string
		output string
		count  int
	}{
		{
			title:  "hello world",
			rules:  map[string]string{"hello": "hi", "world": "universe"},
			input:  "hello world",
			output: "hi universe",
			count:  2,
		},
		{
			title:  "leftmost wins on overlap",
			rules:  map[string]string{"abc": "123", "bcd": "456"},
			input:  "abcd",
			output: "123d",
			count:  1,
		},
		{
			title:  "repeated pattern",
			rules:  map[string]string{"test": "exam"},
			input:  "test test test",
			output: "exam exam exam",
			count:  3,
		},
		{
			title:  "two independent patterns",
			rules:  map[string]string{"hello": "hi", "ok": "okay"},
			input:  "hello ok",
			output: "hi okay",
			count:  2,
		},
		{
			title:  "no occurrence",
			rules:  map[string]string{"xyz": "abc"},
			input:  "hello world",
			output: "hello world",
			count:  0,
		},
		{
			title:  "mid-sentence replacement",
			rules:  map[string]string{"cat": "dog", "mouse": "elephant"},
			input:  "The cat chased the mouse",
			output: "The dog chased the elephant",
			count:  2,
		},
		{
			title:  "empty replacement deletes the match",
			rules:  map[string]string{"X": ""},
			input:  "aXbXc",
			output: "abc",
			count:  2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.title, func(t *testing.T) {
			a := buildRules(t, tc.rules)
			out, count, err := a.ReplaceAlloc([]byte(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.output, string(out))
			require.Equal(t, tc.count, count)
		})
	}
}

func TestNoMatchIdentity(t *testing.T) {
	a := buildRules(t, map[string]string{"xyz": "abc"})
	input := []byte("hello world")
	out, count, err := a.ReplaceAlloc(input)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.Equal(t, input, out)
	require.NotSame(t, &input[0], &out[0], "output must be a fresh copy, not an alias of the input")
}

func TestDeterminism(t *testing.T) {
	a := buildRules(t, map[string]string{"foo": "bar", "foobar": "baz"})
	input := []byte("foofoobarfoo")
	first, _, err := a.ReplaceAlloc(input)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, _, err := a.ReplaceAlloc(input)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestReplaceWithCallback(t *testing.T) {
	a := automaton.New(0)
	require.NoError(t, a.RegisterEx([]byte("___N___"), nil, "nonce"))
	require.NoError(t, a.Compile())

	cb := func(pattern []byte, userData any, ctx any) []byte {
		return []byte(ctx.(string))
	}

	outA, countA, err := a.ReplaceWithCallback([]byte("<s nonce='___N___'>"), cb, "A")
	require.NoError(t, err)
	require.Equal(t, 1, countA)
	require.Equal(t, "<s nonce='A'>", string(outA))

	statsBefore := a.Stats()
	outB, countB, err := a.ReplaceWithCallback([]byte("<s nonce='___N___'>"), cb, "B")
	require.NoError(t, err)
	require.Equal(t, 1, countB)
	require.Equal(t, "<s nonce='B'>", string(outB))
	require.Equal(t, statsBefore, a.Stats())
}

func TestCallbackNilAndZeroLengthTreatedAsDeletion(t *testing.T) {
	a := automaton.New(0)
	require.NoError(t, a.RegisterEx([]byte("X"), nil, nil))
	require.NoError(t, a.Compile())

	cb := func(pattern []byte, userData any, ctx any) []byte { return nil }
	out, count, err := a.ReplaceWithCallback([]byte("aXbXc"), cb, nil)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Equal(t, "abc", string(out))
}

func TestLengthIdentity(t *testing.T) {
	a := automaton.New(0)
	require.NoError(t, a.RegisterEx([]byte("foo"), nil, nil))
	require.NoError(t, a.Compile())

	cb := func(pattern []byte, userData any, ctx any) []byte { return []byte("longreplacement") }
	input := []byte("foo-foo-foo")
	out, count, err := a.ReplaceWithCallback(input, cb, nil)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Equal(t, len(input)-3*len("foo")+3*len("longreplacement"), len(out))
}

func TestNotCompiledReplaceReturnsError(t *testing.T) {
	a := automaton.New(0)
	require.NoError(t, a.Register([]byte("a"), []byte("b")))
	_, _, err := a.ReplaceAlloc([]byte("a"))
	require.ErrorIs(t, err, automaton.ErrNotCompiled)
}

func TestReplaceInPlaceMatchesReplaceAllocWhenCapacitySuffices(t *testing.T) {
	a := buildRules(t, map[string]string{"hello": "hi", "world": "universe"})
	input := "hello world"

	allocOut, allocCount, err := a.ReplaceAlloc([]byte(input))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n := copy(buf, input)

	newLen, count, err := a.ReplaceInPlace(buf, n)
	require.NoError(t, err)
	require.Equal(t, allocCount, count)
	require.Equal(t, len(allocOut), newLen)
	require.Equal(t, string(allocOut), string(buf[:newLen]))
}

func TestReplaceInPlaceRespectsCapacity(t *testing.T) {
	a := buildRules(t, map[string]string{"a": "aaaaaaaaaa"})
	input := "aaa"
	buf := make([]byte, len(input)) // no headroom at all
	n := copy(buf, input)

	newLen, count, err := a.ReplaceInPlace(buf, n)
	require.NoError(t, err)
	require.Equal(t, 0, count, "every substitution would overflow capacity, so none apply")
	require.Equal(t, len(input), newLen)
}

func TestReplaceInPlaceShrinking(t *testing.T) {
	a := buildRules(t, map[string]string{"X": ""})
	input := "aXbXc"
	buf := make([]byte, len(input))
	n := copy(buf, input)

	newLen, count, err := a.ReplaceInPlace(buf, n)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Equal(t, "abc", string(buf[:newLen]))
}
