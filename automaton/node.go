package automaton

// node is one entry of the arena. Children are addressed by byte value,
// failure and output are indices into the same arena; 0 always denotes the
// root. noRef marks "no node" for output (root can never be an output
// target since root is never terminal by construction).
type node struct {
	children [256]int32

	failure int32
	output  int32

	terminal bool

	pattern     []byte
	patternLen  int
	replacement []byte
	hasReplace  bool
	userData    any

	id int
}

const noRef int32 = -1

func newNode(id int) node {
	n := node{
		failure: noRef,
		output:  noRef,
		id:      id,
	}
	for i := range n.children {
		n.children[i] = noRef
	}
	return n
}
