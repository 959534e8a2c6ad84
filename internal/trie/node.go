// Package trie implements a rune-keyed prefix tree.
//
// Every node holds one rune, a boundary flag and an ordered list of
// children. A trie is always rooted at a concrete rune: it is built from a
// non-empty word and only accepts words starting with the root key. Children
// keep insertion order, so lookups scan siblings linearly and enumeration
// follows the order in which branches were first created.
//
// A Trie is not safe for concurrent use. Readers may share a trie as long as
// no Insert, Remove or Update runs at the same time.
package trie

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWord is the panic value (wrapped) for operations called with an
	// empty word or prefix. Callers must not pass empty input to the core.
	ErrEmptyWord = errors.New("trie: empty word")

	// ErrKeyMismatch is returned by Insert when the word does not start with
	// the root key.
	ErrKeyMismatch = errors.New("trie: key mismatch")
)

// Trie is a node of the prefix tree, and the subtrie rooted at it.
type Trie struct {
	// key is the rune this node represents
	key rune

	// boundary marks the root-to-node path as a complete stored word
	boundary bool

	// children in insertion order; keys are unique among siblings
	children []*Trie
}

// Empty creates a single boundary node with no children.
func Empty(key rune) *Trie {
	return &Trie{
		key:      key,
		boundary: true,
	}
}

// FromWord builds a root-to-leaf chain for word. Only the last node is a
// boundary. It panics if word is empty.
func FromWord(word []rune) *Trie {
	mustNotBeEmpty("FromWord", word)

	root := &Trie{key: word[0]}
	node := root
	for _, r := range word[1:] {
		child := &Trie{key: r}
		node.children = []*Trie{child}
		node = child
	}
	node.boundary = true
	return root
}

// FromString is FromWord over the runes of s.
func FromString(s string) *Trie {
	return FromWord([]rune(s))
}

// Key returns the rune this node represents.
func (t *Trie) Key() rune { return t.key }

// IsBoundary reports whether the path ending at this node is a stored word.
func (t *Trie) IsBoundary() bool { return t.boundary }

// Children returns a copy of the child list in insertion order.
func (t *Trie) Children() []*Trie {
	out := make([]*Trie, len(t.children))
	copy(out, t.children)
	return out
}

// SetKey renames this node. The caller must make sure no sibling already
// uses r; sibling uniqueness is not re-checked afterwards.
func (t *Trie) SetKey(r rune) { t.key = r }

// ComputeSize returns the number of nodes in the subtrie, counting shared
// prefixes once.
func (t *Trie) ComputeSize() int {
	size := 1
	for _, child := range t.children {
		size += child.ComputeSize()
	}
	return size
}

// WordCount returns the number of boundary nodes in the subtrie.
func (t *Trie) WordCount() int {
	count := 0
	if t.boundary {
		count++
	}
	for _, child := range t.children {
		count += child.WordCount()
	}
	return count
}

// IsEmpty reports whether the node is a leftover root: no children and not a
// boundary. Removing the last stored word leaves a trie in this state.
func (t *Trie) IsEmpty() bool {
	return !t.boundary && len(t.children) == 0
}

// Clone returns a deep copy of the subtrie.
func (t *Trie) Clone() *Trie {
	c := &Trie{
		key:      t.key,
		boundary: t.boundary,
	}
	if len(t.children) > 0 {
		c.children = make([]*Trie, len(t.children))
		for i, child := range t.children {
			c.children[i] = child.Clone()
		}
	}
	return c
}

// child returns the child keyed by r, or nil.
func (t *Trie) child(r rune) *Trie {
	for _, c := range t.children {
		if c.key == r {
			return c
		}
	}
	return nil
}

func mustNotBeEmpty(op string, word []rune) {
	if len(word) == 0 {
		panic(fmt.Errorf("%s: %w", op, ErrEmptyWord))
	}
}
