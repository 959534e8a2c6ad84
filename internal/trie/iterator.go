package trie

import (
	"iter"
	"slices"
)

// Iterator enumerates the words of a trie in depth-first pre-order. The root
// is checked first, then children in insertion order. An Iterator is
// single-pass; call Iter again for a fresh traversal.
type Iterator struct {
	root    *Trie
	started bool

	// stack holds one child cursor per node on the current path
	stack []cursor

	// path holds the keys from the root to the node on top of stack
	path []rune

	word []rune
}

type cursor struct {
	children []*Trie
	next     int
}

// Iter returns an iterator over the words stored in the subtrie.
func (t *Trie) Iter() *Iterator {
	return &Iterator{root: t}
}

// Next advances to the next word. It returns false once every boundary
// node has been visited.
func (it *Iterator) Next() bool {
	if !it.started {
		it.started = true
		it.path = append(it.path, it.root.key)
		it.stack = append(it.stack, cursor{children: it.root.children})
		if it.root.boundary {
			it.word = slices.Clone(it.path)
			return true
		}
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.next == len(top.children) {
			it.stack = it.stack[:len(it.stack)-1]
			it.path = it.path[:len(it.path)-1]
			continue
		}

		node := top.children[top.next]
		top.next++

		it.path = append(it.path, node.key)
		it.stack = append(it.stack, cursor{children: node.children})
		if node.boundary {
			it.word = slices.Clone(it.path)
			return true
		}
	}

	it.word = nil
	return false
}

// Word returns the word found by the last call to Next. The slice belongs to
// the caller.
func (it *Iterator) Word() []rune { return it.word }

// All returns a range-over-func sequence of the words in the subtrie.
func (t *Trie) All() iter.Seq[[]rune] {
	return func(yield func([]rune) bool) {
		it := t.Iter()
		for it.Next() {
			if !yield(it.Word()) {
				return
			}
		}
	}
}

// Words collects every stored word in enumeration order.
func (t *Trie) Words() []string {
	var words []string
	for w := range t.All() {
		words = append(words, string(w))
	}
	return words
}

// WalkFunc is called for each word visited by Walk. Returning false stops the
// walk.
type WalkFunc func(word []rune) bool

// Walk calls fn for every stored word that starts with prefix, in
// enumeration order. Nothing is visited when the prefix is not in the trie.
func (t *Trie) Walk(prefix []rune, fn WalkFunc) {
	node := t.Get(prefix)
	if node == nil {
		return
	}

	head := prefix[:len(prefix)-1]
	for w := range node.All() {
		word := make([]rune, 0, len(head)+len(w))
		word = append(word, head...)
		word = append(word, w...)
		if !fn(word) {
			return
		}
	}
}

// WordsWithPrefix returns all stored words that start with prefix.
func (t *Trie) WordsWithPrefix(prefix []rune) []string {
	results := []string{}
	t.Walk(prefix, func(word []rune) bool {
		results = append(results, string(word))
		return true
	})
	return results
}
