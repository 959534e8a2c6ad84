package trie

import (
	"fmt"
	"slices"
)

// Insert stores word in the trie. word[0] must equal the root key, otherwise
// ErrKeyMismatch is returned and nothing changes. The boolean reports whether
// the word is new (false means it was already stored). Missing branches are
// appended after existing children. Insert panics if word is empty.
func (t *Trie) Insert(word []rune) (bool, error) {
	mustNotBeEmpty("Insert", word)
	if word[0] != t.key {
		return false, fmt.Errorf("insert %q under root %q: %w", string(word), t.key, ErrKeyMismatch)
	}
	return t.insert(word[1:]), nil
}

// insert consumes the suffix that follows this node's key.
func (t *Trie) insert(suffix []rune) bool {
	if len(suffix) == 0 {
		if t.boundary {
			return false
		}
		t.boundary = true
		return true
	}

	if next := t.child(suffix[0]); next != nil {
		return next.insert(suffix[1:])
	}

	t.children = append(t.children, FromWord(suffix))
	return true
}

// Get returns the subtrie rooted at the last rune of prefix, or nil if
// prefix[0] differs from the root key or the path does not exist. The node is
// returned whether or not it is a boundary; check IsBoundary for membership.
//
// The returned node is shared with the trie and may be edited in place. Do
// not rename it with SetKey to a rune already used by a sibling.
// Get panics if prefix is empty.
func (t *Trie) Get(prefix []rune) *Trie {
	mustNotBeEmpty("Get", prefix)
	if prefix[0] != t.key {
		return nil
	}

	node := t
	for _, r := range prefix[1:] {
		if node = node.child(r); node == nil {
			return nil
		}
	}
	return node
}

// Update runs fn with exclusive access to the subtrie at prefix. It returns
// false, without calling fn, when the prefix is not found.
func (t *Trie) Update(prefix []rune, fn func(node *Trie)) bool {
	node := t.Get(prefix)
	if node == nil {
		return false
	}
	fn(node)
	return true
}

// Contains reports whether word is stored as a complete word.
func (t *Trie) Contains(word []rune) bool {
	node := t.Get(word)
	return node != nil && node.boundary
}

// HasPrefix reports whether some path in the trie spells prefix.
func (t *Trie) HasPrefix(prefix []rune) bool {
	return t.Get(prefix) != nil
}

// Remove unmarks word and prunes the chain of nodes that only existed to
// spell it. Pruning walks upward and stops at the first ancestor that still
// has children or ends another stored word. The root is never detached: once
// the last word is gone the trie is left as a single empty root (see
// IsEmpty). Remove reports whether word was stored. It panics if word is
// empty.
func (t *Trie) Remove(word []rune) bool {
	mustNotBeEmpty("Remove", word)

	path := t.path(word)
	if path == nil {
		return false
	}
	target := path[len(path)-1]
	if !target.boundary {
		return false
	}
	target.boundary = false

	prune(path)
	return true
}

// path returns the nodes spelling word, root first, or nil if word is not
// in the trie.
func (t *Trie) path(word []rune) []*Trie {
	if word[0] != t.key {
		return nil
	}

	path := make([]*Trie, 1, len(word))
	path[0] = t
	node := t
	for _, r := range word[1:] {
		if node = node.child(r); node == nil {
			return nil
		}
		path = append(path, node)
	}
	return path
}

// prune walks path from the leaf upward, detaching each childless
// non-boundary node from its parent. The root is never detached.
func prune(path []*Trie) {
	for i := len(path) - 1; i > 0; i-- {
		node, parent := path[i], path[i-1]
		if node.boundary || len(node.children) > 0 {
			return
		}

		pos := slices.Index(parent.children, node)
		parent.children = slices.Delete(parent.children, pos, pos+1)
		if len(parent.children) == 0 {
			parent.children = nil
		}
	}
}
