package trie

import "strings"

// String renders the subtrie in a compact debug form. Each node prints its
// key, a '*' if it is a boundary, and its children in brackets:
//
//	d[o*[g* t*]]
func (t *Trie) String() string {
	var b strings.Builder
	t.format(&b)
	return b.String()
}

func (t *Trie) format(b *strings.Builder) {
	b.WriteRune(t.key)
	if t.boundary {
		b.WriteByte('*')
	}
	if len(t.children) == 0 {
		return
	}
	b.WriteByte('[')
	for i, child := range t.children {
		if i > 0 {
			b.WriteByte(' ')
		}
		child.format(b)
	}
	b.WriteByte(']')
}

// Equal reports whether two subtries have the same keys, boundary flags and
// children in the same order.
func (t *Trie) Equal(other *Trie) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.key != other.key || t.boundary != other.boundary {
		return false
	}
	if len(t.children) != len(other.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}
