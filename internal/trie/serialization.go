package trie

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Encoding format, one record per node in pre-order:
// [flags: 1 byte][key: 4 bytes][num children: 4 bytes][children...]
// - flags: bit 0 set for a boundary node
// - key: the node's rune, big-endian
// - num children: number of child records that follow, in insertion order

const (
	flagBoundary = 1 << 0

	headerSize = 9

	// MaxDecodeDepth bounds the word length Decode accepts.
	MaxDecodeDepth = 1 << 16
)

// ErrCorrupt is returned when decoding malformed data.
var ErrCorrupt = errors.New("trie: corrupt encoding")

// MarshalBinary encodes the subtrie, preserving child order.
func (t *Trie) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := t.encodeNode(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *Trie) encodeNode(w io.Writer) error {
	var header [headerSize]byte
	if t.boundary {
		header[0] = flagBoundary
	}
	binary.BigEndian.PutUint32(header[1:5], uint32(t.key))
	binary.BigEndian.PutUint32(header[5:9], uint32(len(t.children)))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write node %q: %w", t.key, err)
	}

	for _, child := range t.children {
		if err := child.encodeNode(w); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalBinary replaces the receiver with the subtrie encoded in data.
func (t *Trie) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	node, err := decodeNode(r, 1)
	if err != nil {
		return fmt.Errorf("failed to decode trie: %w", err)
	}
	if r.Len() != 0 {
		return fmt.Errorf("failed to decode trie: %d trailing bytes: %w", r.Len(), ErrCorrupt)
	}
	*t = *node
	return nil
}

// Decode builds a new trie from data produced by MarshalBinary.
func Decode(data []byte) (*Trie, error) {
	t := &Trie{}
	if err := t.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeNode(r *bytes.Reader, depth int) (*Trie, error) {
	if depth > MaxDecodeDepth {
		return nil, fmt.Errorf("nesting deeper than %d: %w", MaxDecodeDepth, ErrCorrupt)
	}

	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("failed to read node header: %w", ErrCorrupt)
	}

	flags := header[0]
	if flags&^flagBoundary != 0 {
		return nil, fmt.Errorf("unknown flags %#x: %w", flags, ErrCorrupt)
	}
	key := rune(binary.BigEndian.Uint32(header[1:5]))
	if !utf8.ValidRune(key) {
		return nil, fmt.Errorf("invalid key %#x: %w", uint32(key), ErrCorrupt)
	}
	numChildren := binary.BigEndian.Uint32(header[5:9])
	if int64(numChildren)*headerSize > int64(r.Len()) {
		return nil, fmt.Errorf("node %q claims %d children: %w", key, numChildren, ErrCorrupt)
	}

	node := &Trie{
		key:      key,
		boundary: flags&flagBoundary != 0,
	}
	if numChildren == 0 {
		return node, nil
	}

	node.children = make([]*Trie, 0, numChildren)
	for i := uint32(0); i < numChildren; i++ {
		child, err := decodeNode(r, depth+1)
		if err != nil {
			return nil, err
		}
		if node.child(child.key) != nil {
			return nil, fmt.Errorf("duplicate child %q under %q: %w", child.key, key, ErrCorrupt)
		}
		node.children = append(node.children, child)
	}
	return node, nil
}
