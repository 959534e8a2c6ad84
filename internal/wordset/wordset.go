// Package wordset stores an arbitrary set of words across several tries,
// one per leading rune.
package wordset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/trie"
)

// ErrEmptyWord is returned when an empty word is added. Queries with an
// empty word report false.
var ErrEmptyWord = trie.ErrEmptyWord

// ErrInvalidWord is returned when a word is not valid UTF-8. Queries with
// such a word report false.
var ErrInvalidWord = errors.New("wordset: word is not valid UTF-8")

// Set is a set of words. A word is routed to the trie rooted at its first
// rune; a root whose last word is removed is dropped. Set is not safe for
// concurrent use.
type Set struct {
	roots map[rune]*trie.Trie

	// order lists root keys by first insertion
	order []rune

	count int
}

// New creates an empty set.
func New() *Set {
	return &Set{
		roots: make(map[rune]*trie.Trie),
	}
}

// Insert adds word and reports whether it was new.
func (s *Set) Insert(word string) (bool, error) {
	if !utf8.ValidString(word) {
		return false, fmt.Errorf("insert %q: %w", word, ErrInvalidWord)
	}
	w := []rune(word)
	if len(w) == 0 {
		return false, fmt.Errorf("insert: %w", ErrEmptyWord)
	}

	root, ok := s.roots[w[0]]
	if !ok {
		s.roots[w[0]] = trie.FromWord(w)
		s.order = append(s.order, w[0])
		s.count++
		log.Debug().Str("word", word).Str("root", string(w[0])).Msg("Created new root")
		return true, nil
	}

	added, err := root.Insert(w)
	if err != nil {
		return false, fmt.Errorf("insert %q: %w", word, err)
	}
	if added {
		s.count++
	}
	return added, nil
}

// InsertAll adds every word and returns how many were new.
func (s *Set) InsertAll(words ...string) (int, error) {
	added := 0
	for _, w := range words {
		ok, err := s.Insert(w)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// Contains reports whether word is in the set.
func (s *Set) Contains(word string) bool {
	root, w := s.lookup(word)
	return root != nil && root.Contains(w)
}

// HasPrefix reports whether any stored word starts with prefix.
func (s *Set) HasPrefix(prefix string) bool {
	root, w := s.lookup(prefix)
	return root != nil && root.HasPrefix(w)
}

// Remove deletes word and reports whether it was present.
func (s *Set) Remove(word string) bool {
	root, w := s.lookup(word)
	if root == nil || !root.Remove(w) {
		return false
	}
	s.count--

	if root.IsEmpty() {
		delete(s.roots, w[0])
		s.order = lo.Without(s.order, w[0])
		log.Debug().Str("root", string(w[0])).Msg("Dropped empty root")
	}
	return true
}

// Complete returns the stored words starting with prefix. An empty prefix
// returns every word.
func (s *Set) Complete(prefix string) []string {
	if prefix == "" {
		return s.Words()
	}
	root, w := s.lookup(prefix)
	if root == nil {
		return []string{}
	}
	return root.WordsWithPrefix(w)
}

// Words returns every word: roots in first-insertion order, each root's
// words in trie enumeration order.
func (s *Set) Words() []string {
	return lo.FlatMap(s.order, func(r rune, _ int) []string {
		return s.roots[r].Words()
	})
}

// Len returns the number of words in the set.
func (s *Set) Len() int { return s.count }

// Size returns the total number of trie nodes across all roots.
func (s *Set) Size() int {
	return lo.SumBy(s.order, func(r rune) int {
		return s.roots[r].ComputeSize()
	})
}

// Roots returns the number of tries in the set.
func (s *Set) Roots() int { return len(s.roots) }

// Restore replaces the trie for t's root key with t and returns the number
// of words it holds. An empty t drops that root. The set takes ownership of
// t.
func (s *Set) Restore(t *trie.Trie) int {
	key := t.Key()
	old, ok := s.roots[key]
	if ok {
		s.count -= old.WordCount()
	}

	if t.IsEmpty() {
		if ok {
			delete(s.roots, key)
			s.order = lo.Without(s.order, key)
		}
		return 0
	}

	if !ok {
		s.order = append(s.order, key)
	}
	s.roots[key] = t
	words := t.WordCount()
	s.count += words
	log.Debug().Str("root", string(key)).Int("words", words).Msg("Restored root")
	return words
}

// Root returns the trie for the leading rune r, or nil.
func (s *Set) Root(r rune) *trie.Trie { return s.roots[r] }

// String renders every root's debug form on its own line.
func (s *Set) String() string {
	lines := lo.Map(s.order, func(r rune, _ int) string {
		return s.roots[r].String()
	})
	return strings.Join(lines, "\n")
}

func (s *Set) lookup(word string) (*trie.Trie, []rune) {
	if !utf8.ValidString(word) {
		return nil, nil
	}
	w := []rune(word)
	if len(w) == 0 {
		return nil, nil
	}
	return s.roots[w[0]], w
}
