package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, words ...string) *Trie {
	t.Helper()
	trie := FromString(words[0])
	for _, w := range words[1:] {
		_, err := trie.Insert(runes(w))
		require.NoError(t, err)
	}
	return trie
}

func collect(it *Iterator) []string {
	var out []string
	for it.Next() {
		out = append(out, string(it.Word()))
	}
	return out
}

func TestIterator_PreOrder(t *testing.T) {
	trie := build(t, "hello world!", "hello man!", "hey man!", "hi🏞d")

	want := []string{"hello world!", "hello man!", "hey man!", "hi🏞d"}
	assert.Equal(t, want, collect(trie.Iter()))
}

func TestIterator_InsertionOrderNotSorted(t *testing.T) {
	trie := build(t, "dz", "da", "dm")
	assert.Equal(t, []string{"dz", "da", "dm"}, trie.Words())
}

func TestIterator_RootFirst(t *testing.T) {
	trie := build(t, "ab", "a", "ac")
	assert.Equal(t, []string{"a", "ab", "ac"}, trie.Words())

	assert.Equal(t, []string{"x"}, Empty('x').Words())
}

func TestIterator_PrefixBeforeExtension(t *testing.T) {
	trie := build(t, "dog", "dot", "do")
	assert.Equal(t, []string{"do", "dog", "dot"}, trie.Words())
}

func TestIterator_Restartable(t *testing.T) {
	trie := build(t, "dog", "dot")

	first := trie.Iter()
	assert.Equal(t, []string{"dog", "dot"}, collect(first))
	assert.False(t, first.Next(), "exhausted iterator stays exhausted")
	assert.Nil(t, first.Word())

	assert.Equal(t, []string{"dog", "dot"}, collect(trie.Iter()))
}

func TestIterator_EmptyRoot(t *testing.T) {
	trie := FromString("a")
	require.True(t, trie.Remove(runes("a")))
	assert.Empty(t, collect(trie.Iter()))
}

func TestIterator_WordsAreIndependent(t *testing.T) {
	trie := build(t, "ab", "ac")
	it := trie.Iter()
	require.True(t, it.Next())
	first := it.Word()
	require.True(t, it.Next())
	assert.Equal(t, "ab", string(first))
	assert.Equal(t, "ac", string(it.Word()))
}

func TestIterator_RoundTrip(t *testing.T) {
	words := []string{
		"salt", "salsa", "sal", "s", "sun", "sunny", "sunday",
		"sé", "séance", "s日本", "s日本語", "so", "sort", "sorted",
	}

	orders := [][]string{
		words,
		{"sorted", "sort", "so", "s日本語", "s日本", "séance", "sé", "sunday", "sunny", "sun", "s", "sal", "salsa", "salt"},
	}
	for _, order := range orders {
		trie := build(t, order...)
		got := trie.Words()
		assert.ElementsMatch(t, words, got)
		assert.Len(t, got, trie.WordCount())
	}
}

func TestTrie_All_EarlyStop(t *testing.T) {
	trie := build(t, "ab", "ac", "ad")
	var got []string
	for w := range trie.All() {
		got = append(got, string(w))
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"ab", "ac"}, got)
}

func TestTrie_WordsWithPrefix(t *testing.T) {
	trie := build(t, "apple", "app", "apricot", "avocado")

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "prefix 'app'", prefix: "app", want: []string{"apple", "app"}},
		{name: "prefix 'ap'", prefix: "ap", want: []string{"apple", "app", "apricot"}},
		{name: "whole trie", prefix: "a", want: []string{"apple", "app", "apricot", "avocado"}},
		{name: "exact leaf", prefix: "avocado", want: []string{"avocado"}},
		{name: "non-existent prefix", prefix: "xyz", want: []string{}},
		{name: "past a leaf", prefix: "avocados", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, trie.WordsWithPrefix(runes(tt.prefix)))
		})
	}
}

func TestTrie_Walk_Stop(t *testing.T) {
	trie := build(t, "apple", "app", "apricot")
	var visited []string
	trie.Walk(runes("ap"), func(word []rune) bool {
		visited = append(visited, string(word))
		return false
	})
	assert.Len(t, visited, 1)
}
