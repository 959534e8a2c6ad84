package repl

import (
	"strings"

	"github.com/samber/lo"

	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/wordset"
)

// Completer implements readline.AutoCompleter. The first token completes
// against command names, later tokens against the stored words.
type Completer struct {
	set      *wordset.Set
	commands *wordset.Set
}

// NewCompleter creates a completer over set
func NewCompleter(set *wordset.Set) *Completer {
	names := wordset.New()
	for _, cmd := range commands {
		// command names are never empty
		_, _ = names.Insert(cmd.Name)
	}
	return &Completer{set: set, commands: names}
}

// Do returns the completion suffixes for the token ending at pos and the
// token's length in runes.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	head := line[:pos]

	start := lo.LastIndexOf(head, ' ') + 1
	token := string(head[start:])

	var candidates []string
	if strings.TrimSpace(string(head[:start])) == "" {
		candidates = c.commands.Complete(token)
	} else {
		candidates = c.set.Complete(token)
	}

	tokenLen := len(head) - start
	return lo.Map(candidates, func(cand string, _ int) []rune {
		return append([]rune(cand)[tokenLen:], ' ')
	}), tokenLen
}
