// Package repl provides an interactive shell over a word set, with tab
// completion backed by trie prefix lookup.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/wordset"
)

// errQuit is returned by the exit command to stop the loop.
var errQuit = errors.New("quit")

// command is a shell command
type command struct {
	Name        string
	Usage       string
	Description string
	Run         func(s *Shell, args []string) error
}

// commands is filled in init because help refers back to it.
var commands []command

func init() {
	commands = []command{
		{Name: "add", Usage: "add <word>...", Description: "Insert words", Run: runAdd},
		{Name: "del", Usage: "del <word>...", Description: "Remove words", Run: runDel},
		{Name: "has", Usage: "has <word>", Description: "Check whether a word is stored", Run: runHas},
		{Name: "prefix", Usage: "prefix <p>", Description: "List words starting with p", Run: runPrefix},
		{Name: "list", Usage: "list", Description: "List every word", Run: runList},
		{Name: "size", Usage: "size", Description: "Show word, node and root counts", Run: runSize},
		{Name: "dump", Usage: "dump", Description: "Print the debug form of every root", Run: runDump},
		{Name: "help", Usage: "help", Description: "Show this help", Run: runHelp},
		{Name: "exit", Usage: "exit", Description: "Leave the shell", Run: runExit},
	}
}

// Shell runs commands against a word set
type Shell struct {
	set *wordset.Set
	out io.Writer
}

// New creates a shell writing its output to out
func New(set *wordset.Set, out io.Writer) *Shell {
	return &Shell{set: set, out: out}
}

// Options configures the interactive loop
type Options struct {
	Prompt      string
	HistoryFile string
}

// Run reads lines until exit, Ctrl-D or an unrecoverable read error.
func (s *Shell) Run(opts Options) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          opts.Prompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    NewCompleter(s.set),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          s.out,
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read line: %w", err)
		}

		quit, err := s.Exec(line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line. quit is true after the exit command.
func (s *Shell) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, ok := lo.Find(commands, func(c command) bool { return c.Name == fields[0] })
	if !ok {
		return false, fmt.Errorf("unknown command %q, try help", fields[0])
	}

	log.Debug().Str("command", cmd.Name).Strs("args", fields[1:]).Msg("Running command")
	err = cmd.Run(s, fields[1:])
	if errors.Is(err, errQuit) {
		return true, nil
	}
	return false, err
}

func requireArgs(args []string, usage string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func runAdd(s *Shell, args []string) error {
	if err := requireArgs(args, "add <word>..."); err != nil {
		return err
	}
	added, err := s.set.InsertAll(args...)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "added %d of %d\n", added, len(args))
	return nil
}

func runDel(s *Shell, args []string) error {
	if err := requireArgs(args, "del <word>..."); err != nil {
		return err
	}
	removed := lo.CountBy(args, s.set.Remove)
	fmt.Fprintf(s.out, "removed %d of %d\n", removed, len(args))
	return nil
}

func runHas(s *Shell, args []string) error {
	if err := requireArgs(args, "has <word>"); err != nil {
		return err
	}
	switch w := args[0]; {
	case s.set.Contains(w):
		fmt.Fprintf(s.out, "%s: word\n", w)
	case s.set.HasPrefix(w):
		fmt.Fprintf(s.out, "%s: prefix only\n", w)
	default:
		fmt.Fprintf(s.out, "%s: not found\n", w)
	}
	return nil
}

func runPrefix(s *Shell, args []string) error {
	if err := requireArgs(args, "prefix <p>"); err != nil {
		return err
	}
	printWords(s.out, s.set.Complete(args[0]))
	return nil
}

func runList(s *Shell, _ []string) error {
	printWords(s.out, s.set.Words())
	return nil
}

func runSize(s *Shell, _ []string) error {
	fmt.Fprintf(s.out, "words=%d nodes=%d roots=%d\n", s.set.Len(), s.set.Size(), s.set.Roots())
	return nil
}

func runDump(s *Shell, _ []string) error {
	if s.set.Roots() == 0 {
		fmt.Fprintln(s.out, "(empty)")
		return nil
	}
	fmt.Fprintln(s.out, s.set.String())
	return nil
}

func runHelp(s *Shell, _ []string) error {
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %-16s %s\n", c.Usage, c.Description)
	}
	return nil
}

func runExit(*Shell, []string) error {
	return errQuit
}

func printWords(out io.Writer, words []string) {
	if len(words) == 0 {
		fmt.Fprintln(out, "(none)")
		return
	}
	for _, w := range words {
		fmt.Fprintln(out, w)
	}
}
