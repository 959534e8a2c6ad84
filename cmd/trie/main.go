// Command trie is a command-line interface for the rune trie. It can print a
// demo trie, enumerate a list of words, run an interactive shell or serve a
// word set over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/api"
	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/config"
	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/repl"
	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/trie"
	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/wordset"
)

// Global flags
var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config", "", "Path to config file")
)

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(cfg *config.Config, args []string) error
}

// Available commands
var commands = []Command{
	{
		Name:        "demo",
		Description: "Build a trie from the first word, insert the rest and print it",
		Run:         runDemo,
	},
	{
		Name:        "words",
		Description: "Insert words and print them in enumeration order",
		Run:         runWords,
	},
	{
		Name:        "repl",
		Description: "Start an interactive shell",
		Run:         runREPL,
	},
	{
		Name:        "serve",
		Description: "Serve the word set over HTTP",
		Run:         runServe,
	},
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [command] [arguments]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "\nAvailable commands:\n")
		for _, cmd := range commands {
			fmt.Fprintf(flag.CommandLine.Output(), "  %-8s %s\n", cmd.Name, cmd.Description)
		}
		fmt.Fprintf(flag.CommandLine.Output(), "\nGlobal flags:\n")
		flag.PrintDefaults()

		fmt.Fprintf(flag.CommandLine.Output(), "\nExamples:\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  \t%s demo hello😁world hella hello😁man!\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "  \t%s words dog dot do\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "  \t%s -config config.yaml serve\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag || len(flag.Args()) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	var cmd *Command
	for i := range commands {
		if commands[i].Name == flag.Arg(0) {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg.Log)

	if err := cmd.Run(cfg, flag.Args()[1:]); err != nil {
		log.Fatal().Err(err).Str("command", cmd.Name).Msg("Command failed")
	}
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
}

// seededSet returns a set holding the configured seed words followed by
// extra.
func seededSet(cfg *config.Config, extra ...string) (*wordset.Set, error) {
	set := wordset.New()
	words := append(append([]string{}, cfg.Seed.Words...), extra...)
	added, err := set.InsertAll(words...)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("added", added).Int("roots", set.Roots()).Msg("Seeded word set")
	return set, nil
}

func runDemo(_ *config.Config, args []string) error {
	if len(args) == 0 {
		args = []string{"hello😁world", "hella", "hello😁man!"}
	}
	if args[0] == "" {
		return fmt.Errorf("demo: %w", trie.ErrEmptyWord)
	}

	t := trie.FromString(args[0])
	for _, w := range args[1:] {
		if w == "" {
			return fmt.Errorf("demo: %w", trie.ErrEmptyWord)
		}
		added, err := t.Insert([]rune(w))
		if err != nil {
			log.Warn().Err(err).Str("word", w).Msg("Skipping word")
			continue
		}
		log.Debug().Str("word", w).Bool("added", added).Msg("Inserted")
	}

	fmt.Println(t)
	fmt.Printf("nodes=%d words=%d\n", t.ComputeSize(), t.WordCount())
	return nil
}

func runWords(cfg *config.Config, args []string) error {
	set, err := seededSet(cfg, args...)
	if err != nil {
		return err
	}
	for _, w := range set.Words() {
		fmt.Println(w)
	}
	return nil
}

func runREPL(cfg *config.Config, args []string) error {
	set, err := seededSet(cfg, args...)
	if err != nil {
		return err
	}
	return repl.New(set, os.Stdout).Run(repl.Options{
		Prompt:      cfg.REPL.Prompt,
		HistoryFile: cfg.REPL.HistoryFile,
	})
}

func runServe(cfg *config.Config, args []string) error {
	set, err := seededSet(cfg, args...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(cfg.Server.Addr(), set)
	return server.Start(ctx)
}
