// Package cmd implements the CLI application to price a list of products.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/margin"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	journalFile = flag.String("journal", envOr(EnvJournal, "margins.jsonl"), "Path to the journal file (JSONL format)")
	configFile  = flag.String("config", envOr(EnvConfig, "mcalc.toml"), "Path to the optional configuration file (TOML format)")
	currency    = flag.String("currency", os.Getenv(EnvCurrency), "Currency code of costs and prices, overrides the configuration")
	// Verbose logs every change made to the ledger.
	Verbose = flag.Bool("v", envBool(EnvVerbose), "Log every change made to the ledger")
)

// output receives what commands print.
var output io.Writer = os.Stdout

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// Commands lists every subcommand, by group.
var Commands = []struct {
	Group   string
	Command subcommands.Command
}{
	{"products", &addCmd{}},
	{"products", &setCmd{}},
	{"products", &rmCmd{}},
	{"products", &clearCmd{}},
	{"products", &importCmd{}},
	{"pricing", &applyMarginCmd{}},
	{"pricing", &applyMarkupCmd{}},
	{"pricing", &undoCmd{}},
	{"reports", &lsCmd{}},
	{"reports", &exportCmd{}},
	{"journal", &fmtCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range Commands {
		c.Register(e.Command, e.Group)
	}
}

// IsCommand reports whether name is a registered subcommand.
func IsCommand(name string) bool {
	for _, e := range Commands {
		if e.Command.Name() == name {
			return true
		}
	}
	return false
}

// Settings returns the configuration file content, overridden by the global flags.
func Settings() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	return cfg, nil
}

// DecodeJournal decodes the app journal file. A missing file is an empty journal.
func DecodeJournal() (*margin.Journal, error) {
	f, err := os.Open(*journalFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("journal", *journalFile).Msg("journal does not exist, starting an empty one")
		return margin.NewJournal(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open journal %q: %w", *journalFile, err)
	}
	defer f.Close()

	j, err := margin.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode journal %q: %w", *journalFile, err)
	}
	return j, nil
}

// OpenSession replays the app journal. Ledger changes are logged once the
// replay is done, so that only the changes made by the running command show.
func OpenSession() (*margin.Session, Config, error) {
	cfg, err := Settings()
	if err != nil {
		return nil, cfg, err
	}
	j, err := DecodeJournal()
	if err != nil {
		return nil, cfg, err
	}
	s := j.Replay(cfg.SessionTargets())
	log.Debug().Int("commands", j.Len()).Int("rows", s.Ledger.Len()).Msg("journal replayed")
	s.Ledger.Observe(logChange)
	return s, cfg, nil
}

// EncodeCommands appends commands into the app journal file.
func EncodeCommands(cmds ...margin.Command) error {
	f, err := os.OpenFile(*journalFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open journal %q: %w", *journalFile, err)
	}
	defer f.Close()

	for _, c := range cmds {
		if err := margin.EncodeCommand(f, c); err != nil {
			return fmt.Errorf("cannot write to journal %q: %w", *journalFile, err)
		}
	}
	return nil
}

// Record applies cmd to the session and appends it to the journal.
// It returns the number of rows the command changed.
func Record(s *margin.Session, cmd margin.Command) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, fmt.Errorf("invalid %s command: %w", cmd.What(), err)
	}
	n := cmd.Apply(s)
	if err := EncodeCommands(cmd); err != nil {
		return n, err
	}
	return n, nil
}

func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(output, md)
		return
	}
	fmt.Fprint(output, out)
}
