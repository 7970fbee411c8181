package cmd

import (
	"io"
	"time"

	"github.com/etnz/margin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global logger to write to w. Only warnings are
// shown unless -v is set.
func SetupLogger(w io.Writer) {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).Level(level)
}

// logChange is a ledger observer.
func logChange(c margin.Change) {
	e := log.Debug().Str("code", c.Code()).Str("change", c.Kind.String())
	if c.Kind != margin.RowRemoved {
		e = e.Stringer("locked", c.After.Locked).Str("state", c.After.State().String())
	}
	e.Msg("row")
}
