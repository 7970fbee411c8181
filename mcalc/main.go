// Command mcalc keeps the cost, price, markup and margin of a list of products consistent.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/margin/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	// Answers the shell completion requests, and exits, before any flag parsing.
	cmd.Completion(flag.CommandLine).Complete("mcalc")

	flag.Parse()
	cmd.SetupLogger(os.Stderr)

	if sub := flag.Arg(0); sub != "" && !cmd.IsCommand(sub) && !isBuiltin(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func isBuiltin(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	return false
}
