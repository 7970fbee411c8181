package cmd

import (
	"flag"

	"github.com/etnz/margin"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors gives a specific completion for some flag names, other
// flags complete with anything.
var flagPredictors = map[string]complete.Predictor{
	"journal": predict.Files("*.jsonl"),
	"config":  predict.Files("*.toml"),
	"o":       predict.Files("*"),
	"format":  predict.Set{"xlsx", "pdf"},
}

// argPredictors gives the completion of positional arguments.
var argPredictors = map[string]complete.Predictor{
	"import": predict.Files("*"),
	"set":    predict.Set(fieldNames()),
	"topic":  predict.Set{"readme", "editing", "global", "journal", "import", "export", "formulas"},
}

func fieldNames() []string {
	names := make([]string, 0, len(margin.Fields))
	for _, f := range margin.Fields {
		names = append(names, f.String())
	}
	return names
}

// Completion returns the shell completion tree of the mcalc command.
// Running Complete on it does nothing unless the shell asked for a completion.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(global),
	}
	for _, e := range Commands {
		fs := flag.NewFlagSet(e.Command.Name(), flag.ContinueOnError)
		e.Command.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs)}
		if p, ok := argPredictors[e.Command.Name()]; ok {
			sub.Args = p
		}
		root.Sub[e.Command.Name()] = sub
	}
	return root
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
