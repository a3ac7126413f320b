package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the command line.
//
// Install it with COMP_INSTALL=1 stocksync.
func Completion() *complete.Command {
	top := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			top.Sub[c.Name()] = &complete.Command{Flags: flags(fs)}
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		top.Sub[name] = &complete.Command{}
	}
	return top
}

// flags predicts the values of the flags in fs. Boolean flags take no value.
func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	res := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case isBool(f):
			res[f.Name] = nil
		case f.Name == "config":
			res[f.Name] = predict.Files("*.y*ml")
		case f.Name == "stocks-file":
			res[f.Name] = predict.Files("*.json")
		default:
			res[f.Name] = predict.Something
		}
	})
	return res
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
