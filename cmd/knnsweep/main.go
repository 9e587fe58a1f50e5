// Command knnsweep evaluates a k-NN classifier on a labeled CSV table for
// several values of k and reports the most accurate one.
//
// Example:
//
//	knnsweep sweep -data iris/iris.data -seed 42 -plot accuracy.png
//	knnsweep predict -data iris/iris.data -k 5 5.9 3.0 5.1 1.8
//	knnsweep history -history runs.db
package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func newApp() *commander.Command {
	return &commander.Command{
		UsageLine: os.Args[0] + " <command> [options]",
		Short:     "k-NN classification with a sweep over k",
		Subcommands: []*commander.Command{
			newSweepCmd(),
			newPredictCmd(),
			newHistoryCmd(),
		},
		Flag: *flag.NewFlagSet("knnsweep", flag.ExitOnError),
	}
}

func main() {
	if err := newApp().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}
