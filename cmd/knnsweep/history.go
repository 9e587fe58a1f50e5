package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/history"
)

func newHistoryCmd() *commander.Command {
	var (
		path  string
		limit int
	)
	cmd := &commander.Command{
		UsageLine: "history -history <file> [options]",
		Short:     "list recorded sweeps, newest first",
		Flag:      *flag.NewFlagSet("history", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&path, "history", "", "SQLite file written by sweep -history")
	cmd.Flag.IntVar(&limit, "n", 10, "number of runs to show")
	cmd.Run = func(_ *commander.Command, _ []string) error {
		if path == "" {
			return fmt.Errorf("%w: -history is required", data.ErrInvalidArgument)
		}
		return runHistory(context.Background(), path, limit, os.Stdout)
	}
	return cmd
}

func runHistory(ctx context.Context, path string, limit int, w io.Writer) error {
	st, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()
	runs, err := st.Recent(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %-20s seed=%-20d scaling=%-8s best k=%-3d %.2f%%\n",
			r.StartedAt.Format(time.DateTime), r.ID, r.Dataset, r.Seed, r.Scaling,
			r.Result.Best.K, r.Result.Best.Accuracy)
	}
	return nil
}
