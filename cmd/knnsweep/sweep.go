package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/config"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/history"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/loader"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/model"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/report"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/stats"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/sweep"
)

func newSweepCmd() *commander.Command {
	opts := &options{}
	cmd := &commander.Command{
		UsageLine: "sweep [options]",
		Short:     "evaluate k-NN accuracy for each k and report the best",
		Long: `
Shuffles the dataset once, holds out a test fraction, and scores a k-NN
classifier on it for every candidate k.

	$ knnsweep sweep -data iris/iris.data -ks 1,3,5,7 -seed 42
`,
		Flag: *flag.NewFlagSet("sweep", flag.ExitOnError),
	}
	opts.register(&cmd.Flag)
	cmd.Run = func(_ *commander.Command, _ []string) error {
		cfg, err := opts.load()
		if err != nil {
			return err
		}
		return runSweep(context.Background(), cfg, newLogger(cfg.LogLevel), os.Stdout)
	}
	return cmd
}

// stdin is read when the dataset path is "-".
var stdin io.Reader = os.Stdin

func readDataset(cfg config.Config, opts data.Options) (data.Dataset, error) {
	if cfg.Dataset == "-" {
		return data.ParseCSV(stdin, opts)
	}
	if !cfg.Strict {
		return data.ReadFile(cfg.Dataset, opts)
	}
	f, err := os.Open(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return data.ParseCSV(f, opts)
}

func loadDataset(cfg config.Config, log zerolog.Logger) (data.Dataset, error) {
	opts := cfg.DataOptions()
	opts.Logger = log
	ds, err := readDataset(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", cfg.Dataset, err)
	}
	if len(ds) == 0 {
		return nil, fmt.Errorf("%w: no samples in %s", data.ErrDatasetTooSmall, cfg.Dataset)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	log.Debug().Str("path", cfg.Dataset).Int("samples", len(ds)).Strs("classes", ds.Classes()).Msg("dataset loaded")
	return ds, nil
}

func runSweep(ctx context.Context, cfg config.Config, log zerolog.Logger, w io.Writer) error {
	start := time.Now()
	ds, err := loadDataset(cfg, log)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug().Int64("seed", seed).Msg("shuffling")
	split, err := loader.TrainTestSplit(ds, cfg.TestFraction, loader.NewSource(seed))
	if err != nil {
		return err
	}
	sc, err := stats.NewScaler(cfg.Scaling)
	if err != nil {
		return err
	}
	if split, err = stats.ScaleSplit(sc, split); err != nil {
		return err
	}

	console := report.NewConsole(w)
	console.Header(filepath.Base(cfg.Dataset), split)

	sw := sweep.New(cfg.KValues...)
	sw.Workers = cfg.Workers
	sw.Logger = log
	res, err := sw.Run(ctx, split)
	if err != nil {
		return err
	}
	// report the whole run, loading included
	res.Elapsed = time.Since(start)
	console.Scores(res)

	best := model.NewKNN(res.Best.K)
	if err := best.Fit(split.Train); err != nil {
		return err
	}
	pred, err := best.Predict(split.Test.Features())
	if err != nil {
		return err
	}
	console.Classes(res.Best.K, model.NewConfusionMatrix(split.Test.Labels(), pred))

	if cfg.Plot != "" {
		if err := report.PlotAccuracy(res, cfg.Plot); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Plot).Msg("saved accuracy chart")
	}
	if cfg.History != "" {
		if err := record(ctx, cfg, seed, start, res, log); err != nil {
			return err
		}
	}
	return nil
}

func record(ctx context.Context, cfg config.Config, seed int64, start time.Time, res *sweep.Result, log zerolog.Logger) error {
	st, err := history.Open(ctx, cfg.History)
	if err != nil {
		return fmt.Errorf("open history %s: %w", cfg.History, err)
	}
	defer st.Close()
	id, err := st.Save(ctx, history.Run{
		StartedAt:    start,
		Dataset:      cfg.Dataset,
		Seed:         seed,
		TestFraction: cfg.TestFraction,
		Scaling:      cfg.Scaling,
		Result:       *res,
	})
	if err != nil {
		return err
	}
	log.Info().Str("run", id).Str("path", cfg.History).Msg("recorded sweep")
	return nil
}
