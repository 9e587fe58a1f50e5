package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/config"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/model"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/report"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/stats"
)

func newPredictCmd() *commander.Command {
	opts := &options{}
	var k int
	cmd := &commander.Command{
		UsageLine: "predict [options] <feature>...",
		Short:     "classify one feature vector against the whole dataset",
		Long: `
Classifies the given feature values with k-NN, using every sample of the
dataset as training data.

	$ knnsweep predict -data iris/iris.data -k 5 5.9 3.0 5.1 1.8
`,
		Flag: *flag.NewFlagSet("predict", flag.ExitOnError),
	}
	opts.register(&cmd.Flag)
	cmd.Flag.IntVar(&k, "k", 3, "number of neighbours")
	cmd.Run = func(_ *commander.Command, args []string) error {
		cfg, err := opts.load()
		if err != nil {
			return err
		}
		query, err := parseFloats(args)
		if err != nil {
			return err
		}
		return runPredict(cfg, k, query, newLogger(cfg.LogLevel), os.Stdout)
	}
	return cmd
}

func runPredict(cfg config.Config, k int, query []float64, log zerolog.Logger, w io.Writer) error {
	ds, err := loadDataset(cfg, log)
	if err != nil {
		return err
	}
	if len(query) != ds.Dim() {
		return fmt.Errorf("%w: got %d feature values, dataset has %d", data.ErrInvalidArgument, len(query), ds.Dim())
	}

	train, q := ds, query
	sc, err := stats.NewScaler(cfg.Scaling)
	if err != nil {
		return err
	}
	if sc != nil {
		if err := sc.Fit(ds.Features()); err != nil {
			return err
		}
		X := sc.Transform(ds.Features())
		train = make(data.Dataset, len(ds))
		for i, s := range ds {
			train[i] = data.Sample{Features: X[i], Label: s.Label}
		}
		q = sc.Transform([][]float64{query})[0]
	}

	label, err := model.Predict(q, train, k)
	if err != nil {
		return err
	}
	report.NewConsole(w).Prediction(query, k, label)
	return nil
}
