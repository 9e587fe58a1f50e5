package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gonuts/flag"
	"github.com/rs/zerolog"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/config"
)

// options are the flags shared by every subcommand. Zero values leave the
// configuration file (or the defaults) in charge.
type options struct {
	configFile string
	dataset    string
	fraction   float64
	ks         string
	seed       int64
	workers    int
	scaling    string
	plot       string
	history    string
	verbose    bool
	strict     bool
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.configFile, "c", "", "YAML configuration file")
	fs.StringVar(&o.dataset, "data", "", "CSV dataset path, - for stdin")
	fs.Float64Var(&o.fraction, "fraction", 0, "fraction of samples held out for testing")
	fs.StringVar(&o.ks, "ks", "", "comma separated k values, e.g. 1,3,5")
	fs.Int64Var(&o.seed, "seed", 0, "shuffle seed (0 = random)")
	fs.IntVar(&o.workers, "workers", 0, "k values evaluated concurrently")
	fs.StringVar(&o.scaling, "scaling", "", "feature scaling: none, standard, minmax or robust")
	fs.StringVar(&o.plot, "plot", "", "write an accuracy chart to this PNG file")
	fs.StringVar(&o.history, "history", "", "SQLite file recording every sweep")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.BoolVar(&o.strict, "strict", false, "fail on malformed records instead of skipping them")
}

// load builds the effective configuration: defaults, then the YAML file, then flags.
func (o *options) load() (config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		var err error
		if cfg, err = config.Load(o.configFile); err != nil {
			return cfg, err
		}
	}
	if o.dataset != "" {
		cfg.Dataset = o.dataset
	}
	if o.fraction != 0 {
		cfg.TestFraction = o.fraction
	}
	if o.ks != "" {
		ks, err := parseKs(o.ks)
		if err != nil {
			return cfg, err
		}
		cfg.KValues = ks
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.workers != 0 {
		cfg.Workers = o.workers
	}
	if o.scaling != "" {
		cfg.Scaling = o.scaling
	}
	if o.plot != "" {
		cfg.Plot = o.plot
	}
	if o.history != "" {
		cfg.History = o.history
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if o.strict {
		cfg.Strict = true
	}
	return cfg, cfg.Validate()
}

func parseKs(s string) ([]int, error) {
	var ks []int
	for _, f := range strings.Split(s, ",") {
		k, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad k value %q: %w", f, err)
		}
		ks = append(ks, k)
	}
	return ks, nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad feature value %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).With().Timestamp().Logger()
}
