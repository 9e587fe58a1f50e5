package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/config"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// writeBlobs writes an iris-shaped CSV with two well separated classes.
func writeBlobs(t *testing.T, n int) string {
	t.Helper()
	rng := rand.New(rand.NewSource(5))
	var b strings.Builder
	for i := 0; i < n; i++ {
		label, c := "Iris-setosa", 1.0
		if i%2 == 1 {
			label, c = "Iris-virginica", 6.0
		}
		fmt.Fprintf(&b, "%.2f,%.2f,%.2f,%.2f,%s\n",
			c+rng.Float64(), c+rng.Float64(), c+rng.Float64(), c+rng.Float64(), label)
	}
	path := filepath.Join(t.TempDir(), "iris.data")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Dataset = writeBlobs(t, 40)
	cfg.Seed = 42
	return cfg
}

func TestRunSweep(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scaling = "standard"
	cfg.Plot = filepath.Join(t.TempDir(), "acc.png")
	cfg.History = filepath.Join(t.TempDir(), "runs.db")

	var out bytes.Buffer
	require.NoError(t, runSweep(context.Background(), cfg, zerolog.Nop(), &out))
	s := out.String()
	assert.Contains(t, s, "test: 12 samples | train: 28 samples | features: 4")
	assert.Contains(t, s, "k = 1 | Accuracy: 100.00%")
	assert.Contains(t, s, "k = 15 | Accuracy:")
	assert.Contains(t, s, "Best k: 1 | Max accuracy: 100.00%")
	assert.FileExists(t, cfg.Plot)

	var hist bytes.Buffer
	require.NoError(t, runHistory(context.Background(), cfg.History, 5, &hist))
	assert.Contains(t, hist.String(), "seed=42")
	assert.Contains(t, hist.String(), "best k=1")
}

func TestRunSweepDatasetTooSmall(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset = writeBlobs(t, 4)
	err := runSweep(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{})
	assert.ErrorIs(t, err, data.ErrDatasetTooSmall)
}

func TestRunSweepKTooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.KValues = []int{1, 50}
	var out bytes.Buffer
	err := runSweep(context.Background(), cfg, zerolog.Nop(), &out)
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
	assert.NotContains(t, out.String(), "Best k")
}

func TestRunSweepMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset = filepath.Join(t.TempDir(), "absent.data")
	assert.Error(t, runSweep(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{}))
}

func TestRunPredict(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	require.NoError(t, runPredict(cfg, 3, []float64{6.5, 6.5, 6.5, 6.5}, zerolog.Nop(), &out))
	assert.Equal(t, "[6.5 6.5 6.5 6.5] (k = 3) -> Iris-virginica\n", out.String())

	cfg.Scaling = "minmax"
	out.Reset()
	require.NoError(t, runPredict(cfg, 1, []float64{1.2, 1.2, 1.2, 1.2}, zerolog.Nop(), &out))
	assert.Contains(t, out.String(), "Iris-setosa")

	err := runPredict(cfg, 1, []float64{1, 2}, zerolog.Nop(), &out)
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
}

func TestOptionsLoad(t *testing.T) {
	o := &options{ks: "2, 4,6", fraction: 0.25, scaling: "minmax", verbose: true}
	cfg, err := o.load()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, cfg.KValues)
	assert.Equal(t, 0.25, cfg.TestFraction)
	assert.Equal(t, "minmax", cfg.Scaling)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = (&options{ks: "1,x"}).load()
	assert.Error(t, err)
	_, err = (&options{fraction: 2}).load()
	assert.ErrorIs(t, err, data.ErrInvalidArgument)
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats([]string{"5.1", "3"})
	require.NoError(t, err)
	assert.Equal(t, []float64{5.1, 3}, got)
	_, err = parseFloats([]string{"abc"})
	assert.Error(t, err)
}

func TestRunSweepStrictRejectsMalformed(t *testing.T) {
	cfg := testConfig(t)
	f, err := os.OpenFile(cfg.Dataset, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("1.0,bad,1.0,1.0,Iris-setosa\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, runSweep(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{}))

	cfg.Strict = true
	err = runSweep(context.Background(), cfg, zerolog.Nop(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 41")
}

func TestRunSweepFromStdin(t *testing.T) {
	raw, err := os.ReadFile(writeBlobs(t, 40))
	require.NoError(t, err)
	stdin = bytes.NewReader(raw)
	t.Cleanup(func() { stdin = os.Stdin })

	cfg := config.Default()
	cfg.Dataset = "-"
	cfg.Seed = 42
	var out bytes.Buffer
	require.NoError(t, runSweep(context.Background(), cfg, zerolog.Nop(), &out))
	assert.Contains(t, out.String(), "test: 12 samples | train: 28 samples")
}

func TestOptionsStrict(t *testing.T) {
	cfg, err := (&options{strict: true}).load()
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
}
