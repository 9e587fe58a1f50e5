package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/model"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/sweep"
)

var result = &sweep.Result{
	Scores:  []sweep.Score{{K: 1, Accuracy: 93.333}, {K: 3, Accuracy: 97.777}, {K: 5, Accuracy: 95.5}},
	Best:    sweep.Score{K: 3, Accuracy: 97.777},
	Elapsed: 1500 * time.Millisecond,
}

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestConsoleScores(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Scores(result)
	out := buf.String()
	assert.Contains(t, out, "k = 1 | Accuracy: 93.33%\n")
	assert.Contains(t, out, "k = 5 | Accuracy: 95.50%\n")
	assert.Contains(t, out, "Best k: 3 | Max accuracy: 97.78%")
	assert.Contains(t, out, "Elapsed: 1.500 seconds")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("k = 1 ")), bytes.Index(buf.Bytes(), []byte("k = 3 ")))
}

func TestConsoleHeader(t *testing.T) {
	var buf bytes.Buffer
	split := data.Split{
		Test:  data.Dataset{{Features: []float64{1, 2}, Label: "a"}},
		Train: data.Dataset{{Features: []float64{1, 2}, Label: "a"}, {Features: []float64{3, 4}, Label: "b"}},
	}
	NewConsole(&buf).Header("iris.data", split)
	assert.Contains(t, buf.String(), "k-NN classification on iris.data")
	assert.Contains(t, buf.String(), "test: 1 samples | train: 2 samples | features: 2")
}

func TestConsoleClasses(t *testing.T) {
	var buf bytes.Buffer
	cm := model.NewConfusionMatrix([]string{"b", "a", "a"}, []string{"b", "a", "b"})
	NewConsole(&buf).Classes(3, cm)
	out := buf.String()
	assert.Contains(t, out, "Per-class results for k = 3")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("  a ")), bytes.Index(buf.Bytes(), []byte("  b ")))
	assert.Contains(t, out, "recall 0.50")
}

func TestConsolePrediction(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Prediction([]float64{5.1, 3.5}, 3, "Iris-setosa")
	assert.Equal(t, "[5.1 3.5] (k = 3) -> Iris-setosa\n", buf.String())
}

func TestPlotAccuracy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accuracy.png")
	require.NoError(t, PlotAccuracy(result, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
