// Package report prints sweep results to a terminal and draws them as a chart.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/data"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/model"
	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/sweep"
)

const rule = "-------------------------------------------------------"

// Console writes human-readable reports to W.
type Console struct {
	W     io.Writer
	title *color.Color
	best  *color.Color
}

func NewConsole(w io.Writer) *Console {
	return &Console{
		W:     w,
		title: color.New(color.Bold),
		best:  color.New(color.FgGreen, color.Bold),
	}
}

// Header describes the dataset and the split about to be swept.
func (c *Console) Header(name string, split data.Split) {
	fmt.Fprintln(c.W)
	fmt.Fprintln(c.W, rule)
	c.title.Fprintf(c.W, "k-NN classification on %s\n", name)
	fmt.Fprintln(c.W, rule)
	fmt.Fprintf(c.W, "test: %d samples | train: %d samples | features: %d\n\n",
		len(split.Test), len(split.Train), split.Train.Dim())
}

// Scores prints one line per k, then the best k and the elapsed time.
func (c *Console) Scores(res *sweep.Result) {
	for _, sc := range res.Scores {
		fmt.Fprintf(c.W, "k = %d | Accuracy: %.2f%%\n", sc.K, sc.Accuracy)
	}
	fmt.Fprintln(c.W)
	c.best.Fprintf(c.W, "Best k: %d | Max accuracy: %.2f%%\n", res.Best.K, res.Best.Accuracy)
	fmt.Fprintf(c.W, "\nElapsed: %.3f seconds\n", res.Elapsed.Seconds())
}

// Classes prints per-class precision and recall, labels sorted.
func (c *Console) Classes(k int, cm model.ConfusionMatrix) {
	labels := make(map[string]struct{})
	for truth, row := range cm {
		labels[truth] = struct{}{}
		for pred := range row {
			labels[pred] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(labels))
	for l := range labels {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)

	fmt.Fprintf(c.W, "\nPer-class results for k = %d\n", k)
	for _, l := range sorted {
		fmt.Fprintf(c.W, "  %-20s precision %.2f  recall %.2f\n", l, cm.Precision(l), cm.Recall(l))
	}
}

// Prediction prints the label predicted for one query.
func (c *Console) Prediction(query []float64, k int, label string) {
	fmt.Fprintf(c.W, "%v (k = %d) -> ", query, k)
	c.best.Fprintln(c.W, label)
}
