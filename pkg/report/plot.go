package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/sweep"
)

// PlotAccuracy saves a line chart of accuracy by k, with the best k marked.
// The image format follows the file extension of filename.
func PlotAccuracy(res *sweep.Result, filename string) error {
	p := plot.New()
	p.Title.Text = "k-NN accuracy by k"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "accuracy (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	pts := make(plotter.XYs, len(res.Scores))
	for i, sc := range res.Scores {
		pts[i].X = float64(sc.K)
		pts[i].Y = sc.Accuracy
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("accuracy line: %w", err)
	}

	best, err := plotter.NewScatter(plotter.XYs{{X: float64(res.Best.K), Y: res.Best.Accuracy}})
	if err != nil {
		return fmt.Errorf("best marker: %w", err)
	}
	best.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
	best.GlyphStyle.Shape = draw.CrossGlyph{}
	best.GlyphStyle.Radius = vg.Points(6)

	p.Add(plotter.NewGrid(), line, points, best)
	p.Legend.Add("accuracy", line, points)
	p.Legend.Add(fmt.Sprintf("best k = %d", res.Best.K), best)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}
