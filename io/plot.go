package io

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveOutline draws the x-y projection of a domain's edges and of the points
// (xs[i], ys[i]) to fname. The image format is chosen from the extension of
// fname, e.g. ".png" or ".svg".
func SaveOutline(
	fname, title string, edges [12][2]r3.Vec, xs, ys []float64,
) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("Given %d x values, but %d y values.",
			len(xs), len(ys))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	for _, e := range edges {
		line, err := plotter.NewLine(plotter.XYs{
			{X: e[0].X, Y: e[0].Y}, {X: e[1].X, Y: e[1].Y},
		})
		if err != nil {
			return err
		}
		line.Width = vg.Points(2)
		p.Add(line)
	}

	if len(xs) > 0 {
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Color = color.RGBA{B: 200, A: 255}
		p.Add(sc)
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, fname)
}
