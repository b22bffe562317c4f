package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"strings"

	"github.com/phil-mansfield/table"
	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/vorobox"
	"github.com/phil-mansfield/vorobox/io"
)

func statsMain(con *io.ContainerConfig, c store, out *os.File) {
	log.Printf("Container holds %d particles", c.Total())
	if pc, ok := c.(*vorobox.PolyContainer); ok {
		log.Printf("Largest radius is %g", pc.MaxRadius)
	}

	var err error
	if strings.ToLower(path.Ext(con.Output)) == ".csv" {
		err = c.WriteRegionCSV(out)
	} else {
		err = c.WriteRegionCount(out)
	}
	if err != nil {
		log.Fatal(err.Error())
	}
}

func findMain(c store, pointsFile string, out *os.File) {
	cols, err := table.ReadTable(pointsFile, []int{0, 1, 2}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	xs, ys, zs := cols[0], cols[1], cols[2]

	loc := c.NearestLocator()
	missed := 0
	for i := range xs {
		r, ok := c.Remap([3]float64{xs[i], ys[i], zs[i]})
		if !ok || !c.PointInside(r.Pos[0], r.Pos[1], r.Pos[2]) {
			fmt.Fprintf(out, "%10.5g %10.5g %10.5g %10s\n",
				xs[i], ys[i], zs[i], "outside")
			missed++
			continue
		}

		o, ok := c.FindVoronoiCell(loc, xs[i], ys[i], zs[i])
		if !ok {
			fmt.Fprintf(out, "%10.5g %10.5g %10.5g %10s\n",
				xs[i], ys[i], zs[i], "none")
			missed++
			continue
		}
		fmt.Fprintf(out, "%10.5g %10.5g %10.5g %10d %10.5g %10.5g %10.5g\n",
			xs[i], ys[i], zs[i], o.ID, o.Pos[0], o.Pos[1], o.Pos[2])
	}

	log.Printf("Located %d of %d points", len(xs)-missed, len(xs))
}

func overlapsMain(c store, threshold float64, out *os.File) {
	n := 0
	l := c.LoopAll()
	if l.Start() {
		for ok := true; ok; ok = l.Inc() {
			h := l.Handle()
			id, x := c.ID(h), c.Pos(h)
			other, found := c.OverlapInDomain(
				x[0], x[1], x[2], threshold*threshold, id,
			)
			if found {
				fmt.Fprintf(out, "%d %d\n", id, other)
				n++
			}
		}
	}

	log.Printf("%d of %d particles overlap another particle", n, c.Total())
}

func outlineMain(con *io.ContainerConfig, c store, out *os.File) {
	var err error
	switch con.Format {
	case "gnuplot":
		err = c.DrawGnuplot(out)
	case "pov":
		err = c.DrawPOV(out)
	case "pyplot":
		plotOutline(con, c)
	case "png", "svg":
		err = saveOutline(con, c)
	default:
		panic("Impossible")
	}
	if err != nil {
		log.Fatal(err.Error())
	}
}

// plotOutline draws the x-y projection of the domain and, if the input file
// exists, of the particles inside it.
func plotOutline(con *io.ContainerConfig, c store) {
	if con.Output == "" {
		log.Fatal("Format pyplot requires an Output file.")
	}

	plt.Reset()
	plt.Figure(plt.FigSize(8, 8))
	for _, e := range c.Edges() {
		plt.Plot(
			[]float64{e[0].X, e[1].X}, []float64{e[0].Y, e[1].Y},
			"k", plt.LW(2),
		)
	}

	if xs, ys := projectedParticles(con, c); len(xs) > 0 {
		plt.Plot(xs, ys, "ob")
	}

	pad := 0.05 * math.Max(con.XMax-con.XMin, con.YMax-con.YMin)
	plt.XLim(con.XMin-pad, con.XMax+pad)
	plt.YLim(con.YMin-pad, con.YMax+pad)
	plt.Title(fmt.Sprintf("%d x %d x %d blocks, %d particles",
		con.XBlocks, con.YBlocks, con.ZBlocks, c.Total()))
	plt.XLabel(`$X$`, plt.FontSize(16))
	plt.YLabel(`$Y$`, plt.FontSize(16))
	plt.SaveFig(con.Output)
	plt.Execute()
}

// saveOutline is plotOutline for the image formats that gonum/plot writes.
func saveOutline(con *io.ContainerConfig, c store) error {
	if con.Output == "" {
		log.Fatalf("Format %s requires an Output file.", con.Format)
	}
	xs, ys := projectedParticles(con, c)
	title := fmt.Sprintf("%d x %d x %d blocks, %d particles",
		con.XBlocks, con.YBlocks, con.ZBlocks, c.Total())
	return io.SaveOutline(con.Output, title, c.Edges(), xs, ys)
}

// projectedParticles reads the input file, if it exists, and returns the x
// and y coordinates of every stored particle.
func projectedParticles(
	con *io.ContainerConfig, c store,
) (xs, ys []float64) {
	if _, err := os.Stat(con.Input); err != nil {
		return nil, nil
	}
	loadParticles(con, c)

	xs, ys = make([]float64, 0, c.Total()), make([]float64, 0, c.Total())
	l := c.LoopAll()
	if l.Start() {
		for ok := true; ok; ok = l.Inc() {
			x := c.Pos(l.Handle())
			xs, ys = append(xs, x[0]), append(ys, x[1])
		}
	}
	return xs, ys
}
