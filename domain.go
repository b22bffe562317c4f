package vorobox

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/vorobox/geom"
)

// ErrDomain is returned when a Domain is given inconsistent geometry.
var ErrDomain = errors.New("invalid domain")

// Domain is a rectangular box, optionally periodic along each axis, which
// has been split into a grid of blocks. It does not change after creation.
type Domain struct {
	geom.Grid

	Min, Max   [3]float64
	Periodic   [3]bool
	BlockWidth [3]float64

	// Inverse block widths.
	sp [3]float64
}

// Remapped is the result of mapping a position into the primary domain.
type Remapped struct {
	// Pos is the position after periodic images were removed.
	Pos [3]float64
	// Image is the number of box lengths that were removed along each axis:
	// Pos + Image*BoxLength is the original position.
	Image [3]int
	// Cell is the block coordinate of Pos and Block is its grid index.
	Cell  [3]int
	Block int
}

// NewDomain creates a Domain spanning [min, max] which is split into
// blocks[0] x blocks[1] x blocks[2] blocks.
func NewDomain(
	min, max [3]float64, blocks [3]int, periodic [3]bool,
) (*Domain, error) {
	for i := 0; i < 3; i++ {
		if blocks[i] <= 0 {
			return nil, fmt.Errorf("%w: %c axis has %d blocks, but needs a "+
				"positive number", ErrDomain, axisName(i), blocks[i])
		} else if !(max[i] > min[i]) {
			return nil, fmt.Errorf("%w: %c axis has bounds [%g, %g]",
				ErrDomain, axisName(i), min[i], max[i])
		}
	}

	d := &Domain{Min: min, Max: max, Periodic: periodic}
	d.Grid.Init(blocks)
	for i := 0; i < 3; i++ {
		d.BlockWidth[i] = (max[i] - min[i]) / float64(blocks[i])
		d.sp[i] = float64(blocks[i]) / (max[i] - min[i])
	}
	return d, nil
}

func axisName(i int) byte { return "xyz"[i] }

// NXYZ returns the total number of blocks.
func (d *Domain) NXYZ() int { return d.Volume }

// BoxLength returns the width of the domain along the given axis.
func (d *Domain) BoxLength(axis int) float64 { return d.Max[axis] - d.Min[axis] }

// Locate finds the block that x should be stored in. Along periodic axes
// x is wrapped into the primary domain and the wrapped position is returned.
// ok is false if x lies outside a non-periodic axis.
func (d *Domain) Locate(x [3]float64) (ijk int, remapped [3]float64, ok bool) {
	return d.LocateWithOffset(x, [3]int{})
}

// LocateWithOffset is Locate, except that the block containing x is shifted
// by off before wrapping. This is used to probe the neighboring periodic
// images of a position.
func (d *Domain) LocateWithOffset(
	x [3]float64, off [3]int,
) (ijk int, remapped [3]float64, ok bool) {
	var c [3]int
	for i := 0; i < 3; i++ {
		c[i] = geom.StepInt((x[i]-d.Min[i])*d.sp[i]) + off[i]
		if !d.Periodic[i] {
			continue
		}

		l := geom.StepMod(c[i], d.Width[i])
		if l != c[i] {
			x[i] += d.BlockWidth[i] * float64(l-c[i])
			if off[i] == 0 {
				l, x[i] = d.fold(i, x[i])
			}
		}
		c[i] = l
	}

	ijk, ok = d.IdxCheck(c[0], c[1], c[2])
	return ijk, x, ok
}

// fold finds the block of a freshly wrapped coordinate. Rounding in the wrap
// can leave x on Max or just under Min, and both are stored at Min so that
// the stored position maps back to the block holding it.
func (d *Domain) fold(i int, x float64) (int, float64) {
	c := geom.StepInt((x - d.Min[i]) * d.sp[i])
	if c < 0 || c >= d.Width[i] {
		return 0, d.Min[i]
	}
	return c, x
}

// Remap maps x into the primary domain and records how many periodic images
// were crossed on the way. It returns false if x lies outside a non-periodic
// axis.
func (d *Domain) Remap(x [3]float64) (Remapped, bool) {
	r := Remapped{Pos: x}
	for i := 0; i < 3; i++ {
		c := geom.StepInt((x[i] - d.Min[i]) * d.sp[i])
		if c < 0 || c >= d.Width[i] {
			if !d.Periodic[i] {
				return Remapped{Block: -1}, false
			}
			r.Image[i] = geom.StepDiv(c, d.Width[i])
			r.Pos[i] -= float64(r.Image[i]) * d.BoxLength(i)
			c -= r.Image[i] * d.Width[i]
		}
		r.Cell[i] = c
	}
	r.Block = d.Idx(r.Cell[0], r.Cell[1], r.Cell[2])
	return r, true
}

// Inside returns true if (x, y, z) is inside the closed domain bounds.
func (d *Domain) Inside(x, y, z float64) bool {
	return !(x < d.Min[0] || x > d.Max[0] ||
		y < d.Min[1] || y > d.Max[1] ||
		z < d.Min[2] || z > d.Max[2])
}

// Edges returns the twelve edges of the domain.
func (d *Domain) Edges() [12][2]r3.Vec {
	ax, ay, az := d.Min[0], d.Min[1], d.Min[2]
	bx, by, bz := d.Max[0], d.Max[1], d.Max[2]
	v := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

	return [12][2]r3.Vec{
		{v(ax, ay, az), v(bx, ay, az)}, {v(ax, by, az), v(bx, by, az)},
		{v(ax, by, bz), v(bx, by, bz)}, {v(ax, ay, bz), v(bx, ay, bz)},
		{v(ax, ay, az), v(ax, by, az)}, {v(bx, ay, az), v(bx, by, az)},
		{v(bx, ay, bz), v(bx, by, bz)}, {v(ax, ay, bz), v(ax, by, bz)},
		{v(ax, ay, az), v(ax, ay, bz)}, {v(bx, ay, az), v(bx, ay, bz)},
		{v(bx, by, az), v(bx, by, bz)}, {v(ax, by, az), v(ax, by, bz)},
	}
}

// DrawGnuplot writes an outline of the domain in gnuplot format.
func (d *Domain) DrawGnuplot(w io.Writer) error {
	ax, ay, az := d.Min[0], d.Min[1], d.Min[2]
	bx, by, bz := d.Max[0], d.Max[1], d.Max[2]

	_, err := fmt.Fprintf(w,
		"%g %g %g\n%g %g %g\n%g %g %g\n%g %g %g\n"+
			"%g %g %g\n%g %g %g\n%g %g %g\n%g %g %g\n"+
			"%g %g %g\n\n%g %g %g\n%g %g %g\n\n"+
			"%g %g %g\n%g %g %g\n\n%g %g %g\n%g %g %g\n\n",
		ax, ay, az, bx, ay, az, bx, by, az, ax, by, az,
		ax, by, bz, bx, by, bz, bx, ay, bz, ax, ay, bz,
		ax, by, bz, ax, ay, az, ax, ay, bz,
		bx, ay, az, bx, ay, bz, bx, by, az, bx, by, bz,
	)
	return err
}

// DrawPOV writes an outline of the domain in POV-Ray format. Edges are
// cylinders and corners are spheres, both of radius rr.
func (d *Domain) DrawPOV(w io.Writer) error {
	for _, e := range d.Edges() {
		_, err := fmt.Fprintf(w, "cylinder{<%g,%g,%g>,<%g,%g,%g>,rr}\n",
			e[0].X, e[0].Y, e[0].Z, e[1].X, e[1].Y, e[1].Z)
		if err != nil {
			return err
		}
	}

	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				x := [3]float64{d.Min[0], d.Min[1], d.Min[2]}
				if i == 1 {
					x[0] = d.Max[0]
				}
				if j == 1 {
					x[1] = d.Max[1]
				}
				if k == 1 {
					x[2] = d.Max[2]
				}
				_, err := fmt.Fprintf(w, "sphere{<%g,%g,%g>,rr}\n",
					x[0], x[1], x[2])
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
