package vorobox

import (
	"math"

	"github.com/phil-mansfield/vorobox/geom"
)

// OverlapInBlock looks for a particle other than except which is closer
// than sqrt(thresholdSq) to (x, y, z), searching only the block that
// (x, y, z) falls in. The first match in storage order is returned, so
// which of several close particles is found is arbitrary.
func (c *containerBase) OverlapInBlock(
	x, y, z, thresholdSq float64, except int,
) (int, bool) {
	ijk, xr, ok := c.Locate([3]float64{x, y, z})
	if !ok {
		return -1, false
	}
	return c.scanBlock(ijk, xr, thresholdSq, except)
}

// OverlapInDomain is OverlapInBlock, except that neighboring blocks are also
// searched along every axis where (x, y, z) is within sqrt(thresholdSq) of
// a block boundary. Across periodic boundaries the nearest image of each
// particle is used.
//
// Only one neighbor per axis is checked, so thresholdSq should be smaller
// than the squared block width. Larger thresholds can miss particles.
func (c *containerBase) OverlapInDomain(
	x, y, z, thresholdSq float64, except int,
) (int, bool) {
	x0 := [3]float64{x, y, z}

	var offs [3][2]int
	n := [3]int{1, 1, 1}
	for i := 0; i < 3; i++ {
		d := seamOffset(x0[i]-c.Min[i], c.BlockWidth[i])
		if d*d < thresholdSq {
			if d < 0 {
				offs[i][1] = +1
			} else {
				offs[i][1] = -1
			}
			n[i]++
		}
	}

	for i := 0; i < n[0]; i++ {
		for j := 0; j < n[1]; j++ {
			for k := 0; k < n[2]; k++ {
				off := [3]int{offs[0][i], offs[1][j], offs[2][k]}
				ijk, xr, ok := c.LocateWithOffset(x0, off)
				if !ok {
					continue
				}
				if id, ok := c.scanBlock(ijk, xr, thresholdSq, except); ok {
					return id, true
				}
			}
		}
	}
	return -1, false
}

// seamOffset returns the signed distance from dx to the nearest multiple of
// w, in [-w/2, w/2).
func seamOffset(dx, w float64) float64 {
	m := math.Mod(dx+w/2, w)
	if m < 0 {
		m += w
	}
	return m - w/2
}

func (c *containerBase) scanBlock(
	ijk int, x [3]float64, thresholdSq float64, except int,
) (int, bool) {
	b := &c.blocks[ijk]
	for q := 0; q < b.co; q++ {
		if b.ids[q] == except {
			continue
		}
		p := b.p[c.ps*q:]
		dx, dy, dz := p[0]-x[0], p[1]-x[1], p[2]-x[2]
		if dx*dx+dy*dy+dz*dz < thresholdSq {
			return b.ids[q], true
		}
	}
	return -1, false
}

// PointInside returns true if (x, y, z) is inside the domain bounds and
// every wall.
func (c *containerBase) PointInside(x, y, z float64) bool {
	return c.Inside(x, y, z) && c.PointInsideWalls(x, y, z)
}

// ParticleRecord identifies the particle found by a CellLocator.
type ParticleRecord struct {
	Found       bool
	Block, Slot int
	// Offset is the block displacement of the particle's image relative to
	// the block that the search started from. Along periodic axes it may
	// point outside the grid.
	Offset [3]int
}

// CellLocator is implemented by Voronoi engines which can find the cell
// containing a point.
type CellLocator interface {
	// FindVoronoiCell searches for the particle whose cell contains x, which
	// lies in block ijk with block coordinates ci. The second result is the
	// engine's own search radius and is not interpreted by the caller.
	FindVoronoiCell(x [3]float64, ci [3]int, ijk int) (ParticleRecord, float64)
}

// Owner is a particle whose Voronoi cell contains a query point.
type Owner struct {
	ID int
	// Pos is the position of the particle in the same periodic image as the
	// query point, which can be outside the primary domain.
	Pos [3]float64
}

// FindVoronoiCell returns the particle whose Voronoi cell contains
// (x, y, z), as determined by loc. Walls are not considered. false is
// returned if the point cannot be mapped into the domain or the container
// is empty.
func (c *containerBase) FindVoronoiCell(
	loc CellLocator, x, y, z float64,
) (Owner, bool) {
	r, ok := c.Remap([3]float64{x, y, z})
	if !ok {
		return Owner{}, false
	}

	w, _ := loc.FindVoronoiCell(r.Pos, r.Cell, r.Block)
	if !w.Found {
		return Owner{}, false
	}

	// The image that the point was remapped out of and the image that the
	// engine found the particle in both contribute.
	image := r.Image
	for i := 0; i < 3; i++ {
		if !c.Periodic[i] {
			continue
		}
		ci := r.Cell[i] + w.Offset[i]
		if ci < 0 || ci >= c.Width[i] {
			image[i] += geom.StepDiv(ci, c.Width[i])
		}
	}

	h := Handle{w.Block, w.Slot}
	p := c.Pos(h)
	o := Owner{ID: c.ID(h)}
	for i := 0; i < 3; i++ {
		o.Pos[i] = p[i] + float64(image[i])*c.BoxLength(i)
	}
	return o, true
}
