package vorobox

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NearestLocator is a CellLocator which finds the owning particle by
// checking every stored particle and each of its neighboring periodic
// images. For a PolyContainer the power distance |x - p|^2 - r^2 is
// minimized instead, which gives the owner of the Laguerre cell.
//
// It runs in time linear in the number of particles and is intended for
// small containers and for checking faster engines.
type NearestLocator struct {
	c *containerBase
}

// NearestLocator returns a NearestLocator reading from the container.
func (c *containerBase) NearestLocator() *NearestLocator {
	return &NearestLocator{c}
}

// FindVoronoiCell implements CellLocator. The second result is the
// distance to the owning particle.
func (nl *NearestLocator) FindVoronoiCell(
	x [3]float64, ci [3]int, ijk int,
) (ParticleRecord, float64) {
	c := nl.c
	xv := r3.Vec{X: x[0], Y: x[1], Z: x[2]}

	var shifts [3][]int
	for i := 0; i < 3; i++ {
		if c.Periodic[i] {
			shifts[i] = []int{-1, 0, 1}
		} else {
			shifts[i] = []int{0}
		}
	}

	best := ParticleRecord{Block: -1, Slot: -1}
	bestDist, bestDist2 := math.Inf(+1), math.Inf(+1)

	for b := range c.blocks {
		bi, bj, bk := c.Coords(b)
		blk := &c.blocks[b]

		for q := 0; q < blk.co; q++ {
			p := blk.p[c.ps*q:]
			r2 := 0.0
			if c.ps == 4 {
				r2 = p[3] * p[3]
			}

			for _, si := range shifts[0] {
				for _, sj := range shifts[1] {
					for _, sk := range shifts[2] {
						pv := r3.Vec{
							X: p[0] + float64(si)*c.BoxLength(0),
							Y: p[1] + float64(sj)*c.BoxLength(1),
							Z: p[2] + float64(sk)*c.BoxLength(2),
						}
						d2 := r3.Norm2(r3.Sub(pv, xv))
						if d2-r2 >= bestDist {
							continue
						}

						bestDist, bestDist2 = d2-r2, d2
						best = ParticleRecord{
							Found: true, Block: b, Slot: q,
							Offset: [3]int{
								bi + si*c.Width[0] - ci[0],
								bj + sj*c.Width[1] - ci[1],
								bk + sk*c.Width[2] - ci[2],
							},
						}
					}
				}
			}
		}
	}

	if !best.Found {
		return best, 0
	}
	return best, math.Sqrt(bestDist2)
}
