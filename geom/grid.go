/*package geom contains the integer block-grid arithmetic that the rest of
vorobox builds on.*/
package geom

import (
	"fmt"
	"math"
)

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 3D grid of blocks. Block coordinates run from 0 to Width - 1 on each axis.
type Grid struct {
	Width                [3]int
	Length, Area, Volume int
}

// Init initializes a Grid instance. All widths must be positive.
func (g *Grid) Init(width [3]int) {
	for i := 0; i < 3; i++ {
		if width[i] <= 0 {
			panic(fmt.Sprintf("Grid width %v must be positive on every axis.",
				width))
		}
	}

	g.Width = width
	g.Length = width[0]
	g.Area = width[0] * width[1]
	g.Volume = width[0] * width[1] * width[2]
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return x + y*g.Length + z*g.Area
}

// IdxCheck returns an index and true if the given coordinate are valid and
// false otherwise.
func (g *Grid) IdxCheck(x, y, z int) (idx int, ok bool) {
	if !g.BoundsCheck(x, y, z) {
		return -1, false
	}

	return g.Idx(x, y, z), true
}

// BoundsCheck returns true if the given coordinates are within the Grid and
// false otherwise.
func (g *Grid) BoundsCheck(x, y, z int) bool {
	return (0 <= x && 0 <= y && 0 <= z) &&
		(x < g.Width[0] && y < g.Width[1] && z < g.Width[2])
}

// Coords returns the x, y, z coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (x, y, z int) {
	return idx % g.Length, (idx % g.Area) / g.Length, idx / g.Area
}

// StepInt rounds a toward negative infinity. Truncation would put everything
// in (-1, 0) into block 0.
func StepInt(a float64) int {
	return int(math.Floor(a))
}

// StepMod computes the positive modulo a % b for b > 0.
func StepMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// StepDiv computes floor(a / b) for b > 0, so that
// a == b*StepDiv(a, b) + StepMod(a, b).
func StepDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return (a+1)/b - 1
}
