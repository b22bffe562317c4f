package vorobox

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	initWallSize = 8
	maxWallSize  = 2048
)

// ErrWallMemoryExceeded is carried by the panic raised when a WallList would
// grow past its limit.
var ErrWallMemoryExceeded = errors.New(
	"wall memory allocation exceeded absolute maximum",
)

// Wall is a boundary which cuts away part of the domain.
type Wall interface {
	// PointInside returns true if (x, y, z) is on the kept side of the wall.
	PointInside(x, y, z float64) bool
}

type wallRef struct {
	w     Wall
	owned bool
}

// WallList is a growable list of walls. Walls added with AddWall belong to
// the list and are released by Close. Walls added through AddWalls are only
// referenced: they stay owned by the list they were copied from.
//
// The zero value is an empty list.
type WallList struct {
	walls []wallRef
}

// AddWall appends a wall that the list owns.
func (wl *WallList) AddWall(w Wall) {
	wl.add(wallRef{w, true})
}

// AddWalls appends references to every wall in other. Ownership is not
// transferred.
func (wl *WallList) AddWalls(other *WallList) {
	for _, ref := range other.walls {
		wl.add(wallRef{ref.w, false})
	}
}

func (wl *WallList) add(ref wallRef) {
	if wl.walls == nil {
		wl.walls = make([]wallRef, 0, initWallSize)
	} else if len(wl.walls) == cap(wl.walls) {
		wl.increaseWallMemory()
	}
	wl.walls = append(wl.walls, ref)
}

// increaseWallMemory doubles the capacity of the list.
func (wl *WallList) increaseWallMemory() {
	size := 2 * cap(wl.walls)
	if size > maxWallSize {
		panic(fmt.Errorf("%w: %d walls requested, limit is %d",
			ErrWallMemoryExceeded, size, maxWallSize))
	}
	walls := make([]wallRef, len(wl.walls), size)
	copy(walls, wl.walls)
	wl.walls = walls
}

// Walls returns the number of walls in the list.
func (wl *WallList) Walls() int { return len(wl.walls) }

// PointInsideWalls returns true if (x, y, z) is inside every wall.
func (wl *WallList) PointInsideWalls(x, y, z float64) bool {
	for _, ref := range wl.walls {
		if !ref.w.PointInside(x, y, z) {
			return false
		}
	}
	return true
}

// Close releases every owned wall which implements io.Closer and empties
// the list. The first error encountered is returned, but every wall is
// still released.
func (wl *WallList) Close() error {
	var err error
	for _, ref := range wl.walls {
		if !ref.owned {
			continue
		}
		if c, ok := ref.w.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}
	wl.walls = nil
	return err
}

// WallSphere keeps the inside of a sphere.
type WallSphere struct {
	Center r3.Vec
	Radius float64
}

// PointInside implements Wall.
func (w *WallSphere) PointInside(x, y, z float64) bool {
	d := r3.Sub(r3.Vec{X: x, Y: y, Z: z}, w.Center)
	return r3.Norm2(d) < w.Radius*w.Radius
}

// WallPlane keeps the half-space of points p with Normal . p <= Offset.
type WallPlane struct {
	Normal r3.Vec
	Offset float64
}

// PointInside implements Wall.
func (w *WallPlane) PointInside(x, y, z float64) bool {
	return r3.Dot(w.Normal, r3.Vec{X: x, Y: y, Z: z}) <= w.Offset
}
