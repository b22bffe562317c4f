/*package vorobox stores particles in a block grid covering a rectangular,
optionally periodic, box and answers point-location and proximity queries
against it. Voronoi cell construction itself is left to an external engine
which reads the block storage directly.*/
package vorobox

import (
	"errors"
	"fmt"
	"log"
)

const (
	// DefaultInitMem is the number of particles each block has room for
	// before its first reallocation.
	DefaultInitMem = 8
	// DefaultMaxMemory is the absolute limit on the number of particles a
	// single block may allocate space for.
	DefaultMaxMemory = 1 << 24
)

// ErrMemoryExceeded is carried by the panic raised when a block would grow
// past its container's MaxMemory. There is no way to recover the insertion:
// the limit only exists to stop runaway input.
var ErrMemoryExceeded = errors.New("absolute maximum memory allocation exceeded")

// Handle is the location of a particle inside a container. It is
// invalidated by removals and moves of other particles in the same block;
// see Relocation.
type Handle struct {
	Block, Slot int
}

// Unplaced is the Handle of a particle which is not stored in a container.
var Unplaced = Handle{-1, -1}

// Placed returns true if h refers to a location inside a container.
func (h Handle) Placed() bool { return h.Block >= 0 && h.Slot >= 0 }

// block is the storage for one grid block. len(ids) is the block's capacity
// and p holds stride floats for each slot. Only the first co slots are live.
type block struct {
	ids []int
	p   []float64
	co  int
}

// containerBase is the block storage arena shared by Container and
// PolyContainer.
type containerBase struct {
	*Domain
	WallList

	blocks []block
	ps     int

	// MaxMemory is the largest capacity a block may grow to.
	MaxMemory int
	// Log receives out-of-bounds and reallocation reports. Nothing is
	// reported if it is nil.
	Log *log.Logger
}

func (c *containerBase) init(d *Domain, initMem, ps int) {
	if initMem <= 0 {
		initMem = DefaultInitMem
	}

	c.Domain = d
	c.ps = ps
	c.MaxMemory = DefaultMaxMemory
	c.blocks = make([]block, d.NXYZ())
	for i := range c.blocks {
		c.blocks[i].ids = make([]int, initMem)
		c.blocks[i].p = make([]float64, ps*initMem)
	}
}

// Container stores particles as positions.
type Container struct {
	containerBase
}

// PolyContainer stores particles as positions with radii, for use with
// Laguerre (radical) tessellations.
type PolyContainer struct {
	containerBase
	// MaxRadius is the largest radius inserted since the last Clear.
	MaxRadius float64
}

// NewContainer creates a Container over d with room for initMem particles
// in each block. A non-positive initMem uses DefaultInitMem.
func NewContainer(d *Domain, initMem int) *Container {
	c := &Container{}
	c.init(d, initMem, 3)
	return c
}

// NewPolyContainer creates a PolyContainer over d with room for initMem
// particles in each block. A non-positive initMem uses DefaultInitMem.
func NewPolyContainer(d *Domain, initMem int) *PolyContainer {
	c := &PolyContainer{}
	c.init(d, initMem, 4)
	return c
}

// Stride returns the number of floats stored per particle: 3 for Container,
// 4 for PolyContainer.
func (c *containerBase) Stride() int { return c.ps }

// Count returns the number of particles in block ijk.
func (c *containerBase) Count(ijk int) int { return c.blocks[ijk].co }

// Capacity returns the number of particles block ijk has room for.
func (c *containerBase) Capacity(ijk int) int { return len(c.blocks[ijk].ids) }

// Total returns the number of particles in the container.
func (c *containerBase) Total() int {
	n := 0
	for i := range c.blocks {
		n += c.blocks[i].co
	}
	return n
}

// ID returns the ID of the particle at h.
func (c *containerBase) ID(h Handle) int {
	c.checkHandle(h)
	return c.blocks[h.Block].ids[h.Slot]
}

// Pos returns the stored (primary domain) position of the particle at h.
func (c *containerBase) Pos(h Handle) [3]float64 {
	c.checkHandle(h)
	p := c.blocks[h.Block].p[c.ps*h.Slot:]
	return [3]float64{p[0], p[1], p[2]}
}

// Radius returns the radius of the particle at h.
func (c *PolyContainer) Radius(h Handle) float64 {
	c.checkHandle(h)
	return c.blocks[h.Block].p[4*h.Slot+3]
}

func (c *containerBase) checkHandle(h Handle) {
	if h.Block < 0 || h.Block >= len(c.blocks) ||
		h.Slot < 0 || h.Slot >= c.blocks[h.Block].co {
		panic(fmt.Sprintf("Handle %+v does not refer to a stored particle.", h))
	}
}

// Clear removes every particle. Block capacities are kept.
func (c *Container) Clear() { c.clear() }

// Clear removes every particle and resets MaxRadius to zero.
func (c *PolyContainer) Clear() {
	c.clear()
	c.MaxRadius = 0
}

func (c *containerBase) clear() {
	for i := range c.blocks {
		c.blocks[i].co = 0
	}
}

// ensureRoom grows block ijk if it has no free slot.
func (c *containerBase) ensureRoom(ijk int) {
	if c.blocks[ijk].co == len(c.blocks[ijk].ids) {
		c.grow(ijk)
	}
}

// grow doubles the capacity of block i. It panics if this would pass
// MaxMemory.
func (c *containerBase) grow(i int) {
	b := &c.blocks[i]
	nmem := 2 * len(b.ids)
	if nmem > c.MaxMemory {
		panic(fmt.Errorf("%w: block %d would need room for %d particles, "+
			"limit is %d", ErrMemoryExceeded, i, nmem, c.MaxMemory))
	}
	if c.Log != nil {
		c.Log.Printf("Particle memory in block %d scaled up to %d", i, nmem)
	}

	ids := make([]int, nmem)
	copy(ids, b.ids[:b.co])
	p := make([]float64, c.ps*nmem)
	copy(p, b.p[:c.ps*b.co])
	b.ids, b.p = ids, p
}
