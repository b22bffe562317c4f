package vorobox

// Loop walks over particles stored in a container. The usual pattern is
//
//	if l.Start() {
//		for ok := true; ok; ok = l.Inc() {
//			h := l.Handle()
//			...
//		}
//	}
//
// The container must not be modified during a walk.
type Loop interface {
	// Start moves to the first particle and returns false if there is none.
	Start() bool
	// Inc moves to the next particle and returns false when the walk is
	// over.
	Inc() bool
	// Handle returns the location of the current particle.
	Handle() Handle
}

// Cell is a computed Voronoi cell.
type Cell interface {
	Volume() float64
}

// CellComputer builds the Voronoi cell of the current particle of a Loop.
// The bool is false if the cell was removed entirely, e.g. by walls.
type CellComputer interface {
	ComputeCell(l Loop) (Cell, bool)
}

// LoopAll visits every particle in block order.
type LoopAll struct {
	c   *containerBase
	ijk int
	q   int
}

// LoopAll returns a Loop over every particle in the container.
func (c *containerBase) LoopAll() *LoopAll {
	return &LoopAll{c: c}
}

// Start implements Loop.
func (l *LoopAll) Start() bool {
	l.ijk, l.q = 0, 0
	return l.skipEmpty()
}

// Inc implements Loop.
func (l *LoopAll) Inc() bool {
	l.q++
	return l.skipEmpty()
}

// skipEmpty advances past exhausted blocks.
func (l *LoopAll) skipEmpty() bool {
	for l.ijk < len(l.c.blocks) && l.q >= l.c.blocks[l.ijk].co {
		l.ijk++
		l.q = 0
	}
	return l.ijk < len(l.c.blocks)
}

// Handle implements Loop.
func (l *LoopAll) Handle() Handle { return Handle{l.ijk, l.q} }

// LoopOrder visits particles in the order they were recorded in a
// ParticleOrder. Recorded Handles which no longer refer to a stored
// particle are skipped. Particles that were relocated since they were
// recorded are not tracked.
type LoopOrder struct {
	c  *containerBase
	vo *ParticleOrder
	i  int
}

// LoopOrder returns a Loop over the particles recorded in vo.
func (c *containerBase) LoopOrder(vo *ParticleOrder) *LoopOrder {
	return &LoopOrder{c: c, vo: vo}
}

// Start implements Loop.
func (l *LoopOrder) Start() bool {
	l.i = 0
	return l.skipStale()
}

// Inc implements Loop.
func (l *LoopOrder) Inc() bool {
	l.i++
	return l.skipStale()
}

func (l *LoopOrder) skipStale() bool {
	for ; l.i < l.vo.Len(); l.i++ {
		h := l.vo.At(l.i)
		if h.Block < len(l.c.blocks) && h.Slot < l.c.blocks[h.Block].co {
			return true
		}
	}
	return false
}

// Handle implements Loop.
func (l *LoopOrder) Handle() Handle { return l.vo.At(l.i) }

// ComputeAllCells computes the cell of every particle and discards the
// results. It returns the number of cells which were not removed entirely.
func (c *containerBase) ComputeAllCells(cc CellComputer) int {
	n := 0
	l := c.LoopAll()
	if l.Start() {
		for ok := true; ok; ok = l.Inc() {
			if _, ok := cc.ComputeCell(l); ok {
				n++
			}
		}
	}
	return n
}

// SumCellVolumes computes the cell of every particle and sums their
// volumes. Without walls this should equal the volume of the domain.
func (c *containerBase) SumCellVolumes(cc CellComputer) float64 {
	vol := 0.0
	l := c.LoopAll()
	if l.Start() {
		for ok := true; ok; ok = l.Inc() {
			if cell, ok := cc.ComputeCell(l); ok {
				vol += cell.Volume()
			}
		}
	}
	return vol
}
