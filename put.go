package vorobox

// Relocation reports that a swap-and-pop moved another particle into a
// freed slot. Anything holding a Handle for particle ID must replace it
// with To.
type Relocation struct {
	ID int
	To Handle
}

// Put inserts a particle. Along periodic axes the position is wrapped into
// the primary domain. If the position lies outside a non-periodic axis
// nothing is stored and false is returned.
func (c *Container) Put(id int, x, y, z float64) (Handle, bool) {
	return c.put(nil, id, [3]float64{x, y, z}, 0)
}

// PutOrdered is Put, but the Handle of the particle is also appended to vo.
func (c *Container) PutOrdered(
	vo *ParticleOrder, id int, x, y, z float64,
) (Handle, bool) {
	return c.put(vo, id, [3]float64{x, y, z}, 0)
}

// Put inserts a particle with radius r. See Container.Put.
func (c *PolyContainer) Put(id int, x, y, z, r float64) (Handle, bool) {
	h, ok := c.put(nil, id, [3]float64{x, y, z}, r)
	if ok && r > c.MaxRadius {
		c.MaxRadius = r
	}
	return h, ok
}

// PutOrdered is Put, but the Handle of the particle is also appended to vo.
func (c *PolyContainer) PutOrdered(
	vo *ParticleOrder, id int, x, y, z, r float64,
) (Handle, bool) {
	h, ok := c.put(vo, id, [3]float64{x, y, z}, r)
	if ok && r > c.MaxRadius {
		c.MaxRadius = r
	}
	return h, ok
}

func (c *containerBase) put(
	vo *ParticleOrder, id int, x [3]float64, r float64,
) (Handle, bool) {
	ijk, xr, ok := c.Locate(x)
	if !ok {
		if c.Log != nil {
			c.Log.Printf("Out of bounds: (x,y,z)=(%g,%g,%g)", x[0], x[1], x[2])
		}
		return Unplaced, false
	}

	c.ensureRoom(ijk)
	h := c.appendTo(ijk, id, xr, r)
	if vo != nil {
		vo.Add(h.Block, h.Slot)
	}
	return h, true
}

// appendTo writes a particle into the first free slot of block ijk, which
// must already have room for it.
func (c *containerBase) appendTo(ijk, id int, x [3]float64, r float64) Handle {
	b := &c.blocks[ijk]
	q := b.co
	b.ids[q] = id
	c.setPos(b, q, x, r)
	b.co++
	return Handle{ijk, q}
}

func (c *containerBase) setPos(b *block, q int, x [3]float64, r float64) {
	p := b.p[c.ps*q : c.ps*(q+1)]
	p[0], p[1], p[2] = x[0], x[1], x[2]
	if c.ps == 4 {
		p[3] = r
	}
}

// Remove deletes the particle at h by moving the last particle in its block
// into its slot. If that moved a different particle, the returned
// Relocation says which one and the bool is true. Order within the block is
// not preserved.
func (c *containerBase) Remove(h Handle) (Relocation, bool) {
	c.checkHandle(h)

	b := &c.blocks[h.Block]
	last := b.co - 1
	b.co--
	if h.Slot == last {
		return Relocation{}, false
	}

	b.ids[h.Slot] = b.ids[last]
	copy(b.p[c.ps*h.Slot:c.ps*(h.Slot+1)], b.p[c.ps*last:c.ps*(last+1)])
	return Relocation{ID: b.ids[h.Slot], To: h}, true
}

// Move changes the position of the particle at h and returns its new
// Handle.
//
// If h is Unplaced the particle is inserted with the given id. If the new
// position is in the same block, only the coordinates change. Otherwise the
// particle is removed from its block and appended to the new one, which can
// relocate another particle (see Remove). If the new position cannot be
// stored, the particle is removed and Unplaced is returned.
func (c *Container) Move(
	h Handle, id int, x, y, z float64,
) (Handle, Relocation, bool) {
	return c.move(h, id, [3]float64{x, y, z}, 0)
}

// Move is Container.Move for particles with radius r.
func (c *PolyContainer) Move(
	h Handle, id int, x, y, z, r float64,
) (Handle, Relocation, bool) {
	nh, rel, moved := c.move(h, id, [3]float64{x, y, z}, r)
	if nh.Placed() && r > c.MaxRadius {
		c.MaxRadius = r
	}
	return nh, rel, moved
}

func (c *containerBase) move(
	h Handle, id int, x [3]float64, r float64,
) (Handle, Relocation, bool) {
	if !h.Placed() {
		nh, _ := c.put(nil, id, x, r)
		return nh, Relocation{}, false
	}
	c.checkHandle(h)

	ijk, x, ok := c.Locate(x)
	if !ok {
		rel, moved := c.Remove(h)
		return Unplaced, rel, moved
	}

	if ijk == h.Block {
		c.setPos(&c.blocks[ijk], h.Slot, x, r)
		return h, Relocation{}, false
	}

	// Make room first: a failed reallocation then leaves both blocks as
	// they were.
	c.ensureRoom(ijk)
	id = c.blocks[h.Block].ids[h.Slot]
	rel, moved := c.Remove(h)
	return c.appendTo(ijk, id, x, r), rel, moved
}
