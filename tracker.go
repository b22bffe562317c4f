package vorobox

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by Tracker.Add for an ID which is already
// stored.
var ErrDuplicateID = errors.New("duplicate particle ID")

// Tracker keeps the Handle of every particle in a Container up to date, so
// that particles can be addressed by ID instead of by Handle. Every change
// to the Container must go through the Tracker.
type Tracker struct {
	c       *Container
	handles map[int]Handle
}

// NewTracker creates a Tracker for c, which must be empty.
func NewTracker(c *Container) *Tracker {
	if c.Total() != 0 {
		panic(fmt.Sprintf("NewTracker given a Container which already "+
			"holds %d particles.", c.Total()))
	}
	return &Tracker{c, make(map[int]Handle)}
}

// Len returns the number of tracked particles.
func (t *Tracker) Len() int { return len(t.handles) }

// Handle returns the current Handle of a particle.
func (t *Tracker) Handle(id int) (Handle, bool) {
	h, ok := t.handles[id]
	return h, ok
}

// Add puts a particle into the Container. It returns false if the position
// is outside the domain.
func (t *Tracker) Add(id int, x, y, z float64) (bool, error) {
	if _, ok := t.handles[id]; ok {
		return false, fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	h, ok := t.c.Put(id, x, y, z)
	if ok {
		t.handles[id] = h
	}
	return ok, nil
}

// Delete removes a particle. It returns false if the ID is not tracked.
func (t *Tracker) Delete(id int) bool {
	h, ok := t.handles[id]
	if !ok {
		return false
	}
	delete(t.handles, id)
	t.relocate(t.c.Remove(h))
	return true
}

// MoveTo changes the position of a particle. It returns false if the ID is
// not tracked or if the new position is outside the domain, in which case
// the particle is removed.
func (t *Tracker) MoveTo(id int, x, y, z float64) bool {
	h, ok := t.handles[id]
	if !ok {
		return false
	}

	nh, rel, moved := t.c.Move(h, id, x, y, z)
	t.relocate(rel, moved)
	if !nh.Placed() {
		delete(t.handles, id)
		return false
	}
	t.handles[id] = nh
	return true
}

func (t *Tracker) relocate(rel Relocation, moved bool) {
	if moved {
		t.handles[rel.ID] = rel.To
	}
}
