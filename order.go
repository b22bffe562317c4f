package vorobox

const defaultOrderSize = 4096

// ParticleOrder records the Handle of every particle put into a container
// through PutOrdered or ImportOrdered, in the order they were inserted. The
// container only ever appends to it.
type ParticleOrder struct {
	o []Handle
}

// NewParticleOrder creates an empty ParticleOrder with room for size
// entries. A non-positive size picks a default.
func NewParticleOrder(size int) *ParticleOrder {
	if size <= 0 {
		size = defaultOrderSize
	}
	return &ParticleOrder{make([]Handle, 0, size)}
}

// Add records that a particle was stored in slot q of block ijk.
func (vo *ParticleOrder) Add(ijk, q int) {
	vo.o = append(vo.o, Handle{ijk, q})
}

// Len returns the number of recorded insertions.
func (vo *ParticleOrder) Len() int { return len(vo.o) }

// At returns the i-th recorded Handle.
func (vo *ParticleOrder) At(i int) Handle { return vo.o[i] }
