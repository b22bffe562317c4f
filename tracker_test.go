package vorobox

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkTracker(t *testing.T, tr *Tracker) {
	assert.Equal(t, tr.Len(), tr.c.Total())
	for id, h := range tr.handles {
		assert.Equal(t, id, tr.c.ID(h), "handle %+v", h)
	}
}

func TestTracker(t *testing.T) {
	d := unitDomain(t, 2, false)
	c := NewContainer(d, 1)
	tr := NewTracker(c)

	for id, x := range []float64{0.1, 0.2, 0.3, 0.9} {
		ok, err := tr.Add(id, x, 0.1, 0.1)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := tr.Add(10, 1.5, 0.1, 0.1)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = tr.Add(2, 0.4, 0.4, 0.4)
	assert.True(t, errors.Is(err, ErrDuplicateID))
	assert.Equal(t, 4, tr.Len())
	checkTracker(t, tr)

	assert.True(t, tr.Delete(0))
	assert.False(t, tr.Delete(0))
	checkTracker(t, tr)

	assert.True(t, tr.MoveTo(1, 0.8, 0.1, 0.1))
	h, ok := tr.Handle(1)
	require.True(t, ok)
	assert.Equal(t, 1, h.Block)
	checkTracker(t, tr)

	assert.False(t, tr.MoveTo(2, 0.5, 2, 0.1))
	_, ok = tr.Handle(2)
	assert.False(t, ok)
	assert.False(t, tr.MoveTo(2, 0.5, 0.5, 0.5))
	checkTracker(t, tr)

	assert.Panics(t, func() { NewTracker(c) })
}

func TestTrackerRandom(t *testing.T) {
	d := unitDomain(t, 3, true)
	tr := NewTracker(NewContainer(d, 1))
	rng := rand.New(rand.NewSource(99))

	for step := 0; step < 3000; step++ {
		id := rng.Intn(100)
		x, y, z := rng.Float64(), rng.Float64(), 2*rng.Float64()-0.5
		switch rng.Intn(3) {
		case 0:
			tr.Add(id, x, y, z)
		case 1:
			tr.Delete(id)
		case 2:
			tr.MoveTo(id, x, y, z)
		}
	}
	checkTracker(t, tr)
}
