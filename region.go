package vorobox

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// RegionCount is the number of particles stored in one block.
type RegionCount struct {
	I        int `csv:"i"`
	J        int `csv:"j"`
	K        int `csv:"k"`
	Count    int `csv:"count"`
	Capacity int `csv:"capacity"`
}

// RegionCounts returns the particle count of every block in x-major order.
func (c *containerBase) RegionCounts() []RegionCount {
	out := make([]RegionCount, len(c.blocks))
	for ijk := range c.blocks {
		i, j, k := c.Coords(ijk)
		out[ijk] = RegionCount{
			I: i, J: j, K: k,
			Count:    c.blocks[ijk].co,
			Capacity: len(c.blocks[ijk].ids),
		}
	}
	return out
}

// WriteRegionCount writes one line per block giving the number of particles
// stored in it.
func (c *containerBase) WriteRegionCount(w io.Writer) error {
	for _, rc := range c.RegionCounts() {
		_, err := fmt.Fprintf(w, "Region (%d,%d,%d): %d particles\n",
			rc.I, rc.J, rc.K, rc.Count)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteRegionCSV writes the block counts as a CSV table with a header.
func (c *containerBase) WriteRegionCSV(w io.Writer) error {
	if err := gocsv.Marshal(c.RegionCounts(), w); err != nil {
		return fmt.Errorf("writing region counts: %w", err)
	}
	return nil
}
