package vorobox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func regionContainer(t *testing.T) *Container {
	d, err := NewDomain(
		[3]float64{0, 0, 0}, [3]float64{2, 1, 1}, [3]int{2, 1, 1}, [3]bool{},
	)
	require.NoError(t, err)
	c := NewContainer(d, 2)
	c.Put(0, 0.5, 0.5, 0.5)
	c.Put(1, 1.5, 0.5, 0.5)
	c.Put(2, 1.2, 0.5, 0.5)
	c.Put(3, 1.7, 0.5, 0.5)
	return c
}

func TestRegionCounts(t *testing.T) {
	c := regionContainer(t)
	want := []RegionCount{
		{I: 0, J: 0, K: 0, Count: 1, Capacity: 2},
		{I: 1, J: 0, K: 0, Count: 3, Capacity: 4},
	}
	if diff := cmp.Diff(want, c.RegionCounts()); diff != "" {
		t.Errorf("RegionCounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRegionCount(t *testing.T) {
	c := regionContainer(t)
	buf := &bytes.Buffer{}
	require.NoError(t, c.WriteRegionCount(buf))

	want := "Region (0,0,0): 1 particles\nRegion (1,0,0): 3 particles\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteRegionCount() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRegionCSV(t *testing.T) {
	c := regionContainer(t)
	buf := &bytes.Buffer{}
	require.NoError(t, c.WriteRegionCSV(buf))

	want := []string{"i,j,k,count,capacity", "0,0,0,1,2", "1,0,0,3,4"}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WriteRegionCSV() mismatch (-want +got):\n%s", diff)
	}
}
