package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/vorobox"
)

func writeConfig(t *testing.T, name, text string) string {
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestExampleContainerFile(t *testing.T) {
	con, err := ReadContainerConfig(
		writeConfig(t, "container.cfg", ExampleContainerFile),
	)
	require.NoError(t, err)

	assert.Equal(t, [3]int{8, 8, 8},
		[3]int{con.XBlocks, con.YBlocks, con.ZBlocks})
	assert.Equal(t, "path/to/particles.dat", con.Input)
	assert.Equal(t, vorobox.DefaultInitMem, con.InitMem)
	assert.Equal(t, vorobox.DefaultMaxMemory, con.MaxMemory)
	assert.Equal(t, "gnuplot", con.Format)
	assert.Equal(t, "text", con.InputFormat)
	assert.False(t, con.XPeriodic || con.YPeriodic || con.ZPeriodic)

	d, err := con.Domain()
	require.NoError(t, err)
	assert.Equal(t, 512, d.NXYZ())
}

func TestReadContainerConfig(t *testing.T) {
	text := `[Container]
XMin = -1
XMax = 1
YMin = 0
YMax = 2
ZMin = 0
ZMax = 4
XBlocks = 2
YBlocks = 2
ZBlocks = 4
Input = snapshot_000
YPeriodic = true
InitMem = 4
Format = POV
InputFormat = Gadget
Endianness = big
`
	con, err := ReadContainerConfig(writeConfig(t, "container.cfg", text))
	require.NoError(t, err)
	assert.True(t, con.YPeriodic)
	assert.False(t, con.XPeriodic)
	assert.False(t, con.Radii)
	assert.Equal(t, "gadget", con.InputFormat)
	assert.Equal(t, 4, con.InitMem)
	assert.Equal(t, "pov", con.Format)

	d, err := con.Domain()
	require.NoError(t, err)
	assert.Equal(t, [3]bool{false, true, false}, d.Periodic)
	assert.Equal(t, [3]float64{1, 1, 1}, d.BlockWidth)
}

func TestReadContainerConfigErrors(t *testing.T) {
	table := []string{
		// Missing blocks.
		"[Container]\nXMax = 1\nYMax = 1\nZMax = 1\nInput = a\n",
		// Inverted bounds.
		"[Container]\nXMin = 1\nYMax = 1\nZMax = 1\n" +
			"XBlocks = 1\nYBlocks = 1\nZBlocks = 1\nInput = a\n",
		// Missing input.
		"[Container]\nXMax = 1\nYMax = 1\nZMax = 1\n" +
			"XBlocks = 1\nYBlocks = 1\nZBlocks = 1\n",
		// InitMem larger than MaxMemory.
		"[Container]\nXMax = 1\nYMax = 1\nZMax = 1\n" +
			"XBlocks = 1\nYBlocks = 1\nZBlocks = 1\nInput = a\n" +
			"InitMem = 16\nMaxMemory = 8\n",
		// Unknown format.
		"[Container]\nXMax = 1\nYMax = 1\nZMax = 1\n" +
			"XBlocks = 1\nYBlocks = 1\nZBlocks = 1\nInput = a\n" +
			"Format = jpeg\n",
		// Gadget files have no radii.
		"[Container]\nXMax = 1\nYMax = 1\nZMax = 1\n" +
			"XBlocks = 1\nYBlocks = 1\nZBlocks = 1\nInput = a\n" +
			"InputFormat = gadget\nRadii = true\n",
		// Unknown endianness.
		"[Container]\nXMax = 1\nYMax = 1\nZMax = 1\n" +
			"XBlocks = 1\nYBlocks = 1\nZBlocks = 1\nInput = a\n" +
			"InputFormat = gadget\nEndianness = middle\n",
		// Unknown variable.
		"[Container]\nXMax = 1\nYMax = 1\nZMax = 1\n" +
			"XBlocks = 1\nYBlocks = 1\nZBlocks = 1\nInput = a\n" +
			"Blocks = 3\n",
	}

	for i, text := range table {
		_, err := ReadContainerConfig(writeConfig(t, "container.cfg", text))
		if err == nil {
			t.Errorf("%d) expected an error for config:\n%s", i, text)
		}
	}

	_, err := ReadContainerConfig(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}

func TestExampleWallsFile(t *testing.T) {
	walls, err := ReadWallsConfig(writeConfig(t, "walls.cfg", ExampleWallsFile))
	require.NoError(t, err)
	require.Len(t, walls, 2)

	sphere, ok := walls[0].(*vorobox.WallSphere)
	require.True(t, ok)
	assert.Equal(t, 0.4, sphere.Radius)
	_, ok = walls[1].(*vorobox.WallPlane)
	require.True(t, ok)

	wl := &vorobox.WallList{}
	for _, w := range walls {
		wl.AddWall(w)
	}
	assert.True(t, wl.PointInsideWalls(0.5, 0.5, 0.5))
	assert.False(t, wl.PointInsideWalls(0.5, 0.5, 0.05))
	assert.False(t, wl.PointInsideWalls(0.05, 0.05, 0.5))
}

func TestReadWallsConfig(t *testing.T) {
	text := `[Plane "b"]
NZ = 1
Offset = 2

[Plane "a"]
NX = 1
Offset = 1

[Sphere "z"]
Radius = 3
`
	walls, err := ReadWallsConfig(writeConfig(t, "walls.cfg", text))
	require.NoError(t, err)
	require.Len(t, walls, 3)

	_, ok := walls[0].(*vorobox.WallSphere)
	assert.True(t, ok)
	assert.Equal(t, 1.0, walls[1].(*vorobox.WallPlane).Offset)
	assert.Equal(t, 2.0, walls[2].(*vorobox.WallPlane).Offset)

	bad := []string{
		"[Sphere \"s\"]\nX = 1\n",
		"[Plane \"p\"]\nOffset = 1\n",
	}
	for i, text := range bad {
		_, err := ReadWallsConfig(writeConfig(t, "walls.cfg", text))
		if err == nil {
			t.Errorf("%d) expected an error for walls:\n%s", i, text)
		}
	}
}
