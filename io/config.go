package io

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/vorobox"
)

const (
	ExampleContainerFile = `[Container]

#######################
# Required Parameters #
#######################

# Bounds of the domain along each axis.
XMin = 0
XMax = 1
YMin = 0
YMax = 1
ZMin = 0
ZMax = 1

# Number of storage blocks along each axis. Aim for around five particles per
# block: many more makes every query slow, many fewer wastes memory.
XBlocks = 8
YBlocks = 8
ZBlocks = 8

# Particle file. Each line is "id x y z", or "id x y z radius" if Radii is
# set. Files ending in .gz, .zst or .lz4 are decompressed on the fly.
Input = path/to/particles.dat

#######################
# Optional Parameters #
#######################

# Periodic boundaries. Particles outside a periodic axis are wrapped back into
# the domain, particles outside a non-periodic axis are dropped.
# XPeriodic = false
# YPeriodic = false
# ZPeriodic = false

# Set if the input file has a fifth, radius, column.
# Radii = false

# Format of the input file. One of [ text | gadget ]. Gadget 2 snapshots are
# read with the given Endianness, one of [ little | big ], and can't be
# combined with Radii.
# InputFormat = text
# Endianness = little

# Initial room for particles in each block and the hard limit that a single
# block may grow to. Hitting the limit kills the program.
# InitMem = 8
# MaxMemory = 16777216

# File that output is written to. Default is stdout.
# Output = path/to/output

# Walls file with [Sphere "name"] and [Plane "name"] sections. Print an
# example with -ExampleConfig Walls.
# WallFile = path/to/walls.cfg

# Format used by -Outline. One of [ gnuplot | pov | pyplot | png | svg ].
# The last three write an x-y projection to Output, which must be set.
# Format = gnuplot

# Report every particle which is dropped for being out of bounds.
# ReportOutOfBounds = false`

	ExampleWallsFile = `# Each section adds one wall. Points have to be inside every wall to be
# inside the container.

# Keeps the inside of a sphere.
[Sphere "core"]
X = 0.5
Y = 0.5
Z = 0.5
Radius = 0.4

# Keeps the points p with Normal . p <= Offset.
[Plane "floor"]
NX = 0
NY = 0
NZ = -1
Offset = -0.1`
)

type ContainerConfig struct {
	// Required
	XMin, XMax, YMin, YMax, ZMin, ZMax float64
	XBlocks, YBlocks, ZBlocks          int
	Input                              string

	// Optional
	XPeriodic, YPeriodic, ZPeriodic bool
	Radii                           bool
	InputFormat, Endianness         string
	InitMem, MaxMemory              int
	Output, WallFile                string
	Format                          string
	ReportOutOfBounds               bool
}

type ContainerWrapper struct {
	Container ContainerConfig
}

func DefaultContainerWrapper() *ContainerWrapper {
	con := ContainerConfig{}
	con.InitMem = vorobox.DefaultInitMem
	con.MaxMemory = vorobox.DefaultMaxMemory
	con.Format = "gnuplot"
	con.InputFormat = "text"
	con.Endianness = "little"
	return &ContainerWrapper{con}
}

// ReadContainerConfig reads and checks the [Container] section of fname.
func ReadContainerConfig(fname string) (*ContainerConfig, error) {
	wrap := DefaultContainerWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.Container

	if !con.ValidBounds() {
		return nil, fmt.Errorf("Invalid/non-existent bounds: each Min value " +
			"must be smaller than the matching Max value.")
	} else if !con.ValidBlocks() {
		return nil, fmt.Errorf("Invalid/non-existent 'XBlocks', 'YBlocks', " +
			"or 'ZBlocks' value.")
	} else if !con.ValidInput() {
		return nil, fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if !con.ValidInputFormat() {
		return nil, fmt.Errorf("'InputFormat' must be one of [ text | " +
			"gadget ], with 'Radii' unset for gadget files, and " +
			"'Endianness' must be one of [ little | big ].")
	} else if !con.ValidMemory() {
		return nil, fmt.Errorf("'InitMem' and 'MaxMemory' must be positive " +
			"and InitMem can't be larger than MaxMemory.")
	} else if !con.ValidFormat() {
		return nil, fmt.Errorf("'Format' must be one of [ gnuplot | pov | "+
			"pyplot | png | svg ], but is '%s'.", con.Format)
	}

	return con, nil
}

func (con *ContainerConfig) ValidBounds() bool {
	return con.XMin < con.XMax && con.YMin < con.YMax && con.ZMin < con.ZMax
}

func (con *ContainerConfig) ValidBlocks() bool {
	return con.XBlocks > 0 && con.YBlocks > 0 && con.ZBlocks > 0
}

func (con *ContainerConfig) ValidInput() bool {
	return con.Input != ""
}

func (con *ContainerConfig) ValidInputFormat() bool {
	con.InputFormat = strings.ToLower(strings.Trim(con.InputFormat, " "))
	switch con.InputFormat {
	case "text":
		return true
	case "gadget":
		_, err := Endianness(con.Endianness)
		return !con.Radii && err == nil
	}
	return false
}

func (con *ContainerConfig) ValidMemory() bool {
	return con.InitMem > 0 && con.MaxMemory >= con.InitMem
}

func (con *ContainerConfig) ValidFormat() bool {
	con.Format = strings.ToLower(strings.Trim(con.Format, " "))
	switch con.Format {
	case "gnuplot", "pov", "pyplot", "png", "svg":
		return true
	}
	return false
}

// Domain creates the Domain described by con.
func (con *ContainerConfig) Domain() (*vorobox.Domain, error) {
	return vorobox.NewDomain(
		[3]float64{con.XMin, con.YMin, con.ZMin},
		[3]float64{con.XMax, con.YMax, con.ZMax},
		[3]int{con.XBlocks, con.YBlocks, con.ZBlocks},
		[3]bool{con.XPeriodic, con.YPeriodic, con.ZPeriodic},
	)
}

type SphereConfig struct {
	// Required
	X, Y, Z, Radius float64

	// Optional, "undocumented"
	Name string
}

func (s *SphereConfig) CheckInit(name string) error {
	if s.Radius <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Radius for Sphere '%s'.", name,
		)
	}
	s.Name = name
	return nil
}

func (s *SphereConfig) Wall() vorobox.Wall {
	return &vorobox.WallSphere{
		Center: r3.Vec{X: s.X, Y: s.Y, Z: s.Z}, Radius: s.Radius,
	}
}

type PlaneConfig struct {
	// Required
	NX, NY, NZ, Offset float64

	// Optional, "undocumented"
	Name string
}

func (p *PlaneConfig) CheckInit(name string) error {
	if p.NX == 0 && p.NY == 0 && p.NZ == 0 {
		return fmt.Errorf(
			"Need to specify a non-zero normal (NX, NY, NZ) for Plane '%s'.",
			name,
		)
	}
	p.Name = name
	return nil
}

func (p *PlaneConfig) Wall() vorobox.Wall {
	return &vorobox.WallPlane{
		Normal: r3.Vec{X: p.NX, Y: p.NY, Z: p.NZ}, Offset: p.Offset,
	}
}

type WallsConfig struct {
	Sphere map[string]*SphereConfig
	Plane  map[string]*PlaneConfig
}

// ReadWallsConfig reads every wall in fname. Walls are returned spheres
// first, each kind sorted by name.
func ReadWallsConfig(fname string) ([]vorobox.Wall, error) {
	wc := WallsConfig{}
	if err := gcfg.ReadFileInto(&wc, fname); err != nil {
		return nil, err
	}

	sphereNames := make([]string, 0, len(wc.Sphere))
	for name := range wc.Sphere {
		sphereNames = append(sphereNames, name)
	}
	planeNames := make([]string, 0, len(wc.Plane))
	for name := range wc.Plane {
		planeNames = append(planeNames, name)
	}
	sort.Strings(sphereNames)
	sort.Strings(planeNames)

	walls := []vorobox.Wall{}
	for _, name := range sphereNames {
		if err := wc.Sphere[name].CheckInit(name); err != nil {
			return nil, err
		}
		walls = append(walls, wc.Sphere[name].Wall())
	}
	for _, name := range planeNames {
		if err := wc.Plane[name].CheckInit(name); err != nil {
			return nil, err
		}
		walls = append(walls, wc.Plane[name].Wall())
	}

	return walls, nil
}
