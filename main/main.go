package main

import (
	"flag"
	"fmt"
	goio "io"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/vorobox"
	"github.com/phil-mansfield/vorobox/io"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

// store is the part of the container API that the modes use. It is
// satisfied by both *vorobox.Container and *vorobox.PolyContainer.
type store interface {
	ImportFile(fname string) error
	Total() int
	WriteRegionCount(w goio.Writer) error
	WriteRegionCSV(w goio.Writer) error
	LoopAll() *vorobox.LoopAll
	ID(h vorobox.Handle) int
	Pos(h vorobox.Handle) [3]float64
	OverlapInDomain(x, y, z, thresholdSq float64, except int) (int, bool)
	PointInside(x, y, z float64) bool
	Remap(x [3]float64) (vorobox.Remapped, bool)
	FindVoronoiCell(
		loc vorobox.CellLocator, x, y, z float64,
	) (vorobox.Owner, bool)
	NearestLocator() *vorobox.NearestLocator
	AddWall(w vorobox.Wall)
	Close() error
	DrawGnuplot(w goio.Writer) error
	DrawPOV(w goio.Writer) error
	Edges() [12][2]r3.Vec
}

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode.

	var (
		stats, find, overlaps, outline string
		exampleConfig                  string
		logPath, pprofPath             string
		threshold                      float64
	)
	vars := map[string]*string{
		"Stats":         &stats,
		"Find":          &find,
		"Overlaps":      &overlaps,
		"Outline":       &outline,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(&stats, "Stats", "",
		"Configuration file for [Stats] mode, which reports how many "+
			"particles are in each block.")
	flag.StringVar(&find, "Find", "",
		"Configuration file for [Find] mode, which is also given a file "+
			"of 'x y z' probe points and reports the particle whose Voronoi "+
			"cell contains each of them. Points outside a periodic axis are "+
			"matched to the nearest periodic image of the owner.")
	flag.StringVar(&overlaps, "Overlaps", "",
		"Configuration file for [Overlaps] mode, which lists particles "+
			"closer than -Threshold to another particle.")
	flag.StringVar(&outline, "Outline", "",
		"Configuration file for [Outline] mode, which draws the domain.")
	flag.StringVar(&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Container' and 'Walls'.")

	flag.Float64Var(&threshold, "Threshold", 0,
		"Distance below which two particles overlap in [Overlaps] mode.")
	flag.StringVar(&logPath, "Log", "",
		"Location to write log statements to. Default is stderr.")
	flag.StringVar(&pprofPath, "PProf", "",
		"Location to write profile to. Default is no profiling.")

	flag.Parse()

	fg := &FileGroup{}
	defer fg.Close()
	if logPath != "" {
		lf, err := os.Create(logPath)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(lf)
		fg.log = lf
	}
	if pprofPath != "" {
		pf, err := os.Create(pprofPath)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err := pprof.StartCPUProfile(pf); err != nil {
			log.Fatal(err.Error())
		}
		fg.prof = pf
	}

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Stats":
		con, c, out := setup(stats, true)
		defer out.Close()
		defer closeStore(c)
		statsMain(con, c, out)
	case "Find":
		args := flag.Args()
		if len(args) != 1 {
			log.Fatal("Mode Find requires exactly one file of probe points.")
		}
		_, c, out := setup(find, true)
		defer out.Close()
		defer closeStore(c)
		findMain(c, args[0], out)
	case "Overlaps":
		if threshold <= 0 {
			log.Fatal("Mode Overlaps requires a positive -Threshold.")
		}
		_, c, out := setup(overlaps, true)
		defer out.Close()
		defer closeStore(c)
		overlapsMain(c, threshold, out)
	case "Outline":
		con, c, out := setup(outline, false)
		defer out.Close()
		defer closeStore(c)
		outlineMain(con, c, out)
	case "ExampleConfig":
		switch exampleConfig {
		case "Container":
			fmt.Println(io.ExampleContainerFile)
		case "Walls":
			fmt.Println(io.ExampleWallsFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Container' and 'Walls'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		sort.Strings(setNames)
		return "", fmt.Errorf(
			"The following flags were set: %s, but vorobox "+
				"only accepts one mode flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setup reads the configuration file, builds the container and its walls,
// and opens the output file. Particles are only read if load is set.
func setup(
	fname string, load bool,
) (*io.ContainerConfig, store, *os.File) {
	con, err := io.ReadContainerConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	c, err := newStore(con)
	if err != nil {
		log.Fatal(err.Error())
	}

	if con.WallFile != "" {
		walls, err := io.ReadWallsConfig(con.WallFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		for _, w := range walls {
			c.AddWall(w)
		}
		log.Printf("Added %d walls from %s", len(walls), con.WallFile)
	}

	if load {
		loadParticles(con, c)
	}

	out := os.Stdout
	if con.Output != "" && !imageFormat(con.Format) {
		out, err = os.Create(con.Output)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return con, c, out
}

// newStore creates an empty container for con. A PolyContainer is used if
// the input has radii.
func newStore(con *io.ContainerConfig) (store, error) {
	d, err := con.Domain()
	if err != nil {
		return nil, err
	}

	var logger *log.Logger
	if con.ReportOutOfBounds {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}

	if con.Radii {
		pc := vorobox.NewPolyContainer(d, con.InitMem)
		pc.MaxMemory, pc.Log = con.MaxMemory, logger
		return pc, nil
	}
	c := vorobox.NewContainer(d, con.InitMem)
	c.MaxMemory, c.Log = con.MaxMemory, logger
	return c, nil
}

// loadParticles reads the particles in con.Input into c.
func loadParticles(con *io.ContainerConfig, c store) {
	log.Printf("Reading %s", con.Input)

	switch con.InputFormat {
	case "text":
		if err := c.ImportFile(con.Input); err != nil {
			log.Fatal(err.Error())
		}
	case "gadget":
		order, err := io.Endianness(con.Endianness)
		if err != nil {
			log.Fatal(err.Error())
		}
		if _, err := io.ImportGadget(
			c.(*vorobox.Container), con.Input, order,
		); err != nil {
			log.Fatal(err.Error())
		}
	default:
		panic("Impossible")
	}

	log.Printf("Read %d particles", c.Total())
}

// closeStore releases the walls of c.
func closeStore(c store) {
	if err := c.Close(); err != nil {
		log.Printf("Could not release walls: %s", err.Error())
	}
}

// imageFormat returns true for outline formats which write their own Output
// file.
func imageFormat(format string) bool {
	switch format {
	case "pyplot", "png", "svg":
		return true
	}
	return false
}
