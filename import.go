package vorobox

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrImport is wrapped by every error caused by a malformed particle file.
var ErrImport = errors.New("file import error")

// Import reads particles from r and puts them into the container. Each
// non-blank line must contain exactly four whitespace-separated fields:
// an integer ID followed by x, y and z. Reading stops at the first
// malformed line; particles read before it stay in the container.
// Particles outside a non-periodic domain are skipped.
func (c *Container) Import(r io.Reader) error {
	return c.ImportOrdered(nil, r)
}

// ImportOrdered is Import, but also records the insertion order in vo. vo
// may be nil.
func (c *Container) ImportOrdered(vo *ParticleOrder, r io.Reader) error {
	return readParticles(r, 4, func(id int, f []float64) {
		c.put(vo, id, [3]float64{f[0], f[1], f[2]}, 0)
	})
}

// ImportFile imports the particles stored in the named file. Files ending
// in ".gz", ".zst" or ".lz4" are decompressed while reading.
func (c *Container) ImportFile(fname string) error {
	return withParticleFile(fname, c.Import)
}

// Import reads particles from r and puts them into the container. Each
// non-blank line must contain exactly five whitespace-separated fields:
// an integer ID followed by x, y, z and the radius. Otherwise it behaves
// like Container.Import.
func (c *PolyContainer) Import(r io.Reader) error {
	return c.ImportOrdered(nil, r)
}

// ImportOrdered is Import, but also records the insertion order in vo. vo
// may be nil.
func (c *PolyContainer) ImportOrdered(vo *ParticleOrder, r io.Reader) error {
	return readParticles(r, 5, func(id int, f []float64) {
		c.PutOrdered(vo, id, f[0], f[1], f[2], f[3])
	})
}

// ImportFile imports the particles stored in the named file. See
// Container.ImportFile.
func (c *PolyContainer) ImportFile(fname string) error {
	return withParticleFile(fname, c.Import)
}

func readParticles(r io.Reader, fields int, put func(int, []float64)) error {
	s := bufio.NewScanner(r)
	f := make([]float64, fields-1)

	for line := 1; s.Scan(); line++ {
		tok := strings.Fields(s.Text())
		if len(tok) == 0 {
			continue
		} else if len(tok) != fields {
			return fmt.Errorf("%w: line %d has %d fields, expected %d",
				ErrImport, line, len(tok), fields)
		}

		id, err := strconv.Atoi(tok[0])
		if err != nil {
			return fmt.Errorf("%w: line %d: bad ID '%s'",
				ErrImport, line, tok[0])
		}
		for i := range f {
			f[i], err = strconv.ParseFloat(tok[i+1], 64)
			if err != nil {
				return fmt.Errorf("%w: line %d: bad value '%s'",
					ErrImport, line, tok[i+1])
			}
		}

		put(id, f)
	}

	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrImport, err.Error())
	}
	return nil
}

// withParticleFile opens fname, decompressing it if its extension asks for
// that, and hands the stream to read.
func withParticleFile(fname string, read func(io.Reader) error) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(fname)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("%w: %s: %s", ErrImport, fname, err.Error())
		}
		defer zr.Close()
		return read(zr)
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("%w: %s: %s", ErrImport, fname, err.Error())
		}
		defer zr.Close()
		return read(zr)
	case ".lz4":
		return read(lz4.NewReader(f))
	default:
		return read(bufio.NewReader(f))
	}
}
