package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phil-mansfield/vorobox"
)

// GadgetHeader is the meta-information block of a Gadget 2 snapshot.
type GadgetHeader struct {
	NPart                                     [6]uint32
	Mass                                      [6]float64
	Time, Redshift                            float64
	FlagSfr, FlagFeedback                     int32
	NPartTotal                                [6]uint32
	FlagCooling, NumFiles                     int32
	BoxSize, Omega0, OmegaLambda, HubbleParam float64
	FlagStellarAge, HashTabSize               int32

	Padding [88]byte
}

const gadgetHeaderSize = 256

// Count returns the number of particles of every type stored in the file.
func (gh *GadgetHeader) Count() int {
	n := 0
	for _, np := range gh.NPart {
		n += int(np)
	}
	return n
}

// WrapDistance takes a value and interprets it as a position defined within
// a periodic domain of width gh.BoxSize.
func (gh *GadgetHeader) WrapDistance(x float64) float64 {
	if x < 0 {
		return x + gh.BoxSize
	} else if x >= gh.BoxSize {
		return x - gh.BoxSize
	}
	return x
}

// Endianness converts "little" or "big" to a byte order.
func Endianness(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.Trim(name, " ")) {
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("Unrecognized endianness '%s'.", name)
}

// readBlock reads one Fortran record into data, checking that both of its
// size markers agree with the size of data. size is the expected number of
// bytes.
func readBlock(
	r io.Reader, order binary.ByteOrder, size int, data interface{},
) error {
	var head, tail int32
	if err := binary.Read(r, order, &head); err != nil {
		return err
	} else if int(head) != size {
		return fmt.Errorf("Gadget block has size %d, expected %d.", head, size)
	}
	if err := binary.Read(r, order, data); err != nil {
		return err
	}
	if err := binary.Read(r, order, &tail); err != nil {
		return err
	} else if tail != head {
		return fmt.Errorf("Gadget block markers %d and %d do not match.",
			head, tail)
	}
	return nil
}

// ReadGadgetHeader reads the header of a Gadget 2 snapshot.
func ReadGadgetHeader(
	fname string, order binary.ByteOrder,
) (*GadgetHeader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gh := &GadgetHeader{}
	if err := readBlock(f, order, gadgetHeaderSize, gh); err != nil {
		return nil, fmt.Errorf("Reading header of %s: %s", fname, err.Error())
	}
	return gh, nil
}

// ReadGadget reads the header, IDs and positions of every particle in a
// Gadget 2 snapshot. Positions are wrapped into [0, BoxSize). Both 32-bit and
// 64-bit IDs are accepted.
func ReadGadget(
	fname string, order binary.ByteOrder,
) (*GadgetHeader, []int, [][3]float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	gh := &GadgetHeader{}
	if err := readBlock(f, order, gadgetHeaderSize, gh); err != nil {
		return nil, nil, nil,
			fmt.Errorf("Reading header of %s: %s", fname, err.Error())
	}
	n := gh.Count()

	floatBuf := make([]float32, 3*n)
	if err := readBlock(f, order, 4*len(floatBuf), floatBuf); err != nil {
		return nil, nil, nil,
			fmt.Errorf("Reading positions of %s: %s", fname, err.Error())
	}
	xs := make([][3]float64, n)
	for i := range xs {
		for k := 0; k < 3; k++ {
			xs[i][k] = gh.WrapDistance(float64(floatBuf[3*i+k]))
		}
	}

	// Velocities are not needed.
	if err := readBlock(f, order, 4*len(floatBuf), floatBuf); err != nil {
		return nil, nil, nil,
			fmt.Errorf("Reading velocities of %s: %s", fname, err.Error())
	}

	ids, err := readGadgetIDs(f, order, n)
	if err != nil {
		return nil, nil, nil,
			fmt.Errorf("Reading IDs of %s: %s", fname, err.Error())
	}

	return gh, ids, xs, nil
}

// readGadgetIDs reads the ID block, using its size marker to tell 32-bit IDs
// from 64-bit IDs.
func readGadgetIDs(r io.Reader, order binary.ByteOrder, n int) ([]int, error) {
	var marker int32
	if err := binary.Read(r, order, &marker); err != nil {
		return nil, err
	}

	ids := make([]int, n)
	switch int(marker) {
	case 4 * n:
		buf := make([]uint32, n)
		if err := binary.Read(r, order, buf); err != nil {
			return nil, err
		}
		for i := range ids {
			ids[i] = int(buf[i])
		}
	case 8 * n:
		buf := make([]int64, n)
		if err := binary.Read(r, order, buf); err != nil {
			return nil, err
		}
		for i := range ids {
			ids[i] = int(buf[i])
		}
	default:
		return nil, fmt.Errorf("ID block has size %d, but there are %d "+
			"particles.", marker, n)
	}

	var tail int32
	if err := binary.Read(r, order, &tail); err != nil {
		return nil, err
	} else if tail != marker {
		return nil, fmt.Errorf("Gadget block markers %d and %d do not match.",
			marker, tail)
	}
	return ids, nil
}

// ImportGadget puts every particle of a Gadget 2 snapshot into c. It returns
// the number of particles which were stored.
func ImportGadget(
	c *vorobox.Container, fname string, order binary.ByteOrder,
) (int, error) {
	_, ids, xs, err := ReadGadget(fname, order)
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range ids {
		if _, ok := c.Put(ids[i], xs[i][0], xs[i][1], xs[i][2]); ok {
			n++
		}
	}
	return n, nil
}
