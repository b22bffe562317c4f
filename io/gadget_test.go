package io

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/vorobox"
)

// writeGadget writes a snapshot with the given positions and IDs. ids must
// be a []uint32 or a []int64.
func writeGadget(
	t *testing.T, order binary.ByteOrder, box float64,
	xs []float32, ids interface{},
) string {
	buf := &bytes.Buffer{}
	block := func(size int, data interface{}) {
		require.NoError(t, binary.Write(buf, order, int32(size)))
		require.NoError(t, binary.Write(buf, order, data))
		require.NoError(t, binary.Write(buf, order, int32(size)))
	}

	gh := &GadgetHeader{BoxSize: box, Time: 1}
	gh.NPart[1] = uint32(len(xs) / 3)
	block(gadgetHeaderSize, gh)
	block(4*len(xs), xs)
	block(4*len(xs), make([]float32, len(xs)))
	block(binary.Size(ids), ids)

	fname := filepath.Join(t.TempDir(), "snapshot_000")
	require.NoError(t, os.WriteFile(fname, buf.Bytes(), 0644))
	return fname
}

func TestGadgetHeaderSize(t *testing.T) {
	assert.Equal(t, gadgetHeaderSize, binary.Size(&GadgetHeader{}))
}

func TestReadGadget(t *testing.T) {
	xs := []float32{1, 2, 3, 9.5, -0.5, 10, 5, 5, 5}

	table := []struct {
		order binary.ByteOrder
		ids   interface{}
	}{
		{binary.LittleEndian, []uint32{4, 5, 6}},
		{binary.BigEndian, []uint32{4, 5, 6}},
		{binary.LittleEndian, []int64{4, 5, 6}},
	}

	for i, test := range table {
		fname := writeGadget(t, test.order, 10, xs, test.ids)

		gh, err := ReadGadgetHeader(fname, test.order)
		require.NoError(t, err)
		assert.Equal(t, 3, gh.Count())
		assert.Equal(t, 10.0, gh.BoxSize)

		_, ids, pos, err := ReadGadget(fname, test.order)
		require.NoError(t, err, "%d", i)
		assert.Equal(t, []int{4, 5, 6}, ids, "%d", i)
		assert.Equal(t, [][3]float64{{1, 2, 3}, {9.5, 9.5, 0}, {5, 5, 5}},
			pos, "%d", i)
	}
}

func TestReadGadgetWrongOrder(t *testing.T) {
	fname := writeGadget(t, binary.BigEndian, 10,
		[]float32{1, 1, 1}, []uint32{1})
	_, _, _, err := ReadGadget(fname, binary.LittleEndian)
	assert.Error(t, err)

	_, err = ReadGadgetHeader(filepath.Join(t.TempDir(), "none"),
		binary.LittleEndian)
	assert.Error(t, err)
}

func TestImportGadget(t *testing.T) {
	fname := writeGadget(t, binary.LittleEndian, 10,
		[]float32{1, 2, 3, 6, 6, 6, 9, 9, 9}, []int64{0, 1, 2})

	d, err := vorobox.NewDomain(
		[3]float64{0, 0, 0}, [3]float64{5, 10, 10}, [3]int{1, 2, 2},
		[3]bool{},
	)
	require.NoError(t, err)
	c := vorobox.NewContainer(d, 0)

	n, err := ImportGadget(c, fname, binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, c.Total())
	assert.Equal(t, 0, c.ID(vorobox.Handle{Block: 0, Slot: 0}))
}

func TestEndianness(t *testing.T) {
	order, err := Endianness("Little")
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, order)
	order, err = Endianness(" big")
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, order)
	_, err = Endianness("middle")
	assert.Error(t, err)
}
