package vorobox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const particleText = `0 0.1 0.1 0.1
1 0.9 0.9 0.9

2   0.6 0.1 0.1
3 1.5 0.5 0.5
`

func TestImport(t *testing.T) {
	d := unitDomain(t, 2, false)
	c := NewContainer(d, 0)
	vo := NewParticleOrder(0)

	require.NoError(t, c.ImportOrdered(vo, strings.NewReader(particleText)))
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 3, vo.Len())
	assert.Equal(t, 1, c.ID(vo.At(1)))
	assert.Equal(t, [3]float64{0.6, 0.1, 0.1}, c.Pos(vo.At(2)))
}

func TestImportMalformed(t *testing.T) {
	table := []struct {
		text string
		read int
	}{
		{"0 0.1 0.1 0.1\n1 0.2 0.2\n", 1},
		{"0 0.1 0.1 0.1 0.1\n", 0},
		{"0 0.1 0.1 0.1\n1 0.2 0.2 0.2\nx 0.3 0.3 0.3\n", 2},
		{"1.5 0.3 0.3 0.3\n", 0},
		{"0 0.1 zero 0.1\n", 0},
	}

	d := unitDomain(t, 2, false)
	for i, test := range table {
		c := NewContainer(d, 0)
		err := c.Import(strings.NewReader(test.text))
		if !errors.Is(err, ErrImport) {
			t.Errorf("%d) expected ErrImport, but got %v", i, err)
		}
		if c.Total() != test.read {
			t.Errorf("%d) expected %d particles before the error, but got %d",
				i, test.read, c.Total())
		}
	}
}

func TestPolyImport(t *testing.T) {
	d := unitDomain(t, 2, true)
	c := NewPolyContainer(d, 0)
	text := "0 0.1 0.1 0.1 0.2\n7 1.9 0.1 0.1 0.5\n"
	require.NoError(t, c.Import(strings.NewReader(text)))
	assert.Equal(t, 2, c.Total())
	assert.Equal(t, 0.5, c.MaxRadius)

	err := c.Import(strings.NewReader("0 0.1 0.1 0.1\n"))
	assert.True(t, errors.Is(err, ErrImport))
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "particles.dat")
	require.NoError(t, os.WriteFile(plain, []byte(particleText), 0644))

	gz := filepath.Join(dir, "particles.dat.gz")
	f, err := os.Create(gz)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(particleText))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	zst := filepath.Join(dir, "particles.dat.zst")
	f, err = os.Create(zst)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(particleText))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	lz := filepath.Join(dir, "particles.dat.lz4")
	f, err = os.Create(lz)
	require.NoError(t, err)
	lw := lz4.NewWriter(f)
	_, err = lw.Write([]byte(particleText))
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, f.Close())

	d := unitDomain(t, 2, false)
	for _, fname := range []string{plain, gz, zst, lz} {
		c := NewContainer(d, 0)
		require.NoError(t, c.ImportFile(fname), fname)
		assert.Equal(t, 3, c.Total(), fname)
	}

	bad := filepath.Join(dir, "bad.gz")
	require.NoError(t, os.WriteFile(bad, []byte(particleText), 0644))
	err = NewContainer(d, 0).ImportFile(bad)
	assert.True(t, errors.Is(err, ErrImport))

	err = NewContainer(d, 0).ImportFile(filepath.Join(dir, "missing.dat"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
