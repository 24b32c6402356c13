/*
 * source_test.go, part of gotheo.
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theo "github.com/rmera/gotheo"
	v3 "github.com/rmera/gotheo/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testStructure(Te *testing.T) *theo.Structure {
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 0, 0, 1.1})
	require.NoError(Te, err)
	return &theo.Structure{
		Symbols:    []string{"C", "O"},
		Coords:     coords,
		Frags:      theo.Partition{{0}, {1}},
		BasisAtoms: []int{0, 0, 1},
		Overlap:    mat.NewSymDense(3, []float64{1, 0.1, 0.2, 0.1, 1, 0.3, 0.2, 0.3, 1}),
		MOs:        mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
	}
}

func testDensities() []*theo.Density {
	return []*theo.Density{
		{Index: 1, Name: "S1", Spin: theo.Alpha, Energy: 3.2, Osc: 0.05, HasOsc: true, Multiplicity: 1, TDM: mat.NewDense(3, 3, []float64{0.1, 0.2, 0.3, 0, 0.5, 0, 0.1, 0, 0})},
		{Index: 2, Name: "S2", Energy: 4.1, Basis: theo.MO, NOcc: 1, TDM: mat.NewDense(1, 2, []float64{0.9, -0.1})},
	}
}

func sameDensity(Te *testing.T, exp, got *theo.Density) {
	Te.Helper()
	assert.Equal(Te, exp.Index, got.Index)
	assert.Equal(Te, exp.Name, got.Name)
	assert.Equal(Te, exp.Spin, got.Spin)
	assert.Equal(Te, exp.Energy, got.Energy)
	assert.Equal(Te, exp.HasOsc, got.HasOsc)
	assert.Equal(Te, exp.Osc, got.Osc)
	assert.Equal(Te, exp.Multiplicity, got.Multiplicity)
	assert.Equal(Te, exp.Basis, got.Basis)
	assert.Equal(Te, exp.NOcc, got.NOcc)
	assert.True(Te, mat.Equal(exp.TDM, got.TDM))
}

func TestRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	for _, name := range []string{"states.json", "states.json.gz", "states.json.zst"} {
		st := testStructure(Te)
		fname := filepath.Join(dir, name)
		require.NoError(Te, WriteFile(fname, NewMemory(st, testDensities()...)), name)
		R, err := Open(fname)
		require.NoError(Te, err, name)
		rst := R.Structure()
		assert.Equal(Te, st.Symbols, rst.Symbols)
		assert.Equal(Te, st.Frags, rst.Frags)
		assert.Equal(Te, st.BasisAtoms, rst.BasisAtoms)
		assert.True(Te, mat.Equal(st.Overlap, rst.Overlap))
		assert.True(Te, mat.Equal(st.MOs, rst.MOs))
		assert.True(Te, mat.Equal(st.Coords, rst.Coords))
		M, err := Collect(R)
		require.NoError(Te, err)
		require.NoError(Te, R.Close())
		require.Equal(Te, 2, M.Len(), name)
		for _, exp := range testDensities() {
			got, err := M.Next()
			require.NoError(Te, err)
			sameDensity(Te, exp, got)
		}
		_, err = M.Next()
		assert.Equal(Te, io.EOF, err)
	}
	plain, err := os.ReadFile(filepath.Join(dir, "states.json"))
	require.NoError(Te, err)
	assert.Equal(Te, 3, bytes.Count(plain, []byte("\n")), "one line for the header and one per state")
	zst, err := os.ReadFile(filepath.Join(dir, "states.json.zst"))
	require.NoError(Te, err)
	assert.NotEqual(Te, plain, zst)
}

func TestStream(Te *testing.T) {
	var b bytes.Buffer
	st := testStructure(Te)
	W, err := NewWriter(&b, st)
	require.NoError(Te, err)
	for _, d := range testDensities() {
		require.NoError(Te, W.Write(d))
	}
	bad := &theo.Density{Index: 3, TDM: mat.NewDense(2, 2, nil)}
	assert.True(Te, theo.IsKind(W.Write(bad), theo.ConfigurationError))
	require.NoError(Te, W.Close())

	R, err := NewReader(&b)
	require.NoError(Te, err)
	var n int
	for {
		_, err := R.Next()
		if err == io.EOF {
			break
		}
		require.NoError(Te, err)
		n++
	}
	assert.Equal(Te, 2, n)
}

func TestMalformed(Te *testing.T) {
	_, err := NewReader(strings.NewReader(""))
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError))
	_, err = NewReader(strings.NewReader(`{"format":"xyz","version":1}`))
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError))
	_, err = NewReader(strings.NewReader(`{"format":"gotheo-tden","version":1,"symbols":["H"],"basis_atoms":[0,3]}`))
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError), "basis function on a non-existent atom")

	header := `{"format":"gotheo-tden","version":1,"symbols":["H","H"],"basis_atoms":[0,1]}` + "\n"
	R, err := NewReader(strings.NewReader(header + `{"index":1,"basis":"AO","tdm":{"rows":2,"cols":2,"data":[1,2,3]}}`))
	require.NoError(Te, err)
	_, err = R.Next()
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError))

	R, err = NewReader(strings.NewReader(header + `{"index":1,"spin":"up","tdm":{"rows":1,"cols":1,"data":[1]}}`))
	require.NoError(Te, err)
	_, err = R.Next()
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError))

	_, err = Open(filepath.Join(Te.TempDir(), "missing.json"))
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError))
}

func TestCompressionFor(Te *testing.T) {
	assert.Equal(Te, Zstd, CompressionFor("a.json.zst"))
	assert.Equal(Te, Zstd, CompressionFor("A.ZSTD"))
	assert.Equal(Te, Gzip, CompressionFor("a.gz"))
	assert.Equal(Te, Plain, CompressionFor("a.json"))
	for _, c := range []Compression{Plain, Gzip, Zstd} {
		var b bytes.Buffer
		w, err := NewCompressor(&b, c)
		require.NoError(Te, err)
		_, err = w.Write([]byte("transition density"))
		require.NoError(Te, err)
		require.NoError(Te, w.Close())
		r, err := NewDecompressor(&b, c)
		require.NoError(Te, err, c.String())
		out, err := io.ReadAll(r)
		require.NoError(Te, err)
		assert.Equal(Te, "transition density", string(out))
		require.NoError(Te, r.Close())
	}
}

func TestMemory(Te *testing.T) {
	M := NewMemory(testStructure(Te), testDensities()...)
	d, err := M.Next()
	require.NoError(Te, err)
	assert.Equal(Te, 1, d.Index)
	M.Rewind()
	d, err = M.Next()
	require.NoError(Te, err)
	assert.Equal(Te, 1, d.Index)
}
