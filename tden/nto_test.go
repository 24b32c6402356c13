/*
 * nto_test.go, part of gotheo.
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

package tden

import (
	"math"
	"testing"

	theo "github.com/rmera/gotheo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestExtract(Te *testing.T) {
	m := mat.NewDense(2, 3, []float64{0, 0.1, 0, 0.9, 0, 0})
	N, err := Extract(m, 0)
	require.NoError(Te, err)
	require.Equal(Te, 2, N.Len())
	assert.InDeltaSlice(Te, []float64{0.81, 0.01}, N.Weights, 1e-12)
	assert.InDelta(Te, 0.82, N.Om, 1e-12)
	assert.InDelta(Te, 0.82*0.82/(0.81*0.81+0.01*0.01), N.PRNTO, 1e-10)
	p := []float64{0.81 / 0.82, 0.01 / 0.82}
	she := -(p[0]*math.Log2(p[0]) + p[1]*math.Log2(p[1]))
	assert.InDelta(Te, she, N.SHE, 1e-10)
	assert.InDelta(Te, math.Exp2(she), N.ZHE, 1e-10)
	assert.NoError(Te, N.Check(0.82, 1e-10))
	assert.Error(Te, N.Check(1, 1e-10))

	r, c := N.Hole.Dims()
	assert.Equal(Te, 2, r)
	assert.Equal(Te, 2, c)
	r, _ = N.Particle.Dims()
	assert.Equal(Te, 3, r)
	//the dominant pair takes the hole from the second row, the electron into the first column
	assert.InDelta(Te, 1.0, math.Abs(N.Hole.At(1, 0)), 1e-12)
	assert.InDelta(Te, 1.0, math.Abs(N.Particle.At(0, 0)), 1e-12)
	for i := range N.Weights {
		assert.InDelta(Te, 1.0, floats.Norm(mat.Col(nil, i, N.Hole), 2), 1e-12)
		assert.InDelta(Te, 1.0, floats.Norm(mat.Col(nil, i, N.Particle), 2), 1e-12)
	}
}

func TestExtractTruncation(Te *testing.T) {
	m := mat.NewDense(3, 3, []float64{0.9, 0, 0, 0, 0.1, 0, 0, 0, 1e-4})
	N, err := Extract(m, 0)
	require.NoError(Te, err)
	assert.Equal(Te, 2, N.Len(), "pairs with weights under the threshold must be dropped")
	assert.InDelta(Te, 0.82+1e-8, N.Om, 1e-12)

	N, err = Extract(m, 0, 0)
	require.NoError(Te, err)
	assert.Equal(Te, 3, N.Len())
	assert.True(Te, sortedDesc(N.Weights))

	N, err = Extract(m, 1)
	require.NoError(Te, err)
	require.Equal(Te, 1, N.Len())
	assert.InDelta(Te, 0.81, N.Weights[0], 1e-12)
	_, c := N.Hole.Dims()
	assert.Equal(Te, 1, c)
	assert.InDelta(Te, 0.82+1e-8, N.Om, 1e-12, "Om includes the pairs not kept")
}

func TestExtractSinglePair(Te *testing.T) {
	m := mat.NewDense(2, 2, []float64{0, 0.5, 0, 0})
	N, err := Extract(m, 0)
	require.NoError(Te, err)
	assert.Equal(Te, 1, N.Len())
	assert.InDelta(Te, 1.0, N.PRNTO, 1e-12)
	assert.InDelta(Te, 0.0, N.SHE, 1e-12)
	assert.InDelta(Te, 1.0, N.ZHE, 1e-12)
}

func TestExtractZero(Te *testing.T) {
	N, err := Extract(mat.NewDense(2, 2, nil), 0)
	require.NoError(Te, err)
	assert.Equal(Te, 0, N.Len())
	assert.Nil(Te, N.Hole)
	assert.True(Te, math.IsNaN(N.PRNTO))
}

func TestExtractDensity(Te *testing.T) {
	E, err := NewEngine(twoAtoms(), nil)
	require.NoError(Te, err)
	d := ctDensity(1)
	ds, err := E.Compute(d)
	require.NoError(Te, err)
	N, err := ExtractDensity(E, d, 0)
	require.NoError(Te, err)
	assert.NoError(Te, N.Check(ds.Om, 1e-10))
	assert.Equal(Te, theo.AO, N.Basis)
}

func sortedDesc(w []float64) bool {
	for i := 1; i < len(w); i++ {
		if w[i] > w[i-1] {
			return false
		}
	}
	return true
}
