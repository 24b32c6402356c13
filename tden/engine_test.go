/*
 * engine_test.go, part of gotheo.
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
	"fmt"
	"io"
	"math"
	"testing"

	theo "github.com/rmera/gotheo"
	v3 "github.com/rmera/gotheo/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

//sliceSource is a theo.DensitySource over a fixed set of densities.
type sliceSource struct {
	st *theo.Structure
	ds []*theo.Density
	i  int
}

func (s *sliceSource) Structure() *theo.Structure { return s.st }

func (s *sliceSource) Next() (*theo.Density, error) {
	if s.i >= len(s.ds) {
		return nil, io.EOF
	}
	s.i++
	return s.ds[s.i-1], nil
}

//twoAtoms returns a two-atom, two-fragment structure with one basis function per atom
//and an orthonormal basis.
func twoAtoms() *theo.Structure {
	return &theo.Structure{
		Symbols:    []string{"C", "N"},
		Frags:      theo.Partition{{0}, {1}},
		BasisAtoms: []int{0, 1},
	}
}

func ctDensity(index int) *theo.Density {
	D := mat.NewDense(2, 2, []float64{math.Sqrt(0.6), math.Sqrt(0.1), math.Sqrt(0.1), math.Sqrt(0.2)})
	return &theo.Density{Index: index, Name: fmt.Sprintf("S%d", index), Energy: 3.0 + float64(index), Osc: 0.1, HasOsc: true, Multiplicity: 1, TDM: D}
}

func TestFragmentDescriptors(Te *testing.T) {
	E, err := NewEngine(twoAtoms(), nil)
	require.NoError(Te, err)
	ds, err := E.Compute(ctDensity(1))
	require.NoError(Te, err)
	assert.False(Te, ds.Negligible)
	assert.InDelta(Te, 1.0, ds.Om, 1e-12)
	expected := []float64{0.6, 0.1, 0.1, 0.2}
	assert.InDeltaSlice(Te, expected, ds.OmFrag.RawMatrix().Data, 1e-12)
	assert.InDelta(Te, mat.Sum(ds.OmFrag), ds.Om, 1e-12)
	f := ds.Frag
	assert.InDelta(Te, 0.2, f.CT, 1e-12)
	assert.InDelta(Te, 0.0, f.CTnt, 1e-12)
	assert.InDelta(Te, 1.3, f.POSi, 1e-12)
	assert.InDelta(Te, 1.3, f.POS, 1e-12)
	assert.InDelta(Te, 1/0.58, f.PRi, 1e-12)
	assert.InDelta(Te, 1/0.58, f.PR, 1e-12)
	assert.InDelta(Te, 1/0.42, f.COH, 1e-12)
	assert.Equal(Te, "LE", ds.Desc)
	assert.False(Te, ds.HasDistances)
}

func TestSingleFragment(Te *testing.T) {
	st := twoAtoms()
	st.Frags = nil
	E, err := NewEngine(st, nil)
	require.NoError(Te, err)
	ds, err := E.Compute(ctDensity(1))
	require.NoError(Te, err)
	r, c := ds.OmFrag.Dims()
	assert.Equal(Te, 1, r)
	assert.Equal(Te, 1, c)
	assert.InDelta(Te, 0.0, ds.Frag.CT, 1e-12)
	assert.InDelta(Te, 1.0, ds.Frag.PR, 1e-12)
}

func TestElectronHoleDistances(Te *testing.T) {
	st := twoAtoms()
	var err error
	st.Coords, err = v3.NewMatrix([]float64{0, 0, 0, 0, 0, 2})
	require.NoError(Te, err)
	E, err := NewEngine(st, nil)
	require.NoError(Te, err)
	ds, err := E.Compute(ctDensity(1))
	require.NoError(Te, err)
	require.True(Te, ds.HasDistances)
	assert.InDelta(Te, math.Sqrt(0.8), ds.Frag.RMSeh, 1e-12)
	assert.InDelta(Te, 0.4, ds.Frag.MAeh, 1e-12)
}

func TestNegligibleState(Te *testing.T) {
	E, err := NewEngine(twoAtoms(), nil)
	require.NoError(Te, err)
	d := &theo.Density{Index: 1, TDM: mat.NewDense(2, 2, []float64{1e-6, 0, 0, 1e-6})}
	ds, err := E.Compute(d)
	require.NoError(Te, err)
	assert.True(Te, ds.Negligible)
	assert.Equal(Te, "negl", ds.Desc)
	assert.True(Te, math.IsNaN(ds.Frag.CT))
	assert.True(Te, math.IsNaN(ds.Frag.PR))
}

func TestExcitationLabels(Te *testing.T) {
	E, err := NewEngine(twoAtoms(), nil)
	require.NoError(Te, err)
	cases := []struct {
		D     []float64
		label string
	}{
		{[]float64{0, 1, 0, 0}, "CT"},
		{[]float64{1, 0, 0, 1}, "LE"},
		{[]float64{1, 1, 0, 0}, "MIX"},
	}
	for _, c := range cases {
		ds, err := E.Compute(&theo.Density{Index: 1, TDM: mat.NewDense(2, 2, c.D)})
		require.NoError(Te, err)
		assert.Equal(Te, c.label, ds.Desc, "density %v", c.D)
	}
	ds, err := E.Compute(&theo.Density{Index: 1, TDM: mat.NewDense(2, 2, []float64{0, 1, 0, 0})})
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0, ds.Frag.CTnt, 1e-12)
	assert.InDelta(Te, 1.0, ds.Frag.POSi, 1e-12)
	assert.InDelta(Te, 2.0, ds.Frag.POSf, 1e-12)
}

//Both population analyses give the same total transition charge, which is
//also the sum of the NTO weights.
func TestOverlapFormulas(Te *testing.T) {
	st := twoAtoms()
	st.Overlap = mat.NewSymDense(2, []float64{1, 0.2, 0.2, 1})
	d := &theo.Density{Index: 1, TDM: mat.NewDense(2, 2, []float64{0.5, 0.3, 0.1, 0.2})}
	o := theo.DefaultOptions()
	mulliken, err := NewEngine(st, o)
	require.NoError(Te, err)
	o2 := theo.DefaultOptions()
	o2.OmFormula = theo.OmLowdin
	lowdin, err := NewEngine(st, o2)
	require.NoError(Te, err)
	dm, err := mulliken.Compute(d)
	require.NoError(Te, err)
	dl, err := lowdin.Compute(d)
	require.NoError(Te, err)
	assert.InDelta(Te, dm.Om, dl.Om, 1e-10)
	//tr(S D^T S D), by hand.
	SD := mat.NewDense(2, 2, nil)
	SD.Mul(st.Overlap, d.TDM)
	DS := mat.NewDense(2, 2, nil)
	DS.Mul(d.TDM, st.Overlap)
	P := mat.NewDense(2, 2, nil)
	P.Mul(DS.T(), SD)
	assert.InDelta(Te, mat.Trace(P), dm.Om, 1e-10)
	N, err := ExtractDensity(lowdin, d, 0)
	require.NoError(Te, err)
	assert.InDelta(Te, dl.Om, N.Om, 1e-10)
	assert.NoError(Te, N.Check(dl.Om, 1e-8))
	assert.Equal(Te, theo.AO, N.Basis)
	//D = sum_i sigma_i h_i p_i^T in the AO basis after the back-transformation.
	R := mat.NewDense(2, 2, nil)
	for i, w := range N.Weights {
		h := mat.Col(nil, i, N.Hole)
		p := mat.Col(nil, i, N.Particle)
		var outer mat.Dense
		outer.Outer(math.Sqrt(w), mat.NewVecDense(2, h), mat.NewVecDense(2, p))
		R.Add(R, &outer)
	}
	assert.True(Te, mat.EqualApprox(R, d.TDM, 1e-8), "reconstructed %v", mat.Formatted(R))
}

func TestMOBlock(Te *testing.T) {
	st := &theo.Structure{
		Symbols:    []string{"H", "F"},
		Frags:      theo.Partition{{0}, {1}},
		BasisAtoms: []int{0, 1, 1},
		MOs:        mat.NewDense(3, 3, []float64{0.8, 0.6, 0, -0.6, 0.8, 0, 0, 0, 1}),
	}
	E, err := NewEngine(st, nil)
	require.NoError(Te, err)
	block := &theo.Density{Index: 1, Basis: theo.MO, NOcc: 1, TDM: mat.NewDense(1, 2, []float64{0.7, 0.2})}
	square := &theo.Density{Index: 1, Basis: theo.MO, TDM: mat.NewDense(3, 3, []float64{0, 0.7, 0.2, 0, 0, 0, 0, 0, 0})}
	db, err := E.Compute(block)
	require.NoError(Te, err)
	dsq, err := E.Compute(square)
	require.NoError(Te, err)
	assert.InDelta(Te, dsq.Om, db.Om, 1e-12)
	assert.InDelta(Te, 0.53, db.Om, 1e-12)
	assert.True(Te, mat.EqualApprox(dsq.OmAt, db.OmAt, 1e-12))
	//the same density, given in the AO basis
	var tmp, ao mat.Dense
	tmp.Mul(st.MOs, square.TDM)
	ao.Mul(&tmp, st.MOs.T())
	dao, err := E.Compute(&theo.Density{Index: 1, TDM: &ao})
	require.NoError(Te, err)
	assert.True(Te, mat.EqualApprox(dao.OmAt, db.OmAt, 1e-12))
	N, err := ExtractDensity(E, block, 0)
	require.NoError(Te, err)
	assert.Equal(Te, theo.MO, N.Basis)
	assert.Equal(Te, 1, N.Len())
	assert.InDelta(Te, 0.53, N.Weights[0], 1e-12)

	st.MOs = nil
	E, err = NewEngine(st, nil)
	require.NoError(Te, err)
	_, err = E.Compute(block)
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError))
}

func TestEngineConfiguration(Te *testing.T) {
	st := twoAtoms()
	st.Frags = theo.Partition{{0}}
	_, err := NewEngine(st, nil)
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError), "incomplete partition: %v", err)

	st = twoAtoms()
	st.Overlap = mat.NewSymDense(2, []float64{1, 2, 2, 1})
	_, err = NewEngine(st, nil)
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError), "non positive-definite overlap: %v", err)

	st = twoAtoms()
	st.BasisAtoms = nil
	_, err = NewEngine(st, nil)
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError), "no basis map: %v", err)

	o := theo.DefaultOptions()
	o.AtLists = theo.Partition{{1}, {0}}
	E, err := NewEngine(twoAtoms(), o)
	require.NoError(Te, err)
	ds, err := E.Compute(ctDensity(1))
	require.NoError(Te, err)
	assert.InDelta(Te, 0.2, ds.OmFrag.At(0, 0), 1e-12, "at_lists must replace the structure's partition")

	_, err = E.Compute(&theo.Density{Index: 2, TDM: mat.NewDense(3, 3, nil)})
	assert.True(Te, theo.IsKind(err, theo.ConfigurationError))
}

func ExampleEngine_Compute() {
	st := &theo.Structure{
		Symbols:    []string{"C", "N"},
		Frags:      theo.Partition{{0}, {1}},
		BasisAtoms: []int{0, 1},
	}
	E, err := NewEngine(st, nil)
	if err != nil {
		panic(err)
	}
	D := mat.NewDense(2, 2, []float64{math.Sqrt(0.6), math.Sqrt(0.1), math.Sqrt(0.1), math.Sqrt(0.2)})
	ds, err := E.Compute(&theo.Density{Index: 1, TDM: D})
	if err != nil {
		panic(err)
	}
	fmt.Printf("Om=%.2f CT=%.2f POS=%.2f %s\n", ds.Om, ds.Frag.CT, ds.Frag.POS, ds.Desc)
	// Output: Om=1.00 CT=0.20 POS=1.30 LE
}
