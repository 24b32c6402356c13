/*
 * structure_test.go, part of gotheo.
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

package theo

import (
	"testing"

	v3 "github.com/rmera/gotheo/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPartition(Te *testing.T) {
	assert.NoError(Te, Partition{}.Validate(3))
	assert.NoError(Te, Partition{{0, 2}, {1}}.Validate(3))
	for _, bad := range []Partition{{{0, 1}}, {{0, 1}, {1, 2}}, {{0}, {}, {1, 2}}, {{0, 1, 3}, {2}}, {{-1, 0, 1, 2}}} {
		err := bad.Validate(3)
		assert.True(Te, IsKind(err, ConfigurationError), "partition %v: %v", bad, err)
	}
	assert.Equal(Te, []int{0, 1, 0}, Partition{{0, 2}, {1}}.FragmentOf(3))
	assert.Equal(Te, []int{0, 0}, Partition{}.FragmentOf(2))
	assert.Equal(Te, "[[1,3],[2]]", Partition{{0, 2}, {1}}.String())
}

func TestParseAtLists(Te *testing.T) {
	P, err := ParseAtLists("[[3,1],[2]]")
	require.NoError(Te, err)
	assert.Equal(Te, Partition{{0, 2}, {1}}, P)
	P, err = ParseAtLists(" ")
	require.NoError(Te, err)
	assert.Equal(Te, 0, P.Len())
	_, err = ParseAtLists("[[0,1]]")
	assert.True(Te, IsKind(err, ConfigurationError), "atom numbers are 1-based")
	_, err = ParseAtLists("[[1,2]")
	assert.True(Te, IsKind(err, ConfigurationError))
}

func water(Te *testing.T) *Structure {
	coords, err := v3.NewMatrix([]float64{0, 0, 0, 0.96, 0, 0, -0.24, 0.93, 0})
	require.NoError(Te, err)
	return &Structure{
		Symbols:    []string{"O", "H", "H"},
		Coords:     coords,
		Frags:      Partition{{0}, {1, 2}},
		BasisAtoms: []int{0, 0, 1, 2},
		Overlap:    mat.NewSymDense(4, []float64{1, 0, 0.3, 0.3, 0, 1, 0.2, 0.2, 0.3, 0.2, 1, 0.1, 0.3, 0.2, 0.1, 1}),
	}
}

func TestStructureValidate(Te *testing.T) {
	st := water(Te)
	require.NoError(Te, st.Validate())
	assert.Equal(Te, 3, st.NAtoms())
	assert.Equal(Te, 4, st.NBasis())
	assert.Equal(Te, 2, st.NFrags())

	breakers := map[string]func(*Structure){
		"no atoms":         func(s *Structure) { s.Symbols = nil },
		"bad partition":    func(s *Structure) { s.Frags = Partition{{0}} },
		"no basis map":     func(s *Structure) { s.BasisAtoms = nil },
		"bad basis map":    func(s *Structure) { s.BasisAtoms[3] = 5 },
		"bad overlap size": func(s *Structure) { s.Overlap = mat.NewSymDense(2, nil) },
		"zero overlap":     func(s *Structure) { s.Overlap.SetSym(1, 1, 0) },
		"bad MOs":          func(s *Structure) { s.MOs = mat.NewDense(3, 3, nil) },
		"bad coordinates":  func(s *Structure) { s.Coords = v3.Zeros(2) },
	}
	for name, breaker := range breakers {
		st := water(Te)
		breaker(st)
		err := st.Validate()
		assert.True(Te, IsKind(err, ConfigurationError), "%s: %v", name, err)
	}
	st.Frags = nil
	assert.Equal(Te, 1, st.NFrags())
	assert.NoError(Te, st.Validate())
}

func TestDensityCheck(Te *testing.T) {
	st := water(Te)
	d := &Density{Index: 1, TDM: mat.NewDense(4, 4, nil)}
	assert.NoError(Te, d.Check(st))
	d.NOcc = 2
	assert.Error(Te, d.Check(st), "AO densities can't be blocks")
	d = &Density{Index: 1, Basis: MO, NOcc: 2, TDM: mat.NewDense(2, 2, nil)}
	assert.True(Te, IsKind(d.Check(st), ConfigurationError), "MO density without MOs")
	st.MOs = mat.NewDense(4, 4, nil)
	assert.NoError(Te, d.Check(st))
	d.NOcc = 1
	assert.Error(Te, d.Check(st))
	d.NOcc = 0
	assert.Error(Te, d.Check(st))
	d.TDM = mat.NewDense(4, 4, nil)
	assert.NoError(Te, d.Check(st))
	d.TDM = nil
	assert.Error(Te, d.Check(st))
	assert.Panics(Te, func() { d.Dims() })
}

func TestSpin(Te *testing.T) {
	for _, s := range []Spin{Restricted, Alpha, Beta, Summed} {
		p, err := ParseSpin(s.String())
		require.NoError(Te, err)
		assert.Equal(Te, s, p)
	}
	_, err := ParseSpin("up")
	assert.Error(Te, err)
}

func TestBondedFragments(Te *testing.T) {
	//a water molecule and a distant hydrogen molecule, atoms interleaved
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0,        //O
		5, 0, 0,        //H
		0.96, 0, 0,     //H
		5.74, 0, 0,     //H
		-0.24, 0.93, 0, //H
	})
	require.NoError(Te, err)
	st := &Structure{Symbols: []string{"O", "H", "H", "h", "H"}, Coords: coords}
	P, err := BondedFragments(st)
	require.NoError(Te, err)
	assert.Equal(Te, Partition{{0, 2, 4}, {1, 3}}, P)
	assert.NoError(Te, P.Validate(5))

	P, err = BondedFragments(st, -1)
	require.NoError(Te, err)
	assert.Equal(Te, 5, P.Len(), "no bonds with a large negative tolerance")

	st.Symbols[1] = "Xx"
	_, err = BondedFragments(st)
	assert.True(Te, IsKind(err, ConfigurationError))
	st.Coords = nil
	_, err = BondedFragments(st)
	assert.True(Te, IsKind(err, ConfigurationError))
	r, ok := CovalentRadius("cl")
	assert.True(Te, ok)
	assert.Equal(Te, 1.02, r)
}
