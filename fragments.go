/*
 * fragments.go, part of gotheo.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Distances in A.
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//Covalent radii, from Cordero et al., 2008 (DOI:10.1039/B801115J).
var symbolCovrad = map[string]float64{
	"H":  0.4, //0.31, but a longer radius doesn't matter for H
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Ar": 1.06,
	"K":  2.03,
	"Ca": 1.76,
	"Ti": 1.60,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.5,  //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"Ge": 1.20,
	"As": 1.19,
	"Se": 1.2,
	"Br": 1.2,
	"Ru": 1.46,
	"Rh": 1.42,
	"Pd": 1.39,
	"Ag": 1.45,
	"Sn": 1.39,
	"I":  1.39,
	"Ir": 1.41,
	"Pt": 1.36,
	"Au": 1.36,
}

//CovalentRadius returns the covalent radius, in A, of the element with the given symbol,
//and false if it is not known. The symbol is not case-sensitive.
func CovalentRadius(symbol string) (float64, bool) {
	r, ok := symbolCovrad[normalSymbol(symbol)]
	return r, ok
}

func normalSymbol(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return strings.ToUpper(s)
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

//BondedFragments divides the structure in covalently bonded fragments. Two atoms are
//bonded if their distance is smaller than the sum of their covalent radii plus a
//tolerance, tol[0] if given, or 0.45 A. Fragments are sorted by their first atom.
//The structure needs coordinates.
func BondedFragments(st *Structure, tol ...float64) (Partition, error) {
	caller := "BondedFragments"
	if st.Coords == nil {
		return nil, NewError(ConfigurationError, caller, "coordinates needed to find bonded fragments")
	}
	natoms := st.NAtoms()
	if st.Coords.NVecs() != natoms {
		return nil, NewError(ConfigurationError, caller, "%d coordinates for %d atoms", st.Coords.NVecs(), natoms)
	}
	t := bondtol
	if len(tol) > 0 {
		t = tol[0]
	}
	radii := make([]float64, natoms)
	for i, s := range st.Symbols {
		r, ok := CovalentRadius(s)
		if !ok {
			return nil, NewError(ConfigurationError, caller, "couldn't find the covalent radius for %s %d", s, i+1)
		}
		radii[i] = r
	}
	g := simple.NewUndirectedGraph()
	for i := 0; i < natoms; i++ {
		g.AddNode(simple.Node(i))
	}
	dist := st.Coords.DistanceMatrix()
	for i := 0; i < natoms; i++ {
		for j := i + 1; j < natoms; j++ {
			d := dist.At(i, j)
			if d < radii[i]+radii[j]+t && d > tooclose {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	ret := make(Partition, 0)
	for _, comp := range topo.ConnectedComponents(g) {
		ret = append(ret, nodeIDs(comp))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret, nil
}

func nodeIDs(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	sort.Ints(ret)
	return ret
}
