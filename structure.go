/*
 * structure.go, part of gotheo.
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
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	v3 "github.com/rmera/gotheo/v3"
	"gonum.org/v1/gonum/mat"
)

//Partition is an ordered set of fragments, each of which is a set of 0-based atom
//indexes. The fragment order is used to index all fragment-resolved quantities.
type Partition [][]int

//Len returns the number of fragments.
func (P Partition) Len() int {
	return len(P)
}

//Validate returns a ConfigurationError unless P covers all natoms atoms,
//each of them exactly once. An empty partition is valid: it stands for the whole molecule.
func (P Partition) Validate(natoms int) error {
	caller := "Partition.Validate"
	if len(P) == 0 {
		return nil
	}
	seen := make([]int, natoms)
	for i, frag := range P {
		if len(frag) == 0 {
			return NewError(ConfigurationError, caller, "fragment %d is empty", i+1)
		}
		for _, at := range frag {
			if at < 0 || at >= natoms {
				return NewError(ConfigurationError, caller, "fragment %d: atom index %d out of range (%d atoms)", i+1, at+1, natoms)
			}
			if seen[at] != 0 {
				return NewError(ConfigurationError, caller, "atom %d belongs to fragments %d and %d", at+1, seen[at], i+1)
			}
			seen[at] = i + 1
		}
	}
	missing := make([]string, 0)
	for at, f := range seen {
		if f == 0 {
			missing = append(missing, strconv.Itoa(at+1))
		}
	}
	if len(missing) > 0 {
		return NewError(ConfigurationError, caller, "atoms not assigned to any fragment: %s", strings.Join(missing, " "))
	}
	return nil
}

//FragmentOf returns a slice with the fragment index of each of the natoms atoms.
//It assumes a valid partition. For an empty partition all atoms belong to fragment 0.
func (P Partition) FragmentOf(natoms int) []int {
	ret := make([]int, natoms)
	for i, frag := range P {
		for _, at := range frag {
			ret[at] = i
		}
	}
	return ret
}

//String returns the partition in the 1-based at_lists notation.
func (P Partition) String() string {
	frags := make([]string, 0, len(P))
	for _, frag := range P {
		f := make([]string, 0, len(frag))
		for _, at := range frag {
			f = append(f, strconv.Itoa(at+1))
		}
		frags = append(frags, "["+strings.Join(f, ",")+"]")
	}
	return "[" + strings.Join(frags, ",") + "]"
}

//ParseAtLists reads a partition written in the 1-based notation of analysis input files,
//i.e. [[1,2,3],[4,5]]. Atoms in each fragment are sorted.
func ParseAtLists(s string) (Partition, error) {
	var raw [][]int
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, WrapError(ConfigurationError, "ParseAtLists", err)
	}
	ret := make(Partition, len(raw))
	for i, frag := range raw {
		ret[i] = make([]int, len(frag))
		for j, at := range frag {
			if at < 1 {
				return nil, NewError(ConfigurationError, "ParseAtLists", "atom numbers are 1-based, got %d", at)
			}
			ret[i][j] = at - 1
		}
		sort.Ints(ret[i])
	}
	return ret, nil
}

//Structure contains the molecule and basis set data needed to analyze
//the transition densities of one calculation.
type Structure struct {
	Symbols []string   //element symbols, one per atom
	Coords  *v3.Matrix //cartesian coordinates in Angstrom. Can be nil.
	Frags   Partition
	//BasisAtoms maps each basis function (AO) to the index of the atom it is centered on.
	BasisAtoms []int
	//Overlap is the AO overlap matrix. A nil overlap means an orthonormal AO basis.
	Overlap *mat.SymDense
	//MOs has the MO coefficients, one column per MO, nAO x nMO. Only needed for MO-basis TDMs.
	MOs *mat.Dense
}

//NAtoms returns the number of atoms in the structure.
func (S *Structure) NAtoms() int {
	return len(S.Symbols)
}

//NBasis returns the number of basis functions.
func (S *Structure) NBasis() int {
	return len(S.BasisAtoms)
}

//NFrags returns the number of fragments. The whole molecule counts as one
//fragment if no partition is given.
func (S *Structure) NFrags() int {
	if len(S.Frags) == 0 {
		return 1
	}
	return len(S.Frags)
}

//Validate checks that the structure is consistent. It returns a ConfigurationError
//if it is not.
func (S *Structure) Validate() error {
	caller := "Structure.Validate"
	natoms := S.NAtoms()
	if natoms == 0 {
		return NewError(ConfigurationError, caller, "no atoms in structure")
	}
	if S.Coords != nil && S.Coords.NVecs() != natoms {
		return NewError(ConfigurationError, caller, "%d coordinates for %d atoms", S.Coords.NVecs(), natoms)
	}
	if err := S.Frags.Validate(natoms); err != nil {
		return errDecorate(err, caller)
	}
	nbas := S.NBasis()
	if nbas == 0 {
		return NewError(ConfigurationError, caller, "missing basis function to atom map")
	}
	for i, at := range S.BasisAtoms {
		if at < 0 || at >= natoms {
			return NewError(ConfigurationError, caller, "basis function %d assigned to non-existent atom %d", i+1, at+1)
		}
	}
	if S.Overlap != nil {
		if n := S.Overlap.SymmetricDim(); n != nbas {
			return NewError(ConfigurationError, caller, "overlap matrix is %dx%d for %d basis functions", n, n, nbas)
		}
		for i := 0; i < nbas; i++ {
			if d := S.Overlap.At(i, i); d <= 0 || math.IsNaN(d) {
				return NewError(ConfigurationError, caller, "non-positive overlap diagonal element %d: %g", i+1, d)
			}
		}
	}
	if S.MOs != nil {
		if r, _ := S.MOs.Dims(); r != nbas {
			return NewError(ConfigurationError, caller, "MO coefficients have %d rows for %d basis functions", r, nbas)
		}
	}
	return nil
}
