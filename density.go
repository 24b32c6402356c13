/*
 * density.go, part of gotheo.
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
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Spin is the spin channel a density, or an analysis, refers to.
type Spin int

const (
	Restricted Spin = iota //closed-shell or spin-adapted densities
	Alpha
	Beta
	Summed //the spin-summed combination of an alpha and a beta analysis
)

func (s Spin) String() string {
	switch s {
	case Restricted:
		return "restricted"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Summed:
		return "alpha+beta"
	}
	return fmt.Sprintf("spin(%d)", int(s))
}

//ParseSpin is the inverse of Spin.String. It also accepts the single
//letters used in some output files.
func ParseSpin(s string) (Spin, error) {
	switch s {
	case "", "restricted", "r":
		return Restricted, nil
	case "alpha", "a":
		return Alpha, nil
	case "beta", "b":
		return Beta, nil
	case "alpha+beta", "summed":
		return Summed, nil
	}
	return Restricted, NewError(ConfigurationError, "ParseSpin", "unknown spin label %q", s)
}

//BasisKind is the orbital basis in which a TDM is given.
type BasisKind int

const (
	AO BasisKind = iota //atomic orbitals, possibly non-orthogonal
	MO                  //molecular orbitals, orthonormal
)

func (b BasisKind) String() string {
	if b == MO {
		return "MO"
	}
	return "AO"
}

//Density is the transition density of one excited state, with its metadata,
//as given by a DensitySource.
type Density struct {
	Index        int    //state number, 1-based, in source order
	Name         string //state label, such as "2(1)A" or "S1"
	Spin         Spin
	Energy       float64 //excitation energy, in eV
	Osc          float64 //oscillator strength, only meaningful if HasOsc
	HasOsc       bool
	Multiplicity int
	Basis        BasisKind
	//NOcc is the number of occupied orbitals when TDM is the occupied x virtual
	//block of an MO-basis TDM. It is 0 for square TDMs.
	NOcc int
	TDM  *mat.Dense
}

//Dims returns the dimensions of the TDM.
func (d *Density) Dims() (int, int) {
	if d.TDM == nil {
		panic(ErrNilTDM)
	}
	return d.TDM.Dims()
}

//Check verifies that the declared dimensions of the density are consistent with each
//other and with the structure st. It returns a ConfigurationError otherwise.
func (d *Density) Check(st *Structure) error {
	caller := "Density.Check"
	if d.TDM == nil {
		return NewError(ConfigurationError, caller, "state %d has no transition density matrix", d.Index)
	}
	r, c := d.TDM.Dims()
	switch d.Basis {
	case AO:
		n := st.NBasis()
		if r != n || c != n {
			return NewError(ConfigurationError, caller, "state %d: AO-basis TDM is %dx%d, but the basis has %d functions", d.Index, r, c, n)
		}
		if d.NOcc != 0 {
			return NewError(ConfigurationError, caller, "state %d: occupied/virtual blocks are only defined for MO-basis TDMs", d.Index)
		}
	case MO:
		if st.MOs == nil {
			return NewError(ConfigurationError, caller, "state %d: MO-basis TDM given, but no MO coefficients available", d.Index)
		}
		_, nmo := st.MOs.Dims()
		if d.NOcc > 0 {
			if r != d.NOcc || d.NOcc+c != nmo {
				return NewError(ConfigurationError, caller, "state %d: TDM block is %dx%d, inconsistent with %d occupied of %d MOs", d.Index, r, c, d.NOcc, nmo)
			}
		} else if r != nmo || c != nmo {
			return NewError(ConfigurationError, caller, "state %d: MO-basis TDM is %dx%d, but there are %d MOs", d.Index, r, c, nmo)
		}
	default:
		return NewError(ConfigurationError, caller, "state %d: unknown basis %d", d.Index, int(d.Basis))
	}
	return nil
}
