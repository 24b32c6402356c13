/*
 * engine.go, part of gotheo.
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

	theo "github.com/rmera/gotheo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//eigenvalues of the overlap below this are taken as zero
const eigzero = 1e-10

//FragmentDescriptors are the charge-transfer descriptors obtained from OmFrag.
//All of them are NaN for negligible states. RMSeh and MAeh need coordinates.
type FragmentDescriptors struct {
	POSi, POSf, POS float64
	PRi, PRf, PR    float64
	CT, CTnt, COH   float64
	RMSeh, MAeh     float64
}

//DescriptorSet contains the descriptors computed for one state.
type DescriptorSet struct {
	Om           float64
	OmAt         *mat.Dense //natoms x natoms
	OmFrag       *mat.Dense //nfrags x nfrags
	Frag         FragmentDescriptors
	HasDistances bool   //RMSeh and MAeh were computed
	Desc         string //LE, CT, MIX or negl
	Negligible   bool
}

//Engine computes the descriptors of transition densities for one structure.
//An Engine is immutable after creation, so it can be shared.
type Engine struct {
	st        *theo.Structure
	o         *theo.Options
	fragOf    []int
	shalf     *mat.Dense //S^1/2, nil for an orthonormal AO basis
	sminhalf  *mat.Dense //S^-1/2
	distances *mat.SymDense
}

//NewEngine returns an Engine for the structure st, with the options o, or
//with the default options if o is nil. The structure and options are validated.
func NewEngine(st *theo.Structure, o *theo.Options) (*Engine, error) {
	caller := "NewEngine"
	if st == nil {
		return nil, theo.NewError(theo.ConfigurationError, caller, "nil structure")
	}
	if o == nil {
		o = theo.DefaultOptions()
	}
	if err := o.Validate(); err != nil {
		return nil, errDecorate(err, caller)
	}
	st = o.Apply(st)
	if err := st.Validate(); err != nil {
		return nil, errDecorate(err, caller)
	}
	E := &Engine{st: st, o: o, fragOf: st.Frags.FragmentOf(st.NAtoms())}
	if st.Overlap != nil {
		var err error
		E.shalf, E.sminhalf, err = sqrtSym(st.Overlap)
		if err != nil {
			return nil, errDecorate(err, caller)
		}
	}
	if st.Coords != nil {
		E.distances = st.Coords.DistanceMatrix()
	}
	return E, nil
}

//Structure returns the structure used by the engine, with the fragment partition in effect.
func (E *Engine) Structure() *theo.Structure {
	return E.st
}

//Options returns the options used by the engine.
func (E *Engine) Options() *theo.Options {
	return E.o
}

//sqrtSym returns S^1/2 and S^-1/2 for the symmetric, positive definite S.
func sqrtSym(S *mat.SymDense) (*mat.Dense, *mat.Dense, error) {
	var es mat.EigenSym
	if ok := es.Factorize(S, true); !ok {
		return nil, nil, theo.NewError(theo.NumericalError, "sqrtSym", "eigendecomposition of the overlap matrix failed")
	}
	vals := es.Values(nil)
	for i, v := range vals {
		if v <= eigzero {
			return nil, nil, theo.NewError(theo.ConfigurationError, "sqrtSym", "overlap matrix is not positive definite: eigenvalue %d is %g", i+1, v)
		}
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	n := len(vals)
	power := func(p float64) *mat.Dense {
		scaled := mat.NewDense(n, n, nil)
		scaled.Apply(func(i, j int, v float64) float64 { return v * math.Pow(vals[j], p) }, &vecs)
		ret := mat.NewDense(n, n, nil)
		ret.Mul(scaled, vecs.T())
		return ret
	}
	return power(0.5), power(-0.5), nil
}

//aoDensity returns the TDM of d in the AO basis.
func (E *Engine) aoDensity(d *theo.Density) *mat.Dense {
	if d.Basis == theo.AO {
		return d.TDM
	}
	C := E.st.MOs
	_, nmo := C.Dims()
	full := d.TDM
	if d.NOcc > 0 {
		full = embed(d.TDM, d.NOcc, nmo)
	}
	nbas := E.st.NBasis()
	tmp := mat.NewDense(nbas, nmo, nil)
	tmp.Mul(C, full)
	ret := mat.NewDense(nbas, nbas, nil)
	ret.Mul(tmp, C.T())
	return ret
}

//embed puts the nocc x nvirt block in the upper right corner of an nmo x nmo matrix.
func embed(block *mat.Dense, nocc, nmo int) *mat.Dense {
	ret := mat.NewDense(nmo, nmo, nil)
	ret.Slice(0, nocc, nocc, nmo).(*mat.Dense).Copy(block)
	return ret
}

//basisOmega returns the transition charge per pair of basis functions.
func (E *Engine) basisOmega(D *mat.Dense) *mat.Dense {
	n, _ := D.Dims()
	ret := mat.NewDense(n, n, nil)
	S := E.st.Overlap
	if S == nil {
		ret.MulElem(D, D)
		return ret
	}
	A := mat.NewDense(n, n, nil)
	switch E.o.OmFormula {
	case theo.OmLowdin:
		tmp := mat.NewDense(n, n, nil)
		tmp.Mul(E.shalf, D)
		A.Mul(tmp, E.shalf)
		ret.MulElem(A, A)
	default:
		B := mat.NewDense(n, n, nil)
		A.Mul(D, S)
		B.Mul(S, D)
		ret.MulElem(A, B)
	}
	return ret
}

//AtomOmega returns the atom-resolved transition charge, OmAt, of the density d.
func (E *Engine) AtomOmega(d *theo.Density) (*mat.Dense, error) {
	if err := d.Check(E.st); err != nil {
		return nil, errDecorate(err, "AtomOmega")
	}
	ombas := E.basisOmega(E.aoDensity(d))
	nat := E.st.NAtoms()
	ret := mat.NewDense(nat, nat, nil)
	ba := E.st.BasisAtoms
	for mu, A := range ba {
		row := ombas.RawRowView(mu)
		for nu, B := range ba {
			ret.Set(A, B, ret.At(A, B)+row[nu])
		}
	}
	return ret, nil
}

//Compute returns all the descriptors for the density d. It returns a
//ConfigurationError if the density is not consistent with the structure.
//A negligible state is not an error. It is flagged in the returned set.
func (E *Engine) Compute(d *theo.Density) (*DescriptorSet, error) {
	omat, err := E.AtomOmega(d)
	if err != nil {
		return nil, errDecorate(err, "Compute")
	}
	return E.Fragments(omat), nil
}

//Fragments computes OmFrag and all the descriptors that follow from the
//atom-resolved transition charge omat, which is kept in the returned set.
func (E *Engine) Fragments(omat *mat.Dense) *DescriptorSet {
	nat := E.st.NAtoms()
	if r, c := omat.Dims(); r != nat || c != nat {
		panic(theo.ErrShape)
	}
	nf := E.st.NFrags()
	ofrag := mat.NewDense(nf, nf, nil)
	for A := 0; A < nat; A++ {
		fa := E.fragOf[A]
		for B := 0; B < nat; B++ {
			fb := E.fragOf[B]
			ofrag.Set(fa, fb, ofrag.At(fa, fb)+omat.At(A, B))
		}
	}
	ret := &DescriptorSet{OmAt: omat, OmFrag: ofrag, HasDistances: E.distances != nil}
	ret.Om = mat.Sum(omat)
	if math.Abs(ret.Om) < E.o.Negligible {
		ret.Negligible = true
		ret.Desc = "negl"
		ret.Frag = nanFragments()
		return ret
	}
	ret.Frag = fragmentDescriptors(ofrag, ret.Om)
	if ret.HasDistances {
		ret.Frag.RMSeh, ret.Frag.MAeh = E.ehDistances(omat, ret.Om)
	}
	switch {
	case ret.Frag.CT < E.o.CTLow:
		ret.Desc = "LE"
	case ret.Frag.CT > E.o.CTHigh:
		ret.Desc = "CT"
	default:
		ret.Desc = "MIX"
	}
	return ret
}

func nanFragments() FragmentDescriptors {
	n := math.NaN()
	return FragmentDescriptors{n, n, n, n, n, n, n, n, n, n, n}
}

func fragmentDescriptors(ofrag *mat.Dense, om float64) FragmentDescriptors {
	nf, _ := ofrag.Dims()
	hole := make([]float64, nf)
	elec := make([]float64, nf)
	pos := make([]float64, nf)
	var diag, upper, lower float64
	for i := 0; i < nf; i++ {
		pos[i] = float64(i + 1)
		for j := 0; j < nf; j++ {
			v := ofrag.At(i, j)
			hole[i] += v
			elec[j] += v
			switch {
			case i == j:
				diag += v
			case i < j:
				upper += v
			default:
				lower += v
			}
		}
	}
	var f FragmentDescriptors
	f.POSi = floats.Dot(pos, hole) / om
	f.POSf = floats.Dot(pos, elec) / om
	f.POS = (f.POSi + f.POSf) / 2
	f.PRi = om * om / floats.Dot(hole, hole)
	f.PRf = om * om / floats.Dot(elec, elec)
	f.PR = (f.PRi + f.PRf) / 2
	f.CT = (om - diag) / om
	f.CTnt = (upper - lower) / om
	frob := mat.Norm(ofrag, 2)
	f.COH = om * om / (frob * frob)
	return f
}

//ehDistances returns the root mean square and the mean absolute electron-hole
//distances for the atom-resolved transition charge omat.
func (E *Engine) ehDistances(omat *mat.Dense, om float64) (float64, float64) {
	nat, _ := omat.Dims()
	var sq, abs float64
	for A := 0; A < nat; A++ {
		for B := 0; B < nat; B++ {
			r := E.distances.At(A, B)
			w := omat.At(A, B)
			sq += w * r * r
			abs += w * r
		}
	}
	return math.Sqrt(sq / om), abs / om
}

//Orthonormal returns the TDM of d in the orthonormal basis in which NTOs are obtained:
//MO-basis TDMs are returned as given, AO-basis ones as S^1/2 D S^1/2.
func (E *Engine) Orthonormal(d *theo.Density) (*mat.Dense, error) {
	if err := d.Check(E.st); err != nil {
		return nil, errDecorate(err, "Orthonormal")
	}
	if d.Basis == theo.MO || E.shalf == nil {
		return d.TDM, nil
	}
	n := E.st.NBasis()
	tmp := mat.NewDense(n, n, nil)
	tmp.Mul(E.shalf, d.TDM)
	ret := mat.NewDense(n, n, nil)
	ret.Mul(tmp, E.shalf)
	return ret, nil
}
