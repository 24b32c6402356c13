/*
 * nto.go, part of gotheo.
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
	"sort"

	theo "github.com/rmera/gotheo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//DefaultMinNTO is the weight below which NTO pairs are dropped, unless something else is requested.
const DefaultMinNTO = 1e-6

//NTOSet contains the natural transition orbitals of one state.
type NTOSet struct {
	//Weights of the NTO pairs, in decreasing order. Each weight is the square of
	//a singular value of the TDM.
	Weights []float64
	//Hole and Particle have the coefficients of the hole and particle NTO of each pair,
	//one column per pair, in the same order as Weights. They are nil if no pair was kept.
	Hole     *mat.Dense
	Particle *mat.Dense
	Basis    theo.BasisKind
	//Om is the sum of all the weights, including those of the pairs not kept.
	Om    float64
	PRNTO float64 //participation ratio of the weights
	SHE   float64 //entanglement entropy, in bits
	ZHE   float64 //2^SHE
}

//Len returns the number of NTO pairs in the set.
func (N *NTOSet) Len() int {
	return len(N.Weights)
}

//Check returns a NumericalError unless the sum of the kept weights equals om within tol.
func (N *NTOSet) Check(om, tol float64) error {
	s := floats.Sum(N.Weights)
	if math.Abs(s-om) > tol {
		return theo.NewError(theo.NumericalError, "NTOSet.Check", "sum of NTO weights %g differs from Omega %g", s, om)
	}
	return nil
}

//factorize is the decomposition used by Extract. Tests replace it to make it fail.
var factorize = func(svd *mat.SVD, m mat.Matrix) bool {
	return svd.Factorize(m, mat.SVDThin)
}

//Extract obtains the NTOs of the TDM m, which must be given in an orthonormal basis, by a singular
//value decomposition. If maxNTO > 0, at most maxNTO pairs are kept. Pairs with weights
//below minWeight[0], or below DefaultMinNTO if not given, are dropped. PRNTO, SHE and ZHE
//are computed from all the weights. A failed decomposition gives a NumericalError.
func Extract(m *mat.Dense, maxNTO int, minWeight ...float64) (*NTOSet, error) {
	minw := DefaultMinNTO
	if len(minWeight) > 0 {
		minw = minWeight[0]
	}
	var svd mat.SVD
	if ok := factorize(&svd, m); !ok {
		return nil, theo.NewError(theo.NumericalError, "Extract", "singular value decomposition of the TDM failed")
	}
	sv := svd.Values(nil)
	w := make([]float64, len(sv))
	order := make([]int, len(sv))
	for i, v := range sv {
		w[i] = v * v
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return w[order[i]] > w[order[j]] })
	ret := &NTOSet{Basis: theo.MO}
	ret.Om = floats.Sum(w)
	ret.PRNTO, ret.SHE, ret.ZHE = entanglement(w, ret.Om)
	keep := make([]int, 0, len(w))
	for _, i := range order {
		if w[i] < minw || (maxNTO > 0 && len(keep) == maxNTO) {
			break
		}
		keep = append(keep, i)
	}
	ret.Weights = make([]float64, len(keep))
	if len(keep) == 0 {
		return ret, nil
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	ur, _ := u.Dims()
	vr, _ := v.Dims()
	ret.Hole = mat.NewDense(ur, len(keep), nil)
	ret.Particle = mat.NewDense(vr, len(keep), nil)
	col := make([]float64, max(ur, vr))
	for j, i := range keep {
		ret.Weights[j] = w[i]
		ret.Hole.SetCol(j, mat.Col(col[:ur], i, &u))
		ret.Particle.SetCol(j, mat.Col(col[:vr], i, &v))
	}
	return ret, nil
}

//entanglement returns the NTO participation ratio, and the entanglement entropy of the
//weights w, which add up to om, in bits and as a number of configurations.
func entanglement(w []float64, om float64) (float64, float64, float64) {
	if om <= 0 {
		n := math.NaN()
		return n, n, n
	}
	pr := om * om / floats.Dot(w, w)
	p := make([]float64, len(w))
	floats.ScaleTo(p, 1/om, w)
	she := stat.Entropy(p) / math.Ln2
	return pr, she, math.Exp2(she)
}

//ExtractDensity obtains the NTOs of the density d, using the basis data and the min_nto
//setting of the engine E. For AO-basis densities with a non-orthogonal basis, the
//hole and particle coefficients are transformed back to the AO basis.
func ExtractDensity(E *Engine, d *theo.Density, maxNTO int) (*NTOSet, error) {
	caller := "ExtractDensity"
	m, err := E.Orthonormal(d)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	N, err := Extract(m, maxNTO, E.o.MinNTO)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	N.Basis = d.Basis
	if d.Basis == theo.AO && E.sminhalf != nil && N.Len() > 0 {
		var h, p mat.Dense
		h.Mul(E.sminhalf, N.Hole)
		p.Mul(E.sminhalf, N.Particle)
		N.Hole, N.Particle = &h, &p
	}
	return N, nil
}
