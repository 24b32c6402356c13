/*
 * record.go, part of gotheo.
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
	theo "github.com/rmera/gotheo"
	"gonum.org/v1/gonum/mat"
)

//Record holds the results of the analysis of one excited state.
//A failed record (Err != nil) holds no descriptor values.
type Record struct {
	Index        int
	Name         string
	Spin         theo.Spin
	Energy       float64 //eV
	Osc          float64
	HasOsc       bool
	Multiplicity int
	Negligible   bool
	Err          error
	NTO          *NTOSet

	scalars map[Key]float64
	mats    map[Key]*mat.Dense
	texts   map[Key]string

	basis theo.BasisKind //of the source TDM
	nocc  int
}

func newRecord(d *theo.Density, spin theo.Spin) *Record {
	R := &Record{
		Index:        d.Index,
		Name:         d.Name,
		Spin:         spin,
		Energy:       d.Energy,
		Osc:          d.Osc,
		HasOsc:       d.HasOsc,
		Multiplicity: d.Multiplicity,
		basis:        d.Basis,
		nocc:         d.NOcc,
	}
	R.clear()
	return R
}

func (R *Record) clear() {
	R.scalars = make(map[Key]float64)
	R.mats = make(map[Key]*mat.Dense)
	R.texts = make(map[Key]string)
	R.NTO = nil
	R.Negligible = false
}

//fail marks the record as failed, removing all its descriptors.
func (R *Record) fail(err error) {
	R.clear()
	R.Err = err
}

//Failed returns true if the analysis of the state failed.
func (R *Record) Failed() bool {
	return R.Err != nil
}

//Scalar returns the scalar descriptor k and whether it is present.
//Ratio descriptors of negligible states are present and NaN.
func (R *Record) Scalar(k Key) (float64, bool) {
	v, ok := R.scalars[k]
	return v, ok
}

//Matrix returns the matrix descriptor k and whether it is present.
//The matrix is not a copy.
func (R *Record) Matrix(k Key) (*mat.Dense, bool) {
	v, ok := R.mats[k]
	return v, ok
}

//Text returns the label descriptor k and whether it is present.
func (R *Record) Text(k Key) (string, bool) {
	v, ok := R.texts[k]
	return v, ok
}

//Has returns true if the record holds the descriptor k, of any type.
func (R *Record) Has(k Key) bool {
	if _, ok := R.scalars[k]; ok {
		return true
	}
	if _, ok := R.mats[k]; ok {
		return true
	}
	_, ok := R.texts[k]
	return ok
}

//Del removes the descriptor k from the record, if present.
func (R *Record) Del(k Key) {
	delete(R.scalars, k)
	delete(R.mats, k)
	delete(R.texts, k)
}

//Keys returns the keys of all the descriptors in the record, in registry order.
func (R *Record) Keys() []Key {
	ret := make([]Key, 0, len(R.scalars)+len(R.mats)+len(R.texts))
	for k := range R.scalars {
		ret = append(ret, k)
	}
	for k := range R.mats {
		ret = append(ret, k)
	}
	for k := range R.texts {
		ret = append(ret, k)
	}
	sortKeys(ret)
	return ret
}

//SetScalar stores the scalar descriptor k, replacing any value of any type stored under k.
//Descriptors not built into this package should be registered with Classify if
//the record is to be combined with another spin channel.
func (R *Record) SetScalar(k Key, v float64) {
	R.Del(k)
	R.scalars[k] = v
}

//SetMatrix stores the matrix descriptor k. The matrix is not copied.
func (R *Record) SetMatrix(k Key, m *mat.Dense) {
	R.Del(k)
	R.mats[k] = m
}

//SetText stores the label descriptor k.
func (R *Record) SetText(k Key, s string) {
	R.Del(k)
	R.texts[k] = s
}

//store puts the descriptors in ds into the record.
func (R *Record) store(ds *DescriptorSet) {
	R.SetScalar(Om, ds.Om)
	R.SetMatrix(OmAt, ds.OmAt)
	R.SetText(OmDesc, ds.Desc)
	R.storeFragments(ds)
}

//storeFragments puts the fragment-resolved descriptors in ds into the record.
func (R *Record) storeFragments(ds *DescriptorSet) {
	R.Negligible = ds.Negligible
	R.SetMatrix(OmFrag, ds.OmFrag)
	f := ds.Frag
	for k, v := range map[Key]float64{POSi: f.POSi, POSf: f.POSf, POS: f.POS, PRi: f.PRi, PRf: f.PRf, PR: f.PR, CT: f.CT, CTnt: f.CTnt, COH: f.COH} {
		R.SetScalar(k, v)
	}
	if ds.HasDistances {
		R.SetScalar(RMSeh, f.RMSeh)
		R.SetScalar(MAeh, f.MAeh)
	} else {
		R.Del(RMSeh)
		R.Del(MAeh)
	}
}

//storeNTO attaches the NTOs to the record, with their derived descriptors.
func (R *Record) storeNTO(N *NTOSet) {
	R.NTO = N
	R.SetScalar(PRNTO, N.PRNTO)
	R.SetScalar(SHE, N.SHE)
	R.SetScalar(ZHE, N.ZHE)
}
