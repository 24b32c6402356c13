/*
 * archive.go, part of gotheo.
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

package render

import (
	"encoding/json"
	"io"
	"math"

	theo "github.com/rmera/gotheo"
	"github.com/rmera/gotheo/source"
	"github.com/rmera/gotheo/tden"
	"gonum.org/v1/gonum/mat"
)

//ArchivedState has the results for one state, as stored in an archive.
//NaN descriptors are stored as null.
type ArchivedState struct {
	Index        int                    `json:"index"`
	Name         string                 `json:"name,omitempty"`
	Energy       float64                `json:"energy"`
	Osc          *float64               `json:"osc,omitempty"`
	Multiplicity int                    `json:"multiplicity,omitempty"`
	Error        string                 `json:"error,omitempty"`
	Negligible   bool                   `json:"negligible,omitempty"`
	Scalars      map[string]*float64    `json:"scalars,omitempty"`
	Labels       map[string]string      `json:"labels,omitempty"`
	Matrices     map[string][][]float64 `json:"matrices,omitempty"`
	NTOWeights   []float64              `json:"nto_weights,omitempty"`
}

//ArchivedSession is the content of an archive.
type ArchivedSession struct {
	Spin    string          `json:"spin"`
	NFrags  int             `json:"nfrags"`
	Frags   [][]int         `json:"frags,omitempty"`
	Symbols []string        `json:"symbols,omitempty"`
	States  []ArchivedState `json:"states"`
}

//Archive is a Renderer that stores all the descriptors of a session as JSON, compressed
//with z-standard. The TDMs themselves are not stored.
type Archive struct {
	w   io.Writer
	doc ArchivedSession
}

//NewArchive returns an Archive renderer writing to w.
func NewArchive(w io.Writer) *Archive {
	return &Archive{w: w}
}

func (A *Archive) Prepare(info tden.Info) error {
	A.doc = ArchivedSession{Spin: info.Spin.String(), NFrags: info.NFrags}
	if info.Structure != nil {
		A.doc.Frags = info.Structure.Frags
		A.doc.Symbols = info.Structure.Symbols
	}
	return nil
}

func (A *Archive) EmitState(rec *tden.Record) error {
	st := ArchivedState{
		Index:        rec.Index,
		Name:         rec.Name,
		Energy:       rec.Energy,
		Multiplicity: rec.Multiplicity,
		Negligible:   rec.Negligible,
	}
	if rec.HasOsc {
		o := rec.Osc
		st.Osc = &o
	}
	if rec.Failed() {
		st.Error = rec.Err.Error()
		A.doc.States = append(A.doc.States, st)
		return nil
	}
	st.Scalars = make(map[string]*float64)
	st.Labels = make(map[string]string)
	st.Matrices = make(map[string][][]float64)
	for _, k := range rec.Keys() {
		if v, ok := rec.Scalar(k); ok {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				st.Scalars[string(k)] = nil
			} else {
				st.Scalars[string(k)] = &v
			}
			continue
		}
		if s, ok := rec.Text(k); ok {
			st.Labels[string(k)] = s
			continue
		}
		if m, ok := rec.Matrix(k); ok && k != tden.TDen {
			st.Matrices[string(k)] = rows(m)
		}
	}
	if rec.NTO != nil {
		st.NTOWeights = append([]float64{}, rec.NTO.Weights...)
	}
	A.doc.States = append(A.doc.States, st)
	return nil
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	ret := make([][]float64, r)
	for i := range ret {
		ret[i] = mat.Row(nil, i, m)
	}
	return ret
}

func (A *Archive) Finalize() error {
	caller := "Archive.Finalize"
	zw, err := source.NewCompressor(A.w, source.Zstd)
	if err != nil {
		return theo.WrapError(theo.ConfigurationError, caller, err)
	}
	if err := json.NewEncoder(zw).Encode(&A.doc); err != nil {
		zw.Close()
		return theo.WrapError(theo.ConfigurationError, caller, err)
	}
	if err := zw.Close(); err != nil {
		return theo.WrapError(theo.ConfigurationError, caller, err)
	}
	return nil
}

//ReadArchive reads an archive written by an Archive renderer.
func ReadArchive(r io.Reader) (*ArchivedSession, error) {
	caller := "ReadArchive"
	zr, err := source.NewDecompressor(r, source.Zstd)
	if err != nil {
		return nil, theo.WrapError(theo.ConfigurationError, caller, err)
	}
	defer zr.Close()
	ret := new(ArchivedSession)
	if err := json.NewDecoder(zr).Decode(ret); err != nil {
		return nil, theo.WrapError(theo.ConfigurationError, caller, err)
	}
	return ret, nil
}
