/*
 * session.go, part of gotheo.
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
	"errors"
	"io"

	theo "github.com/rmera/gotheo"
	"gonum.org/v1/gonum/mat"
)

//Report summarizes the outcome of a batch operation over the states of a Session.
type Report struct {
	Run        int   //number of states processed
	Failed     []int //indexes of the failed states
	Negligible []int //indexes of the negligible states
	//Warnings has the non-fatal errors of the batch, including the error of each failed state.
	Warnings []error
}

//OK returns true if no state failed.
func (R *Report) OK() bool {
	return len(R.Failed) == 0
}

func (R *Report) fail(index int, err error) {
	R.Failed = append(R.Failed, index)
	R.Warnings = append(R.Warnings, err)
}

//Info describes a session to a Renderer before its records are emitted.
type Info struct {
	Spin      theo.Spin
	NStates   int
	NFrags    int
	Structure *theo.Structure
	Options   *theo.Options
	//Props are the scalar descriptors to be tabulated, in order.
	Props   []Key
	HasNTOs bool
}

//Renderer is implemented by the types that produce some output for the
//results of a session. Render calls Prepare once, EmitState for each record in order,
//and then Finalize.
type Renderer interface {
	Prepare(info Info) error
	EmitState(rec *Record) error
	Finalize() error
}

//Session is the analysis of all the states of one calculation, for one spin channel.
type Session struct {
	spin      theo.Spin
	eng       *Engine
	records   []*Record
	populated bool
}

//NewSession returns an empty session for the spin channel spin, for the structure st and
//the options o (the default options if nil).
func NewSession(spin theo.Spin, st *theo.Structure, o *theo.Options) (*Session, error) {
	if spin == theo.Summed {
		return nil, theo.NewError(theo.ConfigurationError, "NewSession", "spin-summed sessions can only be obtained by combining an alpha and a beta session")
	}
	eng, err := NewEngine(st, o)
	if err != nil {
		return nil, errDecorate(err, "NewSession")
	}
	return &Session{spin: spin, eng: eng}, nil
}

//Spin returns the spin channel of the session.
func (S *Session) Spin() theo.Spin {
	return S.spin
}

//Engine returns the engine used by the session.
func (S *Session) Engine() *Engine {
	return S.eng
}

//Len returns the number of records in the session.
func (S *Session) Len() int {
	return len(S.records)
}

//Record returns the i-th (0-based) record of the session.
func (S *Session) Record(i int) *Record {
	return S.records[i]
}

//Records returns the records of the session, in source order. The slice is a copy,
//the records are not.
func (S *Session) Records() []*Record {
	return append([]*Record{}, S.records...)
}

//Populate reads all the densities from src and analyzes them, appending one record
//per state, in order. A ConfigurationError, or an error reading src, stops the
//process and is returned, together with the report up to that point. States that
//fail for numerical reasons are kept as failed records, and the batch continues.
//A session can only be populated once.
func (S *Session) Populate(src theo.DensitySource) (*Report, error) {
	caller := "Populate"
	rep := new(Report)
	if S.populated {
		return rep, theo.NewError(theo.ConfigurationError, caller, "session already populated")
	}
	S.populated = true
	o := S.eng.o
	log := theo.Logger().With("spin", S.spin)
	for {
		d, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rep, errDecorate(err, caller)
		}
		if d == nil {
			return rep, theo.NewError(theo.ConfigurationError, caller, "the source gave a nil density after %d states", rep.Run)
		}
		if d.Spin != theo.Restricted && d.Spin != S.spin {
			return rep, theo.NewError(theo.ConfigurationError, caller, "state %d is %s, but the session is %s", d.Index, d.Spin, S.spin)
		}
		rep.Run++
		ds, err := S.eng.Compute(d)
		if err != nil && theo.IsKind(err, theo.ConfigurationError) {
			return rep, errDecorate(err, caller)
		}
		rec := newRecord(d, S.spin)
		S.records = append(S.records, rec)
		if err != nil {
			rec.fail(errDecorate(err, caller))
			rep.fail(rec.Index, rec.Err)
			log.Warn("state analysis failed", "state", rec.Index, "err", err)
			continue
		}
		rec.store(ds)
		if o.CompNTOs {
			if err := S.nto(rec, d); err != nil {
				rep.fail(rec.Index, rec.Err)
				log.Warn("NTO analysis failed", "state", rec.Index, "err", err)
				continue
			}
		}
		if o.KeepTDen {
			rec.SetMatrix(TDen, mat.DenseCopyOf(d.TDM))
		}
		if ds.Negligible {
			rep.Negligible = append(rep.Negligible, rec.Index)
			rep.Warnings = append(rep.Warnings, theo.NewError(theo.NegligibleStateWarning, caller, "state %d has a negligible transition charge (%g)", rec.Index, ds.Om))
			log.Warn("negligible state", "state", rec.Index, "Om", ds.Om)
		}
	}
	log.Info("analysis done", "states", rep.Run, "failed", len(rep.Failed), "negligible", len(rep.Negligible))
	return rep, nil
}

//nto computes the NTOs of d and attaches them to rec. On failure
//the record is marked as failed and the error returned.
func (S *Session) nto(rec *Record, d *theo.Density) error {
	N, err := ExtractDensity(S.eng, d, S.eng.o.MaxNTOs)
	if err != nil {
		rec.fail(errDecorate(err, "Session.nto"))
		return rec.Err
	}
	rec.storeNTO(N)
	return nil
}

//ComputeNTOs obtains the NTOs of all the non-failed records that still hold their TDM,
//and have no NTOs yet. Records for which the extraction fails are marked as failed.
func (S *Session) ComputeNTOs() *Report {
	rep := new(Report)
	for _, rec := range S.records {
		if rec.Failed() || rec.NTO != nil {
			continue
		}
		tdm, ok := rec.Matrix(TDen)
		if !ok {
			continue
		}
		rep.Run++
		d := S.density(rec, tdm)
		if err := S.nto(rec, d); err != nil {
			rep.fail(rec.Index, rec.Err)
			theo.Logger().Warn("NTO analysis failed", "spin", S.spin, "state", rec.Index, "err", err)
		}
	}
	return rep
}

//density rebuilds the density of a record from its stored TDM.
func (S *Session) density(rec *Record, tdm *mat.Dense) *theo.Density {
	return &theo.Density{Index: rec.Index, Name: rec.Name, Basis: rec.basis, NOcc: rec.nocc, TDM: tdm}
}

//RecomputeFragments recomputes OmFrag and the fragment descriptors of all the
//non-failed records from their OmAt.
func (S *Session) RecomputeFragments() {
	for _, rec := range S.records {
		if rec.Failed() {
			continue
		}
		omat, ok := rec.Matrix(OmAt)
		if !ok {
			continue
		}
		rec.storeFragments(S.eng.Fragments(omat))
	}
}

//Info returns the description of the session given to renderers.
func (S *Session) Info() Info {
	info := Info{
		Spin:      S.spin,
		NStates:   len(S.records),
		NFrags:    S.eng.st.NFrags(),
		Structure: S.eng.st,
		Options:   S.eng.o,
	}
	for _, p := range S.eng.o.PropList {
		info.Props = append(info.Props, Key(p))
	}
	for _, rec := range S.records {
		if rec.NTO != nil {
			info.HasNTOs = true
			break
		}
	}
	return info
}

//Render produces the output of the renderer r for the session.
func (S *Session) Render(r Renderer) error {
	caller := "Render"
	if err := r.Prepare(S.Info()); err != nil {
		return errDecorate(err, caller)
	}
	for _, rec := range S.records {
		if err := r.EmitState(rec); err != nil {
			return errDecorate(err, caller)
		}
	}
	if err := r.Finalize(); err != nil {
		return errDecorate(err, caller)
	}
	return nil
}
