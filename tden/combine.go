/*
 * combine.go, part of gotheo.
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
)

//Combine merges the alpha and beta analyses of the same calculation into a spin-summed
//one. Additive descriptors are summed, channel-only descriptors (NTOs included) are removed,
//and derived descriptors are recomputed from the summed OmAt. A state failed in either
//channel is failed in the result.
//The beta session is modified and returned, with its spin set to theo.Summed.
//All the checks are done before anything is modified: if the sessions don't describe
//the same states, or hold unclassified descriptors, an InconsistencyError is
//returned and neither session is changed.
func Combine(alpha, beta *Session) (*Session, error) {
	if err := compatible(alpha, beta); err != nil {
		return nil, errDecorate(err, "Combine")
	}
	for i, b := range beta.records {
		a := alpha.records[i]
		if b.Failed() {
			continue
		}
		if a.Failed() {
			b.fail(a.Err)
			continue
		}
		for _, k := range b.Keys() {
			switch KindOf(k) {
			case Additive:
				if v, ok := b.scalars[k]; ok {
					b.scalars[k] = v + a.scalars[k]
					continue
				}
				m := b.mats[k]
				m.Add(m, a.mats[k])
			default:
				b.Del(k)
			}
		}
		b.NTO = nil
	}
	beta.spin = theo.Summed
	beta.RecomputeFragments()
	for _, b := range beta.records {
		b.Spin = theo.Summed
	}
	return beta, nil
}

//compatible returns an InconsistencyError unless the alpha and beta
//sessions can be combined.
func compatible(alpha, beta *Session) error {
	caller := "compatible"
	if alpha == nil || beta == nil {
		return theo.NewError(theo.InconsistencyError, caller, "nil session")
	}
	if alpha == beta {
		return theo.NewError(theo.InconsistencyError, caller, "can't combine a session with itself")
	}
	if alpha.spin != theo.Alpha || beta.spin != theo.Beta {
		return theo.NewError(theo.InconsistencyError, caller, "expected an alpha and a beta session, got %s and %s", alpha.spin, beta.spin)
	}
	if alpha.Len() != beta.Len() {
		return theo.NewError(theo.InconsistencyError, caller, "%d alpha states but %d beta states", alpha.Len(), beta.Len())
	}
	if alpha.eng.st.NAtoms() != beta.eng.st.NAtoms() || alpha.eng.st.NFrags() != beta.eng.st.NFrags() {
		return theo.NewError(theo.InconsistencyError, caller, "alpha and beta analyses are for different structures or fragments")
	}
	for i, a := range alpha.records {
		b := beta.records[i]
		if a.Index != b.Index {
			return theo.NewError(theo.InconsistencyError, caller, "alpha state %d matched to beta state %d", a.Index, b.Index)
		}
		for _, rec := range []*Record{a, b} {
			for _, k := range rec.Keys() {
				if KindOf(k) == Unclassified {
					return theo.NewError(theo.InconsistencyError, caller, "state %d holds descriptor %s, which has no combination rule", rec.Index, k)
				}
			}
		}
		if a.Failed() || b.Failed() {
			continue
		}
		for _, k := range b.Keys() {
			if KindOf(k) != Additive {
				continue
			}
			if err := sameShape(a, b, k); err != nil {
				return errDecorate(err, caller)
			}
		}
		for _, k := range a.Keys() {
			if KindOf(k) == Additive && !b.Has(k) {
				return theo.NewError(theo.InconsistencyError, caller, "state %d: descriptor %s only present in the alpha channel", a.Index, k)
			}
		}
	}
	return nil
}

//sameShape returns an InconsistencyError unless the additive descriptor k
//is present, and has the same type and dimensions, in both records.
func sameShape(a, b *Record, k Key) error {
	if _, ok := b.scalars[k]; ok {
		if _, ok := a.scalars[k]; !ok {
			return theo.NewError(theo.InconsistencyError, "sameShape", "state %d: scalar %s missing or of a different type in the alpha channel", a.Index, k)
		}
		return nil
	}
	bm, ok := b.mats[k]
	if !ok {
		return theo.NewError(theo.InconsistencyError, "sameShape", "state %d: %s can't be added", b.Index, k)
	}
	am, ok := a.mats[k]
	if !ok {
		return theo.NewError(theo.InconsistencyError, "sameShape", "state %d: matrix %s missing in the alpha channel", a.Index, k)
	}
	ar, ac := am.Dims()
	br, bc := bm.Dims()
	if ar != br || ac != bc {
		return theo.NewError(theo.InconsistencyError, "sameShape", "state %d: %s is %dx%d for alpha, %dx%d for beta", a.Index, k, ar, ac, br, bc)
	}
	return nil
}
