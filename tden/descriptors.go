/*
 * descriptors.go, part of gotheo.
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
	"sort"

	theo "github.com/rmera/gotheo"
)

//Key identifies a descriptor.
type Key string

//Kind decides how a descriptor is treated when spin channels are combined.
type Kind int

const (
	Unclassified Kind = iota
	Additive          //summed element-wise
	ChannelOnly       //only meaningful within one spin channel, dropped
	Derived           //recomputed from the combined OmAt
)

func (k Kind) String() string {
	switch k {
	case Additive:
		return "additive"
	case ChannelOnly:
		return "channel-only"
	case Derived:
		return "derived"
	}
	return "unclassified"
}

//Built-in descriptors.
const (
	Om     Key = "Om"     //total transition charge
	OmAt   Key = "OmAt"   //atom-resolved transition charge, natoms x natoms
	OmFrag Key = "OmFrag" //fragment-resolved transition charge, nfrags x nfrags

	TDen   Key = "tden"    //the TDM itself, only kept if requested
	PRNTO  Key = "PRNTO"   //NTO participation ratio
	SHE    Key = "S_HE"    //hole/electron entanglement entropy, in bits
	ZHE    Key = "Z_HE"    //2^S_HE
	OmDesc Key = "Om_desc" //excitation type label: LE, CT, MIX or negl

	POSi  Key = "POSi"  //mean position of the hole, in fragment units
	POSf  Key = "POSf"  //mean position of the electron
	POS   Key = "POS"   //average of POSi and POSf
	PRi   Key = "PRi"   //hole participation ratio
	PRf   Key = "PRf"   //electron participation ratio
	PR    Key = "PR"    //average of PRi and PRf
	CT    Key = "CT"    //charge-transfer number
	CTnt  Key = "CTnt"  //net charge transfer towards higher-numbered fragments
	COH   Key = "COH"   //coherence length
	RMSeh Key = "RMSeh" //root mean square electron-hole distance, in Angstrom
	MAeh  Key = "MAeh"  //mean absolute electron-hole distance, in Angstrom
)

var kinds = map[Key]Kind{
	Om:     Additive,
	OmAt:   Additive,
	OmFrag: Additive,
	TDen:   ChannelOnly,
	PRNTO:  ChannelOnly,
	SHE:    ChannelOnly,
	ZHE:    ChannelOnly,
	OmDesc: ChannelOnly,
	POSi:   Derived,
	POSf:   Derived,
	POS:    Derived,
	PRi:    Derived,
	PRf:    Derived,
	PR:     Derived,
	CT:     Derived,
	CTnt:   Derived,
	COH:    Derived,
	RMSeh:  Derived,
	MAeh:   Derived,
}

//order in which descriptors are listed
var keyOrder = []Key{Om, OmAt, OmFrag, POSi, POSf, POS, PRi, PRf, PR, CT, CTnt, COH, RMSeh, MAeh, OmDesc, PRNTO, SHE, ZHE, TDen}

var builtin = func() map[Key]bool {
	ret := make(map[Key]bool, len(kinds))
	for k := range kinds {
		ret[k] = true
	}
	return ret
}()

//Classify registers the combination rule for a new descriptor. It returns a
//ConfigurationError if k is a built-in descriptor, or if kind is Unclassified.
//Classify is not safe for concurrent use; call it before starting any analysis.
func Classify(k Key, kind Kind) error {
	if builtin[k] {
		return theo.NewError(theo.ConfigurationError, "Classify", "%s is a built-in descriptor, it can't be reclassified", k)
	}
	if kind == Unclassified {
		return theo.NewError(theo.ConfigurationError, "Classify", "descriptor %s must be classified as additive, channel-only or derived", k)
	}
	if _, ok := kinds[k]; !ok {
		keyOrder = append(keyOrder, k)
	}
	kinds[k] = kind
	return nil
}

//KindOf returns the Kind of the descriptor k, which is Unclassified
//for descriptors never registered.
func KindOf(k Key) Kind {
	return kinds[k]
}

//sortKeys sorts keys in the registry order. Unregistered keys go last, in
//lexical order.
func sortKeys(keys []Key) {
	pos := make(map[Key]int, len(keyOrder))
	for i, k := range keyOrder {
		pos[k] = i
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, oki := pos[keys[i]]
		pj, okj := pos[keys[j]]
		switch {
		case oki && okj:
			return pi < pj
		case oki:
			return true
		case okj:
			return false
		}
		return keys[i] < keys[j]
	})
}
