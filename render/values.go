/*
 * values.go, part of gotheo.
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
	"fmt"
	"math"

	"github.com/rmera/gotheo/tden"
)

//cell returns the descriptor k of rec as text, with prec decimals, or
//missing if the record doesn't have it.
func cell(rec *tden.Record, k tden.Key, prec int, missing string) string {
	if v, ok := rec.Scalar(k); ok {
		if math.IsNaN(v) {
			return missing
		}
		return fmt.Sprintf("%.*f", prec, v)
	}
	if s, ok := rec.Text(k); ok {
		return s
	}
	return missing
}

//osc returns the oscillator strength of rec as text.
func osc(rec *tden.Record, missing string) string {
	if !rec.HasOsc {
		return missing
	}
	return fmt.Sprintf("%.4f", rec.Osc)
}

//npairs returns the number of NTO pairs of rec to be shown, at most limit if limit > 0.
func npairs(rec *tden.Record, limit int) int {
	if rec.NTO == nil {
		return 0
	}
	n := rec.NTO.Len()
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
