/*
 * errors.go, part of gotheo.
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

import theo "github.com/rmera/gotheo"

//errDecorate decorates the error with the caller's name before returning it,
//if the error implements theo.Error. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(theo.Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
