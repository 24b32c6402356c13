/*
 * interfaces.go, part of gotheo.
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

//DensitySource supplies the transition density matrices of the excited states of one
//calculation, in a known order. Implementations typically parse the output of a
//quantum-chemistry program. A DensitySource is read once, by a single consumer.
type DensitySource interface {
	//Structure returns the molecule and basis data the densities refer to.
	Structure() *Structure

	//Next returns the density of the next state. After the last state
	//it returns a nil density and io.EOF.
	Next() (*Density, error)
}

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
//The decorate slice contains a list of functions in the calling stack, plus, for each function any relevant information, or nothing.
//If information is to be added to an element of the slice, it should be in this format: "FunctionName: Extra info"
type Error interface {
	Error() string
	Decorate(string) []string
}

//KindError is an Error that knows its ErrorKind.
type KindError interface {
	Error
	Kind() ErrorKind
	Critical() bool
}
