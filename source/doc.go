/*
 * doc.go, part of gotheo.
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

/*Package source implements theo.DensitySource for densities held in memory and for
gotheo interchange files.

An interchange file is a sequence of JSON objects, one per line. The first one has
the structure (symbols, coordinates, fragments, basis-to-atom map, overlap and MO
coefficients). Each further object has the TDM and metadata of one state, in order.
Matrices are stored in row-major order.

The file is compressed according to its extension: .zst or .zstd files use
z-standard, .gz files use gzip, and any other file is plain text.
*/
package source
