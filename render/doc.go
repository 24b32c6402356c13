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

/*Package render provides several tden.Renderer implementations for the results of
a transition density analysis: an HTML page, a LaTeX table, a Jmol script to
plot the NTOs, a chart of the descriptors (PNG, SVG, PDF, EPS), and a compressed
JSON archive.

All of them write to an io.Writer given on creation, and can be passed to tden.Session.Render.
*/
package render
