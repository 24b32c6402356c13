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

/*Package theo is the main package of the goTheo library. It provides the data model
needed to characterize electronic excited states through their one-electron transition
density matrices (TDMs): the molecular structure, its partition into fragments, the
atomic-orbital data needed to move between orbital bases, and the densities themselves,
as delivered by a DensitySource.


	**goTheo Capabilities**

    Computes the total transition charge (Omega) of an excitation and its atom- and
    fragment-resolved decompositions (OmAt, OmFrag), with Mulliken-like or Lowdin
    partitioning of the basis functions.

    Computes charge-transfer descriptors from OmFrag: CT number, net CT,
    participation ratios, mean positions, coherence lengths, and, if coordinates are
    available, approximate electron-hole distances.

    Obtains natural transition orbitals (NTOs) by singular value decomposition of the
    TDM, and the associated participation ratio (PRNTO) and entanglement entropy (S_HE, Z_HE).

    Analyzes unrestricted calculations spin-channel by spin-channel, and combines the
    alpha and beta analyses into a spin-summed one.

    Reads and writes densities in a simple, compressed, JSON-based interchange format,
    and renders the results as text, HTML, LaTeX, Jmol scripts, plots or compressed archives.

The analysis itself lives in the tden subpackage, the interchange files in source, and the
output formats in render. Atomic coordinates are kept in a v3.Matrix (package v3), based on
gonum's Dense type.*/
package theo
