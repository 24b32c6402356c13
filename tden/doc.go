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

/*Package tden implements the analysis of transition density matrices (TDMs).

An Engine computes, for the TDM of one excited state, the total transition charge Omega,
its decomposition over atoms (OmAt) and fragments (OmFrag), and the charge-transfer
descriptors that follow from OmFrag. The same Engine extracts natural transition
orbitals (NTOs) by singular value decomposition.

A Session drives the Engine over all the states given by a theo.DensitySource, keeping
one Record per state, in source order, and renders the results. For unrestricted
calculations, an alpha and a beta Session can be merged with Combine into a
spin-summed one. AnalyzeUKS does the whole unrestricted analysis.

Each descriptor is identified by a Key and belongs to a Kind, which decides what
happens to it when spin channels are combined: Additive descriptors are summed,
ChannelOnly descriptors are dropped, and Derived descriptors are recomputed from the
summed OmAt. New descriptors must be registered with Classify before sessions holding
them can be combined.

The Session is not safe for concurrent use. Each state is fully processed before the next one is read.
*/
package tden
