/*
 * jmol.go, part of gotheo.
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
	"io"
	"strings"

	"github.com/rmera/gotheo/tden"
)

//JmolOptions controls the plotting of NTOs with Jmol.
type JmolOptions struct {
	Cutoff  float64 //isovalue
	RotBest bool    //use "rotate best" (Jmol 14 and later)
	Width   int     //width of the images in HTML pages, in pixels
	//Prefix is used to name the molden files with the NTOs of each state and the images.
	Prefix string
	//MaxPairs is the number of NTO pairs plotted per state. If 0, the print_ntos
	//setting of the analysis is used.
	MaxPairs int
}

//DefaultJmolOptions returns the default Jmol options.
func DefaultJmolOptions() *JmolOptions {
	return &JmolOptions{Cutoff: 0.05, Width: 400, Prefix: "nto"}
}

//MoldenFile returns the name of the molden file expected to have the NTOs of the
//state index. In that file, the hole of the i-th pair (1-based) is orbital 2i-1 and
//the particle is orbital 2i.
func (J *JmolOptions) MoldenFile(index int) string {
	return fmt.Sprintf("%s_%d.mld", J.Prefix, index)
}

//Image returns the name of the image for the hole (or particle) NTO of the given
//pair (1-based) of the state index.
func (J *JmolOptions) Image(index, pair int, hole bool) string {
	kind := "e"
	if hole {
		kind = "h"
	}
	return fmt.Sprintf("%s_%d_%d%s.png", J.Prefix, index, pair, kind)
}

func (J *JmolOptions) pairs(info tden.Info) int {
	if J.MaxPairs > 0 || info.Options == nil {
		return J.MaxPairs
	}
	return info.Options.PrintNTOs
}

//Jmol is a Renderer that writes a Jmol script producing an image of each of the
//main NTOs of every state with NTOs.
//The script only loads the molden files named by JmolOptions.MoldenFile. Nothing in
//this module writes them, since a molden file needs the basis set definition, which
//a Structure does not carry. They must be produced by a separate tool, such as the
//quantum chemistry program, from the Hole and Particle coefficients of each NTOSet.
type Jmol struct {
	w     io.Writer
	o     *JmolOptions
	limit int
}

//NewJmol returns a Jmol renderer writing to w. If o is nil, the default options are used.
func NewJmol(w io.Writer, o *JmolOptions) *Jmol {
	if o == nil {
		o = DefaultJmolOptions()
	}
	return &Jmol{w: w, o: o}
}

func (J *Jmol) Prepare(info tden.Info) error {
	J.limit = J.o.pairs(info)
	_, err := fmt.Fprintf(J.w, "# NTOs, %s, %d states\n", info.Spin, info.NStates)
	return err
}

func (J *Jmol) EmitState(rec *tden.Record) error {
	n := npairs(rec, J.limit)
	if rec.Failed() || n == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\nload \"%s\" FILTER \"nosort\"\n", J.o.MoldenFile(rec.Index))
	b.WriteString("mo titleformat ''\n")
	if J.o.RotBest {
		b.WriteString("rotate best\n")
	}
	b.WriteString("background white\nmo fill\n")
	fmt.Fprintf(&b, "mo cutoff %.3f\n\n", J.o.Cutoff)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "mo %d\nwrite image png \"%s\"\n", 2*i-1, J.o.Image(rec.Index, i, true))
		fmt.Fprintf(&b, "mo %d\nwrite image png \"%s\"\n", 2*i, J.o.Image(rec.Index, i, false))
	}
	_, err := io.WriteString(J.w, b.String())
	return err
}

func (J *Jmol) Finalize() error {
	return nil
}
