/*
 * tex.go, part of gotheo.
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

var texEscaper = strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "%", `\%`, "&", `\&`, "#", `\#`, "$", `\$`, "{", `\{`, "}", `\}`)

//TeX is a Renderer that writes the descriptors of each state as a LaTeX table.
type TeX struct {
	w          io.Writer
	//Standalone produces a complete document instead of only the tabular environment.
	Standalone bool
	Caption    string
	info       tden.Info
	b          strings.Builder
}

//NewTeX returns a TeX renderer writing to w.
func NewTeX(w io.Writer, standalone bool) *TeX {
	return &TeX{w: w, Standalone: standalone}
}

func (T *TeX) Prepare(info tden.Info) error {
	T.info = info
	T.b.Reset()
	if T.Standalone {
		T.b.WriteString("\\documentclass[a4paper]{article}\n\\usepackage[cm]{fullpage}\n\n\\begin{document}\n\n")
	}
	T.b.WriteString("\\begin{table}\n")
	if T.Caption != "" {
		fmt.Fprintf(&T.b, "\\caption{%s}\n", texEscaper.Replace(T.Caption))
	}
	fmt.Fprintf(&T.b, "\\begin{tabular}{rl%s}\n\\hline\n", strings.Repeat("r", len(info.Props)+2))
	head := []string{"state", "name", "$\\Delta E$ (eV)", "$f$"}
	for _, p := range info.Props {
		head = append(head, texEscaper.Replace(string(p)))
	}
	fmt.Fprintf(&T.b, "%s \\\\\n\\hline\n", strings.Join(head, " & "))
	return nil
}

func (T *TeX) EmitState(rec *tden.Record) error {
	row := []string{fmt.Sprint(rec.Index), texEscaper.Replace(rec.Name), fmt.Sprintf("%.3f", rec.Energy), osc(rec, "--")}
	if rec.Failed() {
		row = append(row, fmt.Sprintf("\\multicolumn{%d}{c}{failed}", max(len(T.info.Props), 1)))
	} else {
		for _, p := range T.info.Props {
			row = append(row, texEscaper.Replace(cell(rec, p, 3, "--")))
		}
	}
	fmt.Fprintf(&T.b, "%s \\\\\n", strings.Join(row, " & "))
	return nil
}

func (T *TeX) Finalize() error {
	T.b.WriteString("\\hline\n\\end{tabular}\n\\end{table}\n")
	if T.Standalone {
		T.b.WriteString("\n\\end{document}\n")
	}
	_, err := io.WriteString(T.w, T.b.String())
	return err
}
