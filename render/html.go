/*
 * html.go, part of gotheo.
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
	"html"
	"io"
	"strings"

	"github.com/rmera/gotheo/tden"
)

//HTML is a Renderer that writes an HTML page with a table of descriptors and, optionally,
//the images of the NTOs produced by the script of a Jmol renderer.
type HTML struct {
	w      io.Writer
	Title  string
	//Images, if not nil, are the options of the Jmol renderer used to plot the NTOs.
	Images *JmolOptions
	info   tden.Info
	limit  int
	table  strings.Builder
	ntos   strings.Builder
}

//NewHTML returns an HTML renderer writing to w.
func NewHTML(w io.Writer, images *JmolOptions) *HTML {
	return &HTML{w: w, Images: images}
}

func (H *HTML) Prepare(info tden.Info) error {
	H.info = info
	H.table.Reset()
	H.ntos.Reset()
	if H.Images != nil {
		H.limit = H.Images.pairs(info)
	}
	H.table.WriteString("<table border=\"1\">\n<tr><th>state</th><th>name</th><th>dE(eV)</th><th>f</th>")
	for _, p := range info.Props {
		fmt.Fprintf(&H.table, "<th>%s</th>", html.EscapeString(string(p)))
	}
	H.table.WriteString("</tr>\n")
	return nil
}

func (H *HTML) EmitState(rec *tden.Record) error {
	fmt.Fprintf(&H.table, "<tr><td>%d</td><td>%s</td><td>%.4f</td><td>%s</td>", rec.Index, html.EscapeString(rec.Name), rec.Energy, osc(rec, "-"))
	if rec.Failed() {
		fmt.Fprintf(&H.table, "<td colspan=\"%d\">failed</td>", max(len(H.info.Props), 1))
	} else {
		for _, p := range H.info.Props {
			fmt.Fprintf(&H.table, "<td>%s</td>", html.EscapeString(cell(rec, p, 4, "-")))
		}
	}
	H.table.WriteString("</tr>\n")
	if H.Images == nil || rec.Failed() {
		return nil
	}
	for i := 1; i <= npairs(rec, H.limit); i++ {
		w := rec.NTO.Weights[i-1]
		fmt.Fprintf(&H.ntos, "<tr><td>%d %s<br>pair %d: %.4f</td>", rec.Index, html.EscapeString(rec.Name), i, w)
		for _, hole := range []bool{true, false} {
			fmt.Fprintf(&H.ntos, "<td><img src=\"%s\" border=\"1\" width=\"%d\"></td>", H.Images.Image(rec.Index, i, hole), H.Images.Width)
		}
		H.ntos.WriteString("</tr>\n")
	}
	return nil
}

func (H *HTML) Finalize() error {
	title := H.Title
	if title == "" {
		title = "Transition density analysis"
	}
	title = html.EscapeString(title)
	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", title)
	fmt.Fprintf(&b, "<h2>%s - %s</h2>\n", title, H.info.Spin)
	b.WriteString(H.table.String())
	b.WriteString("</table>\n")
	if H.ntos.Len() > 0 {
		b.WriteString("<h2>Natural transition orbitals</h2>\n<table>\n<tr><th>state</th><th>hole</th><th>electron</th></tr>\n")
		b.WriteString(H.ntos.String())
		b.WriteString("</table>\n")
	}
	b.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(H.w, b.String())
	return err
}
