/*
 * summary.go, part of gotheo.
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

import (
	"fmt"
	"io"
	"strings"
)

//Table is a Renderer that writes a plain-text table with one line per state, followed,
//if NTOs were computed, by the largest NTO weights of each state.
type Table struct {
	w      io.Writer
	info   Info
	ntos   []string
	nprint int
}

//NewTable returns a Table writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

func (T *Table) Prepare(info Info) error {
	T.info = info
	T.ntos = T.ntos[:0]
	T.nprint = 0
	if info.Options != nil {
		T.nprint = info.Options.PrintNTOs
	}
	head := []string{fmt.Sprintf("%5s  %-12s %10s %10s", "state", "name", "dE(eV)", "f")}
	for _, p := range info.Props {
		head = append(head, fmt.Sprintf("%10s", p))
	}
	_, err := fmt.Fprintf(T.w, "%s analysis: %d states, %d fragments\n%s\n", info.Spin, info.NStates, info.NFrags, strings.Join(head, ""))
	return err
}

func (T *Table) EmitState(rec *Record) error {
	line := []string{fmt.Sprintf("%5d  %-12s %10.4f", rec.Index, rec.Name, rec.Energy)}
	if rec.HasOsc {
		line = append(line, fmt.Sprintf(" %10.4f", rec.Osc))
	} else {
		line = append(line, fmt.Sprintf(" %10s", "-"))
	}
	if rec.Failed() {
		line = append(line, fmt.Sprintf(" %10s", "failed"))
	} else {
		for _, p := range T.info.Props {
			line = append(line, FormatValue(rec, p, 10, 4))
		}
	}
	if rec.NTO != nil && T.nprint > 0 {
		n := min(T.nprint, rec.NTO.Len())
		nline := []string{fmt.Sprintf("%5d  %-12s", rec.Index, rec.Name)}
		for _, w := range rec.NTO.Weights[:n] {
			nline = append(nline, fmt.Sprintf(" %8.5f", w))
		}
		T.ntos = append(T.ntos, strings.Join(nline, ""))
	}
	_, err := fmt.Fprintln(T.w, strings.Join(line, ""))
	return err
}

func (T *Table) Finalize() error {
	if len(T.ntos) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(T.w, "NTO weights:\n%s\n", strings.Join(T.ntos, "\n"))
	return err
}

//FormatValue returns the descriptor k of rec formatted in a field of the given width,
//scalars with prec decimals. Absent descriptors are shown as "-".
func FormatValue(rec *Record, k Key, width, prec int) string {
	if v, ok := rec.Scalar(k); ok {
		return fmt.Sprintf("%*.*f", width, prec, v)
	}
	if s, ok := rec.Text(k); ok {
		return fmt.Sprintf("%*s", width, s)
	}
	return fmt.Sprintf("%*s", width, "-")
}

//Summary returns a text table with the results of the session, in source order.
//The output depends only on the records, so calling Summary twice gives the same text.
func (S *Session) Summary() string {
	var b strings.Builder
	//a strings.Builder never fails to write.
	S.Render(NewTable(&b))
	return b.String()
}
