/*
 * plot.go, part of gotheo.
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
	"math"

	theo "github.com/rmera/gotheo"
	"github.com/rmera/gotheo/tden"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//Plot is a Renderer that draws a bar chart with some scalar descriptors of each state.
//Failed states, and descriptors that are missing or NaN, are drawn as zero.
type Plot struct {
	w             io.Writer
	//Format is any format supported by gonum/plot, such as png, svg, pdf or eps.
	Format        string
	Width, Height vg.Length
	Props         []tden.Key
	title         string
	labels        []string
	vals          [][]float64
}

//NewPlot returns a Plot renderer that writes the chart, in the given format, to w.
//If no descriptors are given, Om and CT are plotted.
func NewPlot(w io.Writer, format string, props ...tden.Key) *Plot {
	if len(props) == 0 {
		props = []tden.Key{tden.Om, tden.CT}
	}
	return &Plot{w: w, Format: format, Width: 6 * vg.Inch, Height: 4 * vg.Inch, Props: props}
}

func (P *Plot) Prepare(info tden.Info) error {
	P.title = fmt.Sprintf("Transition density analysis, %s", info.Spin)
	P.labels = P.labels[:0]
	P.vals = make([][]float64, len(P.Props))
	return nil
}

func (P *Plot) EmitState(rec *tden.Record) error {
	label := rec.Name
	if label == "" {
		label = fmt.Sprint(rec.Index)
	}
	P.labels = append(P.labels, label)
	for i, p := range P.Props {
		v, ok := rec.Scalar(p)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		P.vals[i] = append(P.vals[i], v)
	}
	return nil
}

func (P *Plot) Finalize() error {
	caller := "Plot.Finalize"
	if len(P.labels) == 0 {
		return theo.NewError(theo.ConfigurationError, caller, "no states to plot")
	}
	p := plot.New()
	p.Title.Text = P.title
	p.X.Label.Text = "state"
	p.Y.Label.Text = "value"
	p.Add(plotter.NewGrid())
	width := vg.Points(12)
	n := len(P.Props)
	for i, prop := range P.Props {
		bars, err := plotter.NewBarChart(plotter.Values(P.vals[i]), width)
		if err != nil {
			return theo.WrapError(theo.ConfigurationError, caller, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width
		p.Add(bars)
		p.Legend.Add(string(prop), bars)
	}
	p.Legend.Top = true
	p.NominalX(P.labels...)
	wt, err := p.WriterTo(P.Width, P.Height, P.Format)
	if err != nil {
		return theo.WrapError(theo.ConfigurationError, caller, err)
	}
	if _, err := wt.WriteTo(P.w); err != nil {
		return theo.WrapError(theo.ConfigurationError, caller, err)
	}
	return nil
}
