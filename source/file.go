/*
 * file.go, part of gotheo.
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

package source

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"

	theo "github.com/rmera/gotheo"
	v3 "github.com/rmera/gotheo/v3"
	"gonum.org/v1/gonum/mat"
)

//Format identifies interchange files.
const Format = "gotheo-tden"

//Version of the interchange format written by this package.
const Version = 1

type matrixJSON struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

func toJSON(m mat.Matrix) *matrixJSON {
	r, c := m.Dims()
	ret := &matrixJSON{Rows: r, Cols: c, Data: make([]float64, 0, r*c)}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			ret.Data = append(ret.Data, m.At(i, j))
		}
	}
	return ret
}

func (m *matrixJSON) dense(what string) (*mat.Dense, error) {
	if m.Rows <= 0 || m.Cols <= 0 || len(m.Data) != m.Rows*m.Cols {
		return nil, theo.NewError(theo.ConfigurationError, "matrixJSON.dense", "malformed %s: %dx%d matrix with %d elements", what, m.Rows, m.Cols, len(m.Data))
	}
	return mat.NewDense(m.Rows, m.Cols, m.Data), nil
}

type headerJSON struct {
	Format     string      `json:"format"`
	Version    int         `json:"version"`
	Symbols    []string    `json:"symbols"`
	Coords     []float64   `json:"coords,omitempty"` //Angstrom, 3 per atom
	Frags      [][]int     `json:"frags,omitempty"`  //0-based
	BasisAtoms []int       `json:"basis_atoms"`
	Overlap    *matrixJSON `json:"overlap,omitempty"`
	MOs        *matrixJSON `json:"mos,omitempty"`
}

type stateJSON struct {
	Index        int        `json:"index"`
	Name         string     `json:"name,omitempty"`
	Spin         string     `json:"spin,omitempty"`
	Energy       float64    `json:"energy"`
	Osc          *float64   `json:"osc,omitempty"`
	Multiplicity int        `json:"multiplicity,omitempty"`
	Basis        string     `json:"basis"`
	NOcc         int        `json:"nocc,omitempty"`
	TDM          matrixJSON `json:"tdm"`
}

func headerFrom(st *theo.Structure) *headerJSON {
	h := &headerJSON{
		Format:     Format,
		Version:    Version,
		Symbols:    st.Symbols,
		Frags:      st.Frags,
		BasisAtoms: st.BasisAtoms,
	}
	if st.MOs != nil {
		h.MOs = toJSON(st.MOs)
	}
	if st.Coords != nil {
		h.Coords = toJSON(st.Coords).Data
	}
	if st.Overlap != nil {
		h.Overlap = toJSON(st.Overlap)
	}
	return h
}

func (h *headerJSON) structure() (*theo.Structure, error) {
	caller := "headerJSON.structure"
	if h.Format != Format {
		return nil, theo.NewError(theo.ConfigurationError, caller, "not an interchange file (format %q)", h.Format)
	}
	if h.Version > Version {
		return nil, theo.NewError(theo.ConfigurationError, caller, "unsupported interchange version %d", h.Version)
	}
	st := &theo.Structure{Symbols: h.Symbols, Frags: h.Frags, BasisAtoms: h.BasisAtoms}
	var err error
	if len(h.Coords) > 0 {
		st.Coords, err = v3.NewMatrix(h.Coords)
		if err != nil {
			return nil, theo.WrapError(theo.ConfigurationError, caller, err)
		}
	}
	if h.Overlap != nil {
		S, err := h.Overlap.dense("overlap")
		if err != nil {
			return nil, errDecorate(err, caller)
		}
		n, c := S.Dims()
		if n != c || !mat.Equal(S, S.T()) {
			return nil, theo.NewError(theo.ConfigurationError, caller, "overlap matrix is not symmetric")
		}
		st.Overlap = mat.NewSymDense(n, S.RawMatrix().Data)
	}
	if h.MOs != nil {
		st.MOs, err = h.MOs.dense("MO coefficients")
		if err != nil {
			return nil, errDecorate(err, caller)
		}
	}
	if err := st.Validate(); err != nil {
		return nil, errDecorate(err, caller)
	}
	return st, nil
}

func stateFrom(d *theo.Density) *stateJSON {
	s := &stateJSON{
		Index:        d.Index,
		Name:         d.Name,
		Energy:       d.Energy,
		Multiplicity: d.Multiplicity,
		Basis:        d.Basis.String(),
		NOcc:         d.NOcc,
		TDM:          *toJSON(d.TDM),
	}
	if d.Spin != theo.Restricted {
		s.Spin = d.Spin.String()
	}
	if d.HasOsc {
		osc := d.Osc
		s.Osc = &osc
	}
	return s
}

func (s *stateJSON) density() (*theo.Density, error) {
	caller := "stateJSON.density"
	d := &theo.Density{Index: s.Index, Name: s.Name, Energy: s.Energy, Multiplicity: s.Multiplicity, NOcc: s.NOcc}
	var err error
	d.Spin, err = theo.ParseSpin(s.Spin)
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	switch s.Basis {
	case "AO", "":
		d.Basis = theo.AO
	case "MO":
		d.Basis = theo.MO
	default:
		return nil, theo.NewError(theo.ConfigurationError, caller, "state %d: unknown basis %q", s.Index, s.Basis)
	}
	if s.Osc != nil {
		d.Osc, d.HasOsc = *s.Osc, true
	}
	d.TDM, err = s.TDM.dense("TDM")
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	return d, nil
}

//Reader is a theo.DensitySource reading an interchange file.
type Reader struct {
	st      *theo.Structure
	dec     *json.Decoder
	closers []io.Closer
	read    int
}

//NewReader reads the header of an uncompressed interchange stream from r, and returns
//a Reader for the states that follow.
func NewReader(r io.Reader) (*Reader, error) {
	caller := "NewReader"
	R := &Reader{dec: json.NewDecoder(r)}
	var h headerJSON
	if err := R.dec.Decode(&h); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, theo.NewError(theo.ConfigurationError, caller, "empty interchange file")
		}
		return nil, theo.WrapError(theo.ConfigurationError, caller, err)
	}
	var err error
	R.st, err = h.structure()
	if err != nil {
		return nil, errDecorate(err, caller)
	}
	return R, nil
}

//Open opens the interchange file name, which is decompressed according to its extension.
func Open(name string) (*Reader, error) {
	caller := "Open"
	f, err := os.Open(name)
	if err != nil {
		return nil, theo.WrapError(theo.ConfigurationError, caller, err)
	}
	dec, err := NewDecompressor(bufio.NewReader(f), CompressionFor(name))
	if err != nil {
		f.Close()
		return nil, theo.WrapError(theo.ConfigurationError, caller, err)
	}
	R, err := NewReader(dec)
	if err != nil {
		dec.Close()
		f.Close()
		return nil, errDecorate(err, caller+": "+name)
	}
	R.closers = []io.Closer{dec, f}
	return R, nil
}

func (R *Reader) Structure() *theo.Structure {
	return R.st
}

//Next returns the next density in the file, or io.EOF if there are no more.
//Malformed states give a ConfigurationError.
func (R *Reader) Next() (*theo.Density, error) {
	var s stateJSON
	if err := R.dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, theo.NewError(theo.ConfigurationError, "Reader.Next", "reading state %d: %v", R.read+1, err)
	}
	R.read++
	d, err := s.density()
	if err != nil {
		return nil, errDecorate(err, "Reader.Next")
	}
	return d, nil
}

//Close closes the underlying file, if the Reader was obtained with Open.
func (R *Reader) Close() error {
	var first error
	for _, c := range R.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	R.closers = nil
	return first
}

//Writer writes densities to an interchange file.
type Writer struct {
	enc     *json.Encoder
	closers []io.Closer
	st      *theo.Structure
}

//NewWriter writes the header for the structure st to w, and returns a Writer
//for the states. The output is not compressed.
func NewWriter(w io.Writer, st *theo.Structure) (*Writer, error) {
	W := &Writer{enc: json.NewEncoder(w), st: st}
	if err := W.enc.Encode(headerFrom(st)); err != nil {
		return nil, theo.WrapError(theo.ConfigurationError, "NewWriter", err)
	}
	return W, nil
}

//Create creates the interchange file name, for the structure st, compressed according to
//the extension of name. The Writer must be closed after use.
func Create(name string, st *theo.Structure) (*Writer, error) {
	caller := "Create"
	f, err := os.Create(name)
	if err != nil {
		return nil, theo.WrapError(theo.ConfigurationError, caller, err)
	}
	buf := bufio.NewWriter(f)
	comp, err := NewCompressor(buf, CompressionFor(name))
	if err != nil {
		f.Close()
		return nil, theo.WrapError(theo.ConfigurationError, caller, err)
	}
	W, err := NewWriter(comp, st)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, caller)
	}
	W.closers = []io.Closer{comp, flusher{buf}, f}
	return W, nil
}

type flusher struct {
	*bufio.Writer
}

func (f flusher) Close() error { return f.Flush() }

//Write appends the density d to the file. d is checked against the structure first.
func (W *Writer) Write(d *theo.Density) error {
	if err := d.Check(W.st); err != nil {
		return errDecorate(err, "Writer.Write")
	}
	if err := W.enc.Encode(stateFrom(d)); err != nil {
		return theo.WrapError(theo.ConfigurationError, "Writer.Write", err)
	}
	return nil
}

//Close flushes and closes the file, if the Writer was obtained with Create.
func (W *Writer) Close() error {
	var first error
	for _, c := range W.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	W.closers = nil
	return first
}

//WriteFile writes all the densities of src to the interchange file name.
func WriteFile(name string, src theo.DensitySource) error {
	caller := "WriteFile"
	W, err := Create(name, src.Structure())
	if err != nil {
		return errDecorate(err, caller)
	}
	for {
		d, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			err = W.Write(d)
		}
		if err != nil {
			W.Close()
			return errDecorate(err, caller)
		}
	}
	return errDecorate(W.Close(), caller)
}
