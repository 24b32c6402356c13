/*
 * memory.go, part of gotheo.
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
	"errors"
	"io"

	theo "github.com/rmera/gotheo"
)

//Memory is a theo.DensitySource for densities already in memory.
type Memory struct {
	st *theo.Structure
	ds []*theo.Density
	i  int
}

//NewMemory returns a source that gives the densities ds, in order, for the structure st.
func NewMemory(st *theo.Structure, ds ...*theo.Density) *Memory {
	return &Memory{st: st, ds: ds}
}

//Collect reads all the densities from src into a Memory source.
func Collect(src theo.DensitySource) (*Memory, error) {
	M := NewMemory(src.Structure())
	for {
		d, err := src.Next()
		if errors.Is(err, io.EOF) {
			return M, nil
		}
		if err != nil {
			return nil, errDecorate(err, "Collect")
		}
		M.ds = append(M.ds, d)
	}
}

func (M *Memory) Structure() *theo.Structure {
	return M.st
}

func (M *Memory) Next() (*theo.Density, error) {
	if M.i >= len(M.ds) {
		return nil, io.EOF
	}
	M.i++
	return M.ds[M.i-1], nil
}

//Len returns the total number of densities in the source.
func (M *Memory) Len() int {
	return len(M.ds)
}

//Rewind makes the source start again from the first density.
func (M *Memory) Rewind() {
	M.i = 0
}
