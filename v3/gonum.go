/*
 * gonum.go, part of gotheo.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//gonum.go contains most of what is needed for handling the gonum/mat types.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. The underlying implementation is a gonum Dense.
type Matrix struct {
	*mat.Dense
}

//Generate and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return nil, Error{"Empty input slice", []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//return the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Distance returns the euclidean distance between the vectors i and j of F.
func (F *Matrix) Distance(i, j int) float64 {
	n := F.NVecs()
	if i >= n || j >= n || i < 0 || j < 0 {
		panic(ErrIndexOutOfRange)
	}
	a := F.RawRowView(i)
	b := F.RawRowView(j)
	return floats.Distance(a, b, 2)
}

//DistanceMatrix returns a symmetric matrix with the distances between
//all pairs of vectors in F. If dst is given and has the right size
//it is used for the result.
func (F *Matrix) DistanceMatrix(dst ...*mat.SymDense) *mat.SymDense {
	n := F.NVecs()
	var ret *mat.SymDense
	if len(dst) > 0 && dst[0] != nil && dst[0].SymmetricDim() == n {
		ret = dst[0]
	} else {
		ret = mat.NewSymDense(n, nil)
	}
	for i := 0; i < n; i++ {
		ret.SetSym(i, i, 0)
		for j := i + 1; j < n; j++ {
			ret.SetSym(i, j, F.Distance(i, j))
		}
	}
	return ret
}

//Returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
			continue
		}
		v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}

//Errors

type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("goTheo/v3: A v3.Matrix should have 3 columns")
	ErrIndexOutOfRange = PanicMsg("goTheo/v3: index out of range")
)
