/*
 * matrix.go, part of goselect.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// matrix.go holds the Matrix type and the handful of operations the
// selection evaluator needs from it: allocation, per-row get/set, and
// gathering rows picked out by an index list. This is a narrowed, modernized
// descendant of gochem's v3 package: it follows gonum.org/v1/gonum/mat
// instead of the long-retired github.com/gonum/matrix/mat64 that the
// original v3/gonum.go used, the same migration the rest of that repository
// (solv/solvation.go) had already made.
package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const cols = 3

// Matrix is a set of 3D points, one per row.
type Matrix struct {
	*mat.Dense
}

// Zeros returns a zero-filled Matrix with n rows and 3 columns.
func Zeros(n int) *Matrix {
	return &Matrix{mat.NewDense(n, cols, make([]float64, n*cols))}
}

// NewMatrix builds a Matrix from a flat, row-major slice of coordinates.
// Returns an error if the length of data is not divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	if len(data)%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", len(data), cols), []string{"NewMatrix"}, true}
	}
	rows := len(data) / cols
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

// NVecs returns the number of points (rows) in the Matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// VecView returns a 1x3 view onto the ith point. Changes to the view are
// reflected in F.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+1, 0, cols).(*mat.Dense)}
}

// SetVec overwrites the ith point with the x, y, z values in p.
func (F *Matrix) SetVec(i int, p [3]float64) {
	if i >= F.NVecs() {
		panic("v3: SetVec index out of range")
	}
	F.Set(i, 0, p[0])
	F.Set(i, 1, p[1])
	F.Set(i, 2, p[2])
}

// At3 returns the x, y, z values of the ith point.
func (F *Matrix) At3(i int) [3]float64 {
	if i >= F.NVecs() {
		panic("v3: At3 index out of range")
	}
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

// GatherRows copies, in order, the rows of src named by idx into the
// receiver, which must have exactly len(idx) rows. Used to build a position
// buffer for a subset of atoms addressed by an index group.
func (F *Matrix) GatherRows(src *Matrix, idx []int) {
	if F.NVecs() != len(idx) {
		panic("v3: GatherRows destination has the wrong number of rows")
	}
	for i, at := range idx {
		F.SetVec(i, src.At3(at))
	}
}

// CopyFrom copies all rows of src into the receiver, which must have the
// same number of rows as src.
func (F *Matrix) CopyFrom(src *Matrix) {
	if F.NVecs() != src.NVecs() {
		panic("v3: CopyFrom shape mismatch")
	}
	F.Copy(src.Dense)
}

// Error is the error type used throughout v3. It implements the Decorate
// convention shared by every goselect package (see selection.Error).
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("v3: %s", err.message)
}

// Decorate adds new information to the error, and returns the current
// decoration list. Passing an empty string just returns the current value.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err Error) Critical() bool { return err.critical }
