/*
 * grid.go, part of gocube.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package cube

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

//NamingMode selects how the grids read from one multi-orbital file get
//their names.
type NamingMode int

const (
	//ByIndices names each grid after the orbital index declared in the
	//file, stringified with no prefix. The default.
	ByIndices NamingMode = iota
	//Sequential names grids 1..N in payload order.
	Sequential
)

func (n NamingMode) String() string {
	if n == Sequential {
		return "sequential"
	}
	return "indices"
}

//GridClass is the semantic class a downstream volumetric container should
//give a grid. Cube scalar fields are always density-like, so there is
//only one value, but containers want the class spelled out.
type GridClass int

const (
	FogVolume GridClass = iota
)

func (g GridClass) String() string {
	return "FogVolume"
}

//Field is one dense scalar field on an n1 x n2 x n3 voxel grid, stored
//flat in the cube file's own order: X slowest, Z fastest. Values are
//float32, which is what volumetric containers store anyway.
type Field struct {
	n1, n2, n3 int
	data       []float32
}

//NewField wraps data, which must hold exactly n1*n2*n3 values, into a
//Field. It panics on a size mismatch, as that is always a programming
//error, not an input problem (input reconciliation happens upstream).
func NewField(n1, n2, n3 int, data []float32) *Field {
	if len(data) != n1*n2*n3 {
		panic(fmt.Sprintf("goCube: NewField: %d values for a %dx%dx%d grid", len(data), n1, n2, n3))
	}
	return &Field{n1: n1, n2: n2, n3: n3, data: data}
}

//Dims returns the voxel counts along X, Y and Z.
func (F *Field) Dims() (int, int, int) {
	return F.n1, F.n2, F.n3
}

//Len returns the total number of voxels.
func (F *Field) Len() int {
	return len(F.data)
}

//At returns the value at voxel i,j,k. It panics if out of range.
func (F *Field) At(i, j, k int) float64 {
	if i < 0 || i >= F.n1 || j < 0 || j >= F.n2 || k < 0 || k >= F.n3 {
		panic(fmt.Sprintf("goCube: Field.At: %d,%d,%d out of a %dx%dx%d grid", i, j, k, F.n1, F.n2, F.n3))
	}
	return float64(F.data[(i*F.n2+j)*F.n3+k])
}

//Data returns the flat backing slice, not a copy. The caller shouldn't
//modify it while the Field is in use elsewhere.
func (F *Field) Data() []float32 {
	return F.data
}

//MinMax returns the smallest and largest value in the field.
func (F *Field) MinMax() (float64, float64) {
	if len(F.data) == 0 {
		return 0, 0
	}
	min, max := F.data[0], F.data[0]
	for _, v := range F.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return float64(min), float64(max)
}

//Grid is one named scalar field bound to a world-space transform, ready
//to be handed to a volumetric container writer. Grids from the same file
//share their transform.
type Grid struct {
	Name      string
	Field     *Field
	Transform *mat.Dense
	Class     GridClass
}

//Transform builds the 4x4 row-affine grid-to-world matrix from the three
//cube basis vectors and the origin: rows 0-2 are the basis vectors and
//row 3 is the origin, all multiplied by scale. The homogeneous column
//stays the identity. Basis vectors don't need to be orthogonal or
//axis-aligned.
func Transform(basis [3][3]float64, origin [3]float64, scale float64) *mat.Dense {
	T := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			T.Set(i, j, basis[i][j]*scale)
		}
	}
	for j := 0; j < 3; j++ {
		T.Set(3, j, origin[j]*scale)
	}
	T.Set(3, 3, 1.0)
	return T
}

//gridName implements the naming policy for the m-th (0-based) of nfields
//fields. A non-empty base overrides everything: sequence imports force a
//base name per file so names can't collide across the batch.
func gridName(base string, nfields, m int, fr Framing, mode NamingMode) string {
	if base != "" {
		if nfields == 1 {
			return base
		}
		return fmt.Sprintf("%s_%d", base, m+1)
	}
	if !fr.Multi {
		return "Density"
	}
	if mode == ByIndices && len(fr.Indices) > m {
		return strconv.Itoa(fr.Indices[m])
	}
	return strconv.Itoa(m + 1)
}

//assemble binds each decoded field to its name and to the shared
//transform, in payload order.
func assemble(fields []*Field, T *mat.Dense, fr Framing, mode NamingMode, base string) []*Grid {
	grids := make([]*Grid, 0, len(fields))
	for m, f := range fields {
		grids = append(grids, &Grid{
			Name:      gridName(base, len(fields), m, fr, mode),
			Field:     f,
			Transform: T,
			Class:     FogVolume,
		})
	}
	return grids
}
