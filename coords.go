/*
 * coords.go, part of gocryst.
 *
 * Copyright 2024 The gocryst developers
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

package cryst

import (
	"gonum.org/v1/gonum/mat"
)

//posMatrix collects the site positions of S into an Nx3 Dense, one row
//vector per site, in site order.
func posMatrix(S *Structure) *mat.Dense {
	if S == nil {
		panic(ErrNilStructure)
	}
	data := make([]float64, 3*S.Len())
	for i, v := range S.Sites {
		copy(data[3*i:3*i+3], v.Pos[:])
	}
	return mat.NewDense(S.Len(), 3, data)
}

//setPositions writes the rows of P back into the sites of S.
func setPositions(S *Structure, P *mat.Dense) {
	for i, v := range S.Sites {
		v.Pos[0] = P.At(i, 0)
		v.Pos[1] = P.At(i, 1)
		v.Pos[2] = P.At(i, 2)
	}
}

//ToCartesian returns a copy of S with positions in cartesian coordinates:
//cartesian = fractional (row vector) x lattice matrix. If S already is
//cartesian the result is just a copy. Structures without a lattice cannot
//be converted and get ErrSingularLattice.
func ToCartesian(S *Structure) (*Structure, error) {
	n := S.Copy()
	if S.Mode == Cartesian {
		return n, nil
	}
	if S.Cell == nil {
		return nil, NewError(ErrSingularLattice, "cannot convert a lattice-free structure to cartesian")
	}
	if S.Len() > 0 {
		var out mat.Dense
		out.Mul(posMatrix(S), S.Cell.Dense)
		setPositions(n, &out)
	}
	n.Mode = Cartesian
	return n, nil
}

//ToFractional returns a copy of S with positions in fractional
//coordinates: fractional = cartesian x lattice^-1. If S already is
//fractional the result is just a copy.
func ToFractional(S *Structure) (*Structure, error) {
	n := S.Copy()
	if S.Mode == Fractional {
		return n, nil
	}
	if S.Cell == nil {
		return nil, NewError(ErrSingularLattice, "cannot convert a lattice-free structure to fractional")
	}
	inv, err := S.Cell.Inverse()
	if err != nil {
		return nil, errDecorate(err, "ToFractional")
	}
	if S.Len() > 0 {
		var out mat.Dense
		out.Mul(posMatrix(S), inv)
		setPositions(n, &out)
	}
	n.Mode = Fractional
	return n, nil
}
