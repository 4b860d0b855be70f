/*
 * kpoints.go, part of gocryst.
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

import "math"

//Accuracy selects the k-point density for KPointMesh.
type Accuracy int

const (
	//Low aims at 1000 k-points per reciprocal atom.
	Low Accuracy = iota
	//Medium aims at 3000.
	Medium
	//High aims at 5000.
	High
)

func (a Accuracy) String() string {
	switch a {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return "unknown"
}

var kppa = map[Accuracy]float64{
	Low:    1000,
	Medium: 3000,
	High:   5000,
}

//KPointMesh proposes a Gamma-compatible Monkhorst-Pack-style subdivision
//for S at the given accuracy: the grid density (k-points per reciprocal
//atom) is distributed over the three axes in inverse proportion to the
//lattice vector lengths, so short reciprocal vectors (long real ones) get
//fewer subdivisions. Each component is at least 1.
func KPointMesh(S *Structure, acc Accuracy) ([3]int, error) {
	var mesh [3]int
	if S == nil {
		panic(ErrNilStructure)
	}
	density, ok := kppa[acc]
	if !ok {
		return mesh, NewError(ErrInvalidParameter, "unknown accuracy %d", int(acc))
	}
	if S.Cell == nil {
		return mesh, NewError(ErrSingularLattice, "k-point meshing needs a lattice")
	}
	if S.Len() == 0 {
		return mesh, NewError(ErrInvalidParameter, "empty structure")
	}
	l := S.Cell.Lengths()
	ngrid := density / float64(S.Len())
	mult := math.Cbrt(ngrid * l[0] * l[1] * l[2])
	for i := 0; i < 3; i++ {
		n := int(math.Round(mult / l[i]))
		if n < 1 {
			n = 1
		}
		mesh[i] = n
	}
	return mesh, nil
}
