/*
 * supercell.go, part of gocryst.
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

//Supercell tiles S by the integer multipliers nx, ny, nz. The i-th lattice
//vector is scaled by the i-th multiplier (only diagonal scaling matrices
//are supported), and the nx*ny*nz*S.Len() sites are emitted iterating the
//cell offsets in row-major order (i outer, k inner) with the original site
//order preserved inside each offset, so downstream defect indexing is
//reproducible. The result is in the same coordinate mode as S.
func Supercell(S *Structure, nx, ny, nz int) (*Structure, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, NewError(ErrInvalidSupercellSpec, "got (%d,%d,%d)", nx, ny, nz)
	}
	if S.Cell == nil {
		return nil, NewError(ErrSingularLattice, "cannot tile a lattice-free structure")
	}
	frac, err := ToFractional(S)
	if err != nil {
		return nil, errDecorate(err, "Supercell")
	}
	mult := [3]float64{float64(nx), float64(ny), float64(nz)}
	cell := frac.Cell.Copy()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cell.Set(i, j, cell.At(i, j)*mult[i])
		}
	}
	sites := make([]*Site, 0, nx*ny*nz*S.Len())
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				off := [3]float64{float64(i), float64(j), float64(k)}
				for _, v := range frac.Sites {
					n := v.Copy()
					for q := 0; q < 3; q++ {
						n.Pos[q] = (v.Pos[q] + off[q]) / mult[q]
					}
					sites = append(sites, n)
				}
			}
		}
	}
	out := NewStructure(cell, Fractional, sites)
	if S.Mode == Cartesian {
		out, err = ToCartesian(out)
		if err != nil {
			return nil, errDecorate(err, "Supercell")
		}
	}
	return out, nil
}
