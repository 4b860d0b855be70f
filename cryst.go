/*
 * cryst.go, part of gocryst.
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
	"math"
)

/**Note: some functions here panic instead of returning errors. This is
 * because they are "fundamental" functions: if something goes wrong in them
 * the calling program is way-most-likely wrong and should crash. All panics
 * relate to nil receivers or out-of-bounds indexes.**/

//Mode says how the positions of a Structure are to be interpreted.
type Mode int

const (
	//Fractional positions are coefficients of the lattice vectors.
	Fractional Mode = iota
	//Cartesian positions are absolute, in the lattice length unit (Angstrom).
	Cartesian
)

func (m Mode) String() string {
	if m == Cartesian {
		return "Cartesian"
	}
	return "Direct"
}

//Site is one atomic site: an element symbol and a position interpreted in
//the coordinate mode of the owning Structure. Label and Occupancy are
//optional extras carried by some formats (CIF); Occupancy 0 is treated as
//full occupancy everywhere.
type Site struct {
	Symbol    string
	Pos       [3]float64
	Label     string
	Occupancy float64
}

//NewSite returns a fully occupied site of the given species at x,y,z.
func NewSite(symbol string, x, y, z float64) *Site {
	return &Site{Symbol: symbol, Pos: [3]float64{x, y, z}, Occupancy: 1}
}

//Copy returns a copy of the Site.
func (S *Site) Copy() *Site {
	if S == nil {
		panic(ErrNilStructure)
	}
	n := *S
	return &n
}

//occ returns the effective occupancy (0 means 1).
func (S *Site) occ() float64 {
	if S.Occupancy == 0 {
		return 1
	}
	return S.Occupancy
}

//Structure is an ordered list of sites plus the lattice they live in.
//Cell may be nil for lattice-free structures (XYZ point clouds); every
//periodic operation returns ErrSingularLattice on those.
type Structure struct {
	Sites []*Site
	Cell  *Lattice
	Mode  Mode
}

//NewStructure assembles a structure. It does not copy its arguments.
func NewStructure(cell *Lattice, mode Mode, sites []*Site) *Structure {
	return &Structure{Sites: sites, Cell: cell, Mode: mode}
}

//Len returns the number of sites.
func (S *Structure) Len() int {
	return len(S.Sites)
}

//Site returns the i-th site. Panics if out of range.
func (S *Structure) Site(i int) *Site {
	if i < 0 || i >= S.Len() {
		panic(ErrOutOfRange)
	}
	return S.Sites[i]
}

//Copy returns a deep copy of the structure, lattice included.
func (S *Structure) Copy() *Structure {
	if S == nil {
		panic(ErrNilStructure)
	}
	n := new(Structure)
	n.Mode = S.Mode
	if S.Cell != nil {
		n.Cell = S.Cell.Copy()
	}
	n.Sites = make([]*Site, S.Len())
	for i, v := range S.Sites {
		n.Sites[i] = v.Copy()
	}
	return n
}

//Count returns the number of sites whose species is symbol.
func (S *Structure) Count(symbol string) int {
	c := 0
	for _, v := range S.Sites {
		if v.Symbol == symbol {
			c++
		}
	}
	return c
}

//Species returns the distinct species of the structure in order of first
//appearance. This is the canonical species order used when grouping sites
//for the POSCAR format.
func (S *Structure) Species() []string {
	seen := make(map[string]bool, 4)
	var ret []string
	for _, v := range S.Sites {
		if !seen[v.Symbol] {
			seen[v.Symbol] = true
			ret = append(ret, v.Symbol)
		}
	}
	return ret
}

//Normalize returns a copy with fractional positions wrapped into [0,1).
//It is the explicit canonical-wrapping step: positions outside the cell are
//tolerated everywhere else. Calling it on a cartesian structure just
//returns a copy.
func (S *Structure) Normalize() *Structure {
	n := S.Copy()
	if n.Mode != Fractional {
		return n
	}
	for _, v := range n.Sites {
		for i := 0; i < 3; i++ {
			v.Pos[i] = wrapFrac(v.Pos[i])
		}
	}
	return n
}

//wrapFrac maps f into [0,1). Values within appzero of 1 wrap to 0 so that
//floating point noise does not leave a site at 0.9999999999999999.
func wrapFrac(f float64) float64 {
	f = math.Mod(f, 1)
	if f < 0 {
		f++
	}
	if 1-f < appzero {
		f = 0
	}
	return f
}

//Equal reports whether S and T have the same mode, equal lattices and the
//same sites in the same order, with positions compared to within tol.
func (S *Structure) Equal(T *Structure, tol float64) bool {
	if S.Mode != T.Mode || S.Len() != T.Len() {
		return false
	}
	if (S.Cell == nil) != (T.Cell == nil) {
		return false
	}
	if S.Cell != nil && !S.Cell.Equal(T.Cell, tol) {
		return false
	}
	for i, v := range S.Sites {
		w := T.Sites[i]
		if v.Symbol != w.Symbol {
			return false
		}
		if math.Abs(v.occ()-w.occ()) > tol {
			return false
		}
		for j := 0; j < 3; j++ {
			if math.Abs(v.Pos[j]-w.Pos[j]) > tol {
				return false
			}
		}
	}
	return true
}

//used to correct floating point errors. Everything with an absolute value
//equal or less than this is considered zero.
const appzero float64 = 1e-12
