/*
 * lattice.go, part of gocryst.
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

	"gonum.org/v1/gonum/mat"
)

//Deg2Rad is a multiplier to transform degrees to radians.
const Deg2Rad float64 = 0.0174533

//Lattice is a non-degenerate 3x3 matrix whose ROWS are the lattice basis
//vectors, in Angstrom. It embeds a gonum Dense so the whole mat API is
//available on it.
type Lattice struct {
	*mat.Dense
}

//NewLattice builds a lattice from 9 row-major values. It returns
//ErrSingularLattice if the matrix is degenerate; a Lattice obtained from
//this function can always be inverted.
func NewLattice(data []float64) (*Lattice, error) {
	if len(data) != 9 {
		panic(ErrNotCell)
	}
	d := make([]float64, 9)
	copy(d, data)
	L := &Lattice{mat.NewDense(3, 3, d)}
	if math.Abs(L.Det()) <= appzero {
		return nil, NewError(ErrSingularLattice, "determinant is zero")
	}
	return L, nil
}

//Copy returns a copy of the lattice.
func (L *Lattice) Copy() *Lattice {
	n := mat.NewDense(3, 3, nil)
	n.Copy(L.Dense)
	return &Lattice{n}
}

//Det returns the determinant, i.e. the signed cell volume.
func (L *Lattice) Det() float64 {
	return mat.Det(L.Dense)
}

//Inverse returns the inverse lattice matrix. The ErrSingularLattice case
//should be unreachable for lattices built by this library, but it is
//defended anyway since Lattice embeds a mutable Dense.
func (L *Lattice) Inverse() (*mat.Dense, error) {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(L.Dense); err != nil {
		return nil, NewError(ErrSingularLattice, "%v", err)
	}
	return inv, nil
}

//Lengths returns the lengths of the three lattice vectors.
func (L *Lattice) Lengths() [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = math.Hypot(math.Hypot(L.At(i, 0), L.At(i, 1)), L.At(i, 2))
	}
	return r
}

//Angles returns the cell angles alpha, beta, gamma in degrees
//(alpha between b and c, beta between a and c, gamma between a and b).
func (L *Lattice) Angles() [3]float64 {
	l := L.Lengths()
	dot := func(i, j int) float64 {
		return L.At(i, 0)*L.At(j, 0) + L.At(i, 1)*L.At(j, 1) + L.At(i, 2)*L.At(j, 2)
	}
	var r [3]float64
	r[0] = math.Acos(dot(1, 2)/(l[1]*l[2])) / Deg2Rad
	r[1] = math.Acos(dot(0, 2)/(l[0]*l[2])) / Deg2Rad
	r[2] = math.Acos(dot(0, 1)/(l[0]*l[1])) / Deg2Rad
	return r
}

//Equal reports element-wise equality within tol.
func (L *Lattice) Equal(M *Lattice, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(L.At(i, j)-M.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

//LatticeFromParams builds the canonical (lower-triangular) lattice matrix
//from cell lengths a,b,c and angles alpha,beta,gamma in degrees, with the a
//vector along x and b in the xy plane:
//
//	a = (a, 0, 0)
//	b = (b cos g, b sin g, 0)
//	c = (c cos b, c (cos a - cos b cos g)/sin g, cz)
//
//It returns ErrInvalidParameter for non-positive lengths, angles outside
//(0,180) or angle combinations that leave no real cz (a degenerate cell).
func LatticeFromParams(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, NewError(ErrInvalidParameter, "cell lengths must be positive: %g %g %g", a, b, c)
	}
	for _, ang := range []float64{alpha, beta, gamma} {
		if ang <= 0 || ang >= 180 {
			return nil, NewError(ErrInvalidParameter, "cell angles must be in (0,180): %g %g %g", alpha, beta, gamma)
		}
	}
	ca, cb, cg := cosdeg(alpha), cosdeg(beta), cosdeg(gamma)
	sg := sindeg(gamma)
	cx := c * cb
	cy := c * (ca - cb*cg) / sg
	czsq := c*c - cx*cx - cy*cy
	if czsq <= appzero {
		return nil, NewError(ErrInvalidParameter, "angles %g %g %g give a degenerate cell", alpha, beta, gamma)
	}
	return NewLattice([]float64{
		a, 0, 0,
		b * cg, b * sg, 0,
		cx, cy, math.Sqrt(czsq),
	})
}

//cosdeg and sindeg evaluate at exact values for the right angles so that
//cubic cells come out with clean zeros instead of 6e-17s.
func cosdeg(deg float64) float64 {
	switch deg {
	case 90:
		return 0
	case 60:
		return 0.5
	case 120:
		return -0.5
	}
	return math.Cos(deg * Deg2Rad)
}

func sindeg(deg float64) float64 {
	if deg == 90 {
		return 1
	}
	return math.Sin(deg * Deg2Rad)
}

//the fcc translation set, shared by several prototypes.
var fccShifts = [4][3]float64{{0, 0, 0}, {0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}}

//Params carries the geometric degrees of freedom for Build. Lengths are in
//Angstrom, angles in degrees. Which fields are required depends on the
//prototype; a zero value means "not given". Species holds the element for
//each crystallographically distinct site, in template order (e.g.
//rocksalt: cation first, anion second).
type Params struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
	Species            []string
}

//idealCA is the c/a ratio sqrt(8/3) used as default for hcp and wurtzite
//when no c is given, as in ase.build.bulk.
var idealCA = math.Sqrt(8.0 / 3.0)

//prototype descriptors: how many distinct species a prototype needs.
var protoSpecies = map[string]int{
	"sc": 1, "fcc": 1, "bcc": 1, "hcp": 1, "bct": 1,
	"tetragonal": 1, "monoclinic": 1, "rhombohedral": 1, "orthorhombic": 1,
	"diamond": 1,
	"zincblende": 2, "rocksalt": 2, "cesiumchloride": 2, "wurtzite": 2,
	"fluorite": 2,
}

//long spec-style names accepted as aliases.
var protoAliases = map[string]string{
	"simple-cubic":             "sc",
	"face-centered-cubic":      "fcc",
	"body-centered-cubic":      "bcc",
	"hexagonal-close-packed":   "hcp",
	"body-centered-tetragonal": "bct",
	"cesium-chloride":          "cesiumchloride",
	"mcl":                      "monoclinic",
}

//Build constructs the conventional unit cell for the named prototype and
//returns it in fractional mode.
//
//The basis convention is the CONVENTIONAL cell throughout: fcc has 4 sites,
//bcc 2, diamond 8 and so on. This keeps the diagonal-only supercell
//expansion axis-aligned; callers that need primitive cells must reduce the
//result themselves.
//
//Required parameters per prototype:
//
//	sc, fcc, bcc, diamond, zincblende, rocksalt, cesiumchloride, fluorite: A
//	tetragonal, bct: A, C
//	hcp, wurtzite: A (C defaults to sqrt(8/3)*A, the ideal ratio)
//	orthorhombic: A, B, C
//	monoclinic: A, B, C, Alpha (the angle between b and c, as in ase)
//	rhombohedral: A, Alpha
//
//Multi-species prototypes need len(Species) == 2; all others exactly 1.
func Build(prototype string, p Params) (*Structure, error) {
	name := prototype
	if alias, ok := protoAliases[name]; ok {
		name = alias
	}
	nsp, ok := protoSpecies[name]
	if !ok {
		return nil, NewError(ErrUnsupportedPrototype, "%q", prototype)
	}
	if len(p.Species) != nsp {
		return nil, NewError(ErrSpeciesRequired, "prototype %q needs %d species, got %d", prototype, nsp, len(p.Species))
	}
	for _, s := range p.Species {
		if !KnownSymbol(s) {
			return nil, NewError(ErrInvalidParameter, "unknown element symbol %q", s)
		}
	}
	if p.A <= 0 {
		return nil, NewError(ErrInvalidParameter, "prototype %q needs a positive a, got %g", prototype, p.A)
	}
	var cell *Lattice
	var err error
	var sites []*Site
	one := func(sym string, pos ...[3]float64) {
		for _, q := range pos {
			sites = append(sites, NewSite(sym, q[0], q[1], q[2]))
		}
	}
	a := p.A
	switch name {
	case "sc":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		one(p.Species[0], [3]float64{0, 0, 0})
	case "fcc":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		one(p.Species[0], fccShifts[:]...)
	case "bcc":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		one(p.Species[0], [3]float64{0, 0, 0}, [3]float64{0.5, 0.5, 0.5})
	case "tetragonal", "bct":
		if p.C <= 0 {
			return nil, NewError(ErrInvalidParameter, "prototype %q needs a positive c, got %g", prototype, p.C)
		}
		cell, err = LatticeFromParams(a, a, p.C, 90, 90, 90)
		one(p.Species[0], [3]float64{0, 0, 0})
		if name == "bct" {
			one(p.Species[0], [3]float64{0.5, 0.5, 0.5})
		}
	case "orthorhombic":
		if p.B <= 0 || p.C <= 0 {
			return nil, NewError(ErrInvalidParameter, "orthorhombic needs positive a, b and c")
		}
		cell, err = LatticeFromParams(a, p.B, p.C, 90, 90, 90)
		one(p.Species[0], [3]float64{0, 0, 0})
	case "monoclinic":
		if p.B <= 0 || p.C <= 0 {
			return nil, NewError(ErrInvalidParameter, "monoclinic needs positive a, b and c")
		}
		if p.Alpha == 0 {
			return nil, NewError(ErrInvalidParameter, "monoclinic needs the alpha angle")
		}
		cell, err = LatticeFromParams(a, p.B, p.C, p.Alpha, 90, 90)
		one(p.Species[0], [3]float64{0, 0, 0})
	case "rhombohedral":
		if p.Alpha == 0 {
			return nil, NewError(ErrInvalidParameter, "rhombohedral needs the alpha angle")
		}
		cell, err = LatticeFromParams(a, a, a, p.Alpha, p.Alpha, p.Alpha)
		one(p.Species[0], [3]float64{0, 0, 0})
	case "hcp", "wurtzite":
		c := p.C
		if c == 0 {
			c = idealCA * a
		}
		if c <= 0 {
			return nil, NewError(ErrInvalidParameter, "prototype %q needs a positive c, got %g", prototype, c)
		}
		cell, err = hexLattice(a, c)
		if name == "hcp" {
			one(p.Species[0], [3]float64{0, 0, 0}, [3]float64{1. / 3, 2. / 3, 0.5})
		} else {
			//wurtzite with the ideal internal parameter u=3/8.
			one(p.Species[0], [3]float64{0, 0, 0}, [3]float64{1. / 3, 2. / 3, 0.5})
			one(p.Species[1], [3]float64{0, 0, 3. / 8}, [3]float64{1. / 3, 2. / 3, 7. / 8})
		}
	case "diamond":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		for _, f := range fccShifts {
			one(p.Species[0], f, [3]float64{f[0] + 0.25, f[1] + 0.25, f[2] + 0.25})
		}
	case "zincblende":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		one(p.Species[0], fccShifts[:]...)
		for _, f := range fccShifts {
			one(p.Species[1], [3]float64{f[0] + 0.25, f[1] + 0.25, f[2] + 0.25})
		}
	case "rocksalt":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		one(p.Species[0], fccShifts[:]...)
		for _, f := range fccShifts {
			one(p.Species[1], [3]float64{wrapFrac(f[0] + 0.5), f[1], f[2]})
		}
	case "cesiumchloride":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		one(p.Species[0], [3]float64{0, 0, 0})
		one(p.Species[1], [3]float64{0.5, 0.5, 0.5})
	case "fluorite":
		cell, err = LatticeFromParams(a, a, a, 90, 90, 90)
		one(p.Species[0], fccShifts[:]...)
		for _, f := range fccShifts {
			one(p.Species[1], [3]float64{f[0] + 0.25, f[1] + 0.25, f[2] + 0.25})
			one(p.Species[1], [3]float64{wrapFrac(f[0] + 0.75), wrapFrac(f[1] + 0.75), wrapFrac(f[2] + 0.75)})
		}
	}
	if err != nil {
		return nil, errDecorate(err, "Build")
	}
	return NewStructure(cell, Fractional, sites), nil
}

//hexLattice is the hexagonal cell with a in the xy plane:
//a=(a,0,0), b=(-a/2, a*sqrt(3)/2, 0), c=(0,0,c).
func hexLattice(a, c float64) (*Lattice, error) {
	return NewLattice([]float64{
		a, 0, 0,
		-a / 2, a * math.Sqrt(3) / 2, 0,
		0, 0, c,
	})
}

//Prototypes returns the supported prototype names (short forms).
func Prototypes() []string {
	return []string{"sc", "fcc", "bcc", "hcp", "bct", "tetragonal",
		"monoclinic", "rhombohedral", "orthorhombic", "diamond", "zincblende",
		"rocksalt", "cesiumchloride", "wurtzite", "fluorite"}
}
