/*
 * lattice_test.go, part of gocryst.
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
	"errors"
	"fmt"
	"math"
	"testing"
)

//TestBuildSC checks the simplest prototype against values that can be done
//by hand: a 4 Angstrom simple cubic cell is a diagonal lattice with one atom
//at the origin.
func TestBuildSC(Te *testing.T) {
	S, err := Build("sc", Params{A: 4, Species: []string{"Po"}})
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 1 {
		Te.Errorf("sc has %d sites, want 1", S.Len())
	}
	if S.Mode != Fractional {
		Te.Errorf("Build returned mode %v", S.Mode)
	}
	want := [3][3]float64{{4, 0, 0}, {0, 4, 0}, {0, 0, 4}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(S.Cell.At(i, j)-want[i][j]) > 1e-12 {
				Te.Errorf("lattice[%d][%d] = %g, want %g", i, j, S.Cell.At(i, j), want[i][j])
			}
		}
	}
}

//TestBuildPrototypes builds every supported prototype with sensible
//parameters and checks site counts, positivity of the cell volume and that
//fractional->cartesian->fractional round trips.
func TestBuildPrototypes(Te *testing.T) {
	cases := []struct {
		proto string
		p     Params
		nsite int
	}{
		{"sc", Params{A: 3.35, Species: []string{"Po"}}, 1},
		{"fcc", Params{A: 3.615, Species: []string{"Cu"}}, 4},
		{"bcc", Params{A: 2.87, Species: []string{"Fe"}}, 2},
		{"hcp", Params{A: 3.21, Species: []string{"Mg"}}, 2},
		{"hcp", Params{A: 2.51, C: 4.07, Species: []string{"Co"}}, 2},
		{"bct", Params{A: 3.93, C: 3.27, Species: []string{"In"}}, 2},
		{"tetragonal", Params{A: 4.6, C: 2.96, Species: []string{"Ti"}}, 1},
		{"orthorhombic", Params{A: 4.52, B: 5.12, C: 5.43, Species: []string{"S"}}, 1},
		{"monoclinic", Params{A: 5.15, B: 5.21, C: 5.31, Alpha: 99.2, Species: []string{"Se"}}, 1},
		{"rhombohedral", Params{A: 4.76, Alpha: 57.1, Species: []string{"Bi"}}, 1},
		{"diamond", Params{A: 5.43, Species: []string{"Si"}}, 8},
		{"zincblende", Params{A: 5.65, Species: []string{"Ga", "As"}}, 8},
		{"rocksalt", Params{A: 5.64, Species: []string{"Na", "Cl"}}, 8},
		{"cesiumchloride", Params{A: 4.12, Species: []string{"Cs", "Cl"}}, 2},
		{"wurtzite", Params{A: 3.19, C: 5.19, Species: []string{"Ga", "N"}}, 4},
		{"fluorite", Params{A: 5.46, Species: []string{"Ca", "F"}}, 12},
	}
	for _, v := range cases {
		S, err := Build(v.proto, v.p)
		if err != nil {
			Te.Errorf("%s: %v", v.proto, err)
			continue
		}
		if S.Len() != v.nsite {
			Te.Errorf("%s has %d sites, want %d", v.proto, S.Len(), v.nsite)
		}
		if S.Cell.Det() <= 0 {
			Te.Errorf("%s cell volume %g, want positive", v.proto, S.Cell.Det())
		}
		cart, err := ToCartesian(S)
		if err != nil {
			Te.Errorf("%s to cartesian: %v", v.proto, err)
			continue
		}
		back, err := ToFractional(cart)
		if err != nil {
			Te.Errorf("%s back to fractional: %v", v.proto, err)
			continue
		}
		if !S.Equal(back, 1e-9) {
			Te.Errorf("%s does not round trip through cartesian", v.proto)
		}
	}
}

//TestBuildAliases checks that the long prototype names map to the short
//ones.
func TestBuildAliases(Te *testing.T) {
	long, err := Build("face-centered-cubic", Params{A: 3.615, Species: []string{"Cu"}})
	if err != nil {
		Te.Fatal(err)
	}
	short, err := Build("fcc", Params{A: 3.615, Species: []string{"Cu"}})
	if err != nil {
		Te.Fatal(err)
	}
	if !long.Equal(short, 1e-12) {
		Te.Error("alias and short name build different structures")
	}
}

func TestBuildErrors(Te *testing.T) {
	_, err := Build("hexagonal", Params{A: 3, Species: []string{"C"}})
	if !errors.Is(err, ErrUnsupportedPrototype) {
		Te.Errorf("unknown prototype: got %v", err)
	}
	_, err = Build("rocksalt", Params{A: 5.64, Species: []string{"Na"}})
	if !errors.Is(err, ErrSpeciesRequired) {
		Te.Errorf("missing species: got %v", err)
	}
	_, err = Build("fcc", Params{Species: []string{"Cu"}})
	if !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("missing a: got %v", err)
	}
	_, err = Build("fcc", Params{A: 4, Species: []string{"Qq"}})
	if !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("bogus element: got %v", err)
	}
	_, err = Build("monoclinic", Params{A: 5, B: 5, C: 5, Species: []string{"Se"}})
	if !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("monoclinic without alpha: got %v", err)
	}
}

//TestHcpIdealRatio checks that hcp without an explicit c gets the ideal
//c/a = sqrt(8/3).
func TestHcpIdealRatio(Te *testing.T) {
	S, err := Build("hcp", Params{A: 3.21, Species: []string{"Mg"}})
	if err != nil {
		Te.Fatal(err)
	}
	l := S.Cell.Lengths()
	want := 3.21 * math.Sqrt(8.0/3.0)
	if math.Abs(l[2]-want) > 1e-9 {
		Te.Errorf("hcp c = %g, want %g", l[2], want)
	}
}

//TestLatticeFromParams checks the canonical (lower triangular) construction
//and that Lengths/Angles recover the inputs.
func TestLatticeFromParams(Te *testing.T) {
	L, err := LatticeFromParams(3, 4, 5, 90, 90, 90)
	if err != nil {
		Te.Fatal(err)
	}
	want := [3][3]float64{{3, 0, 0}, {0, 4, 0}, {0, 0, 5}}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(L.At(i, j)-want[i][j]) > 1e-12 {
				Te.Errorf("lattice[%d][%d] = %g, want %g", i, j, L.At(i, j), want[i][j])
			}
		}
	}
	M, err := LatticeFromParams(4.76, 4.81, 5.13, 88.3, 99.2, 102.5)
	if err != nil {
		Te.Fatal(err)
	}
	l := M.Lengths()
	ang := M.Angles()
	fmt.Println("triclinic lengths", l, "angles", ang)
	for i, w := range [3]float64{4.76, 4.81, 5.13} {
		if math.Abs(l[i]-w) > 1e-9 {
			Te.Errorf("length %d = %g, want %g", i, l[i], w)
		}
	}
	for i, w := range [3]float64{88.3, 99.2, 102.5} {
		if math.Abs(ang[i]-w) > 1e-9 {
			Te.Errorf("angle %d = %g, want %g", i, ang[i], w)
		}
	}
	if _, err := LatticeFromParams(3, 4, 5, 10, 10, 170); !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("degenerate angles: got %v", err)
	}
	if _, err := LatticeFromParams(-3, 4, 5, 90, 90, 90); !errors.Is(err, ErrInvalidParameter) {
		Te.Errorf("negative length: got %v", err)
	}
}

func TestNewLatticeSingular(Te *testing.T) {
	_, err := NewLattice([]float64{1, 0, 0, 2, 0, 0, 0, 0, 1})
	if !errors.Is(err, ErrSingularLattice) {
		Te.Errorf("singular lattice: got %v", err)
	}
}
