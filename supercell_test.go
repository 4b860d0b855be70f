/*
 * supercell_test.go, part of gocryst.
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
	"math"
	"testing"
)

func TestSupercellCounts(Te *testing.T) {
	S, err := Build("rocksalt", Params{A: 5.64, Species: []string{"Na", "Cl"}})
	if err != nil {
		Te.Fatal(err)
	}
	big, err := Supercell(S, 2, 2, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if big.Len() != 64 {
		Te.Errorf("2x2x2 rocksalt has %d sites, want 64", big.Len())
	}
	if big.Count("Na") != 32 || big.Count("Cl") != 32 {
		Te.Errorf("species counts Na=%d Cl=%d, want 32 each", big.Count("Na"), big.Count("Cl"))
	}
	if math.Abs(big.Cell.Det()-8*S.Cell.Det()) > 1e-6 {
		Te.Errorf("volume %g, want %g", big.Cell.Det(), 8*S.Cell.Det())
	}
	if S.Len() != 8 {
		Te.Error("Supercell modified its input")
	}
}

//TestSupercellPositions doubles a one-atom cube along x and checks the two
//resulting fractional positions by hand.
func TestSupercellPositions(Te *testing.T) {
	S, err := Build("sc", Params{A: 4, Species: []string{"Po"}})
	if err != nil {
		Te.Fatal(err)
	}
	big, err := Supercell(S, 2, 1, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if big.Len() != 2 {
		Te.Fatalf("2x1x1 sc has %d sites, want 2", big.Len())
	}
	if math.Abs(big.Cell.At(0, 0)-8) > 1e-12 || math.Abs(big.Cell.At(1, 1)-4) > 1e-12 {
		Te.Errorf("lattice not scaled per axis: %g %g", big.Cell.At(0, 0), big.Cell.At(1, 1))
	}
	want := [2]float64{0, 0.5}
	for i, v := range big.Sites {
		if math.Abs(v.Pos[0]-want[i]) > 1e-12 {
			Te.Errorf("site %d at x=%g, want %g", i, v.Pos[0], want[i])
		}
	}
}

//TestSupercellCartesian checks that cartesian-mode input comes back in
//cartesian mode with the same geometry as the fractional path.
func TestSupercellCartesian(Te *testing.T) {
	S, err := Build("bcc", Params{A: 2.87, Species: []string{"Fe"}})
	if err != nil {
		Te.Fatal(err)
	}
	cart, err := ToCartesian(S)
	if err != nil {
		Te.Fatal(err)
	}
	bigc, err := Supercell(cart, 3, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if bigc.Mode != Cartesian {
		Te.Errorf("mode %v, want Cartesian", bigc.Mode)
	}
	bigf, err := Supercell(S, 3, 2, 1)
	if err != nil {
		Te.Fatal(err)
	}
	asFrac, err := ToFractional(bigc)
	if err != nil {
		Te.Fatal(err)
	}
	if !bigf.Equal(asFrac, 1e-9) {
		Te.Error("cartesian and fractional supercell paths disagree")
	}
}

func TestSupercellErrors(Te *testing.T) {
	S, err := Build("sc", Params{A: 4, Species: []string{"Po"}})
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := Supercell(S, 0, 1, 1); !errors.Is(err, ErrInvalidSupercellSpec) {
		Te.Errorf("zero multiplier: got %v", err)
	}
	if _, err := Supercell(S, 1, -2, 1); !errors.Is(err, ErrInvalidSupercellSpec) {
		Te.Errorf("negative multiplier: got %v", err)
	}
	free := NewStructure(nil, Cartesian, []*Site{NewSite("H", 0, 0, 0)})
	if _, err := Supercell(free, 2, 2, 2); !errors.Is(err, ErrSingularLattice) {
		Te.Errorf("lattice-free supercell: got %v", err)
	}
}
