/*
 * cryst_test.go, part of gocryst.
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
	"testing"
)

//TestSpecies checks first-appearance species order, which the POSCAR
//writer relies on.
func TestSpecies(Te *testing.T) {
	cell, err := NewLattice([]float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	if err != nil {
		Te.Fatal(err)
	}
	S := NewStructure(cell, Fractional, []*Site{
		NewSite("Cl", 0, 0, 0),
		NewSite("Na", 0.5, 0, 0),
		NewSite("Cl", 0, 0.5, 0),
		NewSite("K", 0, 0, 0.5),
	})
	sp := S.Species()
	want := []string{"Cl", "Na", "K"}
	if len(sp) != len(want) {
		Te.Fatalf("species %v, want %v", sp, want)
	}
	for i := range want {
		if sp[i] != want[i] {
			Te.Fatalf("species %v, want %v", sp, want)
		}
	}
	if S.Count("Cl") != 2 || S.Count("Na") != 1 || S.Count("Ar") != 0 {
		Te.Error("Count miscounts")
	}
}

func TestCopyIsDeep(Te *testing.T) {
	S, err := Build("fcc", Params{A: 3.615, Species: []string{"Cu"}})
	if err != nil {
		Te.Fatal(err)
	}
	c := S.Copy()
	c.Sites[0].Symbol = "Au"
	c.Sites[1].Pos[0] = 0.9
	c.Cell.Set(0, 0, -1)
	if S.Sites[0].Symbol == "Au" || S.Sites[1].Pos[0] == 0.9 || S.Cell.At(0, 0) == -1 {
		Te.Error("Copy shares memory with the original")
	}
}

func TestFixtureFetcher(Te *testing.T) {
	salt, err := Build("rocksalt", Params{A: 5.64, Species: []string{"Na", "Cl"}})
	if err != nil {
		Te.Fatal(err)
	}
	f := FixtureFetcher{}
	f.Register("NaCl", salt)
	got, err := f.StructureByFormula("NaCl")
	if err != nil {
		Te.Fatal(err)
	}
	got.Sites[0].Symbol = "K"
	again, err := f.StructureByFormula("NaCl")
	if err != nil {
		Te.Fatal(err)
	}
	if again.Sites[0].Symbol == "K" {
		Te.Error("fetcher hands out aliased structures")
	}
	if _, err := f.StructureByFormula("KBr"); !errors.Is(err, ErrStructureNotFound) {
		Te.Errorf("missing formula: got %v", err)
	}
	f.Register("NaCl", salt) //a second polymorph
	if _, err := f.StructureByFormula("NaCl"); !errors.Is(err, ErrAmbiguousFormula) {
		Te.Errorf("two entries: got %v", err)
	}
}

//TestErrorDecoration checks the call-trail decoration and errors.Is
//matching through the wrap.
func TestErrorDecoration(Te *testing.T) {
	err := NewError(ErrInvalidParameter, "bad thing %d", 7)
	if !errors.Is(err, ErrInvalidParameter) {
		Te.Error("NewError does not match its kind")
	}
	deco := err.Decorate("Outer")
	if len(deco) != 1 || deco[0] != "Outer" {
		Te.Errorf("decoration %v", deco)
	}
	wrapped := errDecorate(err, "Outermost")
	var ce Error
	if !errors.As(wrapped, &ce) {
		Te.Fatal("decorated error lost its type")
	}
}
