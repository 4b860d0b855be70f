/*
 * files_test.go, part of gocryst.
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
	"path/filepath"
	"testing"
)

func TestPoscarRoundTrip(Te *testing.T) {
	S, err := Build("rocksalt", Params{A: 5.64, Species: []string{"Na", "Cl"}})
	if err != nil {
		Te.Fatal(err)
	}
	text, err := EncodeString(S, POSCAR)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(text)
	back, err := DecodeString(text, POSCAR)
	if err != nil {
		Te.Fatal(err)
	}
	if !S.Equal(back, 1e-9) {
		Te.Error("POSCAR round trip changed the structure")
	}
}

func TestPoscarCartesian(Te *testing.T) {
	S, err := Build("bcc", Params{A: 2.87, Species: []string{"Fe"}})
	if err != nil {
		Te.Fatal(err)
	}
	cart, err := ToCartesian(S)
	if err != nil {
		Te.Fatal(err)
	}
	text, err := EncodeString(cart, POSCAR)
	if err != nil {
		Te.Fatal(err)
	}
	back, err := DecodeString(text, POSCAR)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Mode != Cartesian {
		Te.Errorf("mode %v, want Cartesian", back.Mode)
	}
	if !cart.Equal(back, 1e-9) {
		Te.Error("cartesian POSCAR round trip changed the structure")
	}
}

//TestPoscarScale checks that the universal scale factor is applied on read.
func TestPoscarScale(Te *testing.T) {
	text := `Cu fcc, half scale
2.0
 1.80750 0.00000 0.00000
 0.00000 1.80750 0.00000
 0.00000 0.00000 1.80750
Cu
1
Direct
 0.0 0.0 0.0
`
	S, err := DecodeString(text, POSCAR)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(S.Cell.At(0, 0)-3.615) > 1e-9 {
		Te.Errorf("scaled lattice a11 = %g, want 3.615", S.Cell.At(0, 0))
	}
}

func TestPoscarMalformed(Te *testing.T) {
	vasp4 := `no symbols line
1.0
 4.0 0.0 0.0
 0.0 4.0 0.0
 0.0 0.0 4.0
1
Direct
 0.0 0.0 0.0
`
	if _, err := DecodeString(vasp4, POSCAR); !errors.Is(err, ErrMalformedFile) {
		Te.Errorf("VASP 4 input: got %v", err)
	}
	truncated := `header
1.0
 4.0 0.0 0.0
 0.0 4.0 0.0
`
	if _, err := DecodeString(truncated, POSCAR); !errors.Is(err, ErrMalformedFile) {
		Te.Errorf("truncated lattice: got %v", err)
	}
	if _, err := DecodeString("", POSCAR); !errors.Is(err, ErrMalformedFile) {
		Te.Errorf("empty input: got %v", err)
	}
}

func TestCifRoundTrip(Te *testing.T) {
	S, err := Build("wurtzite", Params{A: 3.19, C: 5.19, Species: []string{"Ga", "N"}})
	if err != nil {
		Te.Fatal(err)
	}
	text, err := EncodeString(S, CIF)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(text)
	back, err := DecodeString(text, CIF)
	if err != nil {
		Te.Fatal(err)
	}
	if !S.Equal(back, 1e-9) {
		Te.Error("CIF round trip changed the structure")
	}
}

//TestCifForeign decodes a CIF with features ours does not emit: an esd on a
//cell parameter, extra loop columns, label-only symbols.
func TestCifForeign(Te *testing.T) {
	text := `data_quartz_alpha
_cell_length_a 4.916(2)
_cell_length_b 4.916
_cell_length_c 5.405
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 120
loop_
 _atom_site_label
 _atom_site_fract_x
 _atom_site_fract_y
 _atom_site_fract_z
 Si1 0.4697 0.0000 0.0000
 O1 0.4135 0.2669 0.1191
`
	S, err := DecodeString(text, CIF)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 2 {
		Te.Fatalf("got %d sites, want 2", S.Len())
	}
	if S.Sites[0].Symbol != "Si" || S.Sites[1].Symbol != "O" {
		Te.Errorf("symbols %s %s, want Si O", S.Sites[0].Symbol, S.Sites[1].Symbol)
	}
	l := S.Cell.Lengths()
	if math.Abs(l[0]-4.916) > 1e-9 {
		Te.Errorf("a = %g, want 4.916", l[0])
	}
}

func TestCifMalformed(Te *testing.T) {
	noCell := `data_x
loop_
 _atom_site_type_symbol
 _atom_site_fract_x
 _atom_site_fract_y
 _atom_site_fract_z
 Na 0 0 0
`
	if _, err := DecodeString(noCell, CIF); !errors.Is(err, ErrMalformedFile) {
		Te.Errorf("missing cell: got %v", err)
	}
	noSites := `data_x
_cell_length_a 4
_cell_length_b 4
_cell_length_c 4
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`
	if _, err := DecodeString(noSites, CIF); !errors.Is(err, ErrMalformedFile) {
		Te.Errorf("missing sites: got %v", err)
	}
}

//TestXYZLossy checks the documented lossy path: encoding drops the lattice,
//decoding gives a lattice-free cartesian structure with the same positions.
func TestXYZLossy(Te *testing.T) {
	S, err := Build("fcc", Params{A: 3.615, Species: []string{"Cu"}})
	if err != nil {
		Te.Fatal(err)
	}
	cart, err := ToCartesian(S)
	if err != nil {
		Te.Fatal(err)
	}
	text, err := EncodeString(S, XYZ)
	if err != nil {
		Te.Fatal(err)
	}
	back, err := DecodeString(text, XYZ)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Cell != nil {
		Te.Error("XYZ decoding produced a lattice out of thin air")
	}
	if back.Mode != Cartesian {
		Te.Errorf("mode %v, want Cartesian", back.Mode)
	}
	if back.Len() != cart.Len() {
		Te.Fatalf("got %d sites, want %d", back.Len(), cart.Len())
	}
	for i, v := range back.Sites {
		for q := 0; q < 3; q++ {
			if math.Abs(v.Pos[q]-cart.Sites[i].Pos[q]) > 1e-5 {
				Te.Errorf("site %d component %d: %g vs %g", i, q, v.Pos[q], cart.Sites[i].Pos[q])
			}
		}
	}
}

func TestFormatFromName(Te *testing.T) {
	cases := map[string]Format{
		"POSCAR":         POSCAR,
		"CONTCAR":        POSCAR,
		"POSCAR_relaxed": POSCAR,
		"nacl.vasp":      POSCAR,
		"nacl.poscar":    POSCAR,
		"nacl.cif":       CIF,
		"nacl.xyz":       XYZ,
		"nacl.cif.zst":   CIF,
		"POSCAR.zst":     POSCAR,
	}
	for name, want := range cases {
		got, err := FormatFromName(name)
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if got != want {
			Te.Errorf("%s: got %v, want %v", name, got, want)
		}
	}
	if _, err := FormatFromName("nacl.pdb"); !errors.Is(err, ErrUnsupportedFormat) {
		Te.Errorf("unknown extension: got %v", err)
	}
	if err := Encode(nil, nil, Format(99)); !errors.Is(err, ErrUnsupportedFormat) {
		Te.Errorf("bogus format: got %v", err)
	}
}

//TestFileZstd round-trips a structure through a zstd-compressed POSCAR on
//disk.
func TestFileZstd(Te *testing.T) {
	S, err := Build("diamond", Params{A: 5.43, Species: []string{"Si"}})
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "POSCAR.zst")
	if err := FileWrite(name, S); err != nil {
		Te.Fatal(err)
	}
	back, err := FileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if !S.Equal(back, 1e-9) {
		Te.Error("compressed round trip changed the structure")
	}
}

func TestFilePlain(Te *testing.T) {
	S, err := Build("cesiumchloride", Params{A: 4.12, Species: []string{"Cs", "Cl"}})
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "cscl.cif")
	if err := FileWrite(name, S); err != nil {
		Te.Fatal(err)
	}
	back, err := FileRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if !S.Equal(back, 1e-9) {
		Te.Error("CIF file round trip changed the structure")
	}
}
