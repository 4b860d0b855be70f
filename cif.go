/*
 * cif.go, part of gocryst.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//CifWrite writes S as a symmetry-free (P 1) CIF: the six cell parameters
//plus an atom_site loop in fractional coordinates. Because CIF stores the
//lattice as lengths and angles, the orientation of the lattice matrix is
//not kept: CifRead returns the canonical lower-triangular setting of the
//same cell. Lattices built by this library are already canonical, so for
//them the round trip is exact.
func CifWrite(w io.Writer, S *Structure) error {
	if S.Cell == nil {
		return NewError(ErrSingularLattice, "CIF needs a lattice")
	}
	frac, err := ToFractional(S)
	if err != nil {
		return errDecorate(err, "CifWrite")
	}
	l := frac.Cell.Lengths()
	ang := frac.Cell.Angles()
	name := strings.Join(frac.Species(), "")
	if name == "" {
		name = "structure"
	}
	fmt.Fprintf(w, "data_%s\n", name)
	fmt.Fprintf(w, "_symmetry_space_group_name_H-M   'P 1'\n")
	fmt.Fprintf(w, "_symmetry_Int_Tables_number      1\n")
	fmt.Fprintf(w, "_cell_length_a   %.10f\n", l[0])
	fmt.Fprintf(w, "_cell_length_b   %.10f\n", l[1])
	fmt.Fprintf(w, "_cell_length_c   %.10f\n", l[2])
	fmt.Fprintf(w, "_cell_angle_alpha   %.10f\n", ang[0])
	fmt.Fprintf(w, "_cell_angle_beta   %.10f\n", ang[1])
	fmt.Fprintf(w, "_cell_angle_gamma   %.10f\n", ang[2])
	fmt.Fprintf(w, "loop_\n")
	fmt.Fprintf(w, " _atom_site_type_symbol\n")
	fmt.Fprintf(w, " _atom_site_label\n")
	fmt.Fprintf(w, " _atom_site_occupancy\n")
	fmt.Fprintf(w, " _atom_site_fract_x\n")
	fmt.Fprintf(w, " _atom_site_fract_y\n")
	fmt.Fprintf(w, " _atom_site_fract_z\n")
	numbered := make(map[string]int, 4)
	for _, v := range frac.Sites {
		label := v.Label
		if label == "" {
			numbered[v.Symbol]++
			label = fmt.Sprintf("%s%d", v.Symbol, numbered[v.Symbol])
		}
		_, err := fmt.Fprintf(w, " %s %s %.4f %.16f %.16f %.16f\n",
			v.Symbol, label, v.occ(), v.Pos[0], v.Pos[1], v.Pos[2])
		if err != nil {
			return err
		}
	}
	return nil
}

//CifRead reads a symmetry-free CIF: it requires the six _cell_* parameters
//and an atom_site loop with at least _atom_site_type_symbol and the three
//_atom_site_fract_* columns. Symmetry operations are NOT expanded; files
//relying on a non-P1 space group decode to just their listed sites.
func CifRead(r io.Reader) (*Structure, error) {
	cellpar := map[string]float64{}
	var curHeader, header []string
	var curRows, rows [][]string
	//finish closes the loop being read; the first atom_site loop with data
	//wins, later loops (bonds, symmetry ops...) are ignored.
	finish := func() {
		if header == nil && isAtomSiteLoop(curHeader) && len(curRows) > 0 {
			header, rows = curHeader, curRows
		}
		curHeader, curRows = nil, nil
	}
	sc := bufio.NewScanner(r)
	inloop := 0 //0: outside, 1: reading headers, 2: reading data
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "loop_"):
			finish()
			inloop = 1
		case strings.HasPrefix(line, "_"):
			fields := strings.Fields(line)
			if inloop == 1 {
				curHeader = append(curHeader, fields[0])
				continue
			}
			if inloop == 2 {
				finish()
			}
			inloop = 0
			if len(fields) < 2 {
				continue
			}
			if strings.HasPrefix(fields[0], "_cell_") {
				v, err := strconv.ParseFloat(strings.Split(fields[1], "(")[0], 64)
				if err != nil {
					return nil, NewError(ErrMalformedFile, "CIF: non-numeric %s: %q", fields[0], fields[1])
				}
				cellpar[fields[0]] = v
			}
		default:
			if inloop == 0 {
				continue //data_ line, quoted strings etc.
			}
			inloop = 2
			if isAtomSiteLoop(curHeader) {
				fields := strings.Fields(line)
				if len(fields) != len(curHeader) {
					return nil, NewError(ErrMalformedFile, "CIF: atom_site row has %d fields for %d columns", len(fields), len(curHeader))
				}
				curRows = append(curRows, fields)
			}
		}
	}
	finish()
	need := []string{"_cell_length_a", "_cell_length_b", "_cell_length_c",
		"_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma"}
	for _, k := range need {
		if _, ok := cellpar[k]; !ok {
			return nil, NewError(ErrMalformedFile, "CIF: missing %s", k)
		}
	}
	cell, err := LatticeFromParams(cellpar["_cell_length_a"], cellpar["_cell_length_b"],
		cellpar["_cell_length_c"], cellpar["_cell_angle_alpha"],
		cellpar["_cell_angle_beta"], cellpar["_cell_angle_gamma"])
	if err != nil {
		return nil, NewError(ErrMalformedFile, "CIF: degenerate cell parameters")
	}
	col := map[string]int{}
	for i, h := range header {
		col[h] = i
	}
	isym, ok := col["_atom_site_type_symbol"]
	if !ok {
		isym, ok = col["_atom_site_label"] //some writers only give labels
		if !ok {
			return nil, NewError(ErrMalformedFile, "CIF: atom_site loop without a symbol column")
		}
	}
	ix, okx := col["_atom_site_fract_x"]
	iy, oky := col["_atom_site_fract_y"]
	iz, okz := col["_atom_site_fract_z"]
	if !okx || !oky || !okz {
		return nil, NewError(ErrMalformedFile, "CIF: atom_site loop without fractional coordinates")
	}
	if len(rows) == 0 {
		return nil, NewError(ErrMalformedFile, "CIF: no atom_site rows")
	}
	sites := make([]*Site, 0, len(rows))
	for _, row := range rows {
		var p [3]float64
		for q, i := range [3]int{ix, iy, iz} {
			v, err := strconv.ParseFloat(strings.Split(row[i], "(")[0], 64)
			if err != nil {
				return nil, NewError(ErrMalformedFile, "CIF: non-numeric coordinate %q", row[i])
			}
			p[q] = v
		}
		s := NewSite(stripLabel(row[isym]), p[0], p[1], p[2])
		if i, ok := col["_atom_site_label"]; ok {
			s.Label = row[i]
		}
		if i, ok := col["_atom_site_occupancy"]; ok {
			if v, err := strconv.ParseFloat(row[i], 64); err == nil {
				s.Occupancy = v
			}
		}
		sites = append(sites, s)
	}
	return NewStructure(cell, Fractional, sites), nil
}

func isAtomSiteLoop(header []string) bool {
	for _, h := range header {
		if strings.HasPrefix(h, "_atom_site_") {
			return true
		}
	}
	return false
}

//stripLabel drops the numeric tail of labels like "Na1" so they can stand
//in for the element symbol.
func stripLabel(s string) string {
	return strings.TrimRight(s, "0123456789+-")
}
