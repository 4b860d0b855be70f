/*
 * poscar.go, part of gocryst.
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

//PoscarRead reads a VASP POSCAR/CONTCAR (VASP 5 flavor, i.e. with the
//species-symbols line). The universal scale factor is applied to the
//lattice and, for cartesian files, to the positions, so the returned
//structure is always in plain Angstrom. An optional "Selective dynamics"
//line is accepted and its per-atom flags ignored.
func PoscarRead(r io.Reader) (*Structure, error) {
	sc := bufio.NewScanner(r)
	next := func() (string, bool) {
		for sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}
	if _, ok := next(); !ok { //comment line
		return nil, NewError(ErrMalformedFile, "POSCAR: empty input")
	}
	line, ok := next()
	if !ok {
		return nil, NewError(ErrMalformedFile, "POSCAR: missing scale factor")
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil || scale <= 0 {
		return nil, NewError(ErrMalformedFile, "POSCAR: bad scale factor %q", strings.TrimSpace(line))
	}
	latdata := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		line, ok = next()
		if !ok {
			return nil, NewError(ErrMalformedFile, "POSCAR: missing lattice vector %d", i+1)
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, NewError(ErrMalformedFile, "POSCAR: lattice vector %d has %d components", i+1, len(fields))
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, NewError(ErrMalformedFile, "POSCAR: non-numeric lattice component %q", f)
			}
			latdata = append(latdata, v*scale)
		}
	}
	cell, err := NewLattice(latdata)
	if err != nil {
		return nil, NewError(ErrMalformedFile, "POSCAR: degenerate lattice")
	}
	line, ok = next()
	if !ok {
		return nil, NewError(ErrMalformedFile, "POSCAR: missing species line")
	}
	species := strings.Fields(line)
	if len(species) == 0 {
		return nil, NewError(ErrMalformedFile, "POSCAR: empty species line")
	}
	if _, err := strconv.Atoi(species[0]); err == nil {
		//VASP 4 files jump straight to the counts; without symbols there
		//is no way to build sites.
		return nil, NewError(ErrMalformedFile, "POSCAR: species symbols line missing (VASP 4 format not supported)")
	}
	line, ok = next()
	if !ok {
		return nil, NewError(ErrMalformedFile, "POSCAR: missing species counts")
	}
	cfields := strings.Fields(line)
	if len(cfields) != len(species) {
		return nil, NewError(ErrMalformedFile, "POSCAR: %d species but %d counts", len(species), len(cfields))
	}
	counts := make([]int, len(cfields))
	total := 0
	for i, f := range cfields {
		c, err := strconv.Atoi(f)
		if err != nil || c < 1 {
			return nil, NewError(ErrMalformedFile, "POSCAR: bad species count %q", f)
		}
		counts[i] = c
		total += c
	}
	line, ok = next()
	if !ok {
		return nil, NewError(ErrMalformedFile, "POSCAR: missing coordinate mode line")
	}
	if t := strings.TrimSpace(line); t != "" && (t[0] == 'S' || t[0] == 's') {
		line, ok = next() //selective dynamics; the real mode line follows
		if !ok {
			return nil, NewError(ErrMalformedFile, "POSCAR: missing coordinate mode line")
		}
	}
	mode := Fractional
	t := strings.TrimSpace(line)
	switch {
	case t == "":
		return nil, NewError(ErrMalformedFile, "POSCAR: empty coordinate mode line")
	case t[0] == 'D' || t[0] == 'd':
		mode = Fractional
	case t[0] == 'C' || t[0] == 'c' || t[0] == 'K' || t[0] == 'k':
		mode = Cartesian
	default:
		return nil, NewError(ErrMalformedFile, "POSCAR: unknown coordinate mode %q", t)
	}
	sites := make([]*Site, 0, total)
	for i, sym := range species {
		for j := 0; j < counts[i]; j++ {
			line, ok = next()
			if !ok {
				return nil, NewError(ErrMalformedFile, "POSCAR: expected %d positions, got %d", total, len(sites))
			}
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return nil, NewError(ErrMalformedFile, "POSCAR: position line %q too short", line)
			}
			var p [3]float64
			for q := 0; q < 3; q++ {
				p[q], err = strconv.ParseFloat(fields[q], 64)
				if err != nil {
					return nil, NewError(ErrMalformedFile, "POSCAR: non-numeric coordinate %q", fields[q])
				}
				if mode == Cartesian {
					p[q] *= scale
				}
			}
			sites = append(sites, NewSite(sym, p[0], p[1], p[2]))
		}
	}
	return NewStructure(cell, mode, sites), nil
}

//PoscarWrite writes S as a VASP 5 POSCAR with scale factor 1.0, in the
//coordinate mode S already has. POSCAR groups positions by species, so
//sites are emitted grouped in first-appearance species order (relative
//order preserved within each group); that grouped order is what PoscarRead
//gives back. Labels and occupancies are not representable and are dropped.
func PoscarWrite(w io.Writer, S *Structure) error {
	if S.Cell == nil {
		return NewError(ErrSingularLattice, "POSCAR needs a lattice")
	}
	if S.Len() == 0 {
		return NewError(ErrInvalidParameter, "refusing to write an empty POSCAR")
	}
	species := S.Species()
	if _, err := fmt.Fprintf(w, "%s  generated by gocryst\n", strings.Join(species, " ")); err != nil {
		return err
	}
	fmt.Fprintf(w, "1.0\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, " %21.16f %21.16f %21.16f\n", S.Cell.At(i, 0), S.Cell.At(i, 1), S.Cell.At(i, 2))
	}
	fmt.Fprintf(w, "%s\n", strings.Join(species, " "))
	counts := make([]string, len(species))
	for i, sym := range species {
		counts[i] = strconv.Itoa(S.Count(sym))
	}
	fmt.Fprintf(w, "%s\n", strings.Join(counts, " "))
	fmt.Fprintf(w, "%s\n", S.Mode.String())
	for _, sym := range species {
		for _, v := range S.Sites {
			if v.Symbol != sym {
				continue
			}
			if _, err := fmt.Fprintf(w, " %19.16f %19.16f %19.16f\n", v.Pos[0], v.Pos[1], v.Pos[2]); err != nil {
				return err
			}
		}
	}
	return nil
}
