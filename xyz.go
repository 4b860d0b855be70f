/*
 * xyz.go, part of gocryst.
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

//XYZRead reads an XYZ file: atom count, a comment line, then one
//"Symbol x y z" line per atom in Angstrom. XYZ carries no lattice, so the
//returned structure has a nil Cell and Cartesian mode; periodic operations
//on it will fail with ErrSingularLattice until the caller supplies a cell.
func XYZRead(r io.Reader) (*Structure, error) {
	xyz := bufio.NewReader(r)
	line, err := xyz.ReadString('\n')
	if err != nil && line == "" {
		return nil, NewError(ErrMalformedFile, "XYZ: empty input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms < 1 {
		return nil, NewError(ErrMalformedFile, "XYZ: bad atom count line %q", strings.TrimSpace(line))
	}
	if _, err := xyz.ReadString('\n'); err != nil { //comment line
		return nil, NewError(ErrMalformedFile, "XYZ: truncated after atom count")
	}
	sites := make([]*Site, 0, natoms)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && line == "" {
			return nil, NewError(ErrMalformedFile, "XYZ: expected %d atoms, got %d", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, NewError(ErrMalformedFile, "XYZ: line %d ill formed", i+3)
		}
		var p [3]float64
		for q := 0; q < 3; q++ {
			p[q], err = strconv.ParseFloat(fields[q+1], 64)
			if err != nil {
				return nil, NewError(ErrMalformedFile, "XYZ: non-numeric coordinate %q on line %d", fields[q+1], i+3)
			}
		}
		sites = append(sites, NewSite(fields[0], p[0], p[1], p[2]))
	}
	return NewStructure(nil, Cartesian, sites), nil
}

//XYZWrite writes S in XYZ format. This is the documented lossy path: the
//lattice (if any) is used to obtain cartesian positions and then DROPPED,
//since the format cannot carry it. Decoding the output gives a lattice-free
//structure.
func XYZWrite(w io.Writer, S *Structure) error {
	cart, err := ToCartesian(S)
	if err != nil {
		return errDecorate(err, "XYZWrite")
	}
	if _, err := fmt.Fprintf(w, "%-4d\n\n", cart.Len()); err != nil {
		return err
	}
	for _, v := range cart.Sites {
		if _, err := fmt.Fprintf(w, "%-2s  %12.6f%12.6f%12.6f\n", v.Symbol, v.Pos[0], v.Pos[1], v.Pos[2]); err != nil {
			return err
		}
	}
	return nil
}
