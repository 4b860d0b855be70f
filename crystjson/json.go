/*
 * json.go, part of gocryst.
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

package crystjson

import (
	"encoding/json"
	"io"

	cryst "github.com/gocryst/gocryst"
)

//A ready-to-serialize container for a site.
type Site struct {
	Symbol    string
	Pos       [3]float64
	Label     string  `json:",omitempty"`
	Occupancy float64 `json:",omitempty"`
}

//A ready-to-serialize container for a structure. Cell holds the lattice
//matrix row-major (nil for lattice-free structures), Mode is "Direct" or
//"Cartesian".
type Structure struct {
	Cell  []float64 `json:",omitempty"`
	Mode  string
	Sites []*Site
}

//FromStructure fills a serialization container from S.
func FromStructure(S *cryst.Structure) *Structure {
	J := &Structure{Mode: S.Mode.String(), Sites: make([]*Site, 0, S.Len())}
	if S.Cell != nil {
		J.Cell = make([]float64, 0, 9)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				J.Cell = append(J.Cell, S.Cell.At(i, j))
			}
		}
	}
	for _, v := range S.Sites {
		J.Sites = append(J.Sites, &Site{Symbol: v.Symbol, Pos: v.Pos, Label: v.Label, Occupancy: v.Occupancy})
	}
	return J
}

//Structure rebuilds a cryst.Structure from the container.
func (J *Structure) Structure() (*cryst.Structure, error) {
	var cell *cryst.Lattice
	var err error
	if J.Cell != nil {
		if len(J.Cell) != 9 {
			return nil, cryst.NewError(cryst.ErrMalformedFile, "JSON: lattice has %d values, want 9", len(J.Cell))
		}
		cell, err = cryst.NewLattice(J.Cell)
		if err != nil {
			return nil, cryst.NewError(cryst.ErrMalformedFile, "JSON: degenerate lattice")
		}
	}
	var mode cryst.Mode
	switch J.Mode {
	case "Direct":
		mode = cryst.Fractional
	case "Cartesian":
		mode = cryst.Cartesian
	default:
		return nil, cryst.NewError(cryst.ErrMalformedFile, "JSON: unknown coordinate mode %q", J.Mode)
	}
	sites := make([]*cryst.Site, 0, len(J.Sites))
	for _, v := range J.Sites {
		s := cryst.NewSite(v.Symbol, v.Pos[0], v.Pos[1], v.Pos[2])
		s.Label = v.Label
		if v.Occupancy != 0 {
			s.Occupancy = v.Occupancy
		}
		sites = append(sites, s)
	}
	return cryst.NewStructure(cell, mode, sites), nil
}

//EncodeStructure writes S to out as one JSON document.
func EncodeStructure(out io.Writer, S *cryst.Structure) error {
	enc := json.NewEncoder(out)
	return enc.Encode(FromStructure(S))
}

//DecodeStructure reads one JSON structure document from in.
func DecodeStructure(in io.Reader) (*cryst.Structure, error) {
	J := new(Structure)
	dec := json.NewDecoder(in)
	if err := dec.Decode(J); err != nil {
		return nil, cryst.NewError(cryst.ErrMalformedFile, "JSON: %v", err)
	}
	return J.Structure()
}
