/*
 * files.go, part of gocryst.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Format names an on-disk structural format.
type Format int

const (
	//POSCAR is the VASP coordinate file: lattice, scale factor, species
	//groups, direct or cartesian positions.
	POSCAR Format = iota
	//CIF is the crystallographic information file, written symmetry-free.
	CIF
	//XYZ is the flat cartesian point cloud. It carries NO lattice:
	//encoding to it loses the cell (documented, intentional), decoding
	//from it yields a structure with a nil cell.
	XYZ
)

func (f Format) String() string {
	switch f {
	case POSCAR:
		return "POSCAR"
	case CIF:
		return "CIF"
	case XYZ:
		return "XYZ"
	}
	return "unknown"
}

//Decode reads a structure from r in the given format.
func Decode(r io.Reader, format Format) (*Structure, error) {
	switch format {
	case POSCAR:
		return PoscarRead(r)
	case CIF:
		return CifRead(r)
	case XYZ:
		return XYZRead(r)
	}
	return nil, NewError(ErrUnsupportedFormat, "%d", int(format))
}

//Encode writes S to w in the given format.
func Encode(w io.Writer, S *Structure, format Format) error {
	switch format {
	case POSCAR:
		return PoscarWrite(w, S)
	case CIF:
		return CifWrite(w, S)
	case XYZ:
		return XYZWrite(w, S)
	}
	return NewError(ErrUnsupportedFormat, "%d", int(format))
}

//DecodeString is Decode from an in-memory string.
func DecodeString(text string, format Format) (*Structure, error) {
	return Decode(strings.NewReader(text), format)
}

//EncodeString is Encode into an in-memory string.
func EncodeString(S *Structure, format Format) (string, error) {
	var b strings.Builder
	if err := Encode(&b, S, format); err != nil {
		return "", err
	}
	return b.String(), nil
}

//FormatFromName guesses the format from a file name: POSCAR/CONTCAR (any
//suffix after an underscore) and .vasp/.poscar mean POSCAR, .cif means CIF,
//.xyz means XYZ. A trailing .zst (handled transparently by FileRead and
//FileWrite) is ignored for the guess.
func FormatFromName(name string) (Format, error) {
	base := filepath.Base(strings.TrimSuffix(name, ".zst"))
	upper := strings.ToUpper(base)
	if strings.HasPrefix(upper, "POSCAR") || strings.HasPrefix(upper, "CONTCAR") {
		return POSCAR, nil
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".vasp", ".poscar":
		return POSCAR, nil
	case ".cif":
		return CIF, nil
	case ".xyz":
		return XYZ, nil
	}
	return 0, NewError(ErrUnsupportedFormat, "cannot tell the format of %q", name)
}

//FileRead reads a structure from the named file, picking the format from
//the name. Files ending in .zst are decompressed on the fly.
func FileRead(name string) (*Structure, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return nil, errDecorate(err, "FileRead")
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(name, ".zst") {
		d, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		r = d
	}
	return Decode(r, format)
}

//FileWrite writes S to the named file, picking the format from the name.
//If the file exists it will be overwritten. Files ending in .zst are
//zstd-compressed.
func FileWrite(name string, S *Structure) error {
	format, err := FormatFromName(name)
	if err != nil {
		return errDecorate(err, "FileWrite")
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if !strings.HasSuffix(name, ".zst") {
		return Encode(f, S, format)
	}
	z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err := Encode(z, S, format); err != nil {
		z.Close()
		return err
	}
	return z.Close()
}
