/*
 * errors.go, part of gocryst.
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
)

//The error kinds of the library. Every error returned by gocryst wraps
//exactly one of these sentinels, so callers can classify failures with
//errors.Is without parsing messages.
var (
	ErrInvalidParameter     = errors.New("gocryst: invalid or missing lattice parameter")
	ErrUnsupportedPrototype = errors.New("gocryst: unsupported structure prototype")
	ErrSpeciesRequired      = errors.New("gocryst: species missing for a distinct site")
	ErrInvalidSupercellSpec = errors.New("gocryst: supercell multipliers must be >= 1")
	ErrSingularLattice      = errors.New("gocryst: singular or missing lattice")
	ErrInsufficientSites    = errors.New("gocryst: not enough sites of the target species")
	ErrNoCandidateSites     = errors.New("gocryst: not enough interstitial candidate sites")
	ErrUnknownSpecies       = errors.New("gocryst: species not present in the structure")
	ErrMalformedFile        = errors.New("gocryst: malformed structure file")
	ErrUnsupportedFormat    = errors.New("gocryst: unsupported structure format")
	ErrStructureNotFound    = errors.New("gocryst: no structure found for formula")
	ErrAmbiguousFormula     = errors.New("gocryst: formula matches more than one structure")
)

// Error is the interface all errors in this library implement. The Decorate
// method allows to add and retrieve info from the error as it is passed up
// the call stack, without changing its type or wrapping it in something
// opaque. Passed an empty string it just returns the current decoration.
type Error interface {
	Error() string
	Decorate(string) []string
}

//CError is the concrete error of the library. Kind is one of the Err*
//sentinels above and is exposed through Unwrap, so both the errors.Is
//machinery and the Decorate convention work on the same value.
type CError struct {
	Kind error
	msg  string
	deco []string
}

//NewError builds a CError of the given kind. The message is appended to the
//kind's own text.
func NewError(kind error, format string, a ...interface{}) *CError {
	return &CError{Kind: kind, msg: fmt.Sprintf(format, a...)}
}

func (err *CError) Error() string {
	if err.msg == "" {
		return err.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", err.Kind.Error(), err.msg)
}

//Unwrap returns the sentinel kind of the error.
func (err *CError) Unwrap() error { return err.Kind }

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate adds the caller's name to err if it implements the Error
//interface of this library, and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//PanicMsg is a message used for panics. Panics are reserved for programmer
//errors (out-of-range indices, nil receivers); violated preconditions on
//user input always come back as a *CError instead.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilStructure PanicMsg = "gocryst: nil structure given to a fundamental function"
	ErrOutOfRange   PanicMsg = "gocryst: site index out of range"
	ErrNotCell      PanicMsg = "gocryst: a lattice must be a 3x3 matrix"
)
