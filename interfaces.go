/*
 * interfaces.go, part of gocryst.
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

//Fetcher obtains a reference structure for a chemical formula. It is the
//seam for external structure databases; the library itself ships only the
//in-memory FixtureFetcher.
type Fetcher interface {
	//StructureByFormula returns the structure registered for the given
	//formula, ErrStructureNotFound if there is none, and
	//ErrAmbiguousFormula if the formula maps to more than one entry.
	StructureByFormula(formula string) (*Structure, error)
}

//FixtureFetcher is a Fetcher backed by an in-memory table, mostly useful
//for tests and for recipes that bundle their own reference structures.
type FixtureFetcher map[string][]*Structure

func (f FixtureFetcher) StructureByFormula(formula string) (*Structure, error) {
	hits := f[formula]
	switch len(hits) {
	case 0:
		return nil, NewError(ErrStructureNotFound, "%q", formula)
	case 1:
		return hits[0].Copy(), nil
	}
	return nil, NewError(ErrAmbiguousFormula, "%q matches %d structures", formula, len(hits))
}

//Register adds a structure under the given formula. A copy is stored, so
//later changes to S do not leak into the fetcher.
func (f FixtureFetcher) Register(formula string, S *Structure) {
	f[formula] = append(f[formula], S.Copy())
}
