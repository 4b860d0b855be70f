/*
 * doc.go, part of gocryst.
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

//Package cryst builds periodic crystal structures from named prototypes,
//expands them into supercells, synthesizes point defects (vacancies,
//substitutions and Voronoi-site interstitials) and reads/writes the common
//structural file formats (POSCAR, CIF, XYZ).
//
//Every function in the package is pure: structures are never mutated in
//place, transformations return a new *Structure and the input remains
//valid. There is no global state, so independent structures can be
//processed concurrently without locking.
//
//The convention throughout the package is that lattice vectors are the
//ROWS of the 3x3 lattice matrix and that an atomic position is a row
//vector, so cartesian = fractional x lattice.
package cryst
