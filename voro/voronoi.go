/*
 * voronoi.go, part of gocryst.
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

/**
voro enumerates the vertices of the periodic Voronoi tessellation of a set
of atomic positions. The vertices (points equidistant from 4 or more atoms)
are the natural candidates for interstitial defect sites: the farther a
vertex is from its nearest atom, the more open the void it marks.

This is a naive, brute-force implementation: for every atom it solves the
3x3 bisector-plane system for each triple of near neighbors (an O(n*k^3)
affair) and keeps the solutions no foreign atom invalidates. No attempt is
made at a proper incremental construction; for the hundreds-of-atoms cells
this library targets, the dumb way is fast enough and much easier to trust.
**/

package voro

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	defMaxNeighbors = 16
	defTol          = 1e-6
	defMergeTol     = 1e-3
)

//Options tunes the vertex search.
type Options struct {
	//MaxNeighbors is how many nearest neighbors of each atom are combined
	//into bisector-plane triples. 16 covers every lattice this library
	//builds; raise it for very anisotropic cells.
	MaxNeighbors int
	//Tol is the geometric tolerance: a vertex is rejected if any atom is
	//closer to it than its defining atoms by more than Tol.
	Tol float64
	//MergeTol is the distance (Angstrom) under which two vertices are
	//considered the same point, after reduction to the central cell.
	MergeTol float64
}

//DefaultOptions returns the settings used when Vertices gets a nil Options.
func DefaultOptions() *Options {
	return &Options{MaxNeighbors: defMaxNeighbors, Tol: defTol, MergeTol: defMergeTol}
}

//Vertex is one Voronoi vertex, reduced into the central cell.
type Vertex struct {
	Frac [3]float64 //fractional position, wrapped into [0,1)
	Cart [3]float64 //cartesian position of the wrapped point
	R    float64    //distance to the nearest atom
}

//Vertices computes the Voronoi vertices of the given fractional positions
//under the periodic boundary conditions of cell (a 3x3 matrix with the
//lattice vectors as rows). Periodicity is handled by surrounding the cell
//with one shell of images, which correctly bounds the interior cells of any
//structure whose voids are smaller than a lattice vector. The result is
//deduplicated under lattice translation and sorted by R, largest first;
//ties are broken lexicographically on Frac so the order is deterministic.
func Vertices(frac [][3]float64, cell *mat.Dense, o *Options) ([]*Vertex, error) {
	if o == nil {
		o = DefaultOptions()
	}
	n := len(frac)
	if n == 0 {
		return nil, Error{"no atoms given", []string{"Vertices"}}
	}
	if r, c := cell.Dims(); r != 3 || c != 3 {
		return nil, Error{"cell is not a 3x3 matrix", []string{"Vertices"}}
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(cell); err != nil {
		return nil, Error{fmt.Sprintf("singular cell: %v", err), []string{"Vertices"}}
	}
	//The central atoms come first so pts[0:n] are the "owners" of the
	//cells we enumerate.
	pts := make([][3]float64, 0, 27*n)
	for _, f := range frac {
		pts = append(pts, frac2cart(f, cell))
	}
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				for _, f := range frac {
					g := [3]float64{f[0] + float64(i), f[1] + float64(j), f[2] + float64(k)}
					pts = append(pts, frac2cart(g, cell))
				}
			}
		}
	}
	//vertices farther from their atom than the longest cell vector would
	//have to be validated against images beyond the first shell; in a
	//filled crystal they cannot exist, so they are discarded as spurious.
	maxR := longestVector(cell)
	var found []*Vertex
	A := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	var x mat.VecDense
	for i := 0; i < n; i++ {
		neigh := nearestNeighbors(pts, i, o.MaxNeighbors)
		nn := len(neigh)
		for a := 0; a < nn-2; a++ {
			for bi := a + 1; bi < nn-1; bi++ {
				for c := bi + 1; c < nn; c++ {
					v, ok := solveVertex(pts, i, neigh[a], neigh[bi], neigh[c], A, b, &x)
					if !ok {
						continue
					}
					r := dist(v, pts[i])
					if r > maxR {
						continue
					}
					if !validVertex(v, r, pts, o.Tol) {
						continue
					}
					found = merge(found, newVertex(v, r, cell, inv), cell, o.MergeTol)
				}
			}
		}
	}
	sort.Slice(found, func(i, j int) bool {
		vi, vj := found[i], found[j]
		if math.Abs(vi.R-vj.R) > o.Tol {
			return vi.R > vj.R
		}
		for q := 0; q < 3; q++ {
			if math.Abs(vi.Frac[q]-vj.Frac[q]) > o.Tol {
				return vi.Frac[q] < vj.Frac[q]
			}
		}
		return false
	})
	return found, nil
}

//solveVertex finds the point equidistant from atoms i, j, k and l by
//intersecting the three bisector planes, i.e. solving
//2(p_j-p_i).x = |p_j|^2-|p_i|^2 and the analogous rows for k and l.
//The scratch matrices are reused across calls.
func solveVertex(pts [][3]float64, i, j, k, l int, A *mat.Dense, b *mat.VecDense, x *mat.VecDense) ([3]float64, bool) {
	pi := pts[i]
	n2i := norm2(pi)
	for row, idx := range [3]int{j, k, l} {
		p := pts[idx]
		A.Set(row, 0, 2*(p[0]-pi[0]))
		A.Set(row, 1, 2*(p[1]-pi[1]))
		A.Set(row, 2, 2*(p[2]-pi[2]))
		b.SetVec(row, norm2(p)-n2i)
	}
	//a singular system means the 4 atoms are (nearly) coplanar and define
	//no vertex; just skip the triple.
	if err := x.SolveVec(A, b); err != nil {
		return [3]float64{}, false
	}
	return [3]float64{x.AtVec(0), x.AtVec(1), x.AtVec(2)}, true
}

//validVertex checks that no atom is closer to v than r (beyond tolerance).
func validVertex(v [3]float64, r float64, pts [][3]float64, tol float64) bool {
	rr := r - tol
	rr2 := rr * rr
	for _, p := range pts {
		dx := v[0] - p[0]
		dy := v[1] - p[1]
		dz := v[2] - p[2]
		if dx*dx+dy*dy+dz*dz < rr2 {
			return false
		}
	}
	return true
}

//newVertex wraps the cartesian point into the central cell.
func newVertex(v [3]float64, r float64, cell, inv *mat.Dense) *Vertex {
	f := frac2cart(v, inv) //multiplying by the inverse goes cart->frac
	for q := 0; q < 3; q++ {
		f[q] = f[q] - math.Floor(f[q])
		if 1-f[q] < 1e-12 {
			f[q] = 0
		}
	}
	return &Vertex{Frac: f, Cart: frac2cart(f, cell), R: r}
}

//merge appends nv to vs unless an equivalent vertex (same point under
//lattice translation, within mergetol) is already there. When duplicates
//meet, the one with the larger R is kept; they only differ by numerical
//noise anyway.
func merge(vs []*Vertex, nv *Vertex, cell *mat.Dense, mergetol float64) []*Vertex {
	for _, v := range vs {
		var d [3]float64
		for q := 0; q < 3; q++ {
			d[q] = nv.Frac[q] - v.Frac[q]
			d[q] -= math.Round(d[q]) //minimum image
		}
		if dist(frac2cart(d, cell), [3]float64{}) < mergetol {
			if nv.R > v.R {
				*v = *nv
			}
			return vs
		}
	}
	return append(vs, nv)
}

//nearestNeighbors returns the indexes (into pts) of the up-to-max points
//nearest to pts[i], excluding i itself.
func nearestNeighbors(pts [][3]float64, i, max int) []int {
	idx := make([]int, 0, len(pts)-1)
	for j := range pts {
		if j != i {
			idx = append(idx, j)
		}
	}
	sort.Slice(idx, func(a, b int) bool {
		return dist2(pts[idx[a]], pts[i]) < dist2(pts[idx[b]], pts[i])
	})
	if len(idx) > max {
		idx = idx[:max]
	}
	return idx
}

func frac2cart(f [3]float64, cell *mat.Dense) [3]float64 {
	var c [3]float64
	for j := 0; j < 3; j++ {
		c[j] = f[0]*cell.At(0, j) + f[1]*cell.At(1, j) + f[2]*cell.At(2, j)
	}
	return c
}

func longestVector(cell *mat.Dense) float64 {
	var m float64
	for i := 0; i < 3; i++ {
		l := math.Sqrt(cell.At(i, 0)*cell.At(i, 0) + cell.At(i, 1)*cell.At(i, 1) + cell.At(i, 2)*cell.At(i, 2))
		if l > m {
			m = l
		}
	}
	return m
}

func norm2(p [3]float64) float64 {
	return p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
}

func dist2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

func dist(a, b [3]float64) float64 {
	return math.Sqrt(dist2(a, b))
}

//Error is the error type of this package. It is the same shape as the root
//package's CError but defined here to avoid a circular import.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
