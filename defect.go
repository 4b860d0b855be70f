/*
 * defect.go, part of gocryst.
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
	"math"
	"math/rand"

	"github.com/gocryst/gocryst/voro"
)

//DefectKind selects the point-defect operation.
type DefectKind int

const (
	//Vacancy removes atoms of the target species.
	Vacancy DefectKind = iota
	//Substitution replaces atoms of the target species by the replacement.
	Substitution
	//Interstitial inserts atoms of the target species at Voronoi voids.
	Interstitial
)

func (k DefectKind) String() string {
	switch k {
	case Vacancy:
		return "vacancy"
	case Substitution:
		return "substitution"
	case Interstitial:
		return "interstitial"
	}
	return "unknown"
}

//DefectSpec describes one defect operation. Exactly one of Count and
//Fraction must be set: Fraction, if in (0,1], resolves to
//round(Fraction*population) with a minimum of 1, population being the
//number of target-species atoms (for interstitials, the whole structure).
//
//Seed >= 0 selects sites through a reproducible pseudo-random permutation
//keyed by the seed. A negative Seed (the zero-value DefectSpec has Seed 0,
//so set it explicitly) means no randomness at all: the first Count matching
//sites in structure order are taken. Both choices are deterministic; there
//is no ambient-RNG path.
type DefectSpec struct {
	Kind        DefectKind
	Target      string //species removed/replaced, or inserted for interstitials
	Replacement string //substitution only
	Count       int
	Fraction    float64
	Seed        int64
}

//minInterstitialSep is the closest (Angstrom) a new interstitial may sit to
//another freshly inserted one. Coincident or nearly-coincident candidates
//are degenerate leftovers of the vertex search and get skipped.
const minInterstitialSep = 0.5

//ApplyDefect returns a copy of S with the defect applied. S itself is never
//modified.
func ApplyDefect(S *Structure, spec *DefectSpec) (*Structure, error) {
	if S == nil || spec == nil {
		panic(ErrNilStructure)
	}
	switch spec.Kind {
	case Vacancy, Substitution:
		return applySelection(S, spec)
	case Interstitial:
		return applyInterstitial(S, spec)
	}
	return nil, NewError(ErrInvalidParameter, "unknown defect kind %d", int(spec.Kind))
}

//resolveCount turns the count-or-fraction quantity into an absolute count
//against the given population.
func resolveCount(spec *DefectSpec, population int) (int, error) {
	if spec.Fraction != 0 {
		if spec.Count != 0 {
			return 0, NewError(ErrInvalidParameter, "give either a count or a fraction, not both")
		}
		if spec.Fraction < 0 || spec.Fraction > 1 {
			return 0, NewError(ErrInvalidParameter, "fraction %g outside (0,1]", spec.Fraction)
		}
		c := int(math.Round(spec.Fraction * float64(population)))
		if c < 1 && population > 0 {
			c = 1
		}
		return c, nil
	}
	if spec.Count < 1 {
		return 0, NewError(ErrInvalidParameter, "defect count must be >= 1, got %d", spec.Count)
	}
	return spec.Count, nil
}

//selectIndexes picks count elements from idx: the first count in order when
//seed < 0, or the first count of a seeded pseudo-random permutation
//otherwise. Repeated calls with the same seed give the same selection
//bit for bit.
func selectIndexes(idx []int, count int, seed int64) []int {
	if seed < 0 {
		return idx[:count]
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(idx))
	sel := make([]int, count)
	for i := 0; i < count; i++ {
		sel[i] = idx[perm[i]]
	}
	return sel
}

func applySelection(S *Structure, spec *DefectSpec) (*Structure, error) {
	if spec.Kind == Substitution {
		if spec.Replacement == "" {
			return nil, NewError(ErrSpeciesRequired, "substitution needs a replacement species")
		}
		if !KnownSymbol(spec.Replacement) {
			return nil, NewError(ErrInvalidParameter, "unknown element symbol %q", spec.Replacement)
		}
	}
	var idx []int
	for i, v := range S.Sites {
		if v.Symbol == spec.Target {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil, NewError(ErrUnknownSpecies, "%q", spec.Target)
	}
	count, err := resolveCount(spec, len(idx))
	if err != nil {
		return nil, errDecorate(err, "ApplyDefect")
	}
	if count > len(idx) {
		return nil, NewError(ErrInsufficientSites, "asked for %d of %q, structure has %d", count, spec.Target, len(idx))
	}
	selected := make(map[int]bool, count)
	for _, i := range selectIndexes(idx, count, spec.Seed) {
		selected[i] = true
	}
	n := S.Copy()
	if spec.Kind == Substitution {
		for i := range n.Sites {
			if selected[i] {
				n.Sites[i].Symbol = spec.Replacement
				n.Sites[i].Label = ""
			}
		}
		return n, nil
	}
	sites := make([]*Site, 0, n.Len()-count)
	for i, v := range n.Sites {
		if !selected[i] {
			sites = append(sites, v)
		}
	}
	n.Sites = sites
	return n, nil
}

func applyInterstitial(S *Structure, spec *DefectSpec) (*Structure, error) {
	if !KnownSymbol(spec.Target) {
		return nil, NewError(ErrInvalidParameter, "unknown element symbol %q", spec.Target)
	}
	if S.Cell == nil {
		return nil, NewError(ErrSingularLattice, "interstitial placement needs a periodic lattice")
	}
	if S.Len() == 0 {
		return nil, NewError(ErrNoCandidateSites, "empty structure")
	}
	count, err := resolveCount(spec, S.Len())
	if err != nil {
		return nil, errDecorate(err, "ApplyDefect")
	}
	frac, err := ToFractional(S)
	if err != nil {
		return nil, errDecorate(err, "ApplyDefect")
	}
	frac = frac.Normalize()
	pos := make([][3]float64, frac.Len())
	for i, v := range frac.Sites {
		pos[i] = v.Pos
	}
	verts, err := voro.Vertices(pos, frac.Cell.Dense, nil)
	if err != nil {
		return nil, errDecorate(err, "ApplyDefect")
	}
	//Candidates come ranked by descending distance to the nearest atom
	//(the most open voids first). Besides taking the top ones we refuse
	//candidates that crowd an already placed interstitial.
	var chosen []*voro.Vertex
	for _, v := range verts {
		if len(chosen) == count {
			break
		}
		if v.R < minInterstitialSep {
			continue
		}
		ok := true
		for _, w := range chosen {
			if minImageDist(v.Frac, w.Frac, frac.Cell) < minInterstitialSep {
				ok = false
				break
			}
		}
		if ok {
			chosen = append(chosen, v)
		}
	}
	if len(chosen) < count {
		return nil, NewError(ErrNoCandidateSites, "asked for %d interstitials, found %d usable Voronoi vertices", count, len(chosen))
	}
	for _, v := range chosen {
		frac.Sites = append(frac.Sites, NewSite(spec.Target, v.Frac[0], v.Frac[1], v.Frac[2]))
	}
	if S.Mode == Cartesian {
		out, err := ToCartesian(frac)
		if err != nil {
			return nil, errDecorate(err, "ApplyDefect")
		}
		return out, nil
	}
	return frac, nil
}

//minImageDist is the minimum-image cartesian distance between two
//fractional positions.
func minImageDist(a, b [3]float64, cell *Lattice) float64 {
	var d [3]float64
	for q := 0; q < 3; q++ {
		d[q] = a[q] - b[q]
		d[q] -= math.Round(d[q])
	}
	var c [3]float64
	for j := 0; j < 3; j++ {
		c[j] = d[0]*cell.At(0, j) + d[1]*cell.At(1, j) + d[2]*cell.At(2, j)
	}
	return math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
}
