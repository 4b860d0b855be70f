/*
 * recipe.go, part of gocryst.
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

//Package recipe reads YAML descriptions of structure-generation jobs and
//runs them: build or fetch a base structure, expand it to a supercell,
//apply point defects in order, optionally write the result to a file.
//One recipe can hold several independent entries.
package recipe

import (
	"io"
	"os"

	cryst "github.com/gocryst/gocryst"
	"gopkg.in/yaml.v3"
)

//Defect is the YAML form of a cryst.DefectSpec. Kind is "vacancy",
//"substitution" or "interstitial". Seed left out of the YAML means
//no randomness (first matching sites in order); note that this differs
//from the zero value of cryst.DefectSpec, where Seed 0 is a seed.
type Defect struct {
	Kind        string  `yaml:"kind"`
	Target      string  `yaml:"target"`
	Replacement string  `yaml:"replacement,omitempty"`
	Count       int     `yaml:"count,omitempty"`
	Fraction    float64 `yaml:"fraction,omitempty"`
	Seed        *int64  `yaml:"seed,omitempty"`
}

//Spec translates the YAML form into a cryst.DefectSpec.
func (d *Defect) Spec() (*cryst.DefectSpec, error) {
	spec := &cryst.DefectSpec{
		Target:      d.Target,
		Replacement: d.Replacement,
		Count:       d.Count,
		Fraction:    d.Fraction,
		Seed:        -1,
	}
	if d.Seed != nil {
		spec.Seed = *d.Seed
	}
	switch d.Kind {
	case "vacancy":
		spec.Kind = cryst.Vacancy
	case "substitution":
		spec.Kind = cryst.Substitution
	case "interstitial":
		spec.Kind = cryst.Interstitial
	default:
		return nil, cryst.NewError(cryst.ErrInvalidParameter, "recipe: unknown defect kind %q", d.Kind)
	}
	return spec, nil
}

//Entry is one job: a base structure from either a lattice prototype
//(with cell parameters and species) or a formula resolved through a
//Fetcher, then an optional supercell expansion and a defect list. If
//Output is set, Build also writes the result there, format from the
//file name.
type Entry struct {
	Name      string    `yaml:"name,omitempty"`
	Prototype string    `yaml:"prototype,omitempty"`
	Formula   string    `yaml:"formula,omitempty"`
	A         float64   `yaml:"a,omitempty"`
	B         float64   `yaml:"b,omitempty"`
	C         float64   `yaml:"c,omitempty"`
	Alpha     float64   `yaml:"alpha,omitempty"`
	Beta      float64   `yaml:"beta,omitempty"`
	Gamma     float64   `yaml:"gamma,omitempty"`
	Species   []string  `yaml:"species,omitempty"`
	Supercell []int     `yaml:"supercell,omitempty"`
	Defects   []*Defect `yaml:"defects,omitempty"`
	Output    string    `yaml:"output,omitempty"`
}

//label is the key the entry's result goes under in Build's map.
func (e *Entry) label() string {
	if e.Name != "" {
		return e.Name
	}
	if e.Formula != "" {
		return e.Formula
	}
	return e.Prototype
}

//Build runs the entry. The fetcher may be nil if the entry builds from a
//prototype.
func (e *Entry) Build(f cryst.Fetcher) (*cryst.Structure, error) {
	var S *cryst.Structure
	var err error
	switch {
	case e.Prototype != "" && e.Formula != "":
		return nil, cryst.NewError(cryst.ErrInvalidParameter, "recipe: entry %q gives both a prototype and a formula", e.label())
	case e.Prototype != "":
		p := cryst.Params{A: e.A, B: e.B, C: e.C, Alpha: e.Alpha, Beta: e.Beta,
			Gamma: e.Gamma, Species: e.Species}
		S, err = cryst.Build(e.Prototype, p)
	case e.Formula != "":
		if f == nil {
			return nil, cryst.NewError(cryst.ErrInvalidParameter, "recipe: entry %q needs a fetcher", e.label())
		}
		S, err = f.StructureByFormula(e.Formula)
	default:
		return nil, cryst.NewError(cryst.ErrInvalidParameter, "recipe: entry gives neither a prototype nor a formula")
	}
	if err != nil {
		return nil, err
	}
	if e.Supercell != nil {
		if len(e.Supercell) != 3 {
			return nil, cryst.NewError(cryst.ErrInvalidSupercellSpec, "recipe: entry %q: supercell wants 3 multipliers, got %d", e.label(), len(e.Supercell))
		}
		S, err = cryst.Supercell(S, e.Supercell[0], e.Supercell[1], e.Supercell[2])
		if err != nil {
			return nil, err
		}
	}
	for _, d := range e.Defects {
		spec, err := d.Spec()
		if err != nil {
			return nil, err
		}
		S, err = cryst.ApplyDefect(S, spec)
		if err != nil {
			return nil, err
		}
	}
	if e.Output != "" {
		if err := cryst.FileWrite(e.Output, S); err != nil {
			return nil, err
		}
	}
	return S, nil
}

//Recipe is a list of entries to run.
type Recipe struct {
	Structures []*Entry `yaml:"structures"`
}

//Read parses a recipe from r. Unknown YAML keys are an error, so typos
//do not silently drop settings.
func Read(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	R := new(Recipe)
	if err := dec.Decode(R); err != nil {
		return nil, cryst.NewError(cryst.ErrMalformedFile, "recipe: %v", err)
	}
	if len(R.Structures) == 0 {
		return nil, cryst.NewError(cryst.ErrMalformedFile, "recipe: no structures")
	}
	return R, nil
}

//FileRead reads a recipe from the named YAML file.
func FileRead(name string) (*Recipe, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

//Build runs every entry and returns the results keyed by entry name
//(formula or prototype when no name is given). Duplicate keys are an
//error. It stops at the first entry that fails.
func (R *Recipe) Build(f cryst.Fetcher) (map[string]*cryst.Structure, error) {
	out := make(map[string]*cryst.Structure, len(R.Structures))
	for _, e := range R.Structures {
		key := e.label()
		if _, taken := out[key]; taken {
			return nil, cryst.NewError(cryst.ErrInvalidParameter, "recipe: two entries named %q", key)
		}
		S, err := e.Build(f)
		if err != nil {
			return nil, err
		}
		out[key] = S
	}
	return out, nil
}
