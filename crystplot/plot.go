/*
 * plot.go, part of gocryst.
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

//Package crystplot draws quick 2D projections of structures, one scatter
//series per species. They are meant as sanity checks on generated
//structures (did the vacancies land where expected, do the interstitials
//sit in the voids), not as publication figures.
package crystplot

import (
	"fmt"

	cryst "github.com/gocryst/gocryst"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//axes maps a plane name to the two cartesian components it shows.
var axes = map[string][2]int{
	"xy": {0, 1},
	"xz": {0, 2},
	"yz": {1, 2},
}

var axisName = [3]string{"x (A)", "y (A)", "z (A)"}

//Projection plots the cartesian positions of S projected on the given
//plane ("xy", "xz" or "yz") and saves it to plotname.png. Each species
//gets its own color and legend entry.
func Projection(S *cryst.Structure, plane, title, plotname string) error {
	if S == nil {
		panic("Projection: nil structure")
	}
	ax, ok := axes[plane]
	if !ok {
		return cryst.NewError(cryst.ErrInvalidParameter, "plot: unknown plane %q, want xy, xz or yz", plane)
	}
	cart, err := cryst.ToCartesian(S)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = axisName[ax[0]]
	p.Y.Label.Text = axisName[ax[1]]
	p.Add(plotter.NewGrid())
	for key, sym := range cart.Species() {
		pts := make(plotter.XYs, 0, cart.Count(sym))
		for _, v := range cart.Sites {
			if v.Symbol != sym {
				continue
			}
			pts = append(pts, plotter.XY{X: v.Pos[ax[0]], Y: v.Pos[ax[1]]})
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = plotutil.Color(key)
		s.GlyphStyle.Shape = plotutil.Shape(key)
		p.Add(s)
		p.Legend.Add(sym, s)
	}
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(12*vg.Centimeter, 12*vg.Centimeter, filename)
}
