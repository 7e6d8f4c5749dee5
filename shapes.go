// CV-2 - render a fixed-layout CV to PDF from declarative geometry
// Copyright (C) 2026  Nicolás Fredes Franco
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cv

import (
	"math"

	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/extgstate"

	"github.com/nicolasfredesfranco/CV-2/layout"
)

// drawShapes runs the background pass.  The extraction reports every
// filled figure on the page, including artifacts of the original
// export; only rectangles matching the configured target color are the
// section bars worth reproducing, everything else is dropped.
func (r *Renderer) drawShapes(page *document.Page, shapes []layout.Shape) {
	drawn := 0
	for i, s := range shapes {
		if s.Type != layout.ShapeRect {
			r.log.Debug("skipping unsupported shape",
				"index", i, "type", string(s.Type))
			continue
		}
		if !withinTolerance(s.Color, r.cfg.Shapes.Target, r.cfg.Shapes.Tolerance) {
			continue
		}

		q := s.Rect
		if r.cfg.Shapes.NormalizeHeight {
			q = normalizeHeight(q, r.cfg.Shapes.BarHeight)
		}
		x, y, w, h := r.tr.Rect(q.X0, q.Y0, q.X1, q.Y1)

		translucent := s.FillOpacity != nil && *s.FillOpacity < 1
		if translucent {
			page.PushGraphicsState()
			page.SetExtGState(&extgstate.ExtGState{
				Set:       graphics.StateFillAlpha,
				FillAlpha: *s.FillOpacity,
				SingleUse: true,
			})
		}
		page.SetFillColor(color.DeviceRGB(s.Color.R, s.Color.G, s.Color.B))
		page.Rectangle(x, y, w, h)
		page.Fill()
		if translucent {
			page.PopGraphicsState()
		}
		drawn++
	}
	r.log.Debug("shape pass complete",
		"drawn", drawn, "skipped", len(shapes)-drawn)
}

// withinTolerance reports whether every channel of c is strictly
// closer than tol to the corresponding channel of target.
func withinTolerance(c, target layout.RGB, tol float64) bool {
	return math.Abs(c.R-target.R) < tol &&
		math.Abs(c.G-target.G) < tol &&
		math.Abs(c.B-target.B) < tol
}

// normalizeHeight recenters q vertically on its own midpoint with the
// canonical bar height.  Extractions of scaled exports report bars
// with slightly varying heights; this evens them out.
func normalizeHeight(q layout.Quad, h float64) layout.Quad {
	mid := (q.Y0 + q.Y1) / 2
	q.Y0 = mid - h/2
	q.Y1 = mid + h/2
	return q
}
