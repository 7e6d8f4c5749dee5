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

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/action"
	"seehuhn.de/go/pdf/annotation"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/nicolasfredesfranco/CV-2/corrections"
	"github.com/nicolasfredesfranco/CV-2/layout"
)

// drawText runs the foreground pass in input order: copy, correct,
// transform, draw and annotate each element.  Elements the pass cannot
// draw are skipped with a warning; one bad record must not take down
// the whole page.
func (r *Renderer) drawText(page *document.Page, elements []layout.TextElement) {
	drawn, linked := 0, 0
	for i, e := range elements {
		if reason := skipReason(e); reason != "" {
			r.log.Warn("skipping text element", "index", i, "reason", reason)
			continue
		}

		p := corrections.NewPlacement(e)
		r.pipe.Apply(&p)
		y := r.tr.Y(p.Y)
		fill := color.DeviceRGB(e.Color.R, e.Color.G, e.Color.B)

		page.SetFillColor(fill)
		if p.Stroke > 0 {
			// Weight simulation strokes the outline in the fill
			// color, thickening the glyph without fringes.
			page.SetStrokeColor(fill)
			page.SetLineWidth(p.Stroke)
		}

		page.TextBegin()
		page.TextSetFont(r.fonts.Face(e.Font), p.Size)
		if p.Stroke > 0 {
			page.TextSetRenderingMode(graphics.TextRenderingModeFillStroke)
		} else {
			page.TextSetRenderingMode(graphics.TextRenderingModeFill)
		}
		page.TextFirstLine(p.X, y)
		gg := page.TextLayout(nil, p.Text)
		if gg == nil {
			page.TextEnd()
			r.log.Warn("skipping text element",
				"index", i, "reason", "text cannot be laid out")
			continue
		}
		width := gg.TotalWidth()
		page.TextShowGlyphs(gg)
		page.TextEnd()
		drawn++

		// Link regions are computed from the corrected placement, so
		// they cover the text exactly as drawn.
		if url, ok := r.links.Resolve(p.Text, e.Y); ok {
			if err := r.addLink(page, url, p.X, y, width, p.Size); err != nil {
				r.log.Warn("skipping link annotation",
					"index", i, "url", url, "err", err)
				continue
			}
			linked++
		}
	}
	r.log.Debug("text pass complete",
		"drawn", drawn, "links", linked, "skipped", len(elements)-drawn)
}

// addLink attaches an invisible URI link annotation covering one drawn
// text run.  x and y are the text origin in PDF user space.
func (r *Renderer) addLink(page *document.Page, url string, x, y, width, size float64) error {
	act, err := (&action.URI{URI: url}).Encode(page.RM)
	if err != nil {
		return err
	}
	pad := r.cfg.Links.Padding
	page.Page.Annots = append(page.Page.Annots, &annotation.Link{
		Common: annotation.Common{
			Rect: pdf.Rectangle{LLx: x, LLy: y - pad, URx: x + width, URy: y + size},
		},
		Action: act,
		Border: &annotation.BorderStyle{Width: 0},
	})
	return nil
}

// skipReason classifies elements the draw pass cannot handle.  The
// loader rejects all of these already; the checks keep hand-built
// documents from corrupting the content stream.
func skipReason(e layout.TextElement) string {
	switch {
	case e.Text == "":
		return "empty text"
	case !isFinite(e.X) || !isFinite(e.Y):
		return "non-finite position"
	case !isFinite(e.Size) || e.Size < 0:
		return "invalid size"
	}
	return ""
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
