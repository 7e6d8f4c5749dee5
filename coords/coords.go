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

// Package coords converts between the top-down coordinate space of the
// extracted layout data and PDF user space, which has its origin at the
// bottom-left corner of the page.
package coords

import "fmt"

// Transformer maps top-down coordinates to PDF user space.  The zero
// value is not usable; construct one with New.  Transformers are
// immutable and safe for concurrent use.
type Transformer struct {
	// PageHeight is the page height in PDF points.
	PageHeight float64

	// Offset is subtracted from every transformed coordinate.  It
	// compensates for a constant bias in the extraction tooling:
	// positive values move content down the page, negative values
	// move it up.  The reference data needs -32.
	Offset float64
}

// New returns a Transformer for a page of the given height.
func New(pageHeight, offset float64) (Transformer, error) {
	if !(pageHeight > 0) {
		return Transformer{}, fmt.Errorf("coords: page height must be positive, got %g", pageHeight)
	}
	return Transformer{PageHeight: pageHeight, Offset: offset}, nil
}

// Y maps a top-down y coordinate to PDF user space.
func (t Transformer) Y(y float64) float64 {
	return t.PageHeight - y - t.Offset
}

// Rect maps the top-down box (x0, y0)-(x1, y1) to the origin and size
// of the equivalent PDF rectangle.  The returned y is the transformed
// bottom edge, so width and height are always non-negative for boxes
// with ordered corners.
func (t Transformer) Rect(x0, y0, x1, y1 float64) (x, y, width, height float64) {
	return x0, t.Y(y1), x1 - x0, y1 - y0
}
