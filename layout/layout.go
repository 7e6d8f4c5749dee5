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

// Package layout defines the declarative page description consumed by
// the renderer and loads it from the extracted JSON files.
//
// All coordinates are in PDF points with the origin at the top-left
// corner of the page and y growing downwards, the convention of the
// extraction tooling.  The renderer flips them into PDF user space.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// FontStyle selects one of the typeface variants registered with the
// renderer.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
	Italic
)

// String returns the conventional name of the style.
func (s FontStyle) String() string {
	switch s {
	case Bold:
		return "Bold"
	case Italic:
		return "Italic"
	default:
		return "Regular"
	}
}

// ParseFontStyle derives the style from a font name such as
// "TrebuchetMS-Bold".  Names without a recognized style marker map to
// Regular.
func ParseFontStyle(name string) FontStyle {
	switch {
	case strings.Contains(name, "Bold"):
		return Bold
	case strings.Contains(name, "Italic"), strings.Contains(name, "Oblique"):
		return Italic
	default:
		return Regular
	}
}

// RGB is a color with normalized channels in the range [0, 1].
// The zero value is black.
type RGB struct {
	R, G, B float64
}

// RGBFromInt decodes a packed 0xRRGGBB integer into normalized
// channels.
func RGBFromInt(v int64) RGB {
	return RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// UnmarshalText decodes a "#rrggbb" hex string.  This is the form
// colors take in TOML configuration files.
func (c *RGB) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	if len(s) != 6 {
		return fmt.Errorf("color %q: expected #rrggbb", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", text, err)
	}
	*c = RGBFromInt(int64(v))
	return nil
}

// TextElement is one absolutely positioned run of text.
type TextElement struct {
	Text   string    // content as extracted, drawn in a single line
	X      float64   // left edge of the first glyph
	Y      float64   // baseline, top-down
	Font   FontStyle // typeface variant to draw with
	Size   float64   // font size in points
	Color  RGB       // fill color
	Bold   bool      // style hint, also feeds correction predicates
	Italic bool      // style hint, also feeds correction predicates
}

// ShapeType identifies the geometry of a Shape.
type ShapeType string

// ShapeRect is the only shape type the renderer draws.  Records with
// other types load without error and are skipped at draw time.
const ShapeRect ShapeType = "rect"

// Quad is a top-down bounding box with X0 <= X1 and Y0 <= Y1.
type Quad struct {
	X0, Y0 float64 // top-left corner
	X1, Y1 float64 // bottom-right corner
}

// Width returns the horizontal extent of the box.
func (q Quad) Width() float64 { return q.X1 - q.X0 }

// Height returns the vertical extent of the box.
func (q Quad) Height() float64 { return q.Y1 - q.Y0 }

// Shape is one filled figure, drawn behind all text.
type Shape struct {
	Type        ShapeType
	Rect        Quad
	Color       RGB
	FillOpacity *float64 // nil means fully opaque
}

// Document is a fully loaded and validated input set.
type Document struct {
	Elements []TextElement
	Shapes   []Shape
}
