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

package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
)

// Load reads the two JSON input files and returns the validated
// document.  A document without text elements is an error; a document
// without shapes only logs a warning, since a page with no background
// is unusual but renderable.  A nil logger silences all warnings.
func Load(coordsPath, shapesPath string, logger *log.Logger) (*Document, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	coordsData, err := os.ReadFile(coordsPath)
	if err != nil {
		return nil, err
	}
	elements, err := ParseElements(coordsData, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", coordsPath, err)
	}

	shapesData, err := os.ReadFile(shapesPath)
	if err != nil {
		return nil, err
	}
	shapes, err := ParseShapes(shapesData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shapesPath, err)
	}
	if len(shapes) == 0 {
		logger.Warn("no shapes loaded, the page background will be empty",
			"file", shapesPath)
	}

	return &Document{Elements: elements, Shapes: shapes}, nil
}

// ParseElements decodes the text element array.  Every record must
// carry text, x, y and size; font, color and the style flags are
// optional.  An empty array is an error, since a document without text
// cannot be the extraction of a real page.
func ParseElements(data []byte, logger *log.Logger) ([]TextElement, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("coordinates: %w", err)
	}
	if len(raws) == 0 {
		return nil, errors.New("coordinates: no text elements")
	}

	elements := make([]TextElement, 0, len(raws))
	for i, raw := range raws {
		var rec rawElement
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, recordError("coordinates", i, err)
		}
		elem, err := rec.resolve(i, logger)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	return elements, nil
}

// ParseShapes decodes the shape array.  An empty array is allowed.
func ParseShapes(data []byte) ([]Shape, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("shapes: %w", err)
	}

	shapes := make([]Shape, 0, len(raws))
	for i, raw := range raws {
		var rec rawShape
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, recordError("shapes", i, err)
		}
		s, err := rec.resolve(i)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// rawElement mirrors one JSON record.  Pointer fields distinguish
// absent keys from zero values.
type rawElement struct {
	Text   *string         `json:"text"`
	X      *float64        `json:"x"`
	Y      *float64        `json:"y"`
	Font   *string         `json:"font"`
	Size   *float64        `json:"size"`
	Color  json.RawMessage `json:"color"`
	Bold   *bool           `json:"bold"`
	Italic *bool           `json:"italic"`
}

func (r rawElement) resolve(i int, logger *log.Logger) (TextElement, error) {
	switch {
	case r.Text == nil:
		return TextElement{}, missingField("coordinates", i, "text")
	case r.X == nil:
		return TextElement{}, missingField("coordinates", i, "x")
	case r.Y == nil:
		return TextElement{}, missingField("coordinates", i, "y")
	case r.Size == nil:
		return TextElement{}, missingField("coordinates", i, "size")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"x", *r.X}, {"y", *r.Y}, {"size", *r.Size}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return TextElement{}, fmt.Errorf(
				"coordinates[%d]: field %q: must be a non-negative finite number, got %g",
				i, f.name, f.v)
		}
	}

	var fontName string
	if r.Font != nil {
		fontName = *r.Font
	}
	if fontName == "" {
		logger.Warn("text element has no font, using the regular face",
			"index", i)
	}
	style := ParseFontStyle(fontName)

	// The extracted name and the explicit flags usually agree.  When
	// they do not, the name wins for face selection and the flags win
	// for the correction predicates; a bare name with an explicit flag
	// set is promoted, bold before italic.
	bold, italic := style == Bold, style == Italic
	if r.Bold != nil {
		bold = *r.Bold
	}
	if r.Italic != nil {
		italic = *r.Italic
	}
	if style == Regular {
		switch {
		case bold:
			style = Bold
		case italic:
			style = Italic
		}
	}

	var col RGB
	if len(r.Color) > 0 {
		c, err := decodeColor(r.Color)
		if err != nil {
			return TextElement{}, fmt.Errorf("coordinates[%d]: field %q: %w",
				i, "color", err)
		}
		col = c
	}

	return TextElement{
		Text:   *r.Text,
		X:      *r.X,
		Y:      *r.Y,
		Font:   style,
		Size:   *r.Size,
		Color:  col,
		Bold:   bold,
		Italic: italic,
	}, nil
}

// rawShape mirrors one JSON shape record.
type rawShape struct {
	Type        *string         `json:"type"`
	Rect        *[]float64      `json:"rect"`
	Color       json.RawMessage `json:"color"`
	FillOpacity *float64        `json:"fill_opacity"`
}

func (r rawShape) resolve(i int) (Shape, error) {
	switch {
	case r.Type == nil:
		return Shape{}, missingField("shapes", i, "type")
	case r.Rect == nil:
		return Shape{}, missingField("shapes", i, "rect")
	case len(r.Color) == 0:
		return Shape{}, missingField("shapes", i, "color")
	}

	rect := *r.Rect
	if len(rect) != 4 {
		return Shape{}, fmt.Errorf("shapes[%d]: field %q: expected [x0, y0, x1, y1], got %d values",
			i, "rect", len(rect))
	}
	q := Quad{X0: rect[0], Y0: rect[1], X1: rect[2], Y1: rect[3]}
	if q.X1 < q.X0 || q.Y1 < q.Y0 {
		return Shape{}, fmt.Errorf("shapes[%d]: field %q: corners out of order",
			i, "rect")
	}

	col, err := decodeColor(r.Color)
	if err != nil {
		return Shape{}, fmt.Errorf("shapes[%d]: field %q: %w", i, "color", err)
	}

	if r.FillOpacity != nil && (*r.FillOpacity < 0 || *r.FillOpacity > 1) {
		return Shape{}, fmt.Errorf("shapes[%d]: field %q: out of range [0, 1]: %g",
			i, "fill_opacity", *r.FillOpacity)
	}

	return Shape{
		Type:        ShapeType(*r.Type),
		Rect:        q,
		Color:       col,
		FillOpacity: r.FillOpacity,
	}, nil
}

// decodeColor accepts the two color encodings found in the wild: a
// packed 0xRRGGBB integer, and a normalized [r, g, b] triple.
func decodeColor(raw json.RawMessage) (RGB, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tri []float64
		if err := json.Unmarshal(trimmed, &tri); err != nil {
			return RGB{}, err
		}
		if len(tri) != 3 {
			return RGB{}, fmt.Errorf("expected 3 color channels, got %d", len(tri))
		}
		for ch, v := range tri {
			if v < 0 || v > 1 {
				return RGB{}, fmt.Errorf("channel %d out of range [0, 1]: %g", ch, v)
			}
		}
		return RGB{R: tri[0], G: tri[1], B: tri[2]}, nil
	}

	var packed int64
	if err := json.Unmarshal(trimmed, &packed); err != nil {
		return RGB{}, err
	}
	if packed < 0 {
		return RGB{}, fmt.Errorf("packed color must not be negative, got %d", packed)
	}
	return RGBFromInt(packed), nil
}

func missingField(file string, i int, name string) error {
	return fmt.Errorf("%s[%d]: missing %q", file, i, name)
}

// recordError rewraps a JSON decoding error so that it names the
// record index and, where the decoder knows it, the offending field.
func recordError(file string, i int, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Errorf("%s[%d]: field %q: %w", file, i, typeErr.Field, err)
	}
	return fmt.Errorf("%s[%d]: %w", file, i, err)
}
