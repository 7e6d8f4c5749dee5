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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestParseFontStyle(t *testing.T) {
	cases := []struct {
		name string
		want FontStyle
	}{
		{"TrebuchetMS", Regular},
		{"TrebuchetMS-Bold", Bold},
		{"TrebuchetMS-Italic", Italic},
		{"Helvetica-Oblique", Italic},
		{"Bold", Bold},
		{"TimesNewRomanPSMT", Regular},
		{"", Regular},
	}
	for _, c := range cases {
		if got := ParseFontStyle(c.name); got != c.want {
			t.Errorf("ParseFontStyle(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRGBFromInt(t *testing.T) {
	cases := []struct {
		packed int64
		want   RGB
	}{
		{0, RGB{}},
		{0xffffff, RGB{R: 1, G: 1, B: 1}},
		{2978739, RGB{R: 45.0 / 255, G: 115.0 / 255, B: 179.0 / 255}}, // #2d73b3
	}
	for _, c := range cases {
		if got := RGBFromInt(c.packed); got != c.want {
			t.Errorf("RGBFromInt(%d) = %v, want %v", c.packed, got, c.want)
		}
	}
}

func TestRGBUnmarshalText(t *testing.T) {
	var c RGB
	if err := c.UnmarshalText([]byte("#2d73b3")); err != nil {
		t.Fatal(err)
	}
	want := RGBFromInt(0x2d73b3)
	if c != want {
		t.Errorf("got %v, want %v", c, want)
	}

	for _, bad := range []string{"", "#fff", "#2d73b", "#2d73bg", "2d73b3cc"} {
		var c RGB
		if err := c.UnmarshalText([]byte(bad)); err == nil {
			t.Errorf("UnmarshalText(%q): expected error", bad)
		}
	}
}

func TestParseElements(t *testing.T) {
	data := []byte(`[
		{"text": "nico.fredes.franco@gmail.com ", "x": 34.2, "y": 136.13,
		 "font": "TrebuchetMS", "size": 10.0, "color": 1070028,
		 "bold": false, "italic": false},
		{"text": "EDUCATION", "x": 80.05, "y": 187.74,
		 "font": "TrebuchetMS-Bold", "size": 12.0, "color": [1.0, 0.5, 0.0]},
		{"text": "minimal", "x": 1, "y": 2, "size": 3}
	]`)

	var buf bytes.Buffer
	elements, err := ParseElements(data, log.New(&buf))
	if err != nil {
		t.Fatal(err)
	}

	want := []TextElement{
		{
			Text:  "nico.fredes.franco@gmail.com ",
			X:     34.2,
			Y:     136.13,
			Font:  Regular,
			Size:  10,
			Color: RGBFromInt(1070028),
		},
		{
			Text:  "EDUCATION",
			X:     80.05,
			Y:     187.74,
			Font:  Bold,
			Size:  12,
			Color: RGB{R: 1, G: 0.5},
			Bold:  true,
		},
		{Text: "minimal", X: 1, Y: 2, Size: 3},
	}
	if d := cmp.Diff(want, elements); d != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", d)
	}

	// The record without a font must have produced a warning.
	if !strings.Contains(buf.String(), "no font") {
		t.Errorf("missing font warning not logged, got %q", buf.String())
	}
}

func TestParseElementsStyleFusion(t *testing.T) {
	cases := []struct {
		name       string
		record     string
		wantFont   FontStyle
		wantBold   bool
		wantItalic bool
	}{
		{
			name:     "name only",
			record:   `{"text": "t", "x": 1, "y": 2, "size": 3, "font": "TrebuchetMS-Bold"}`,
			wantFont: Bold, wantBold: true,
		},
		{
			name:     "flag contradicts name",
			record:   `{"text": "t", "x": 1, "y": 2, "size": 3, "font": "TrebuchetMS-Bold", "bold": false}`,
			wantFont: Bold, wantBold: false,
		},
		{
			name:     "flag promotes bare name",
			record:   `{"text": "t", "x": 1, "y": 2, "size": 3, "font": "TrebuchetMS", "bold": true}`,
			wantFont: Bold, wantBold: true,
		},
		{
			name:       "italic flag promotes",
			record:     `{"text": "t", "x": 1, "y": 2, "size": 3, "italic": true}`,
			wantFont:   Italic,
			wantItalic: true,
		},
		{
			name:     "bold beats italic",
			record:   `{"text": "t", "x": 1, "y": 2, "size": 3, "bold": true, "italic": true}`,
			wantFont: Bold, wantBold: true, wantItalic: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			elements, err := ParseElements([]byte("["+c.record+"]"), nil)
			if err != nil {
				t.Fatal(err)
			}
			e := elements[0]
			if e.Font != c.wantFont || e.Bold != c.wantBold || e.Italic != c.wantItalic {
				t.Errorf("got font=%v bold=%v italic=%v, want font=%v bold=%v italic=%v",
					e.Font, e.Bold, e.Italic, c.wantFont, c.wantBold, c.wantItalic)
			}
		})
	}
}

func TestParseElementsErrors(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"not an array", `{}`, "coordinates:"},
		{"empty array", `[]`, "no text elements"},
		{"missing text", `[{"x": 1, "y": 2, "size": 3}]`, `coordinates[0]: missing "text"`},
		{"missing y", `[{"text": "a", "x": 1, "size": 3}]`, `coordinates[0]: missing "y"`},
		{"wrong type", `[{"text": "a", "x": "b", "y": 2, "size": 3}]`, `coordinates[0]: field "x"`},
		{"negative size", `[{"text": "a", "x": 1, "y": 2, "size": -3}]`, `field "size"`},
		{"short color triple", `[{"text": "a", "x": 1, "y": 2, "size": 3, "color": [1, 0]}]`, "3 color channels"},
		{"channel out of range", `[{"text": "a", "x": 1, "y": 2, "size": 3, "color": [0, 0, 1.5]}]`, "channel 2"},
		{"negative packed color", `[{"text": "a", "x": 1, "y": 2, "size": 3, "color": -5}]`, "must not be negative"},
		{"second record", `[{"text": "a", "x": 1, "y": 2, "size": 3}, {"text": "b", "x": 1, "size": 3}]`, `coordinates[1]: missing "y"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseElements([]byte(c.data), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error %q does not contain %q", err, c.wantErr)
			}
		})
	}
}

func TestParseShapes(t *testing.T) {
	data := []byte(`[
		{"type": "rect", "rect": [24.0, 214.3, 196.9, 238.3],
		 "color": [0.176, 0.451, 0.702]},
		{"type": "rect", "rect": [0.0, 0.0, 623.0, 58.0],
		 "color": 15790320, "fill_opacity": 0.9},
		{"type": "curve", "rect": [1, 2, 3, 4], "color": 0}
	]`)

	shapes, err := ParseShapes(data)
	if err != nil {
		t.Fatal(err)
	}

	opacity := 0.9
	want := []Shape{
		{
			Type:  ShapeRect,
			Rect:  Quad{X0: 24, Y0: 214.3, X1: 196.9, Y1: 238.3},
			Color: RGB{R: 0.176, G: 0.451, B: 0.702},
		},
		{
			Type:        ShapeRect,
			Rect:        Quad{X1: 623, Y1: 58},
			Color:       RGBFromInt(15790320),
			FillOpacity: &opacity,
		},
		{
			Type: ShapeType("curve"),
			Rect: Quad{X0: 1, Y0: 2, X1: 3, Y1: 4},
		},
	}
	if d := cmp.Diff(want, shapes); d != "" {
		t.Errorf("shapes mismatch (-want +got):\n%s", d)
	}

	if got := shapes[0].Rect.Width(); got != 196.9-24 {
		t.Errorf("Width = %g, want %g", got, 196.9-24)
	}
}

func TestParseShapesErrors(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"missing type", `[{"rect": [1, 2, 3, 4], "color": 0}]`, `shapes[0]: missing "type"`},
		{"missing rect", `[{"type": "rect", "color": 0}]`, `missing "rect"`},
		{"missing color", `[{"type": "rect", "rect": [1, 2, 3, 4]}]`, `missing "color"`},
		{"short rect", `[{"type": "rect", "rect": [1, 2, 3], "color": 0}]`, "got 3 values"},
		{"corners out of order", `[{"type": "rect", "rect": [3, 2, 1, 4], "color": 0}]`, "corners out of order"},
		{"opacity out of range", `[{"type": "rect", "rect": [1, 2, 3, 4], "color": 0, "fill_opacity": 1.2}]`, `field "fill_opacity"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseShapes([]byte(c.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error %q does not contain %q", err, c.wantErr)
			}
		})
	}

	// Empty input is fine.
	shapes, err := ParseShapes([]byte(`[]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(shapes) != 0 {
		t.Errorf("got %d shapes, want 0", len(shapes))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	coordsPath := filepath.Join(dir, "coordinates.json")
	shapesPath := filepath.Join(dir, "shapes.json")

	coords := `[{"text": "a", "x": 1, "y": 2, "size": 3, "font": "TrebuchetMS"}]`
	if err := os.WriteFile(coordsPath, []byte(coords), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(shapesPath, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	doc, err := Load(coordsPath, shapesPath, log.New(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Elements) != 1 || len(doc.Shapes) != 0 {
		t.Errorf("got %d elements and %d shapes, want 1 and 0",
			len(doc.Elements), len(doc.Shapes))
	}
	if !strings.Contains(buf.String(), "no shapes") {
		t.Errorf("empty shape file warning not logged, got %q", buf.String())
	}

	if _, err := Load(filepath.Join(dir, "absent.json"), shapesPath, nil); err == nil {
		t.Error("expected error for a missing coordinates file")
	}
}
