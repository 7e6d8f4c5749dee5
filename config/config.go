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

// Package config holds the rendering parameters: page geometry, the
// shape color filter, the text correction thresholds, the hyperlink
// table and the typeface files.
//
// Default returns the tuning for the reference document.  A TOML file
// loaded with Load overlays individual values on top of the defaults,
// so a configuration file only needs to name what it changes.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nicolasfredesfranco/CV-2/layout"
	"github.com/nicolasfredesfranco/CV-2/links"
)

// Config collects every tunable of the renderer.  Configs are passed
// by value; the renderer keeps its own copy.
type Config struct {
	Page   Page   `toml:"page"`
	Output Output `toml:"output"`
	Shapes Shapes `toml:"shapes"`
	Text   Text   `toml:"text"`
	Links  Links  `toml:"links"`
	Fonts  Fonts  `toml:"fonts"`
}

// Page describes the output page and the coordinate transform.
type Page struct {
	// Width and Height are the page dimensions in PDF points.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// YOffset is subtracted from every transformed y coordinate.
	// Negative values move content up the page.
	YOffset float64 `toml:"y_offset"`
}

// Output describes the output file and its document metadata.
type Output struct {
	// Path is the default output file name.
	Path string `toml:"path"`

	// Title, Author and Creator fill the PDF document information
	// dictionary.  Empty strings are omitted from the output.
	Title   string `toml:"title"`
	Author  string `toml:"author"`
	Creator string `toml:"creator"`
}

// Shapes controls the background pass.
type Shapes struct {
	// Target is the color of the section bars in the reference
	// document.  Only shapes close to it are drawn.
	Target layout.RGB `toml:"target_color"`

	// Tolerance is the strict per-channel bound on the distance from
	// Target.
	Tolerance float64 `toml:"tolerance"`

	// NormalizeHeight recenters every drawn bar on its own vertical
	// midpoint with height BarHeight.  Off by default: the extracted
	// heights already match the reference.
	NormalizeHeight bool    `toml:"normalize_bar_height"`
	BarHeight       float64 `toml:"bar_height"`
}

// Text bundles the draw-time correction settings.
type Text struct {
	Bullet Bullet `toml:"bullet"`
	Date   Date   `toml:"date"`
	Weight Weight `toml:"weight"`
}

// Bullet controls bullet glyph injection.  The extraction loses the
// bullet glyphs of the reference document; elements that look like
// list items get them back at draw time.
type Bullet struct {
	Enabled bool `toml:"enabled"`

	// MinX and MaxX bound the list item column, exclusively.
	MinX float64 `toml:"min_x"`
	MaxX float64 `toml:"max_x"`

	// Indent is how far the injected bullet shifts the text left.
	Indent float64 `toml:"indent"`
}

// Date controls the horizontal nudge of the right-aligned date column.
type Date struct {
	Enabled bool `toml:"enabled"`

	// MinX bounds the date column: only elements right of it move.
	MinX float64 `toml:"min_x"`

	// MaxY exempts the page footer; elements with top-down y at or
	// beyond it stay put.
	MaxY float64 `toml:"max_y"`

	// Delta is the leftward shift in points.
	Delta float64 `toml:"delta"`
}

// Weight controls stroke-based font weight simulation.  The reference
// document uses slightly heavier faces than the extraction reports;
// stroking each glyph outline on top of the fill closes the gap.
type Weight struct {
	Enabled bool `toml:"enabled"`

	// Headings get the stronger stroke.  An element is a heading if
	// it is larger than HeadingMinSize and starts left of HeadingMaxX,
	// or if its trimmed text appears in Headings.
	HeadingMinSize float64  `toml:"heading_min_size"`
	HeadingMaxX    float64  `toml:"heading_max_x"`
	Headings       []string `toml:"headings"`

	// HeadingStroke and BodyStroke are outline widths in points.
	HeadingStroke float64 `toml:"heading_stroke"`
	BodyStroke    float64 `toml:"body_stroke"`
}

// Links configures hyperlink annotations.
type Links struct {
	// Padding extends each link rectangle below the text baseline.
	Padding float64 `toml:"padding"`

	// Rules is the ordered link table.  A table in a configuration
	// file replaces the default rules entirely.
	Rules []links.Rule `toml:"rules"`
}

// Fonts names the TrueType files for the three typeface variants.  An
// empty Dir selects the built-in standard faces.
type Fonts struct {
	Dir     string `toml:"dir"`
	Regular string `toml:"regular"`
	Bold    string `toml:"bold"`
	Italic  string `toml:"italic"`
}

// Default returns the tuning that reproduces the reference document.
func Default() Config {
	return Config{
		Page: Page{
			Width:  defaultPageWidth,
			Height: defaultPageHeight,
		},
		Output: Output{
			Path:    "Nicolas_Fredes_CV.pdf",
			Title:   "Nicolás Fredes Franco - Curriculum Vitae",
			Author:  "Nicolás Fredes Franco",
			Creator: "cvgen",
		},
		Shapes: Shapes{
			Target:    layout.RGBFromInt(0x2d73b3),
			Tolerance: 0.2,
			BarHeight: 24,
		},
		Text: Text{
			Bullet: Bullet{Enabled: true, MinX: 215, MaxX: 250, Indent: 6},
			Date:   Date{Enabled: true, MinX: 380, MaxY: 750, Delta: 1.5},
			Weight: Weight{
				Enabled:        true,
				HeadingMinSize: 11,
				HeadingMaxX:    200,
				Headings:       []string{"JOBSITY", "DEUNA", "SPOT"},
				HeadingStroke:  0.3,
				BodyStroke:     0.05,
			},
		},
		Links: Links{
			Padding: 2,
			Rules: []links.Rule{
				{
					Contains: "nico.fredes.franco@gmail.com",
					URL:      "mailto:nico.fredes.franco@gmail.com",
				},
				{
					Contains: "DOI: 10.1109",
					URL:      "https://doi.org/10.1109/ACCESS.2021.3094723",
				},
				{
					Contains: "nicofredesfranc",
					Excludes: "nicolasfredesfranco",
					URL:      "https://twitter.com/NicoFredesFranc",
				},
				{
					Contains: "nicolasfredesfranco",
					SplitY:   150,
					BelowURL: "https://github.com/nicolasfredesfranco",
					AboveURL: "http://www.linkedin.com/in/nicolasfredesfranco",
				},
			},
		},
		Fonts: Fonts{
			Regular: "trebuc.ttf",
			Bold:    "trebucbd.ttf",
			Italic:  "trebucit.ttf",
		},
	}
}

// Load returns the default configuration overlaid with the TOML file
// at path.  The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if !(c.Page.Width > 0) || !(c.Page.Height > 0) {
		return fmt.Errorf("config: page size must be positive, got %gx%g",
			c.Page.Width, c.Page.Height)
	}
	if c.Shapes.Tolerance <= 0 || c.Shapes.Tolerance > 1 {
		return fmt.Errorf("config: shape tolerance must be in (0, 1], got %g",
			c.Shapes.Tolerance)
	}
	for _, ch := range []float64{c.Shapes.Target.R, c.Shapes.Target.G, c.Shapes.Target.B} {
		if ch < 0 || ch > 1 {
			return fmt.Errorf("config: target color channel out of range [0, 1]: %g", ch)
		}
	}
	if c.Shapes.NormalizeHeight && !(c.Shapes.BarHeight > 0) {
		return fmt.Errorf("config: bar height must be positive, got %g",
			c.Shapes.BarHeight)
	}
	if c.Text.Bullet.Enabled && !(c.Text.Bullet.MinX < c.Text.Bullet.MaxX) {
		return fmt.Errorf("config: bullet column bounds out of order: %g >= %g",
			c.Text.Bullet.MinX, c.Text.Bullet.MaxX)
	}
	if c.Text.Weight.HeadingStroke < 0 || c.Text.Weight.BodyStroke < 0 {
		return fmt.Errorf("config: stroke widths must not be negative, got %g and %g",
			c.Text.Weight.HeadingStroke, c.Text.Weight.BodyStroke)
	}
	if c.Links.Padding < 0 {
		return fmt.Errorf("config: link padding must not be negative, got %g",
			c.Links.Padding)
	}
	for i, rule := range c.Links.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("config: links.rules[%d]: %w", i, err)
		}
	}
	if c.Fonts.Dir != "" {
		if c.Fonts.Regular == "" || c.Fonts.Bold == "" || c.Fonts.Italic == "" {
			return fmt.Errorf("config: fonts.dir is set but not all three face files are named")
		}
	}
	return nil
}

// Reference page geometry in PDF points.
const (
	defaultPageWidth  = 623.0
	defaultPageHeight = 806.0
)
