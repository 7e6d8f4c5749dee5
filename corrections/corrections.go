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

// Package corrections adjusts text placement at draw time.
//
// The extracted geometry reproduces the reference document almost, but
// not quite: bullet glyphs are lost entirely, the right-aligned date
// column sits a fraction of a point too far right, and the extracted
// faces render a touch lighter than the original.  The corrections in
// this package patch each of these as the text is drawn, leaving the
// loaded document untouched.
package corrections

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nicolasfredesfranco/CV-2/config"
	"github.com/nicolasfredesfranco/CV-2/layout"
)

// Placement is the mutable draw-time copy of one text element.  The
// renderer fills one in per element, runs the pipeline over it, and
// draws the result.
type Placement struct {
	Text   string  // content to draw, possibly with an injected prefix
	X      float64 // left edge, top-down space
	Y      float64 // baseline, top-down space
	Size   float64 // font size in points
	Bold   bool    // style hint from the source record
	Italic bool    // style hint from the source record
	Stroke float64 // outline width for weight simulation, 0 fills only
}

// NewPlacement copies the correction-relevant fields of e.
func NewPlacement(e layout.TextElement) Placement {
	return Placement{
		Text:   e.Text,
		X:      e.X,
		Y:      e.Y,
		Size:   e.Size,
		Bold:   e.Bold,
		Italic: e.Italic,
	}
}

// Rule is one named draw-time correction.  The rule set is closed;
// FromConfig assembles the rules defined in this package.
type Rule interface {
	// Name identifies the rule in logs.
	Name() string

	// Applies reports whether the rule fires for p.
	Applies(p *Placement) bool

	// Apply mutates p.  It is only called when Applies reports true.
	Apply(p *Placement)

	isRule()
}

// BulletRule injects the bullet glyphs the extraction loses.  A
// placement is treated as a list item if it sits in the list column,
// is neither bold nor italic, and starts with an upper-case word of
// meaningful length.
type BulletRule struct {
	MinX   float64 // exclusive left bound of the list column
	MaxX   float64 // exclusive right bound of the list column
	Indent float64 // leftward shift making room for the bullet
}

func (BulletRule) Name() string { return "bullet" }
func (BulletRule) isRule()      {}

func (r BulletRule) Applies(p *Placement) bool {
	if p.Bold || p.Italic {
		return false
	}
	if p.X <= r.MinX || p.X >= r.MaxX {
		return false
	}
	trimmed := strings.TrimSpace(p.Text)
	if utf8.RuneCountInString(trimmed) <= minBulletRunes {
		return false
	}
	first, _ := utf8.DecodeRuneInString(trimmed)
	return unicode.IsUpper(first)
}

func (r BulletRule) Apply(p *Placement) {
	p.Text = bulletPrefix + p.Text
	p.X -= r.Indent
}

// DateRule nudges the right-aligned date column left.  The extraction
// measures those runs from a slightly different origin than the
// reference document, which shows up as a constant offset.
type DateRule struct {
	MinX  float64 // only elements right of this move
	MaxY  float64 // elements with top-down y at or beyond this stay put
	Delta float64 // leftward shift in points
}

func (DateRule) Name() string { return "date" }
func (DateRule) isRule()      {}

func (r DateRule) Applies(p *Placement) bool {
	return p.X > r.MinX && p.Y < r.MaxY
}

func (r DateRule) Apply(p *Placement) {
	p.X -= r.Delta
}

// WeightRule simulates the heavier ink of the reference document by
// stroking each glyph outline on top of the fill.  Headings get a
// visible outline; body text gets a hairline that just thickens the
// stems.
type WeightRule struct {
	HeadingMinSize float64  // headings are larger than this...
	HeadingMaxX    float64  // ...and start left of this
	Headings       []string // texts that are headings wherever they sit
	HeadingStroke  float64  // outline width for headings
	BodyStroke     float64  // outline width for everything else
}

func (WeightRule) Name() string { return "weight" }
func (WeightRule) isRule()      {}

// Applies always reports true: every placement gets a stroke width,
// the class only decides which one.
func (WeightRule) Applies(*Placement) bool { return true }

func (r WeightRule) Apply(p *Placement) {
	if r.isHeading(p) {
		p.Stroke = r.HeadingStroke
	} else {
		p.Stroke = r.BodyStroke
	}
}

func (r WeightRule) isHeading(p *Placement) bool {
	if p.Size > r.HeadingMinSize && p.X < r.HeadingMaxX {
		return true
	}
	return slices.Contains(r.Headings, strings.TrimSpace(p.Text))
}

// Pipeline applies an ordered list of rules.
type Pipeline struct {
	rules []Rule
}

// NewPipeline returns a pipeline running the given rules in order.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: rules}
}

// FromConfig assembles the standard pipeline: bullet injection, then
// the date nudge, then weight simulation.  Disabled rules are left
// out.
func FromConfig(cfg config.Text) *Pipeline {
	var rules []Rule
	if cfg.Bullet.Enabled {
		rules = append(rules, BulletRule{
			MinX:   cfg.Bullet.MinX,
			MaxX:   cfg.Bullet.MaxX,
			Indent: cfg.Bullet.Indent,
		})
	}
	if cfg.Date.Enabled {
		rules = append(rules, DateRule{
			MinX:  cfg.Date.MinX,
			MaxY:  cfg.Date.MaxY,
			Delta: cfg.Date.Delta,
		})
	}
	if cfg.Weight.Enabled {
		rules = append(rules, WeightRule{
			HeadingMinSize: cfg.Weight.HeadingMinSize,
			HeadingMaxX:    cfg.Weight.HeadingMaxX,
			Headings:       cfg.Weight.Headings,
			HeadingStroke:  cfg.Weight.HeadingStroke,
			BodyStroke:     cfg.Weight.BodyStroke,
		})
	}
	return NewPipeline(rules...)
}

// Apply runs every rule whose predicate matches, in pipeline order.
func (p *Pipeline) Apply(pl *Placement) {
	for _, r := range p.rules {
		if r.Applies(pl) {
			r.Apply(pl)
		}
	}
}

// Names returns the names of the active rules in pipeline order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.rules))
	for i, r := range p.rules {
		names[i] = r.Name()
	}
	return names
}

// bulletPrefix is prepended to recognized list items.
const bulletPrefix = "• "

// minBulletRunes is the length threshold below which a run cannot be a
// list item.  It keeps single words and stray fragments unbulleted.
const minBulletRunes = 3
