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

// Package links maps drawn text to hyperlink targets.
//
// The reference document shows the same user handle twice, once for
// GitHub and once for LinkedIn, so substring matching alone cannot
// tell the two apart.  Split rules resolve such collisions by the
// vertical position of the text on the page.
package links

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nicolasfredesfranco/CV-2/layout"
)

// Rule maps text content to a link target.  A fixed rule carries URL; a
// split rule carries BelowURL and AboveURL instead and chooses between
// them by the element's top-down y coordinate.
type Rule struct {
	// Contains is the substring that selects this rule.  Matching is
	// case-sensitive and runs against the trimmed element text.
	Contains string `toml:"contains"`

	// Excludes vetoes the rule when present in the text.
	Excludes string `toml:"excludes"`

	// URL is the fixed target of a non-split rule.
	URL string `toml:"url"`

	// BelowURL is chosen when the element's y is less than SplitY,
	// i.e. when the text sits above the boundary on the page.
	BelowURL string `toml:"below_url"`

	// AboveURL is chosen for elements at or beyond SplitY.
	AboveURL string `toml:"above_url"`

	// SplitY is the top-down boundary between the two targets.
	SplitY float64 `toml:"split_y"`
}

// Validate reports structural problems with the rule.
func (r Rule) Validate() error {
	if r.Contains == "" {
		return errors.New("missing contains substring")
	}
	if r.isSplit() {
		switch {
		case r.URL != "":
			return errors.New("split rule cannot also carry a fixed url")
		case r.BelowURL == "" || r.AboveURL == "":
			return errors.New("split rule needs both below_url and above_url")
		case !(r.SplitY > 0):
			return errors.New("split rule needs a positive split_y")
		}
		return nil
	}
	if r.URL == "" {
		return errors.New("rule needs a url or a below_url/above_url pair")
	}
	return nil
}

func (r Rule) isSplit() bool {
	return r.BelowURL != "" || r.AboveURL != "" || r.SplitY != 0
}

func (r Rule) matches(trimmed string) bool {
	if r.Contains == "" || !strings.Contains(trimmed, r.Contains) {
		return false
	}
	if r.Excludes != "" && strings.Contains(trimmed, r.Excludes) {
		return false
	}
	return true
}

// Resolver answers link lookups against an ordered rule table.
type Resolver struct {
	rules []Rule
}

// NewResolver returns a Resolver over a copy of rules.  Rule order is
// significant: the first match wins.
func NewResolver(rules []Rule) *Resolver {
	return &Resolver{rules: slices.Clone(rules)}
}

// Resolve returns the link target for a drawn text run, or false if no
// rule matches.  originalY is the element's top-down y coordinate
// before any transformation; split rules compare against it.
func (r *Resolver) Resolve(text string, originalY float64) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	for _, rule := range r.rules {
		if !rule.matches(trimmed) {
			continue
		}
		if rule.isSplit() {
			if originalY < rule.SplitY {
				return rule.BelowURL, true
			}
			return rule.AboveURL, true
		}
		return rule.URL, true
	}
	return "", false
}

// CheckSplit verifies that the split rules can disambiguate the given
// elements.  For every split rule that matches two or more elements,
// the matching y coordinates must fall on both sides of the boundary;
// if they all land on one side, two different targets would silently
// collapse into one, so this is an error.  Call it once after loading,
// before any rendering starts.
func (r *Resolver) CheckSplit(elements []layout.TextElement) error {
	for _, rule := range r.rules {
		if !rule.isSplit() {
			continue
		}
		var below, above int
		for _, e := range elements {
			if !rule.matches(strings.TrimSpace(e.Text)) {
				continue
			}
			if e.Y < rule.SplitY {
				below++
			} else {
				above++
			}
		}
		if below+above >= 2 && (below == 0 || above == 0) {
			return fmt.Errorf("links: rule %q: %d matching elements all on one side of y=%g",
				rule.Contains, below+above, rule.SplitY)
		}
	}
	return nil
}
