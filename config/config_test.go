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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nicolasfredesfranco/CV-2/layout"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadOverlay(t *testing.T) {
	overlay := `
[page]
y_offset = -32.0

[shapes]
target_color = "#336699"

[text.bullet]
indent = 8.5

[fonts]
dir = "fonts"
`
	path := writeConfig(t, overlay)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Named values are overridden.
	if cfg.Page.YOffset != -32 {
		t.Errorf("YOffset = %g, want -32", cfg.Page.YOffset)
	}
	if want := layout.RGBFromInt(0x336699); cfg.Shapes.Target != want {
		t.Errorf("Target = %v, want %v", cfg.Shapes.Target, want)
	}
	if cfg.Text.Bullet.Indent != 8.5 {
		t.Errorf("Indent = %g, want 8.5", cfg.Text.Bullet.Indent)
	}
	if cfg.Fonts.Dir != "fonts" {
		t.Errorf("Dir = %q, want %q", cfg.Fonts.Dir, "fonts")
	}

	// Everything else keeps its default.
	want := Default()
	want.Page.YOffset = -32
	want.Shapes.Target = layout.RGBFromInt(0x336699)
	want.Text.Bullet.Indent = 8.5
	want.Fonts.Dir = "fonts"
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("overlay mismatch (-want +got):\n%s", d)
	}
}

// A rule table in the file replaces the default table entirely, it is
// not merged rule by rule.
func TestLoadReplacesRules(t *testing.T) {
	overlay := `
[[links.rules]]
contains = "example.com"
url = "https://example.com"
`
	cfg, err := Load(writeConfig(t, overlay))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Links.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(cfg.Links.Rules))
	}
	if cfg.Links.Rules[0].URL != "https://example.com" {
		t.Errorf("URL = %q", cfg.Links.Rules[0].URL)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		if _, err := Load(writeConfig(t, "[page\nwidth = 1")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[page]\nheight = -1.0"))
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "page size") {
			t.Errorf("error %q does not name the page size", err)
		}
	})

	t.Run("bad color literal", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[shapes]\ntarget_color = \"blue\""))
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Page.Width = 0 }, "page size"},
		{"negative height", func(c *Config) { c.Page.Height = -806 }, "page size"},
		{"zero tolerance", func(c *Config) { c.Shapes.Tolerance = 0 }, "tolerance"},
		{"tolerance above one", func(c *Config) { c.Shapes.Tolerance = 1.5 }, "tolerance"},
		{"target channel", func(c *Config) { c.Shapes.Target.G = 2 }, "channel"},
		{"normalize without height", func(c *Config) {
			c.Shapes.NormalizeHeight = true
			c.Shapes.BarHeight = 0
		}, "bar height"},
		{"bullet bounds", func(c *Config) { c.Text.Bullet.MinX = 300 }, "bullet column"},
		{"negative stroke", func(c *Config) { c.Text.Weight.BodyStroke = -1 }, "stroke"},
		{"negative padding", func(c *Config) { c.Links.Padding = -1 }, "padding"},
		{"bad rule", func(c *Config) { c.Links.Rules[0].Contains = "" }, "links.rules[0]"},
		{"fonts dir without files", func(c *Config) {
			c.Fonts.Dir = "fonts"
			c.Fonts.Bold = ""
		}, "face files"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error %q does not contain %q", err, c.wantErr)
			}
		})
	}

	// Disabled corrections are not validated.
	cfg := Default()
	cfg.Text.Bullet.Enabled = false
	cfg.Text.Bullet.MinX = 300
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled bullet rule still validated: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
