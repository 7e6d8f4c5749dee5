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

// Package fonts loads the typefaces the renderer draws with.
//
// The reference document uses the Trebuchet MS family, which cannot be
// redistributed with this program.  Each face is therefore read from a
// TrueType file at run time; when a file is missing the renderer falls
// back to the matching standard Helvetica face, which changes metrics
// but keeps the output usable.
package fonts

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/font/truetype"

	"github.com/nicolasfredesfranco/CV-2/config"
	"github.com/nicolasfredesfranco/CV-2/layout"
)

// Set holds the three typeface variants used by the renderer.
type Set struct {
	regular font.Layouter
	bold    font.Layouter
	italic  font.Layouter
}

// Load builds the typeface set described by cfg.  Each face is read
// from a TrueType file in cfg.Dir; a missing or unreadable file logs a
// warning and substitutes the matching standard face.  An empty
// cfg.Dir selects the standard faces directly, without warnings.
// A nil logger discards the warnings.
func Load(cfg config.Fonts, logger *log.Logger) *Set {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Set{
		regular: loadFace(cfg.Dir, cfg.Regular, standard.Helvetica, logger),
		bold:    loadFace(cfg.Dir, cfg.Bold, standard.HelveticaBold, logger),
		italic:  loadFace(cfg.Dir, cfg.Italic, standard.HelveticaOblique, logger),
	}
}

// Standard returns a set built entirely from the standard faces.
func Standard() *Set {
	return Load(config.Fonts{}, nil)
}

// Face returns the typeface for a font style.
func (s *Set) Face(style layout.FontStyle) font.Layouter {
	switch style {
	case layout.Bold:
		return s.bold
	case layout.Italic:
		return s.italic
	default:
		return s.regular
	}
}

func loadFace(dir, name string, fallback standard.Font, logger *log.Logger) font.Layouter {
	if dir == "" {
		return fallback.New()
	}
	path := filepath.Join(dir, name)
	face, err := readFace(path)
	if err != nil {
		logger.Warn("falling back to a standard face",
			"font", path, "fallback", string(fallback), "err", err)
		return fallback.New()
	}
	return face
}

func readFace(path string) (font.Layouter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	face, err := truetype.NewSimple(info, nil)
	if err != nil {
		return nil, err
	}
	return face, nil
}
