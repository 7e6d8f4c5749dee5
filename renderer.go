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

// Package cv renders a declaratively described, absolutely positioned
// page of text and rectangles into a single-page PDF document.
//
// The input is a pair of JSON files extracted from a reference
// document: one lists text runs with top-down coordinates, typefaces
// and colors, the other lists filled rectangles.  Rendering runs a
// fixed sequence of passes: background shapes filtered by color, then
// text with draw-time precision corrections and hyperlink annotations.
// The output depends only on the input and the configuration, so
// rendering the same document twice produces identical bytes.
package cv

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"

	"github.com/nicolasfredesfranco/CV-2/config"
	"github.com/nicolasfredesfranco/CV-2/coords"
	"github.com/nicolasfredesfranco/CV-2/corrections"
	"github.com/nicolasfredesfranco/CV-2/fonts"
	"github.com/nicolasfredesfranco/CV-2/layout"
	"github.com/nicolasfredesfranco/CV-2/links"
)

// Renderer draws loaded documents into single-page PDF files.  A
// Renderer is immutable after construction and can be reused for any
// number of renders.
type Renderer struct {
	cfg   config.Config
	fonts *fonts.Set
	tr    coords.Transformer
	pipe  *corrections.Pipeline
	links *links.Resolver
	log   *log.Logger
}

// New validates cfg and assembles the rendering pipeline.  A nil font
// set selects the standard faces; a nil logger silences the renderer.
func New(cfg config.Config, set *fonts.Set, logger *log.Logger) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tr, err := coords.New(cfg.Page.Height, cfg.Page.YOffset)
	if err != nil {
		return nil, err
	}
	if set == nil {
		set = fonts.Standard()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	pipe := corrections.FromConfig(cfg.Text)
	logger.Debug("correction pipeline assembled", "rules", pipe.Names())

	return &Renderer{
		cfg:   cfg,
		fonts: set,
		tr:    tr,
		pipe:  pipe,
		links: links.NewResolver(cfg.Links.Rules),
		log:   logger,
	}, nil
}

// RenderFile renders doc into a new PDF file at path.  When rendering
// fails no output file is left behind.
func (r *Renderer) RenderFile(doc *layout.Document, path string) error {
	page, err := document.CreateSinglePage(path, r.paper(), pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	r.render(page, doc)
	if err := page.Close(); err != nil {
		// Close reports content stream errors before the file is
		// finished, so the handle and the partial file both need
		// cleaning up here.
		_ = page.Out.Close()
		_ = os.Remove(path)
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// RenderTo renders doc to w.  opt controls the PDF writer; nil selects
// the defaults.
func (r *Renderer) RenderTo(w io.Writer, doc *layout.Document, opt *pdf.WriterOptions) error {
	page, err := document.WriteSinglePage(w, r.paper(), pdf.V1_7, opt)
	if err != nil {
		return err
	}
	r.render(page, doc)
	return page.Close()
}

func (r *Renderer) render(page *document.Page, doc *layout.Document) {
	r.writeInfo(page)
	r.drawShapes(page, doc.Shapes)
	r.drawText(page, doc.Elements)
}

// writeInfo fills the document information dictionary.  No dates and
// no identifiers go in, to keep the output reproducible.
func (r *Renderer) writeInfo(page *document.Page) {
	out := r.cfg.Output
	if out.Title == "" && out.Author == "" && out.Creator == "" {
		return
	}
	page.Out.GetMeta().Info = &pdf.Info{
		Title:   pdf.TextString(out.Title),
		Author:  pdf.TextString(out.Author),
		Creator: pdf.TextString(out.Creator),
	}
}

func (r *Renderer) paper() *pdf.Rectangle {
	return &pdf.Rectangle{URx: r.cfg.Page.Width, URy: r.cfg.Page.Height}
}
