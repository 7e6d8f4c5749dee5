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

package cli

import (
	"context"

	"github.com/spf13/cobra"

	cv "github.com/nicolasfredesfranco/CV-2"
	"github.com/nicolasfredesfranco/CV-2/config"
	"github.com/nicolasfredesfranco/CV-2/fonts"
	"github.com/nicolasfredesfranco/CV-2/layout"
	"github.com/nicolasfredesfranco/CV-2/links"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	coords     string // text element JSON file
	shapes     string // shape JSON file
	configPath string // optional TOML configuration overlay
	fontsDir   string // directory containing the TrueType faces
	output     string // output PDF path, empty selects the configured default
}

// newGenerateCmd creates the generate command, the one rendering
// entry point of the CLI.
//
// Flags default to the conventional input layout: coordinates.json and
// shapes.json next to the working directory, built-in configuration,
// standard faces.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the extracted layout to a PDF file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.coords, "coords", "coordinates.json", "text element JSON file")
	cmd.Flags().StringVar(&opts.shapes, "shapes", "shapes.json", "shape JSON file")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML configuration overlay")
	cmd.Flags().StringVar(&opts.fontsDir, "fonts", "", "directory containing the TrueType faces")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path (defaults to the configured path)")

	return cmd
}

func runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
		logger.Debugf("Loaded configuration from %s", opts.configPath)
	}
	if opts.fontsDir != "" {
		cfg.Fonts.Dir = opts.fontsDir
	}
	out := opts.output
	if out == "" {
		out = cfg.Output.Path
	}

	doc, err := layout.Load(opts.coords, opts.shapes, logger)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d text elements, %d shapes", len(doc.Elements), len(doc.Shapes))

	// A link table that cannot disambiguate its split rules would
	// render the wrong targets; refuse to start instead.
	if err := links.NewResolver(cfg.Links.Rules).CheckSplit(doc.Elements); err != nil {
		return err
	}

	renderer, err := cv.New(cfg, fonts.Load(cfg.Fonts, logger), logger)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	if err := renderer.RenderFile(doc, out); err != nil {
		return err
	}
	p.done("Generated " + out)
	return nil
}
