package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
	mapio "github.com/jhaabhiiishek/mindmap-assignment/pkg/io"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/render"
)

// renderCommand creates the render command for generating visual artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		mode     string
		formats  string
		detailed bool
		free     bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "render [map.json]",
		Short: "Render a mindmap tree as a diagram",
		Long: `Render a mindmap tree as a diagram.

The render command lays out the tree and produces one artifact per requested
format. By default nodes are pinned to their computed layout positions, so
the artifact matches what the editing surface shows; pass --free to let
Graphviz arrange the hierarchy itself.

Formats: svg (default), dot, pdf, png. PDF and PNG require librsvg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := render.Options{Pinned: !free, Detailed: detailed}
			return c.runRender(cmd.Context(), args[0], mode, output, parseFormats(formats), opts, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file base (default: input path without extension)")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(layout.DefaultMode), "layout mode: tree (default), force, radial")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "comma-separated output formats: svg, dot, pdf, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include summary text in node labels")
	cmd.Flags().BoolVar(&free, "free", false, "let Graphviz arrange nodes instead of pinning layout positions")
	cmd.Flags().Float64Var(&scale, "scale", 2.0, "PNG scale factor")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

func (c *CLI) runRender(ctx context.Context, input, modeArg, output string, formats []string, opts render.Options, scale float64) error {
	mode, err := layout.ParseMode(modeArg)
	if err != nil {
		return err
	}

	root, err := mapio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load map %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	nodes, edges := graph.Flatten(root, 0, "")
	nodes = layout.New(mode, cfg.LayoutConfig()).Layout(nodes, edges)
	dot := render.ToDOT(nodes, edges, opts)

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	// SVG is rendered once and reused for the raster conversions.
	var svg []byte
	needsSVG := false
	for _, f := range formats {
		if f == "svg" || f == "pdf" || f == "png" {
			needsSVG = true
		}
	}
	if needsSVG {
		spinner := newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
		svg, err = render.RenderSVG(dot)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	prog := newProgress(loggerFromContext(ctx))
	var written []string
	for _, format := range formats {
		var body []byte
		switch format {
		case "dot":
			body = []byte(dot)
		case "svg":
			body = svg
		case "pdf":
			body, err = render.ToPDF(svg)
		case "png":
			body, err = render.ToPNG(svg, scale)
		default:
			return errors.New(errors.ErrCodeUnsupported, "unknown render format %q", format)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}

		path := base + "." + format
		if err := os.WriteFile(path, body, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}

	prog.done(fmt.Sprintf("Rendered %d nodes", len(nodes)))
	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(len(nodes), len(edges), false)

	return nil
}
