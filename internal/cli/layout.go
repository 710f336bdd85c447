package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/cache"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
	mapio "github.com/jhaabhiiishek/mindmap-assignment/pkg/io"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		mode    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [map.json]",
		Short: "Compute node positions for a mindmap tree",
		Long: `Compute node positions for a mindmap tree.

The layout command takes a map.json file (the nested tree format) and computes
positions for every node. The output is a view.json file holding the flat
node/edge arrays with positions, ready for rendering with 'render'.

Supports the tree (default), force, and radial layout modes.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], mode, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.view.json)")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(layout.DefaultMode), "layout mode: tree (default), force, radial")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the tree, computes positions, and writes the view file.
func (c *CLI) runLayout(ctx context.Context, input, modeArg, output string, noCache bool) error {
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
	layoutCfg := cfg.LayoutConfig()

	store, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	nodes, edges := graph.Flatten(root, 0, "")

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", mode))
	spinner.Start()

	body, cacheHit, err := layoutWithCache(ctx, store, nodes, edges, mode, layoutCfg)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".view.json"
	}
	if err := os.WriteFile(outputPath, body, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(nodes), len(edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}

// layoutWithCache runs a layout through the byte cache, keyed by the
// content hash of the unpositioned view.
func layoutWithCache(ctx context.Context, store cache.Cache, nodes []graph.Node, edges []graph.Edge, mode layout.Mode, cfg layout.Config) ([]byte, bool, error) {
	flat, err := graph.MarshalView(nodes, edges)
	if err != nil {
		return nil, false, fmt.Errorf("marshal view: %w", err)
	}
	key := cache.NewDefaultKeyer().LayoutKey(cache.Hash(flat), cache.LayoutKeyOpts{
		Mode:         string(mode),
		HSpacing:     cfg.HSpacing,
		VSpacing:     cfg.VSpacing,
		LinkDistance: cfg.LinkDistance,
		Charge:       cfg.Charge,
		Iterations:   cfg.Iterations,
		RadialStep:   cfg.RadialStep,
	})
	if body, hit, err := store.Get(ctx, key); err == nil && hit {
		return body, true, nil
	}

	nodes = layout.New(mode, cfg).Layout(nodes, edges)
	body, err := graph.MarshalView(nodes, edges)
	if err != nil {
		return nil, false, fmt.Errorf("marshal view: %w", err)
	}
	if err := store.Set(ctx, key, body, 0); err != nil {
		loggerFromContext(ctx).Warn("cache layout", "err", err)
	}
	return body, false, nil
}
