package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhaabhiiishek/mindmap-assignment/internal/server"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/cache"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mindmap HTTP API",
		Long: `Run the mindmap HTTP API.

The server exposes the stored map collection as a JSON API: map CRUD,
laid-out views, layout mode selection, and JSON/DOT/SVG export. The store
backend and listen address come from the config file; --addr overrides
the address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			st, err := c.newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			var artifacts cache.Cache
			if noCache || cfg.Server.CacheDir == "" {
				artifacts = cache.NewNullCache()
			} else {
				artifacts, err = cache.NewFileCache(cfg.Server.CacheDir)
				if err != nil {
					return err
				}
			}
			defer artifacts.Close()

			srv := server.New(st, artifacts, c.Logger, cfg.LayoutConfig(), cfg.CacheTTL())
			return srv.ListenAndServe(cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout/render caching")

	return cmd
}
