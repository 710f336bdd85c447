package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
	mapio "github.com/jhaabhiiishek/mindmap-assignment/pkg/io"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/store"
)

// mapsCommand creates the map collection management command.
func (c *CLI) mapsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maps",
		Short: "Manage the stored map collection",
	}

	cmd.AddCommand(c.mapsListCommand())
	cmd.AddCommand(c.mapsCreateCommand())
	cmd.AddCommand(c.mapsRenameCommand())
	cmd.AddCommand(c.mapsDeleteCommand())
	cmd.AddCommand(c.mapsExportCommand())

	return cmd
}

// openStore builds the configured backend for a maps subcommand.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.newStore(ctx, cfg)
}

func (c *CLI) mapsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			maps, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(maps) == 0 {
				printInfo("No maps stored")
				return nil
			}

			for _, m := range maps {
				fmt.Println(StyleValue.Render(m.Name))
				printDetail("id: %s", m.ID)
				printDetail("nodes: %d  created: %s", hierarchy.Count(m.Root), m.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func (c *CLI) mapsCreateCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			var root *hierarchy.Node
			if from != "" {
				root, err = mapio.ImportJSON(from)
				if err != nil {
					return err
				}
			} else {
				root = &hierarchy.Node{ID: uuid.NewString(), Label: "Central Idea", Kind: hierarchy.KindRoot}
			}

			m := store.NewMap(args[0], root)
			if err := st.Save(cmd.Context(), m); err != nil {
				return err
			}
			printSuccess("Created map %q", m.Name)
			printDetail("id: %s", m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "seed the map from a map.json file")
	return cmd
}

func (c *CLI) mapsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Rename a stored map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			m, err := st.Get(cmd.Context(), args[0])
			if err == store.ErrNotFound {
				return errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", args[0])
			}
			if err != nil {
				return err
			}
			m.Name = args[1]
			if err := st.Save(cmd.Context(), m); err != nil {
				return err
			}
			printSuccess("Renamed to %q", m.Name)
			return nil
		},
	}
}

func (c *CLI) mapsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			maps, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(maps) <= 1 {
				return errors.New(errors.ErrCodeLastMap, "cannot delete the only remaining map")
			}

			if err := st.Delete(cmd.Context(), args[0]); err == store.ErrNotFound {
				return errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", args[0])
			} else if err != nil {
				return err
			}
			printSuccess("Deleted map %s", args[0])
			return nil
		},
	}
}

func (c *CLI) mapsExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a stored map as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			m, err := st.Get(cmd.Context(), args[0])
			if err == store.ErrNotFound {
				return errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", args[0])
			}
			if err != nil {
				return err
			}

			if output == "" {
				return mapio.WriteJSON(m.Root, os.Stdout)
			}
			if err := mapio.ExportJSON(m.Root, output); err != nil {
				return err
			}
			printSuccess("Exported %q", m.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
