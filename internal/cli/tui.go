package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/workspace"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// modeCycle is the order the m key steps through layout modes.
var modeCycle = []layout.Mode{layout.ModeTree, layout.ModeForce, layout.ModeRadial}

// =============================================================================
// MapViewModel - Interactive map browsing
// =============================================================================

// MapViewModel is the bubbletea model for browsing a map. It walks the
// controller's committed visible nodes: collapse, drill, and layout
// operations go through the controller, and the list re-reads the
// committed arrays afterwards.
type MapViewModel struct {
	ctrl   *workspace.Controller
	ctx    context.Context
	cursor int
	height int
	offset int
	status string
}

// NewMapViewModel creates a view model over a controller.
func NewMapViewModel(ctx context.Context, ctrl *workspace.Controller) MapViewModel {
	return MapViewModel{
		ctrl:   ctrl,
		ctx:    ctx,
		height: 15,
	}
}

func (m MapViewModel) Init() tea.Cmd {
	return nil
}

func (m MapViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.ctrl.Nodes())-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ", "enter":
			if n := m.currentNode(); n != nil && n.HasChildren {
				m.ctrl.ToggleExpansion(m.ctx, n.ID)
				m.status = ""
			}
		case "d":
			if n := m.currentNode(); n != nil {
				if err := m.ctrl.DrillDown(n.ID); err != nil {
					m.status = err.Error()
				} else {
					m.cursor, m.offset = 0, 0
					m.status = ""
				}
			}
		case "u":
			m.ctrl.DrillUp()
			m.cursor, m.offset = 0, 0
			m.status = ""
		case "e":
			m.ctrl.ExpandAll(m.ctx)
			m.status = ""
		case "c":
			m.ctrl.CollapseAll(m.ctx)
			m.status = ""
		case "m":
			if err := m.ctrl.SetLayoutMode(m.ctx, m.nextMode()); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
		}
		m.clampCursor()
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m *MapViewModel) currentNode() *graph.Node {
	nodes := m.ctrl.Nodes()
	if m.cursor < 0 || m.cursor >= len(nodes) {
		return nil
	}
	return &nodes[m.cursor]
}

// clampCursor keeps the cursor inside the node list after collapse and
// drill operations shrink it.
func (m *MapViewModel) clampCursor() {
	if n := len(m.ctrl.Nodes()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m MapViewModel) nextMode() layout.Mode {
	for i, mode := range modeCycle {
		if mode == m.ctrl.Mode() {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return layout.DefaultMode
}

func (m MapViewModel) View() string {
	var b strings.Builder

	_, name := m.ctrl.ActiveMap()
	title := name
	if id, drilled := m.ctrl.Drilled(); drilled {
		title += listDimStyle.Render(" (drilled: " + id + ")")
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  " + StyleHighlight.Render(string(m.ctrl.Mode())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle  d drill  u up  m mode  e expand  c collapse  q quit"))
	b.WriteString("\n\n")

	nodes := m.ctrl.Nodes()
	end := m.offset + m.height
	if end > len(nodes) {
		end = len(nodes)
	}

	for i := m.offset; i < end; i++ {
		n := nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "·"
		if n.HasChildren {
			if n.Expanded {
				marker = "▾"
			} else {
				marker = "▸"
			}
		}

		line := fmt.Sprintf("%s%s%s %s", cursor, strings.Repeat("  ", n.Depth), marker, n.Label)
		if n.HasChildren {
			line += listDimStyle.Render(fmt.Sprintf(" (%d)", n.ChildCount))
		}

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(nodes))))
	if m.status != "" {
		b.WriteString("  " + StyleWarning.Render(m.status))
	}

	return b.String()
}

// =============================================================================
// view command
// =============================================================================

// viewCommand creates the interactive terminal viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var mapID string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a map interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ctrl, err := workspace.New(ctx, st, c.Logger, cfg.LayoutConfig())
			if err != nil {
				return err
			}
			if mapID != "" {
				if err := ctrl.SwitchMap(ctx, mapID); err != nil {
					return err
				}
			}

			_, err = tea.NewProgram(NewMapViewModel(ctx, ctrl)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&mapID, "map", "", "map id to open (default: oldest map)")
	return cmd
}
