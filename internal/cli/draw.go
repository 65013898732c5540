package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/control"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/partition"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

const (
	defaultTermWidth  = 80
	defaultTermHeight = 24

	// chromeLines are the terminal rows below the canvas: status, help, message.
	chromeLines = 3

	// cellAspect is how much taller a terminal cell is than it is wide.
	cellAspect = 2.0

	// cursorBlend lightens the selected tile toward white.
	cursorBlend = 0.35
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	output  string // SVG path written by the export key
	logFile string // debug log destination while the TUI owns the terminal
	canvas  canvasFlags
}

// drawCommand creates the interactive composition command.
func (c *CLI) drawCommand() *cobra.Command {
	opts := drawOpts{output: defaultBase + ".svg"}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Compose interactively in the terminal",
		Long: `Compose interactively in the terminal.

Click a tile (or move with the arrow keys and press enter) to split or paint
it, depending on the click mode.

Keys:
  v / h      split vertically / horizontally (2-way)
  2 / 4      2-way / 4-way split
  n / p      next / previous palette color (color mode)
  m          toggle split and color mode
  s / c      split mode / color mode
  a          toggle splitting every tile of the clicked color
  space      toggle outlines
  u          undo the last split
  w          write the composition as SVG
  q          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraw(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "SVG file written by the w key")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while drawing")
	opts.canvas.register(cmd)

	return cmd
}

func (c *CLI) runDraw(ctx context.Context, opts *drawOpts) error {
	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return err
	}
	cfg, err := c.loadConfig(opts.canvas)
	if err != nil {
		return err
	}
	ctrl, err := cfg.NewController()
	if err != nil {
		return err
	}

	// The TUI owns the terminal: logs go to --log-file or nowhere.
	restore, err := redirectLogs(c.Logger, opts.logFile)
	if err != nil {
		return err
	}
	defer restore()

	session := uuid.NewString()
	c.Logger.Info("Drawing session started", "session", session, "canvas", fmt.Sprintf("%gx%g", cfg.Canvas.Width, cfg.Canvas.Height))

	m := newDrawModel(ctrl, opts.output, session, c.Logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "terminal UI")
	}

	fm := final.(drawModel)
	c.Logger.Info("Drawing session ended", "session", session, "tiles", fm.ctrl.State().Len())
	switch {
	case fm.saved != "":
		c.out().success("Saved %s", fm.saved)
	case fm.ctrl.State().Len() > 1:
		c.out().warning("Composition discarded (press w to save it next time)")
	}
	return nil
}

// =============================================================================
// drawModel - Interactive composition
// =============================================================================

// drawModel is the bubbletea model for the draw command. The canvas is
// mapped onto a grid of terminal cells; each cell shows the fill of the tile
// under its center.
type drawModel struct {
	ctrl    *control.Controller
	output  string
	session string
	logger  *log.Logger

	width, height int // terminal size
	cursor        int // selected tile index
	message       string
	failed        bool
	saved         string
}

func newDrawModel(ctrl *control.Controller, output, session string, logger *log.Logger) drawModel {
	return drawModel{
		ctrl:    ctrl,
		output:  output,
		session: session,
		logger:  logger,
		width:   defaultTermWidth,
		height:  defaultTermHeight,
	}
}

func (m drawModel) Init() tea.Cmd {
	return nil
}

func (m drawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if i := m.tileAt(msg.X, msg.Y); i >= 0 {
			m.cursor = i
			m = m.execute(control.Activate(i))
		}
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "right", "up", "down":
			m.cursor = m.neighbor(key)
		case "enter":
			m = m.execute(control.Activate(m.cursor))
		case "w":
			m = m.export()
		default:
			if cmd, ok := control.KeyCommand(key); ok {
				m = m.execute(cmd)
			}
		}
	}
	return m, nil
}

// execute runs cmd and keeps the cursor on a live tile.
func (m drawModel) execute(cmd control.Command) drawModel {
	m.message, m.failed = "", false
	if err := m.ctrl.Execute(cmd); err != nil {
		m.message, m.failed = errors.UserMessage(err), true
		m.logger.Warn("Command rejected", "command", cmd, "err", err)
	}
	if n := m.ctrl.State().Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	return m
}

// export writes the current composition as SVG.
func (m drawModel) export() drawModel {
	svg := sink.RenderSVG(m.ctrl.State(), sink.WithID(m.session), sink.WithTitle(appName))
	if err := os.WriteFile(m.output, svg, 0o644); err != nil {
		m.message, m.failed = fmt.Sprintf("write %s: %v", m.output, err), true
		m.logger.Error("Export failed", "path", m.output, "err", err)
		return m
	}
	m.message, m.failed, m.saved = "Saved "+m.output, false, m.output
	m.logger.Info("Exported", "path", m.output, "bytes", len(svg))
	return m
}

// gridSize fits the canvas into the terminal, keeping its aspect ratio.
func (m drawModel) gridSize() (cols, rows int) {
	availRows := max(m.height-chromeLines, 1)
	cols = max(m.width, 1)

	b := m.ctrl.State().Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		return cols, availRows
	}
	rows = int(math.Round(float64(cols) * b.Height / b.Width / cellAspect))
	if rows > availRows {
		rows = availRows
		cols = int(math.Round(float64(rows) * cellAspect * b.Width / b.Height))
	}
	return max(cols, 1), max(rows, 1)
}

// tileAt returns the index of the tile shown at terminal cell (x, y), or -1
// outside the canvas.
func (m drawModel) tileAt(x, y int) int {
	cols, rows := m.gridSize()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return -1
	}
	st := m.ctrl.State()
	b := st.Bounds()
	px := b.X + (float64(x)+0.5)*b.Width/float64(cols)
	py := b.Y + (float64(y)+0.5)*b.Height/float64(rows)
	return st.IndexAt(px, py)
}

// neighbor returns the tile across the selected tile's edge in direction
// dir, measured from the middle of that edge. The cursor stays put at the
// canvas border.
func (m drawModel) neighbor(dir string) int {
	st := m.ctrl.State()
	if m.cursor < 0 || m.cursor >= st.Len() {
		return 0
	}
	t := st.At(m.cursor)
	// Step just past the edge, well below any tile size the engine allows.
	const eps = 1e-6
	cx, cy := t.X+t.Width/2, t.Y+t.Height/2
	var i int
	switch dir {
	case "left":
		i = st.IndexAt(t.X-eps, cy)
	case "right":
		i = st.IndexAt(t.Right()+eps, cy)
	case "up":
		i = st.IndexAt(cx, t.Y-eps)
	case "down":
		i = st.IndexAt(cx, t.Bottom()+eps)
	default:
		return m.cursor
	}
	if i < 0 {
		return m.cursor
	}
	return i
}

func (m drawModel) View() string {
	var b strings.Builder

	cols, rows := m.gridSize()
	st := m.ctrl.State()
	for y := range rows {
		run, runTile := 0, -2
		for x := range cols {
			i := m.tileAt(x, y)
			if i != runTile && run > 0 {
				b.WriteString(m.cellStyle(st, runTile).Render(strings.Repeat(" ", run)))
				run = 0
			}
			runTile = i
			run++
		}
		if run > 0 {
			b.WriteString(m.cellStyle(st, runTile).Render(strings.Repeat(" ", run)))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("click/⏎ apply  ←↑↓→ select  v/h split  n/p color  m mode  a all  ␣ outline  u undo  w save  q quit"))
	b.WriteString("\n")
	if m.message != "" {
		kind := statusSuccess
		if m.failed {
			kind = statusError
		}
		b.WriteString(statusLine(kind, m.message))
	}
	return b.String()
}

func (m drawModel) cellStyle(st partition.State, i int) lipgloss.Style {
	if i < 0 || i >= st.Len() {
		return lipgloss.NewStyle()
	}
	fill := st.At(i).Fill
	if i == m.cursor {
		fill = fill.Blend(partition.White, cursorBlend)
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(fill.Hex()))
}

// statusLine shows the interaction mode, like the info panel of a drawing
// app: current color, split settings and partition size.
func (m drawModel) statusLine() string {
	mode := m.ctrl.Mode()
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(m.ctrl.CurrentColor().Hex())).Render("  ")

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	parts := []string{
		fmt.Sprintf("%s %s %s", swatch,
			StyleNumber.Render(fmt.Sprintf("%d/%d", mode.ColorIndex+1, len(m.ctrl.Palette()))),
			StyleDim.Render(m.ctrl.CurrentColor().Hex())),
		StyleHighlight.Render(mode.Click.String()),
		StyleValue.Render(fmt.Sprintf("%s %d-way", mode.Orientation, int(mode.Arity))),
		StyleDim.Render("all ") + StyleValue.Render(onOff(mode.ApplyToAll)),
		StyleDim.Render("outline ") + StyleValue.Render(onOff(mode.Outline)),
		StyleNumber.Render(fmt.Sprint(m.ctrl.State().Len())) + StyleDim.Render(" tiles"),
		StyleDim.Render("undo ") + StyleNumber.Render(fmt.Sprint(m.ctrl.Engine().UndoDepth())),
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}
