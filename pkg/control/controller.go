// Package control maps discrete user commands onto a partition engine.
//
// A [Controller] owns the interaction [Mode] (split orientation and arity,
// click mode, palette index, all-matching flag, outline flag) and turns
// commands into engine calls. It does no hit-testing and no rendering: the
// front-end resolves a click to a tile index and sends [Activate].
//
// Commands come from three places that all end up in [Controller.Execute]:
// the key bindings in [Keymap], the script grammar of [ParseCommand] (replayed
// with [Controller.Run]), and direct construction.
package control

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/partition"
)

// ClickMode is what activating a tile does.
type ClickMode int

const (
	SplitMode ClickMode = iota
	ColorMode
)

func (m ClickMode) String() string {
	if m == ColorMode {
		return "color"
	}
	return "split"
}

// ParseClickMode accepts "split" and "color".
func ParseClickMode(s string) (ClickMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "split":
		return SplitMode, nil
	case "color", "colour":
		return ColorMode, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown click mode %q (want split or color)", s)
}

// Mode is the interaction configuration. It is plain data; only commands
// change it.
type Mode struct {
	Orientation partition.Orientation
	Arity       partition.Arity
	Click       ClickMode
	ColorIndex  int
	ApplyToAll  bool
	Outline     bool
}

// DefaultMode splits horizontally in two, one tile at a time, with outlines.
func DefaultMode() Mode {
	return Mode{
		Orientation: partition.Horizontal,
		Arity:       partition.TwoWay,
		Click:       SplitMode,
		Outline:     true,
	}
}

// Option configures a [Controller].
type Option func(*Controller)

// WithMode sets the initial mode.
func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

// Controller dispatches commands to an engine. It is not safe for concurrent use.
type Controller struct {
	engine *partition.Engine
	colors []partition.Color
	mode   Mode
}

// New creates a controller painting from colors. The engine's outline mode
// is brought in line with the controller's.
func New(engine *partition.Engine, colors []partition.Color, opts ...Option) (*Controller, error) {
	if engine == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "controller needs an engine")
	}
	if len(colors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "controller needs at least one palette color")
	}

	c := &Controller{
		engine: engine,
		colors: append([]partition.Color(nil), colors...),
		mode:   DefaultMode(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !c.mode.Orientation.Valid() || !c.mode.Arity.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid mode %+v", c.mode)
	}
	if c.mode.ColorIndex < 0 || c.mode.ColorIndex >= len(c.colors) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "color index %d outside palette of %d", c.mode.ColorIndex, len(c.colors))
	}
	engine.SetOutline(c.mode.Outline)
	return c, nil
}

// Mode returns the current interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// State returns the engine's current tiling.
func (c *Controller) State() partition.State { return c.engine.State() }

// Engine returns the controlled engine.
func (c *Controller) Engine() *partition.Engine { return c.engine }

// Palette returns a copy of the palette.
func (c *Controller) Palette() []partition.Color {
	return append([]partition.Color(nil), c.colors...)
}

// CurrentColor returns the palette color at the current index.
func (c *Controller) CurrentColor() partition.Color { return c.colors[c.mode.ColorIndex] }

// Execute applies one command. A rejected command leaves both the mode and
// the tiling unchanged.
func (c *Controller) Execute(cmd Command) error {
	m := c.mode
	switch cmd.Kind {
	case KindSetOrientation:
		if !cmd.Orientation.Valid() {
			return errors.New(errors.ErrCodeInvalidCommand, "unknown orientation %d", int(cmd.Orientation))
		}
		m.Orientation = cmd.Orientation
		m.Click = SplitMode
		m.Arity = partition.TwoWay
	case KindNextColor:
		m.ColorIndex = (m.ColorIndex + 1) % len(c.colors)
		m.Click = ColorMode
	case KindPrevColor:
		m.ColorIndex = (m.ColorIndex - 1 + len(c.colors)) % len(c.colors)
		m.Click = ColorMode
	case KindToggleClickMode:
		if m.Click == SplitMode {
			m.Click = ColorMode
		} else {
			m.Click = SplitMode
		}
	case KindSetClickMode:
		if cmd.Click != SplitMode && cmd.Click != ColorMode {
			return errors.New(errors.ErrCodeInvalidCommand, "unknown click mode %d", int(cmd.Click))
		}
		m.Click = cmd.Click
	case KindSetArity:
		if !cmd.Arity.Valid() {
			return errors.New(errors.ErrCodeInvalidCommand, "arity must be 2 or 4, got %d", int(cmd.Arity))
		}
		m.Arity = cmd.Arity
		m.Click = SplitMode
	case KindToggleAll:
		m.ApplyToAll = !m.ApplyToAll
	case KindUndo:
		c.engine.Undo()
		return nil
	case KindToggleOutline:
		m.Outline = !m.Outline
		c.engine.SetOutline(m.Outline)
	case KindActivate:
		return c.Activate(cmd.Index)
	default:
		return errors.New(errors.ErrCodeInvalidCommand, "unknown command kind %d", int(cmd.Kind))
	}
	c.mode = m
	return nil
}

// Activate applies the current mode to the tile at index: a split (of that
// tile, or of every tile sharing its color) in split mode, a recolor with
// [Controller.CurrentColor] in color mode.
func (c *Controller) Activate(index int) error {
	var err error
	switch {
	case c.mode.Click == ColorMode:
		_, err = c.engine.Recolor(index, c.CurrentColor())
	case c.mode.ApplyToAll:
		_, err = c.engine.SplitAllMatching(index, c.mode.Orientation, c.mode.Arity)
	default:
		_, err = c.engine.SplitOne(index, c.mode.Orientation, c.mode.Arity)
	}
	return err
}

// Run replays a command script from r, one command per line. Blank lines
// and lines starting with '#' are skipped. Run stops at the first failing
// line, returning its error annotated with the line number; commands before
// it stay applied. ctx is checked between lines.
func (c *Controller) Run(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := ParseCommand(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := c.Execute(cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", line, cmd, err)
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "reading script")
	}
	return nil
}
