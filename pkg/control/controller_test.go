package control

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/palette"
	"github.com/matzehuels/mondrian/pkg/partition"
)

var testCanvas = partition.Rect{Width: 100, Height: 100, Fill: partition.Blue}

func newTestController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	e, err := partition.NewEngine(testCanvas)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	c, err := New(e, palette.Default().Generate(palette.DefaultLength), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func mustExecute(t *testing.T, c *Controller, cmds ...Command) {
	t.Helper()
	for _, cmd := range cmds {
		if err := c.Execute(cmd); err != nil {
			t.Fatalf("Execute(%s) error = %v", cmd, err)
		}
	}
}

func TestNewValidation(t *testing.T) {
	e, _ := partition.NewEngine(testCanvas)
	colors := palette.Default().Generate(3)

	tests := []struct {
		name   string
		engine *partition.Engine
		colors []partition.Color
		opts   []Option
	}{
		{"nil engine", nil, colors, nil},
		{"empty palette", e, nil, nil},
		{"color index out of range", e, colors, []Option{WithMode(Mode{Arity: partition.TwoWay, ColorIndex: 3})}},
		{"bad arity", e, colors, []Option{WithMode(Mode{Arity: 3})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.engine, tt.colors, tt.opts...); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("New() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestNewSyncsOutline(t *testing.T) {
	c := newTestController(t, WithMode(Mode{Arity: partition.TwoWay, Outline: false}))
	if c.Engine().Outline() {
		t.Error("engine outline should follow the controller mode")
	}
	if c.State().At(0).Stroke.Visible() {
		t.Error("initial tile should have no stroke")
	}
}

func TestModeCommands(t *testing.T) {
	tests := []struct {
		name  string
		start Mode
		cmd   Command
		want  Mode
	}{
		{
			name:  "vertical resets arity and mode",
			start: Mode{Orientation: partition.Horizontal, Arity: partition.FourWay, Click: ColorMode, Outline: true},
			cmd:   SetOrientation(partition.Vertical),
			want:  Mode{Orientation: partition.Vertical, Arity: partition.TwoWay, Click: SplitMode, Outline: true},
		},
		{
			name:  "horizontal",
			start: Mode{Orientation: partition.Vertical, Arity: partition.FourWay, Outline: true},
			cmd:   SetOrientation(partition.Horizontal),
			want:  Mode{Orientation: partition.Horizontal, Arity: partition.TwoWay, Outline: true},
		},
		{
			name:  "next color switches to color mode",
			start: Mode{Arity: partition.TwoWay, ColorIndex: 3, Outline: true},
			cmd:   NextColor(),
			want:  Mode{Arity: partition.TwoWay, ColorIndex: 4, Click: ColorMode, Outline: true},
		},
		{
			name:  "next color wraps",
			start: Mode{Arity: partition.TwoWay, ColorIndex: palette.DefaultLength - 1, Outline: true},
			cmd:   NextColor(),
			want:  Mode{Arity: partition.TwoWay, ColorIndex: 0, Click: ColorMode, Outline: true},
		},
		{
			name:  "prev color wraps",
			start: Mode{Arity: partition.TwoWay, ColorIndex: 0, Outline: true},
			cmd:   PrevColor(),
			want:  Mode{Arity: partition.TwoWay, ColorIndex: palette.DefaultLength - 1, Click: ColorMode, Outline: true},
		},
		{
			name:  "toggle click mode",
			start: Mode{Arity: partition.TwoWay, Click: SplitMode, Outline: true},
			cmd:   ToggleClickMode(),
			want:  Mode{Arity: partition.TwoWay, Click: ColorMode, Outline: true},
		},
		{
			name:  "set click mode",
			start: Mode{Arity: partition.TwoWay, Click: SplitMode, Outline: true},
			cmd:   SetClickMode(ColorMode),
			want:  Mode{Arity: partition.TwoWay, Click: ColorMode, Outline: true},
		},
		{
			name:  "arity switches to split mode",
			start: Mode{Arity: partition.TwoWay, Click: ColorMode, Outline: true},
			cmd:   SetArity(partition.FourWay),
			want:  Mode{Arity: partition.FourWay, Click: SplitMode, Outline: true},
		},
		{
			name:  "toggle all",
			start: Mode{Arity: partition.TwoWay, Outline: true},
			cmd:   ToggleAll(),
			want:  Mode{Arity: partition.TwoWay, ApplyToAll: true, Outline: true},
		},
		{
			name:  "toggle outline",
			start: Mode{Arity: partition.TwoWay, Outline: true},
			cmd:   ToggleOutline(),
			want:  Mode{Arity: partition.TwoWay, Outline: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, WithMode(tt.start))
			mustExecute(t, c, tt.cmd)
			if got := c.Mode(); got != tt.want {
				t.Errorf("Mode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInvalidCommandsKeepMode(t *testing.T) {
	c := newTestController(t)
	before := c.Mode()

	for _, cmd := range []Command{
		{},
		SetArity(3),
		SetOrientation(partition.Orientation(7)),
		SetClickMode(ClickMode(5)),
	} {
		if err := c.Execute(cmd); !errors.Is(err, errors.ErrCodeInvalidCommand) {
			t.Errorf("Execute(%s) error = %v, want INVALID_COMMAND", cmd, err)
		}
	}
	if c.Mode() != before {
		t.Errorf("Mode() = %+v, want unchanged %+v", c.Mode(), before)
	}
}

func TestActivateSplits(t *testing.T) {
	c := newTestController(t)
	mustExecute(t, c, SetOrientation(partition.Vertical), Activate(0))

	s := c.State()
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.At(0).Width != 50 || s.At(1).X != 50 {
		t.Errorf("tiles = %+v, want vertical halves", s.Tiles())
	}
}

func TestActivateFourWay(t *testing.T) {
	c := newTestController(t)
	mustExecute(t, c, SetArity(partition.FourWay), Activate(0))
	if c.State().Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.State().Len())
	}
}

func TestActivateRecolors(t *testing.T) {
	c := newTestController(t)
	mustExecute(t, c, Activate(0), NextColor(), NextColor(), Activate(1))

	s := c.State()
	want := c.Palette()[2]
	if s.At(1).Fill != want {
		t.Errorf("tile 1 fill = %v, want %v", s.At(1).Fill, want)
	}
	if s.At(0).Fill != partition.Blue {
		t.Errorf("tile 0 fill = %v, want unchanged blue", s.At(0).Fill)
	}
	if s.Len() != 2 {
		t.Errorf("recolor changed the tile count to %d", s.Len())
	}
}

func TestActivateAllMatching(t *testing.T) {
	c := newTestController(t)
	mustExecute(t, c,
		SetOrientation(partition.Vertical),
		Activate(0), // [B, B]
		Activate(0), // [B, B, B]
		NextColor(),
		Activate(2), // [B, B, C]
		SetOrientation(partition.Horizontal),
		ToggleAll(),
		Activate(0), // both blue tiles split
	)

	s := c.State()
	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}
	if s.At(4).Fill == partition.Blue || s.At(4).Width != 50 {
		t.Errorf("colored tile should be untouched, got %+v", s.At(4))
	}
}

func TestActivateOutOfRange(t *testing.T) {
	c := newTestController(t)
	err := c.Execute(Activate(3))
	if !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("Activate(3) error = %v, want INDEX_OUT_OF_RANGE", err)
	}
	if c.State().Len() != 1 {
		t.Error("rejected activation changed the state")
	}
}

func TestUndoCommand(t *testing.T) {
	c := newTestController(t)
	initial := c.State()
	mustExecute(t, c, Activate(0), Activate(0), Activate(0))

	mustExecute(t, c, Undo(), Undo(), Undo())
	if !c.State().Equal(initial) {
		t.Errorf("state after undos has %d tiles, want 1", c.State().Len())
	}
	mustExecute(t, c, Undo())
	if !c.State().Equal(initial) {
		t.Error("undo past history should be a no-op")
	}
}

func TestRecolorNotUndoable(t *testing.T) {
	c := newTestController(t)
	mustExecute(t, c, Activate(0), NextColor(), Activate(0), Undo())

	s := c.State()
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.At(0).Fill != partition.Blue {
		t.Errorf("fill = %v, want blue (undo restores the pre-split snapshot)", s.At(0).Fill)
	}
}

func TestToggleOutlineTwice(t *testing.T) {
	c := newTestController(t)
	mustExecute(t, c, Activate(0))
	before := c.State()
	depth := c.Engine().UndoDepth()

	mustExecute(t, c, ToggleOutline())
	if c.State().At(0).Stroke.Visible() {
		t.Error("outline should be hidden after one toggle")
	}
	mustExecute(t, c, ToggleOutline())

	if !c.State().Equal(before) {
		t.Error("two toggles should restore the original strokes")
	}
	if c.Engine().UndoDepth() != depth {
		t.Error("outline toggles must not add history")
	}
}

func TestRun(t *testing.T) {
	c := newTestController(t)
	script := `
# quarter the canvas, then paint the top-left tile
arity 4
click 0
next-color
click 0
`
	if err := c.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	s := c.State()
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if s.At(0).Fill != c.Palette()[1] {
		t.Errorf("tile 0 fill = %v, want %v", s.At(0).Fill, c.Palette()[1])
	}
}

func TestRunStopsAtFailingLine(t *testing.T) {
	c := newTestController(t)
	script := "click 0\nclick 9\nclick 0\n"

	err := c.Run(context.Background(), strings.NewReader(script))
	if !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Fatalf("Run() error = %v, want INDEX_OUT_OF_RANGE", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err)
	}
	if c.State().Len() != 2 {
		t.Errorf("Len() = %d, want 2 (first line applied, third not)", c.State().Len())
	}
}

func TestRunParseError(t *testing.T) {
	c := newTestController(t)
	err := c.Run(context.Background(), strings.NewReader("spin 3\n"))
	if !errors.Is(err, errors.ErrCodeInvalidCommand) {
		t.Errorf("Run() error = %v, want INVALID_COMMAND", err)
	}
}

func TestRunCancelled(t *testing.T) {
	c := newTestController(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Run(ctx, strings.NewReader("click 0\n")); err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if c.State().Len() != 1 {
		t.Error("cancelled run should not apply commands")
	}
}

func TestRunTestdataComposition(t *testing.T) {
	f, err := os.Open("testdata/composition.txt")
	if err != nil {
		t.Fatalf("open testdata: %v", err)
	}
	defer f.Close()

	c := newTestController(t)
	if err := c.Run(context.Background(), f); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	s := c.State()
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
	if got := len(s.Colors()); got != 3 {
		t.Errorf("distinct colors = %d, want 3", got)
	}
	if b := s.Bounds(); !b.SameBounds(testCanvas) {
		t.Errorf("Bounds() = %+v, want canvas", b)
	}
}
