package control

import (
	"strconv"
	"strings"

	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/partition"
)

// Kind identifies a command.
type Kind int

const (
	KindSetOrientation Kind = iota + 1
	KindNextColor
	KindPrevColor
	KindToggleClickMode
	KindSetClickMode
	KindSetArity
	KindToggleAll
	KindUndo
	KindToggleOutline
	KindActivate
)

// Command is one discrete user action. Only the field matching Kind is read.
type Command struct {
	Kind        Kind
	Orientation partition.Orientation
	Click       ClickMode
	Arity       partition.Arity
	Index       int
}

// SetOrientation selects the split orientation and switches to two-way splitting.
func SetOrientation(o partition.Orientation) Command {
	return Command{Kind: KindSetOrientation, Orientation: o}
}

// NextColor selects the next palette color.
func NextColor() Command { return Command{Kind: KindNextColor} }

// PrevColor selects the previous palette color.
func PrevColor() Command { return Command{Kind: KindPrevColor} }

// ToggleClickMode flips between splitting and coloring.
func ToggleClickMode() Command { return Command{Kind: KindToggleClickMode} }

// SetClickMode selects what activating a tile does.
func SetClickMode(m ClickMode) Command { return Command{Kind: KindSetClickMode, Click: m} }

// SetArity selects two- or four-way splitting.
func SetArity(a partition.Arity) Command { return Command{Kind: KindSetArity, Arity: a} }

// ToggleAll flips splitting of every tile sharing the activated tile's color.
func ToggleAll() Command { return Command{Kind: KindToggleAll} }

// Undo reverts the most recent split not yet undone.
func Undo() Command { return Command{Kind: KindUndo} }

// ToggleOutline flips tile outlines.
func ToggleOutline() Command { return Command{Kind: KindToggleOutline} }

// Activate applies the current mode to tile index.
func Activate(index int) Command { return Command{Kind: KindActivate, Index: index} }

// String returns the script form of c, as accepted by [ParseCommand].
func (c Command) String() string {
	switch c.Kind {
	case KindSetOrientation:
		return c.Orientation.String()
	case KindNextColor:
		return "next-color"
	case KindPrevColor:
		return "prev-color"
	case KindToggleClickMode:
		return "toggle-mode"
	case KindSetClickMode:
		return "mode " + c.Click.String()
	case KindSetArity:
		return "arity " + strconv.Itoa(int(c.Arity))
	case KindToggleAll:
		return "toggle-all"
	case KindUndo:
		return "undo"
	case KindToggleOutline:
		return "toggle-outline"
	case KindActivate:
		return "click " + strconv.Itoa(c.Index)
	}
	return "Command(" + strconv.Itoa(int(c.Kind)) + ")"
}

// ParseCommand parses one script line:
//
//	vertical | horizontal          set orientation (v, h)
//	next-color | prev-color        cycle the palette (next, prev)
//	toggle-mode                    flip split/color
//	mode split|color               set click mode
//	arity 2|4                      set split arity
//	toggle-all                     flip all-matching splitting
//	undo
//	toggle-outline
//	click N                        activate tile N
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.New(errors.ErrCodeInvalidCommand, "empty command")
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	want := func(n int) error {
		if len(args) != n {
			return errors.New(errors.ErrCodeInvalidCommand, "%s takes %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}

	switch name {
	case "vertical", "v", "horizontal", "h":
		if err := want(0); err != nil {
			return Command{}, err
		}
		o, _ := partition.ParseOrientation(name)
		return SetOrientation(o), nil
	case "next-color", "next":
		return NextColor(), want(0)
	case "prev-color", "prev":
		return PrevColor(), want(0)
	case "toggle-mode":
		return ToggleClickMode(), want(0)
	case "toggle-all":
		return ToggleAll(), want(0)
	case "undo":
		return Undo(), want(0)
	case "toggle-outline":
		return ToggleOutline(), want(0)
	case "mode":
		if err := want(1); err != nil {
			return Command{}, err
		}
		m, err := ParseClickMode(args[0])
		if err != nil {
			return Command{}, errors.Wrap(errors.ErrCodeInvalidCommand, err, "bad mode")
		}
		return SetClickMode(m), nil
	case "arity":
		if err := want(1); err != nil {
			return Command{}, err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || !partition.Arity(n).Valid() {
			return Command{}, errors.New(errors.ErrCodeInvalidCommand, "arity must be 2 or 4, got %q", args[0])
		}
		return SetArity(partition.Arity(n)), nil
	case "click":
		if err := want(1); err != nil {
			return Command{}, err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, errors.New(errors.ErrCodeInvalidCommand, "tile index must be an integer, got %q", args[0])
		}
		return Activate(n), nil
	}
	return Command{}, errors.New(errors.ErrCodeInvalidCommand, "unknown command %q", fields[0])
}

// Keymap binds single keys to commands. Tile activation has no key; the
// front-end resolves clicks to tile indices itself.
var Keymap = map[string]Command{
	"v": SetOrientation(partition.Vertical),
	"h": SetOrientation(partition.Horizontal),
	"n": NextColor(),
	"p": PrevColor(),
	"m": ToggleClickMode(),
	"s": SetClickMode(SplitMode),
	"c": SetClickMode(ColorMode),
	"2": SetArity(partition.TwoWay),
	"4": SetArity(partition.FourWay),
	"a": ToggleAll(),
	"u": Undo(),
	" ": ToggleOutline(),
}

// KeyCommand looks up key in [Keymap].
func KeyCommand(key string) (Command, bool) {
	c, ok := Keymap[key]
	return c, ok
}
