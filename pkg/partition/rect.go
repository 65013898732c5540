package partition

import (
	"strconv"
	"strings"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// Stroke is the outline drawn around a tile. A Color of "none" (or empty) or
// a non-positive Width draws nothing.
type Stroke struct {
	Color string
	Width float64
}

// NoStroke disables outlines.
var NoStroke = Stroke{Color: "none"}

// DefaultOutline is the thin white outline drawn when outlines are enabled.
var DefaultOutline = Stroke{Color: "white", Width: 0.3}

// Visible reports whether the stroke draws anything.
func (s Stroke) Visible() bool {
	return s.Color != "" && s.Color != "none" && s.Width > 0
}

// Rect is one axis-aligned tile of a partition.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          Color
	Stroke        Stroke
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Key identifies the tile by its top-left corner ("XxY"). Tiles of a valid
// partition never share a corner, so keys are unique within a State.
func (r Rect) Key() string {
	return formatFloat(r.X) + "x" + formatFloat(r.Y)
}

// Contains reports whether (x, y) lies inside r. Left and top edges are
// inclusive, right and bottom edges exclusive, so neighbouring tiles never
// both contain a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// SameBounds reports whether r and o cover exactly the same region.
func (r Rect) SameBounds(o Rect) bool {
	return r.X == o.X && r.Y == o.Y && r.Width == o.Width && r.Height == o.Height
}

// Orientation selects the axis a split cuts along.
type Orientation int

const (
	// Horizontal halves the height: top and bottom children.
	Horizontal Orientation = iota
	// Vertical halves the width: left and right children.
	Vertical
)

// Flip returns the other orientation.
func (o Orientation) Flip() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "Orientation(" + strconv.Itoa(int(o)) + ")"
}

// Valid reports whether o is Horizontal or Vertical.
func (o Orientation) Valid() bool { return o == Horizontal || o == Vertical }

// ParseOrientation accepts "horizontal"/"h" and "vertical"/"v".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown orientation %q (want horizontal or vertical)", s)
}

// Arity is the number of children a split produces.
type Arity int

const (
	// TwoWay bisects a tile along the split orientation.
	TwoWay Arity = 2
	// FourWay bisects a tile along both axes.
	FourWay Arity = 4
)

// Valid reports whether a is TwoWay or FourWay.
func (a Arity) Valid() bool { return a == TwoWay || a == FourWay }

// Split subdivides r without modifying it.
//
// A two-way split halves r along o: Vertical yields left then right,
// Horizontal yields top then bottom. A four-way split applies the two-way
// split and then splits each half along o.Flip(), yielding the first half's
// children followed by the second half's. Children keep r's fill and stroke
// and their union is exactly r.
//
// Split rejects an unknown orientation or arity with INVALID_INPUT and
// children without area with DEGENERATE_SPLIT.
func Split(r Rect, o Orientation, arity Arity) ([]Rect, error) {
	if !o.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown orientation %d", int(o))
	}
	if !arity.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported split arity %d (want 2 or 4)", int(arity))
	}

	a, b := bisect(r, o)
	children := []Rect{a, b}
	if arity == FourWay {
		a1, a2 := bisect(a, o.Flip())
		b1, b2 := bisect(b, o.Flip())
		children = []Rect{a1, a2, b1, b2}
	}

	for _, c := range children {
		if err := errors.ValidateDimensions(c.Width, c.Height, 0); err != nil {
			return nil, err
		}
	}
	return children, nil
}

// bisect halves r along o. The second half's far edge is measured from r's
// edge so that it lands exactly on r.Right() or r.Bottom().
func bisect(r Rect, o Orientation) (Rect, Rect) {
	a, b := r, r
	if o == Vertical {
		a.Width = r.Width / 2
		b.X = r.X + a.Width
		b.Width = r.Right() - b.X
	} else {
		a.Height = r.Height / 2
		b.Y = r.Y + a.Height
		b.Height = r.Bottom() - b.Y
	}
	return a, b
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
