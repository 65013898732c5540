package partition

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// Color is an 8-bit RGB triple. Colors compare with ==; matching in
// [Engine.SplitAllMatching] uses exact equality.
type Color struct {
	R, G, B uint8
}

// Named colors used by the default canvas.
var (
	Blue  = Color{0, 0, 255}
	White = Color{255, 255, 255}
	Black = Color{}
)

// RGB builds a Color from channel values.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string { return c.colorful().Hex() }

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// Blend mixes c toward o by t in [0, 1] in RGB space.
func (c Color) Blend(o Color, t float64) Color {
	return fromColorful(c.colorful().BlendRgb(o.colorful(), t))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	if !wellFormedHex(s) {
		return Color{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q: want #rrggbb or #rgb", s)
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return fromColorful(cf), nil
}

func wellFormedHex(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// MustParseHex is like ParseHex but panics on malformed input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(fmt.Sprintf("partition: %v", err))
	}
	return c
}
