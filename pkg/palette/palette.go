// Package palette generates the ordered color lists tiles are painted from.
//
// A palette starts at a fixed color and walks toward an end color: every
// entry is the per-channel mean of the previous entry and the end color,
// rounded half up. Each step halves the remaining distance, so a palette
// approaches the end color without overshooting it, and the sequence depends
// only on the two endpoints and the requested length.
//
//	g := palette.Default()
//	colors := g.Generate(palette.DefaultLength)
//	colors[0] == palette.DefaultStart // true
package palette

import "github.com/matzehuels/mondrian/pkg/partition"

// DefaultLength is the number of colors in the default palette.
const DefaultLength = 15

// Default endpoints: a dusty mauve fading toward deep aubergine.
var (
	DefaultStart = partition.RGB(183, 122, 171)
	DefaultEnd   = partition.RGB(38, 3, 57)
)

// Generator produces palettes between two fixed endpoints.
// It holds no mutable state and is safe to share.
type Generator struct {
	start, end partition.Color
}

// New returns a generator walking from start toward end.
func New(start, end partition.Color) *Generator {
	return &Generator{start: start, end: end}
}

// Default returns a generator for [DefaultStart] and [DefaultEnd].
func Default() *Generator { return New(DefaultStart, DefaultEnd) }

// Start returns the first color of every palette.
func (g *Generator) Start() partition.Color { return g.start }

// End returns the color palettes approach.
func (g *Generator) End() partition.Color { return g.end }

// Generate returns n colors. n <= 0 yields an empty palette.
func (g *Generator) Generate(n int) []partition.Color {
	if n <= 0 {
		return []partition.Color{}
	}
	colors := make([]partition.Color, n)
	colors[0] = g.start
	for i := 1; i < n; i++ {
		colors[i] = Average(colors[i-1], g.end)
	}
	return colors
}

// Average returns the per-channel mean of a and b, rounded half up.
func Average(a, b partition.Color) partition.Color {
	return partition.Color{
		R: mean(a.R, b.R),
		G: mean(a.G, b.G),
		B: mean(a.B, b.B),
	}
}

func mean(a, b uint8) uint8 {
	return uint8((uint16(a) + uint16(b) + 1) / 2)
}
