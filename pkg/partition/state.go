package partition

import "math"

// State is an immutable ordered tiling. Order only affects drawing order.
// The zero State has no tiles.
type State struct {
	tiles []Rect
}

// NewState builds a State from a copy of tiles.
func NewState(tiles ...Rect) State {
	return State{tiles: append([]Rect(nil), tiles...)}
}

// Len returns the number of tiles.
func (s State) Len() int { return len(s.tiles) }

// At returns the tile at index i. It panics if i is out of range.
func (s State) At(i int) Rect { return s.tiles[i] }

// Tiles returns a copy of the tiles in draw order.
func (s State) Tiles() []Rect { return append([]Rect(nil), s.tiles...) }

// IndexAt returns the index of the tile containing (x, y), or -1.
func (s State) IndexAt(x, y float64) int {
	for i, t := range s.tiles {
		if t.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Matching returns the indices of every tile filled with c, in order.
func (s State) Matching(c Color) []int {
	var idx []int
	for i, t := range s.tiles {
		if t.Fill == c {
			idx = append(idx, i)
		}
	}
	return idx
}

// Bounds returns the smallest rectangle covering every tile. Fill and stroke
// of the result are zero.
func (s State) Bounds() Rect {
	if len(s.tiles) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range s.tiles {
		minX = math.Min(minX, t.X)
		minY = math.Min(minY, t.Y)
		maxX = math.Max(maxX, t.Right())
		maxY = math.Max(maxY, t.Bottom())
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Area returns the summed area of all tiles.
func (s State) Area() float64 {
	var a float64
	for _, t := range s.tiles {
		a += t.Area()
	}
	return a
}

// Equal reports whether s and o hold the same tiles in the same order.
func (s State) Equal(o State) bool {
	if len(s.tiles) != len(o.tiles) {
		return false
	}
	for i := range s.tiles {
		if s.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}

// Colors returns the distinct fills in first-seen order.
func (s State) Colors() []Color {
	seen := make(map[Color]struct{}, len(s.tiles))
	var out []Color
	for _, t := range s.tiles {
		if _, ok := seen[t.Fill]; ok {
			continue
		}
		seen[t.Fill] = struct{}{}
		out = append(out, t.Fill)
	}
	return out
}

func (s State) withStroke(st Stroke) State {
	tiles := make([]Rect, len(s.tiles))
	for i, t := range s.tiles {
		t.Stroke = st
		tiles[i] = t
	}
	return State{tiles: tiles}
}

func (s State) withFill(i int, c Color) State {
	tiles := s.Tiles()
	tiles[i].Fill = c
	return State{tiles: tiles}
}
