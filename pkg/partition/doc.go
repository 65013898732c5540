// Package partition implements the rectangle partition engine: a tiling of a
// canvas into non-overlapping axis-aligned tiles that is refined by bisection.
//
// # Model
//
// A [State] is an immutable ordered list of [Rect] tiles. The tiles never
// overlap and their union is always the original canvas: the only geometric
// operation is replacing one tile by children that cover exactly the same
// region. Order only matters for drawing.
//
// # Splitting
//
// [Split] is the pure primitive. A two-way split halves a tile along one axis
// ([Vertical] halves the width, [Horizontal] the height). A four-way split
// applies the two-way split and then splits both halves along the other axis:
//
//	Horizontal, 4:          Vertical, 4:
//	+-----+-----+           +-----+-----+
//	|  0  |  1  |           |  0  |  2  |
//	+-----+-----+           +-----+-----+
//	|  2  |  3  |           |  1  |  3  |
//	+-----+-----+           +-----+-----+
//
// Children inherit fill and stroke; splitting never recolors.
//
// # Engine
//
// [Engine] holds the current state and a bounded undo history:
//
//	e, _ := partition.NewEngine(partition.Rect{Width: 100, Height: 100, Fill: partition.Blue})
//	e.SplitOne(0, partition.Vertical, partition.TwoWay)           // two tiles
//	e.SplitAllMatching(0, partition.Horizontal, partition.TwoWay) // four tiles
//	e.Recolor(0, partition.RGB(183, 122, 171))
//	e.Undo() // two tiles again
//
// Only splits are undoable; recolors and outline changes are not recorded.
// A split whose children would fall below the engine's minimum size is
// rejected with DEGENERATE_SPLIT and leaves the engine unchanged.
package partition
